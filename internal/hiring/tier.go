package hiring

import (
	"time"

	"hiresignal-engine/internal/domain"
)

// TierPolicy holds the tunable thresholds separating tiers. Values come from
// config, not constants, so tiering can be retuned without touching logic.
type TierPolicy struct {
	RecentDays int // recency window for a posting to qualify
	TierAMin   int // recent technical postings needed for tier A
}

// Tier maps classified postings to a hiring signal. Only postings dated
// within the recency window count toward the tier; postings with no date are
// kept visible on Undated but never qualify, so TechRoleCount always equals
// len(Details).
func (p TierPolicy) Tier(postings []domain.JobPosting, now time.Time) domain.HiringSignal {
	cutoff := now.Add(-time.Duration(p.RecentDays) * 24 * time.Hour)

	var recent, undated []domain.JobPosting
	for _, j := range postings {
		switch {
		case j.PostedAt == nil:
			undated = append(undated, j)
		case !j.PostedAt.Before(cutoff):
			recent = append(recent, j)
		}
	}

	tier := domain.TierNone
	switch {
	case len(recent) > 0 && len(recent) >= p.TierAMin:
		tier = domain.TierA
	case len(recent) > 0:
		tier = domain.TierB
	}

	return domain.HiringSignal{
		Tier:          tier,
		TechRoleCount: len(recent),
		Details:       recent,
		Undated:       undated,
	}
}
