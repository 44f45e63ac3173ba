package hiring

import (
	"context"
	"log"
	"time"

	"hiresignal-engine/internal/careers"
	"hiresignal-engine/internal/domain"
)

// Prober is satisfied by ats.Probe.
type Prober interface {
	Probe(ctx context.Context, endpoint domain.CareersEndpoint) []domain.JobPosting
}

// Locator is satisfied by careers.Locator.
type Locator interface {
	Locate(ctx context.Context, base string) (domain.CareersEndpoint, bool)
}

// Detector runs the hiring half of the chain for one resolved domain:
// locate careers page, probe postings, classify, tier.
type Detector struct {
	locator    Locator
	probe      Prober
	classifier *Classifier
	policy     TierPolicy
	now        func() time.Time
}

func NewDetector(locator Locator, probe Prober, classifier *Classifier, policy TierPolicy) *Detector {
	return &Detector{
		locator:    locator,
		probe:      probe,
		classifier: classifier,
		policy:     policy,
		now:        time.Now,
	}
}

// Detect never errors: a company with no careers page, no reachable board or
// no technical postings comes back as tier None with zero roles.
func (d *Detector) Detect(ctx context.Context, host string) domain.HiringSignal {
	endpoint, ok := d.locator.Locate(ctx, "https://"+host)
	if !ok {
		return domain.HiringSignal{Tier: domain.TierNone}
	}

	// locator tags the provider for anchors straight onto an ATS board; a
	// tier-2/3 internal link can still point at a hosted board
	if endpoint.Provider == domain.ProviderInternal {
		endpoint.Provider = careers.IdentifyProvider(endpoint.URL)
	}

	postings := d.probe.Probe(ctx, endpoint)
	tech := d.classifier.Classify(postings)

	signal := d.policy.Tier(tech, d.now().UTC())
	signal.CareersURL = endpoint.URL
	signal.ATSProvider = endpoint.Provider

	log.Printf("[hiring] host=%q provider=%s postings=%d tech_recent=%d tier=%s",
		host, endpoint.Provider, len(postings), signal.TechRoleCount, signal.Tier)
	return signal
}
