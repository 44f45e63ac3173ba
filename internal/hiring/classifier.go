// Package hiring classifies job postings and condenses them into a tiered
// hiring signal.
package hiring

import (
	"strings"

	"hiresignal-engine/internal/domain"
)

// Classifier keeps postings whose title mentions a technical-role keyword.
// Plain case-insensitive substring match: deterministic and explainable, no
// fuzzy scoring.
type Classifier struct {
	keywords []string
}

func NewClassifier(keywords []string) *Classifier {
	lowered := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			lowered = append(lowered, k)
		}
	}
	return &Classifier{keywords: lowered}
}

// Classify filters postings to technical roles. Postings without extractable
// title text are dropped.
func (c *Classifier) Classify(postings []domain.JobPosting) []domain.JobPosting {
	var out []domain.JobPosting
	for _, p := range postings {
		if c.IsTechTitle(p.Title) {
			out = append(out, p)
		}
	}
	return out
}

func (c *Classifier) IsTechTitle(title string) bool {
	t := strings.ToLower(strings.TrimSpace(title))
	if t == "" {
		return false
	}
	for _, kw := range c.keywords {
		if strings.Contains(t, kw) {
			return true
		}
	}
	return false
}
