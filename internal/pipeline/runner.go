// Package pipeline fans a batch of companies out over a bounded worker pool.
// Each company's chain (resolve → locate → probe → classify → tier) runs
// strictly sequentially; companies are independent and run concurrently.
package pipeline

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"hiresignal-engine/internal/domain"
)

// Resolver is satisfied by resolve.Resolver.
type Resolver interface {
	Resolve(ctx context.Context, rec domain.CompanyRecord) (domain.ResolvedDomain, bool)
}

// Detector is satisfied by hiring.Detector.
type Detector interface {
	Detect(ctx context.Context, host string) domain.HiringSignal
}

// Outcome is the per-company result of one run. Inconclusive marks chains
// abandoned because the run deadline hit; they are reported, never dropped.
type Outcome struct {
	Company      string                 `json:"company"`
	Domain       *domain.ResolvedDomain `json:"domain,omitempty"`
	Signal       *domain.HiringSignal   `json:"signal,omitempty"`
	Inconclusive bool                   `json:"inconclusive,omitempty"`
	Error        string                 `json:"error,omitempty"`
}

type Runner struct {
	resolver Resolver
	detector Detector

	maxCompanies int
	workers      int
	runTimeout   time.Duration
}

func NewRunner(resolver Resolver, detector Detector, maxCompanies, workers int, runTimeout time.Duration) *Runner {
	return &Runner{
		resolver:     resolver,
		detector:     detector,
		maxCompanies: maxCompanies,
		workers:      workers,
		runTimeout:   runTimeout,
	}
}

// Run processes at most maxCompanies records and returns one outcome per
// processed record, in input order. A record with an empty name fails alone;
// the batch always completes.
func (r *Runner) Run(ctx context.Context, records []domain.CompanyRecord) []Outcome {
	if len(records) > r.maxCompanies {
		log.Printf("[pipeline] truncating batch %d -> %d", len(records), r.maxCompanies)
		records = records[:r.maxCompanies]
	}

	ctx, cancel := context.WithTimeout(ctx, r.runTimeout)
	defer cancel()

	outcomes := make([]Outcome, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, rec := range records {
		g.Go(func() error {
			outcomes[i] = r.processOne(gctx, rec)
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

func (r *Runner) processOne(ctx context.Context, rec domain.CompanyRecord) Outcome {
	out := Outcome{Company: rec.Name}

	if strings.TrimSpace(rec.Name) == "" {
		out.Error = "company record has no name"
		return out
	}
	if err := ctx.Err(); err != nil {
		out.Inconclusive = true
		return out
	}

	resolved, ok := r.resolver.Resolve(ctx, rec)
	if deadlineHit(ctx) {
		out.Inconclusive = true
		return out
	}
	if !ok {
		// fallbacks exhausted: absence of signal, not an error
		sig := domain.HiringSignal{Tier: domain.TierNone}
		out.Signal = &sig
		return out
	}
	out.Domain = &resolved

	sig := r.detector.Detect(ctx, resolved.Domain)
	if deadlineHit(ctx) {
		out.Inconclusive = true
		return out
	}
	out.Signal = &sig
	return out
}

func deadlineHit(ctx context.Context) bool {
	return errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(ctx.Err(), context.Canceled)
}
