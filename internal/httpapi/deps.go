package httpapi

import (
	"context"

	"hiresignal-engine/internal/domain"
	"hiresignal-engine/internal/events"
	"hiresignal-engine/internal/pipeline"
)

type Deps struct {
	Hub *events.Hub

	// Batch entrypoint
	Run func(ctx context.Context, records []domain.CompanyRecord) []pipeline.Outcome

	// Single-company resolution
	Resolve func(ctx context.Context, rec domain.CompanyRecord) (domain.ResolvedDomain, bool)
}
