package resolve

import (
	"context"
	"log"
	"strings"

	"hiresignal-engine/internal/domain"
	"hiresignal-engine/internal/web"
)

// Confidence per provenance. The ordering is part of the contract:
// given >= press_release > search > guess.
const (
	confGiven        = 1.0
	confPressRelease = 0.92
	confSearch       = 0.6
	confGuess        = 0.3
)

// Cache lets the resolver skip the network for companies it has already
// resolved. Implemented by the sqlite store; nil disables caching.
type Cache interface {
	Get(ctx context.Context, company string) (domain.ResolvedDomain, bool, error)
	Put(ctx context.Context, company string, d domain.ResolvedDomain) error
}

type Resolver struct {
	client    *web.Client
	cache     Cache
	lowSignal []string
	guessTLDs []string
}

func New(client *web.Client, cache Cache, lowSignalHosts, guessTLDs []string) *Resolver {
	return &Resolver{
		client:    client,
		cache:     cache,
		lowSignal: lowSignalHosts,
		guessTLDs: guessTLDs,
	}
}

type strategy struct {
	source  domain.Source
	attempt func(ctx context.Context, rec domain.CompanyRecord) (string, bool)
}

// Resolve walks the fallback chain in confidence order and returns the first
// domain any strategy produces. Transport and parse errors inside a strategy
// are soft: the chain just moves on. ok is false only when every strategy
// came up empty.
func (r *Resolver) Resolve(ctx context.Context, rec domain.CompanyRecord) (domain.ResolvedDomain, bool) {
	if r.cache != nil {
		if d, ok, err := r.cache.Get(ctx, rec.Name); err != nil {
			log.Printf("[resolve] cache get company=%q err=%v", rec.Name, err)
		} else if ok {
			return d, true
		}
	}

	chain := []strategy{
		{domain.SourceGiven, r.fromGiven},
		{domain.SourcePressRelease, r.fromPressRelease},
		{domain.SourceSearch, r.fromSearch},
		{domain.SourceGuess, r.fromGuess},
	}

	for _, s := range chain {
		host, ok := s.attempt(ctx, rec)
		if !ok {
			continue
		}
		d := domain.ResolvedDomain{
			Domain:     host,
			Confidence: confidenceFor(s.source),
			Source:     s.source,
		}
		if r.cache != nil {
			if err := r.cache.Put(ctx, rec.Name, d); err != nil {
				log.Printf("[resolve] cache put company=%q err=%v", rec.Name, err)
			}
		}
		return d, true
	}
	return domain.ResolvedDomain{}, false
}

func confidenceFor(s domain.Source) float64 {
	switch s {
	case domain.SourceGiven:
		return confGiven
	case domain.SourcePressRelease:
		return confPressRelease
	case domain.SourceSearch:
		return confSearch
	default:
		return confGuess
	}
}

// fromGiven trusts a well-formed upstream-extracted URL without touching the
// network.
func (r *Resolver) fromGiven(_ context.Context, rec domain.CompanyRecord) (string, bool) {
	raw := strings.TrimSpace(rec.CandidateWebsiteURL)
	if raw == "" {
		return "", false
	}
	host := NormalizeDomain(raw)
	if host == "" || r.isLowSignal(host) {
		return "", false
	}
	return host, true
}

func (r *Resolver) isLowSignal(host string) bool {
	for _, b := range r.lowSignal {
		if host == b || strings.HasSuffix(host, "."+b) {
			return true
		}
	}
	return false
}
