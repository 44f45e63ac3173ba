// Package ats turns a careers endpoint into a normalized list of job
// postings, preferring a provider's public JSON API over scraping and
// degrading to HTML heuristics when no API answers.
package ats

import (
	"context"
	"log"
	"net/url"
	"strings"

	"hiresignal-engine/internal/domain"
	"hiresignal-engine/internal/web"
)

// connector is one known provider's probing capability: build the public API
// URL for a board and parse that provider's payload shape. Adding a provider
// means adding a connector, not branching the probe.
type connector interface {
	Postings(ctx context.Context, client *web.Client, endpoint domain.CareersEndpoint) ([]domain.JobPosting, error)
}

var connectors = map[domain.Provider]connector{
	domain.ProviderGreenhouse:      greenhouseConnector{},
	domain.ProviderLever:           leverConnector{},
	domain.ProviderSmartRecruiters: smartRecruitersConnector{},
	domain.ProviderWorkday:         workdayConnector{},
}

type Probe struct {
	client *web.Client
}

func New(client *web.Client) *Probe {
	return &Probe{client: client}
}

// Probe fetches postings for endpoint. A structured API answer (even an empty
// board) is authoritative; an API failure or an unknown provider falls back
// to scraping the careers page itself. An empty slice is a normal result,
// never an error.
func (p *Probe) Probe(ctx context.Context, endpoint domain.CareersEndpoint) []domain.JobPosting {
	if conn, ok := connectors[endpoint.Provider]; ok {
		jobs, err := conn.Postings(ctx, p.client, endpoint)
		if err == nil {
			return jobs
		}
		log.Printf("[ats:%s] api probe failed url=%q err=%v; falling back to html",
			endpoint.Provider, endpoint.URL, err)
	}
	return p.scrapePage(ctx, endpoint.URL)
}

// boardSlug pulls the organization slug out of a hosted board URL: the first
// non-empty path segment (boards.greenhouse.io/<slug>, jobs.lever.co/<slug>,
// jobs.smartrecruiters.com/<slug>).
func boardSlug(boardURL string) string {
	u, err := url.Parse(boardURL)
	if err != nil {
		return ""
	}
	for _, seg := range strings.Split(strings.Trim(u.Path, "/"), "/") {
		if seg != "" {
			return seg
		}
	}
	return ""
}
