package ats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"hiresignal-engine/internal/domain"
	"hiresignal-engine/internal/web"
)

// SmartRecruiters publishes postings at
// api.smartrecruiters.com/v1/companies/<slug>/postings.
type smartRecruitersConnector struct{}

// Response schema (public API) is typically
// { "content": [...], "totalFound": N } but we parse only what we need.
type smartRecruitersResponse struct {
	Content []smartRecruitersPosting `json:"content"`
}

type smartRecruitersPosting struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ReleasedDate string `json:"releasedDate"`
	Ref          string `json:"ref"`
}

func (smartRecruitersConnector) Postings(ctx context.Context, client *web.Client, endpoint domain.CareersEndpoint) ([]domain.JobPosting, error) {
	slug := boardSlug(endpoint.URL)
	if slug == "" {
		return nil, errors.New("smartrecruiters: no company slug in url")
	}
	api := fmt.Sprintf("https://api.smartrecruiters.com/v1/companies/%s/postings", slug)

	res, err := client.Get(ctx, api)
	if err != nil {
		return nil, fmt.Errorf("smartrecruiters get: %w", err)
	}
	defer res.Body.Close()

	return parseSmartRecruiters(res.Body, slug)
}

func parseSmartRecruiters(r io.Reader, slug string) ([]domain.JobPosting, error) {
	var payload smartRecruitersResponse
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return nil, fmt.Errorf("smartrecruiters decode: %w", err)
	}

	out := make([]domain.JobPosting, 0, len(payload.Content))
	for _, p := range payload.Content {
		title := strings.TrimSpace(p.Name)
		if title == "" {
			continue
		}
		u := p.Ref
		if u == "" && p.ID != "" {
			u = fmt.Sprintf("https://jobs.smartrecruiters.com/%s/%s", slug, p.ID)
		}
		out = append(out, domain.JobPosting{
			Title:    title,
			URL:      u,
			PostedAt: parseReleasedDate(p.ReleasedDate),
		})
	}
	return out, nil
}

// releasedDate arrives either as RFC 3339 or as a bare "2006-01-02".
func parseReleasedDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if t := parseISO(s); t != nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t
	}
	return nil
}
