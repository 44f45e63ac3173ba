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

// Greenhouse exposes a public board API at
// boards-api.greenhouse.io/v1/boards/<slug>/jobs.
type greenhouseConnector struct{}

type greenhouseResponse struct {
	Jobs []greenhouseJob `json:"jobs"`
}

type greenhouseJob struct {
	Title       string `json:"title"`
	AbsoluteURL string `json:"absolute_url"`
	UpdatedAt   string `json:"updated_at"`
	CreatedAt   string `json:"created_at"`
}

func (greenhouseConnector) Postings(ctx context.Context, client *web.Client, endpoint domain.CareersEndpoint) ([]domain.JobPosting, error) {
	slug := boardSlug(endpoint.URL)
	if slug == "" {
		return nil, errors.New("greenhouse: no board slug in url")
	}
	api := fmt.Sprintf("https://boards-api.greenhouse.io/v1/boards/%s/jobs", slug)

	res, err := client.Get(ctx, api)
	if err != nil {
		return nil, fmt.Errorf("greenhouse get: %w", err)
	}
	defer res.Body.Close()

	return parseGreenhouse(res.Body)
}

func parseGreenhouse(r io.Reader) ([]domain.JobPosting, error) {
	var payload greenhouseResponse
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return nil, fmt.Errorf("greenhouse decode: %w", err)
	}

	out := make([]domain.JobPosting, 0, len(payload.Jobs))
	for _, j := range payload.Jobs {
		title := strings.TrimSpace(j.Title)
		if title == "" {
			continue
		}
		out = append(out, domain.JobPosting{
			Title:    title,
			URL:      j.AbsoluteURL,
			PostedAt: parseISO(j.UpdatedAt, j.CreatedAt),
		})
	}
	return out, nil
}

// parseISO returns the first candidate that parses as RFC 3339, or nil.
func parseISO(candidates ...string) *time.Time {
	for _, s := range candidates {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return &t
		}
	}
	return nil
}
