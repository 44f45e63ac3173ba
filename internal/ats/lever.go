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

// Lever's public postings API lives at api.lever.co/v0/postings/<slug>.
type leverConnector struct{}

type leverPosting struct {
	ID        string `json:"id"`
	Text      string `json:"text"` // title
	HostedURL string `json:"hostedUrl"`
	ApplyURL  string `json:"applyUrl"`
	CreatedAt int64  `json:"createdAt"` // ms epoch
	ListedAt  int64  `json:"listedAt"`  // ms epoch
}

func (leverConnector) Postings(ctx context.Context, client *web.Client, endpoint domain.CareersEndpoint) ([]domain.JobPosting, error) {
	slug := boardSlug(endpoint.URL)
	if slug == "" {
		return nil, errors.New("lever: no board slug in url")
	}
	api := fmt.Sprintf("https://api.lever.co/v0/postings/%s?mode=json", slug)

	res, err := client.Get(ctx, api)
	if err != nil {
		return nil, fmt.Errorf("lever get: %w", err)
	}
	defer res.Body.Close()

	return parseLever(res.Body)
}

func parseLever(r io.Reader) ([]domain.JobPosting, error) {
	var postings []leverPosting
	if err := json.NewDecoder(r).Decode(&postings); err != nil {
		return nil, fmt.Errorf("lever decode: %w", err)
	}

	out := make([]domain.JobPosting, 0, len(postings))
	for _, p := range postings {
		title := strings.TrimSpace(p.Text)
		if title == "" {
			continue
		}
		u := p.HostedURL
		if u == "" {
			u = p.ApplyURL
		}
		out = append(out, domain.JobPosting{
			Title:    title,
			URL:      u,
			PostedAt: fromEpochMS(p.CreatedAt, p.ListedAt),
		})
	}
	return out, nil
}

// fromEpochMS returns the first positive millisecond epoch as UTC time, or nil.
func fromEpochMS(candidates ...int64) *time.Time {
	for _, ms := range candidates {
		if ms > 0 {
			t := time.UnixMilli(ms).UTC()
			return &t
		}
	}
	return nil
}
