package ats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"hiresignal-engine/internal/domain"
	"hiresignal-engine/internal/web"
)

// Workday boards render client-side, but the backing CXS endpoint answers a
// plain JSON POST: <host>/wday/cxs/<tenant>/<site>/jobs.
type workdayConnector struct{}

type workdayRequest struct {
	AppliedFacets map[string]any `json:"appliedFacets"`
	Limit         int            `json:"limit"`
	Offset        int            `json:"offset"`
	SearchText    string         `json:"searchText"`
}

type workdayResponse struct {
	Total       int              `json:"total"`
	JobPostings []workdayPosting `json:"jobPostings"`
}

type workdayPosting struct {
	Title        string `json:"title"`
	ExternalPath string `json:"externalPath"`
	PostedOnDate string `json:"postedOnDate"`
}

func (workdayConnector) Postings(ctx context.Context, client *web.Client, endpoint domain.CareersEndpoint) ([]domain.JobPosting, error) {
	tenant, site, base, err := parseBoard(endpoint.URL)
	if err != nil {
		return nil, err
	}
	api := fmt.Sprintf("%s/wday/cxs/%s/%s/jobs", base, tenant, site)

	res, err := client.PostJSON(ctx, api, workdayRequest{
		AppliedFacets: map[string]any{},
		Limit:         50,
		SearchText:    "",
	})
	if err != nil {
		return nil, fmt.Errorf("workday post: %w", err)
	}
	defer res.Body.Close()

	return parseWorkday(res.Body, base, site)
}

func parseWorkday(r io.Reader, base, site string) ([]domain.JobPosting, error) {
	var payload workdayResponse
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return nil, fmt.Errorf("workday decode: %w", err)
	}

	out := make([]domain.JobPosting, 0, len(payload.JobPostings))
	for _, p := range payload.JobPostings {
		title := strings.TrimSpace(p.Title)
		if title == "" {
			continue
		}
		jobURL := ""
		if p.ExternalPath != "" {
			jobURL = base + "/" + site + p.ExternalPath
		}
		out = append(out, domain.JobPosting{
			Title:    title,
			URL:      jobURL,
			PostedAt: parseReleasedDate(p.PostedOnDate),
		})
	}
	return out, nil
}

// parseBoard splits a board URL like
// https://acme.wd5.myworkdayjobs.com/External into tenant ("acme"), site
// ("External") and the scheme://host base.
func parseBoard(boardURL string) (tenant, site, base string, err error) {
	u, err := url.Parse(boardURL)
	if err != nil {
		return "", "", "", err
	}
	host := strings.ToLower(u.Host)
	if !strings.HasSuffix(host, "myworkdayjobs.com") {
		return "", "", "", errors.New("workday: not a myworkdayjobs host")
	}
	tenant = strings.SplitN(host, ".", 2)[0]

	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	for _, seg := range segs {
		// locale prefixes like en-US sit before the site name
		if seg == "" || isLocaleSegment(seg) {
			continue
		}
		site = seg
		break
	}
	if tenant == "" || site == "" {
		return "", "", "", errors.New("workday: cannot derive tenant/site from url")
	}
	return tenant, site, u.Scheme + "://" + u.Host, nil
}

func isLocaleSegment(seg string) bool {
	return len(seg) == 5 && seg[2] == '-'
}
