package ats

import (
	"context"
	"encoding/json"
	"log"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"hiresignal-engine/internal/domain"
	"hiresignal-engine/internal/web"
)

// jsonLDPosting is the subset of a schema.org JobPosting block we care about.
type jsonLDPosting struct {
	Type       string `json:"@type"`
	Title      string `json:"title"`
	DatePosted string `json:"datePosted"`
	URL        string `json:"url"`
}

// scrapePage extracts postings from an arbitrary careers page. Structured
// JobPosting JSON-LD wins when present; otherwise any anchor whose text reads
// like a job title is taken. Unknown recency stays nil.
func (p *Probe) scrapePage(ctx context.Context, pageURL string) []domain.JobPosting {
	doc, err := p.client.Document(ctx, pageURL)
	if err != nil {
		log.Printf("[ats:internal] page fetch url=%q err=%v", pageURL, err)
		return nil
	}

	if jobs := postingsFromJSONLD(doc, pageURL); len(jobs) > 0 {
		return jobs
	}
	return postingsFromAnchors(doc, pageURL)
}

func postingsFromJSONLD(doc *goquery.Document, pageURL string) []domain.JobPosting {
	var out []domain.JobPosting
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		raw := strings.TrimSpace(s.Text())
		if raw == "" {
			return
		}

		// payload may be a single JobPosting or a list of blocks
		var blocks []jsonLDPosting
		var one jsonLDPosting
		if err := json.Unmarshal([]byte(raw), &one); err == nil {
			blocks = []jsonLDPosting{one}
		} else if err := json.Unmarshal([]byte(raw), &blocks); err != nil {
			return
		}

		for _, b := range blocks {
			if b.Type != "JobPosting" {
				continue
			}
			title := web.CleanText(b.Title)
			if title == "" {
				continue
			}
			u := b.URL
			if u == "" {
				u = pageURL
			}
			out = append(out, domain.JobPosting{
				Title:    title,
				URL:      u,
				PostedAt: parseISO(b.DatePosted),
			})
		}
	})
	return out
}

// words that make an anchor's text read like a job title
var titleHints = []string{"engineer", "developer", "scientist", "software", "data", "designer", "manager", "analyst"}

func postingsFromAnchors(doc *goquery.Document, pageURL string) []domain.JobPosting {
	base, _ := url.Parse(pageURL)

	var out []domain.JobPosting
	seen := map[string]bool{}
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		title := web.CleanText(a.Text())
		if title == "" || len(title) > 120 {
			return
		}
		low := strings.ToLower(title)
		hinted := false
		for _, h := range titleHints {
			if strings.Contains(low, h) {
				hinted = true
				break
			}
		}
		if !hinted || seen[low] {
			return
		}
		seen[low] = true

		href, _ := a.Attr("href")
		abs := href
		if base != nil {
			if ref, err := url.Parse(href); err == nil {
				abs = base.ResolveReference(ref).String()
			}
		}
		out = append(out, domain.JobPosting{Title: title, URL: abs})
	})
	return out
}
