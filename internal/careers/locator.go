package careers

import (
	"context"
	"log"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"hiresignal-engine/internal/domain"
	"hiresignal-engine/internal/web"
)

// ATSHostPatterns maps a hostname fragment to the provider hosting the board.
// Checked against anchor targets before any text heuristics run.
var ATSHostPatterns = map[string]domain.Provider{
	"boards.greenhouse.io":     domain.ProviderGreenhouse,
	"job-boards.greenhouse.io": domain.ProviderGreenhouse,
	"jobs.lever.co":            domain.ProviderLever,
	"jobs.smartrecruiters.com": domain.ProviderSmartRecruiters,
	"myworkdayjobs.com":        domain.ProviderWorkday,
	"ashbyhq.com":              domain.ProviderAshby,
	"apply.workable.com":       domain.ProviderWorkable,
	"bamboohr.com":             domain.ProviderBambooHR,
}

// Locator finds the most likely careers entry point on a company homepage.
type Locator struct {
	client *web.Client
	tokens []string // careers-indicating href/path tokens, from config
}

func New(client *web.Client, careersTokens []string) *Locator {
	return &Locator{client: client, tokens: careersTokens}
}

// exact anchor-text phrases accepted by the lowest tier
var careersPhrases = map[string]bool{
	"careers":      true,
	"career":       true,
	"jobs":         true,
	"join us":      true,
	"we're hiring": true,
	"team":         true,
}

// Locate fetches the homepage at base and scans its anchors in three strict
// priority tiers: a link onto a known ATS board wins over an internal careers
// href, which wins over a bare "Careers" text match. ok is false when the
// homepage is unreachable or nothing matches; neither is an error.
func (l *Locator) Locate(ctx context.Context, base string) (domain.CareersEndpoint, bool) {
	doc, err := l.client.Document(ctx, base)
	if err != nil {
		log.Printf("[careers] homepage fetch url=%q err=%v", base, err)
		return domain.CareersEndpoint{}, false
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return domain.CareersEndpoint{}, false
	}

	type anchor struct {
		abs  string
		href string
		text string
	}
	var anchors []anchor
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "javascript:") {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		anchors = append(anchors, anchor{
			abs:  baseURL.ResolveReference(ref).String(),
			href: strings.ToLower(href),
			text: strings.ToLower(web.CleanText(a.Text())),
		})
	})

	// Tier 1: direct link to a known ATS board.
	for _, a := range anchors {
		host := hostOf(a.abs)
		for pattern, provider := range ATSHostPatterns {
			if host == pattern || strings.HasSuffix(host, "."+pattern) || strings.Contains(host, pattern) {
				return domain.CareersEndpoint{URL: a.abs, Provider: provider}, true
			}
		}
	}

	// Tier 2: internal link whose href carries a careers token.
	for _, a := range anchors {
		for _, tok := range l.tokens {
			if strings.Contains(a.href, strings.ToLower(tok)) {
				return domain.CareersEndpoint{URL: a.abs, Provider: domain.ProviderInternal}, true
			}
		}
	}

	// Tier 3: anchor text alone looks like a careers link.
	for _, a := range anchors {
		if careersPhrases[a.text] {
			return domain.CareersEndpoint{URL: a.abs, Provider: domain.ProviderInternal}, true
		}
	}

	return domain.CareersEndpoint{}, false
}

// IdentifyProvider tags a careers URL with the ATS hosting it, or internal.
func IdentifyProvider(careersURL string) domain.Provider {
	host := hostOf(careersURL)
	for pattern, provider := range ATSHostPatterns {
		if host == pattern || strings.HasSuffix(host, "."+pattern) || strings.Contains(host, pattern) {
			return provider
		}
	}
	return domain.ProviderInternal
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Host)
}
