package resolve

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"hiresignal-engine/internal/domain"
)

const searchBaseURL = "https://duckduckgo.com/html/?q="

// fromSearch asks DuckDuckGo's HTML endpoint for the company's official site
// and takes the first organic result that isn't a low-signal host. The shared
// limiter throttles the search host, so back-to-back companies don't hammer it.
func (r *Resolver) fromSearch(ctx context.Context, rec domain.CompanyRecord) (string, bool) {
	query := fmt.Sprintf("%s official site", sanitizeForSearch(rec.Name))

	doc, err := r.client.Document(ctx, searchBaseURL+url.QueryEscape(query))
	if err != nil {
		log.Printf("[resolve] search company=%q err=%v", rec.Name, err)
		return "", false
	}

	var found string
	// DDG HTML results: <a class="result__a" href="...">
	doc.Find("a.result__a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, ok := a.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return true
		}

		host := NormalizeDomain(decodeRedirect(href))
		if host == "" || r.isLowSignal(host) {
			return true
		}

		found = host
		return false
	})

	return found, found != ""
}

// decodeRedirect unwraps DDG's /l/?uddg=<urlencoded> result links.
func decodeRedirect(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if uddg := u.Query().Get("uddg"); uddg != "" {
		if dec, err := url.QueryUnescape(uddg); err == nil && dec != "" {
			return dec
		}
	}
	return href
}

func sanitizeForSearch(s string) string {
	s = strings.TrimSpace(s)
	repls := []string{
		", Inc.", "", " Inc.", "", " Inc", "",
		", LLC", "", " LLC", "",
		", Ltd.", "", " Ltd.", "", " Ltd", "",
		" Corp.", "", " Corp", "",
		" GmbH", "",
	}
	s = strings.NewReplacer(repls...).Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
