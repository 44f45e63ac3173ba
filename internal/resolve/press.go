package resolve

import (
	"context"
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"hiresignal-engine/internal/domain"
)

// fromPressRelease crawls the announcement article for an outbound link to the
// company's own site. Funding press releases almost always link the company
// homepage before anything else that isn't social or a wire service.
func (r *Resolver) fromPressRelease(ctx context.Context, rec domain.CompanyRecord) (string, bool) {
	articleURL := strings.TrimSpace(rec.SourceArticleURL)
	if articleURL == "" {
		return "", false
	}

	doc, err := r.client.Document(ctx, articleURL)
	if err != nil {
		log.Printf("[resolve] press release fetch company=%q err=%v", rec.Name, err)
		return "", false
	}

	articleHost := hostOf(articleURL)

	var found string
	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		href = strings.TrimSpace(href)
		if !strings.HasPrefix(href, "http") {
			return true
		}

		host := NormalizeDomain(href)
		if host == "" || host == articleHost || r.isLowSignal(host) {
			return true
		}

		found = host
		return false
	})

	return found, found != ""
}
