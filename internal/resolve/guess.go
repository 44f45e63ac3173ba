package resolve

import (
	"context"
	"regexp"
	"strings"

	"hiresignal-engine/internal/domain"
)

var (
	legalSuffixRe = regexp.MustCompile(`(?i)\b(inc|corp|co|llc|ltd|gmbh|ag|sas|bv)\b\.?$`)
	// names that already embed a TLD, e.g. "IndustrialMind.ai"
	embeddedTLDRe = regexp.MustCompile(`(?i)([a-z0-9\-]+)\.([a-z]{2,})$`)
)

// fromGuess is the last resort: squash the company name into a host slug and
// probe a short list of likely TLDs for anything reachable.
func (r *Resolver) fromGuess(ctx context.Context, rec domain.CompanyRecord) (string, bool) {
	slug, embedded := slugAndTLD(rec.Name)
	if slug == "" {
		return "", false
	}

	tlds := r.guessTLDs
	if embedded != "" {
		tlds = []string{embedded}
	}

	for _, tld := range tlds {
		host := slug + tld
		if r.isLowSignal(host) {
			continue
		}
		if err := r.client.Head(ctx, "https://"+host); err != nil {
			continue
		}
		return host, true
	}
	return "", false
}

// slugAndTLD strips legal suffixes and whitespace from a company name. When
// the name already carries a TLD ("Acme.io") that TLD is returned and tried
// exclusively.
func slugAndTLD(name string) (slug, tld string) {
	name = strings.TrimSpace(name)
	name = strings.TrimSpace(legalSuffixRe.ReplaceAllString(name, ""))
	name = strings.TrimRight(name, ".,")

	if m := embeddedTLDRe.FindStringSubmatch(name); m != nil {
		return strings.ToLower(m[1]), "." + strings.ToLower(m[2])
	}

	name = strings.ToLower(name)
	name = strings.NewReplacer(" ", "", ".", "", ",", "").Replace(name)
	return name, ""
}
