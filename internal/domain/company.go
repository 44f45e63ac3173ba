package domain

// CompanyRecord is the immutable input to the resolution chain, produced
// upstream from an enriched news item.
type CompanyRecord struct {
	Name                string
	SourceArticleURL    string
	CandidateWebsiteURL string // optional, usually extracted upstream
}

// Source tags where a resolved domain came from. Confidence ordering:
// given >= press_release > search > guess.
type Source string

const (
	SourceGiven        Source = "given"
	SourcePressRelease Source = "press_release"
	SourceSearch       Source = "search"
	SourceGuess        Source = "guess"
)

// ResolvedDomain is a best-effort canonical web domain for a company.
// Domain is a bare host: lowercase, no scheme, no path, no leading www.
type ResolvedDomain struct {
	Domain     string  `json:"domain"`
	Confidence float64 `json:"confidence"`
	Source     Source  `json:"source"`
}
