package domain

import "time"

// Provider identifies a known applicant-tracking system.
type Provider string

const (
	ProviderGreenhouse      Provider = "greenhouse"
	ProviderLever           Provider = "lever"
	ProviderSmartRecruiters Provider = "smartrecruiters"
	ProviderWorkday         Provider = "workday"
	ProviderAshby           Provider = "ashby"
	ProviderWorkable        Provider = "workable"
	ProviderBambooHR        Provider = "bamboohr"
	ProviderInternal        Provider = "internal"
	ProviderUnknown         Provider = "unknown"
)

// CareersEndpoint is the most likely careers/jobs entry point on a domain.
type CareersEndpoint struct {
	URL      string   `json:"url"`
	Provider Provider `json:"provider"`
}

// JobPosting is one normalized posting from an ATS API or a careers page.
// A nil PostedAt means the posting date is unknown.
type JobPosting struct {
	Title    string     `json:"title"`
	URL      string     `json:"url,omitempty"`
	PostedAt *time.Time `json:"posted_at,omitempty"`
}

// Tier is the discrete hiring-signal strength. A > B > None.
type Tier string

const (
	TierA    Tier = "A"
	TierB    Tier = "B"
	TierNone Tier = "None"
)

// Qualifies reports whether the tier is strong enough for downstream alerting.
func (t Tier) Qualifies() bool { return t == TierA || t == TierB }

// HiringSignal is the per-company output of the hiring detector.
// TechRoleCount always equals len(Details); Details holds the postings that
// passed both the keyword filter and the recency cutoff. Undated holds
// technical postings whose date could not be determined: they never count
// toward the tier but stay visible.
type HiringSignal struct {
	Tier          Tier         `json:"tier"`
	CareersURL    string       `json:"careers_url,omitempty"`
	ATSProvider   Provider     `json:"ats_provider,omitempty"`
	TechRoleCount int          `json:"tech_role_count"`
	Details       []JobPosting `json:"details,omitempty"`
	Undated       []JobPosting `json:"undated,omitempty"`
}
