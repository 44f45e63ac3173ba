package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"hiresignal-engine/internal/domain"
	"hiresignal-engine/internal/events"
	"hiresignal-engine/internal/pipeline"
)

type SignalsHandler struct {
	Run     func(ctx context.Context, records []domain.CompanyRecord) []pipeline.Outcome
	Resolve func(ctx context.Context, rec domain.CompanyRecord) (domain.ResolvedDomain, bool)
	Hub     *events.Hub
}

type companyRequest struct {
	Name                string `json:"name"`
	SourceArticleURL    string `json:"source_article_url"`
	CandidateWebsiteURL string `json:"candidate_website_url,omitempty"`
}

func (c companyRequest) record() domain.CompanyRecord {
	return domain.CompanyRecord{
		Name:                strings.TrimSpace(c.Name),
		SourceArticleURL:    strings.TrimSpace(c.SourceArticleURL),
		CandidateWebsiteURL: strings.TrimSpace(c.CandidateWebsiteURL),
	}
}

// RunBatch processes a batch of companies and publishes an event for every
// qualifying signal.
func (h SignalsHandler) RunBatch(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Companies []companyRequest `json:"companies"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(body.Companies) == 0 {
		http.Error(w, "no companies", http.StatusBadRequest)
		return
	}

	records := make([]domain.CompanyRecord, 0, len(body.Companies))
	for _, c := range body.Companies {
		records = append(records, c.record())
	}

	outcomes := h.Run(r.Context(), records)

	if h.Hub != nil {
		for _, o := range outcomes {
			if o.Signal == nil || o.Domain == nil || !o.Signal.Tier.Qualifies() {
				continue
			}
			h.Hub.Publish(events.New("signal_found", events.SignalFound{
				Company: o.Company,
				Domain:  *o.Domain,
				Signal:  *o.Signal,
			}))
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"outcomes": outcomes})
}

// ResolveOne runs just the domain-resolution chain for a single company.
func (h SignalsHandler) ResolveOne(w http.ResponseWriter, r *http.Request) {
	var body companyRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
		return
	}
	rec := body.record()
	if rec.Name == "" {
		http.Error(w, "name required", http.StatusBadRequest)
		return
	}

	d, ok := h.Resolve(r.Context(), rec)
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"resolved": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"resolved": true, "domain": d})
}
