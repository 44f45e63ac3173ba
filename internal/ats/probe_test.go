package ats

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hiresignal-engine/internal/domain"
	"hiresignal-engine/internal/web"
)

func testProbe(t *testing.T) *Probe {
	t.Helper()
	return New(web.NewClient(5*time.Second, web.NewHostLimiter(100, 100)))
}

func TestBoardSlug(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://boards.greenhouse.io/acme", "acme"},
		{"https://boards.greenhouse.io/acme/jobs/123", "acme"},
		{"https://jobs.lever.co/acme/", "acme"},
		{"https://jobs.smartrecruiters.com/AcmeCorp", "AcmeCorp"},
		{"https://boards.greenhouse.io/", ""},
		{"://bad", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, boardSlug(tt.url), "url %s", tt.url)
	}
}

func TestParseGreenhouse(t *testing.T) {
	payload := `{"jobs":[
		{"title":"Senior Backend Engineer","absolute_url":"https://boards.greenhouse.io/acme/jobs/1","updated_at":"2026-08-19T10:00:00Z"},
		{"title":"Office Manager","absolute_url":"https://boards.greenhouse.io/acme/jobs/2","updated_at":"2026-07-15T10:00:00Z"},
		{"title":"","absolute_url":"https://boards.greenhouse.io/acme/jobs/3"},
		{"title":"Data Scientist","absolute_url":"https://boards.greenhouse.io/acme/jobs/4","created_at":"2026-08-20T09:30:00Z"}
	]}`

	jobs, err := parseGreenhouse(strings.NewReader(payload))
	require.NoError(t, err)
	require.Len(t, jobs, 3) // titleless posting dropped

	assert.Equal(t, "Senior Backend Engineer", jobs[0].Title)
	require.NotNil(t, jobs[0].PostedAt)
	assert.Equal(t, 2026, jobs[0].PostedAt.Year())

	// created_at is the fallback when updated_at is missing
	require.NotNil(t, jobs[2].PostedAt)
	assert.Equal(t, time.August, jobs[2].PostedAt.Month())
}

func TestParseGreenhouseMalformed(t *testing.T) {
	_, err := parseGreenhouse(strings.NewReader(`{"jobs": "nope"`))
	assert.Error(t, err)
}

func TestParseLever(t *testing.T) {
	payload := `[
		{"id":"a","text":"Platform Engineer","hostedUrl":"https://jobs.lever.co/acme/a","createdAt":1767225600000},
		{"id":"b","text":"  ","hostedUrl":"https://jobs.lever.co/acme/b"},
		{"id":"c","text":"DevOps Engineer","applyUrl":"https://jobs.lever.co/acme/c/apply","listedAt":1767312000000}
	]`

	jobs, err := parseLever(strings.NewReader(payload))
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	assert.Equal(t, "Platform Engineer", jobs[0].Title)
	require.NotNil(t, jobs[0].PostedAt)
	assert.Equal(t, time.UnixMilli(1767225600000).UTC(), *jobs[0].PostedAt)

	// applyUrl and listedAt are fallbacks
	assert.Equal(t, "https://jobs.lever.co/acme/c/apply", jobs[1].URL)
	require.NotNil(t, jobs[1].PostedAt)
}

func TestParseSmartRecruiters(t *testing.T) {
	payload := `{"content":[
		{"id":"1","name":"ML Engineer","releasedDate":"2026-08-18T08:00:00Z","ref":"https://api.smartrecruiters.com/v1/companies/acme/postings/1"},
		{"id":"2","name":"Recruiter","releasedDate":"2026-08-01"}
	],"totalFound":2}`

	jobs, err := parseSmartRecruiters(strings.NewReader(payload), "acme")
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	assert.Equal(t, "ML Engineer", jobs[0].Title)
	require.NotNil(t, jobs[0].PostedAt)

	// bare-date form parses too; missing ref falls back to the hosted board
	require.NotNil(t, jobs[1].PostedAt)
	assert.Equal(t, "https://jobs.smartrecruiters.com/acme/2", jobs[1].URL)
}

func TestParseWorkday(t *testing.T) {
	payload := `{"total":2,"jobPostings":[
		{"title":"Software Engineer II","externalPath":"/job/NYC/software-engineer-ii_R123","postedOnDate":"2026-08-20"},
		{"title":"Staff Accountant","externalPath":"/job/NYC/staff-accountant_R124"}
	]}`

	jobs, err := parseWorkday(strings.NewReader(payload), "https://acme.wd5.myworkdayjobs.com", "External")
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	assert.Equal(t, "Software Engineer II", jobs[0].Title)
	assert.Equal(t, "https://acme.wd5.myworkdayjobs.com/External/job/NYC/software-engineer-ii_R123", jobs[0].URL)
	require.NotNil(t, jobs[0].PostedAt)
	assert.Nil(t, jobs[1].PostedAt)
}

func TestParseWorkdayBoardURL(t *testing.T) {
	tenant, site, base, err := parseBoard("https://acme.wd5.myworkdayjobs.com/en-US/External")
	require.NoError(t, err)
	assert.Equal(t, "acme", tenant)
	assert.Equal(t, "External", site)
	assert.Equal(t, "https://acme.wd5.myworkdayjobs.com", base)

	_, _, _, err = parseBoard("https://acme.com/careers")
	assert.Error(t, err)
}

func TestProbeFallsBackToJSONLD(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`<html><head>
			<script type="application/ld+json">
			{"@type":"JobPosting","title":"Backend Engineer","datePosted":"2026-08-19T00:00:00Z","url":"https://acme.com/jobs/1"}
			</script>
		</head><body></body></html>`))
	}))
	defer srv.Close()

	jobs := testProbe(t).Probe(context.Background(), domain.CareersEndpoint{
		URL:      srv.URL,
		Provider: domain.ProviderInternal,
	})

	require.Len(t, jobs, 1)
	assert.Equal(t, "Backend Engineer", jobs[0].Title)
	assert.Equal(t, "https://acme.com/jobs/1", jobs[0].URL)
	require.NotNil(t, jobs[0].PostedAt)
}

func TestProbeJSONLDList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`<html><head>
			<script type="application/ld+json">
			[{"@type":"JobPosting","title":"SRE"},{"@type":"Organization","name":"Acme"}]
			</script>
		</head><body></body></html>`))
	}))
	defer srv.Close()

	jobs := testProbe(t).Probe(context.Background(), domain.CareersEndpoint{
		URL:      srv.URL,
		Provider: domain.ProviderInternal,
	})

	require.Len(t, jobs, 1)
	assert.Equal(t, "SRE", jobs[0].Title)
	assert.Nil(t, jobs[0].PostedAt)
}

func TestProbeAnchorHeuristics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`<html><body>
			<a href="/about">About us</a>
			<a href="/jobs/1">Senior Frontend Developer</a>
			<a href="/jobs/2">Data Engineer</a>
			<a href="/jobs/2">Data Engineer</a>
			<a href="/contact">Contact</a>
		</body></html>`))
	}))
	defer srv.Close()

	jobs := testProbe(t).Probe(context.Background(), domain.CareersEndpoint{
		URL:      srv.URL,
		Provider: domain.ProviderInternal,
	})

	require.Len(t, jobs, 2) // duplicate anchor collapsed
	assert.Equal(t, "Senior Frontend Developer", jobs[0].Title)
	assert.Equal(t, srv.URL+"/jobs/1", jobs[0].URL)
	assert.Nil(t, jobs[0].PostedAt)
}

func TestProbeUnreachablePageIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	jobs := testProbe(t).Probe(context.Background(), domain.CareersEndpoint{
		URL:      srv.URL,
		Provider: domain.ProviderInternal,
	})
	assert.Empty(t, jobs)
}
