package jobs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexmalwine/portfolio-backend/models"
)

func TestNormalizeJobResults_DropsBlankCompanyOrTitle(t *testing.T) {
	raw := []models.RawJob{
		{Company: "", Title: "Engineer"},
		{Company: "Acme", Title: "   "},
		{Company: "Acme", Title: "Engineer"},
	}

	jobs := NormalizeJobResults(raw)

	require.Len(t, jobs, 1)
	assert.Equal(t, "Acme", jobs[0].Company)
}

func TestNormalizeJobResults_DefaultsAndEnums(t *testing.T) {
	raw := []models.RawJob{{
		Company:     "Acme",
		Title:       "Engineer",
		Source:      "found on LinkedIn careers page",
		CompanySize: "VC-backed seed stage",
	}}

	jobs := NormalizeJobResults(raw)

	require.Len(t, jobs, 1)
	assert.Equal(t, "Remote", jobs[0].Location)
	assert.Equal(t, models.SourceLinkedIn, jobs[0].Source)
	assert.Equal(t, models.SizeStartup, jobs[0].CompanySize)
}

func TestNormalizeJobResults_DedupFirstWins(t *testing.T) {
	raw := []models.RawJob{
		{Company: "Acme, Inc.", Title: "Engineer", Location: "Denver", Source: "LinkedIn"},
		{Company: "Acme LLC", Title: "engineer", Location: "denver", Source: "Indeed"},
		{Company: "Acme", Title: "Designer", Location: "Denver"},
	}

	jobs := NormalizeJobResults(raw)

	require.Len(t, jobs, 2)
	assert.Equal(t, models.SourceLinkedIn, jobs[0].Source, "first occurrence wins")
	assert.Equal(t, "Designer", jobs[1].Title)
}

func TestNormalizeJob_URLPriority(t *testing.T) {
	raw := []models.RawJob{{
		Company:    "Acme",
		Title:      "Engineer",
		CompanyURL: "https://careers.acme.com/jobs/123",
		SourceURL:  "https://www.linkedin.com/jobs/view/4012345678",
	}}

	jobs := NormalizeJobResults(raw)

	require.Len(t, jobs, 1)
	assert.Equal(t, "https://careers.acme.com/jobs/123", jobs[0].URL, "company URL takes priority")
	assert.Equal(t, "https://www.linkedin.com/jobs/view/4012345678", jobs[0].SourceURL)
}

func TestNormalizeJob_FallbackURL(t *testing.T) {
	raw := []models.RawJob{{Company: "Acme", Title: "Engineer", Location: "Denver"}}

	jobs := NormalizeJobResults(raw)

	require.Len(t, jobs, 1)
	assert.True(t, strings.HasPrefix(jobs[0].URL, "https://www.google.com/search?"),
		"fallback search URL expected, got %s", jobs[0].URL)
	assert.Contains(t, jobs[0].URL, "Acme")
}

func TestNormalizeJob_LegacyURLClassification(t *testing.T) {
	raw := []models.RawJob{
		{Company: "Acme", Title: "Engineer", URL: "https://www.linkedin.com/jobs/view/4012345678"},
		{Company: "Beta", Title: "Engineer", URL: "https://careers.beta.io/openings/42"},
	}

	jobs := NormalizeJobResults(raw)

	require.Len(t, jobs, 2)
	assert.Equal(t, "https://www.linkedin.com/jobs/view/4012345678", jobs[0].SourceURL)
	assert.Empty(t, jobs[0].CompanyURL)
	assert.Equal(t, "https://careers.beta.io/openings/42", jobs[1].CompanyURL)
	assert.Empty(t, jobs[1].SourceURL)
}

func TestNormalizeJob_ScoreHintScales(t *testing.T) {
	raw := []models.RawJob{
		{Company: "Acme", Title: "Engineer", MatchScore: 85},
		{Company: "Beta", Title: "Engineer", MatchScore: 0.6},
	}

	jobs := NormalizeJobResults(raw)

	require.Len(t, jobs, 2)
	assert.InDelta(t, 0.85, jobs[0].MatchScoreHint, 1e-9, "0-100 scale divided down")
	assert.InDelta(t, 0.6, jobs[1].MatchScoreHint, 1e-9)
}

func TestNormalizeJob_KeywordsDerivedFromTitle(t *testing.T) {
	raw := []models.RawJob{{Company: "Acme", Title: "Senior Python Engineer", Location: "Remote"}}

	jobs := NormalizeJobResults(raw)

	require.Len(t, jobs, 1)
	assert.Contains(t, jobs[0].Keywords, "python")
}

func TestNormalizeJob_IDStableAndURLSensitive(t *testing.T) {
	raw := []models.RawJob{{Company: "Acme", Title: "Engineer", Location: "Denver"}}

	a := NormalizeJobResults(raw)
	b := NormalizeJobResults(raw)
	require.Len(t, a, 1)
	assert.Equal(t, a[0].ID, b[0].ID, "id is content addressed")

	changed := a[0]
	changed.URL = "https://careers.acme.com/jobs/9"
	assert.NotEqual(t, a[0].ID, changed.ComputeID(), "id changes with the chosen URL")
}

func TestValidateCompanyURL(t *testing.T) {
	assert.Equal(t, "https://careers.acme.com/jobs/1", ValidateCompanyURL("https://careers.acme.com/jobs/1"))
	assert.Empty(t, ValidateCompanyURL("https://www.linkedin.com/company/acme"), "job-board host rejected")
	assert.Empty(t, ValidateCompanyURL("https://www.google.com/search?q=acme+jobs"), "search page rejected")
	assert.Empty(t, ValidateCompanyURL("not a url"))
	assert.Empty(t, ValidateCompanyURL("ftp://careers.acme.com/x"))
}

func TestValidateSourceURL(t *testing.T) {
	assert.NotEmpty(t, ValidateSourceURL("https://www.linkedin.com/jobs/view/4012345678"))
	assert.NotEmpty(t, ValidateSourceURL("https://www.indeed.com/viewjob?jk=abc123def"))
	assert.NotEmpty(t, ValidateSourceURL("https://www.glassdoor.com/job-listing/eng-acme?jl=1009384756"))

	assert.Empty(t, ValidateSourceURL("https://careers.acme.com/jobs/1"), "non-board host rejected")
	assert.Empty(t, ValidateSourceURL("https://www.linkedin.com/jobs/search?keywords=golang"), "search listing rejected")
	assert.Empty(t, ValidateSourceURL("https://www.linkedin.com/jobs/view/123"), "short id rejected")
	assert.Empty(t, ValidateSourceURL("https://www.indeed.com/viewjob?jk=ab"), "short jk rejected")
	assert.Empty(t, ValidateSourceURL("https://www.glassdoor.com/job-listing/eng-acme"), "missing listing id rejected")
}

func TestSanitizeHint(t *testing.T) {
	assert.Equal(t, "A growing fintech", SanitizeHint("A growing fintech", "Acme"))
	assert.Empty(t, SanitizeHint("Acme builds rockets", "Acme, Inc."), "name leak rejected")
	assert.Empty(t, SanitizeHint("ACME builds rockets", "Acme"), "case-insensitive leak rejected")
	assert.Empty(t, SanitizeHint("   ", "Acme"))

	long := strings.Repeat("fintech platform ", 20)
	sanitized := SanitizeHint(long, "Acme")
	assert.LessOrEqual(t, len(sanitized), 160)
	assert.True(t, strings.HasSuffix(sanitized, "..."))
}

func TestSynthesizeHint_NeverLeaksCompany(t *testing.T) {
	job := &models.JobOpening{
		Company:     "Stripe",
		Location:    "Denver, CO",
		CompanySize: models.SizeLarge,
		Keywords:    []string{"api", "payments", "golang"},
	}

	hint := SynthesizeHint(job, "Payments")

	assert.NotContains(t, strings.ToLower(hint), "stripe")
	assert.LessOrEqual(t, len(hint), 160)
	assert.Contains(t, hint, "large")
	assert.Contains(t, hint, "Denver")
}
