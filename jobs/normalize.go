// Package jobs turns loosely-typed LLM job records into canonical JobOpening
// values. All shape-guessing stays behind this boundary; nothing downstream
// ever sees a raw record.
package jobs

import (
	"log"
	"strings"

	"github.com/alexmalwine/portfolio-backend/models"
	"github.com/alexmalwine/portfolio-backend/resume"
)

// NormalizeJobResults canonicalizes a batch of raw LLM job records. Records
// missing a company or title are dropped, URLs are validated and resolved,
// and duplicates by (normalized company, title, location) are removed with
// the first occurrence winning. Output order follows input order.
func NormalizeJobResults(rawJobs []models.RawJob) []models.JobOpening {
	out := make([]models.JobOpening, 0, len(rawJobs))
	seen := make(map[string]bool)

	for _, raw := range rawJobs {
		job, ok := normalizeJob(raw)
		if !ok {
			continue
		}
		key := job.DedupKey()
		if seen[key] {
			log.Printf("[Normalize] Dropping duplicate: %s / %s", job.Company, job.Title)
			continue
		}
		seen[key] = true
		out = append(out, job)
	}
	return out
}

func normalizeJob(raw models.RawJob) (models.JobOpening, bool) {
	company := strings.TrimSpace(raw.Company)
	title := strings.TrimSpace(raw.Title)
	if company == "" || title == "" {
		return models.JobOpening{}, false
	}

	location := strings.TrimSpace(raw.Location)
	if location == "" {
		location = "Remote"
	}

	job := models.JobOpening{
		Company:     company,
		Title:       title,
		Location:    location,
		Source:      models.NormalizeSource(raw.Source),
		CompanySize: models.NormalizeCompanySize(raw.CompanySize),
		CompanyURL:  ValidateCompanyURL(raw.CompanyURL),
		SourceURL:   ValidateSourceURL(raw.SourceURL),
	}

	// A legacy bare `url` field backfills whichever slot its host belongs to
	if raw.URL != "" {
		companyURL, sourceURL := classifyLegacyURL(raw.URL)
		if job.CompanyURL == "" {
			job.CompanyURL = companyURL
		}
		if job.SourceURL == "" {
			job.SourceURL = sourceURL
		}
	}

	switch {
	case job.CompanyURL != "":
		job.URL = job.CompanyURL
	case job.SourceURL != "":
		job.URL = job.SourceURL
	default:
		job.URL = FallbackSearchURL(job.Source, company, title, location)
	}

	job.Keywords = normalizeKeywords(raw.Keywords, title, company, location)
	job.MatchScoreHint = normalizeScoreHint(float64(raw.MatchScore))

	job.CompanyHint = SanitizeHint(raw.CompanyHint, company)
	if job.CompanyHint == "" {
		job.CompanyHint = SynthesizeHint(&job, raw.Industry)
	}

	job.ID = job.ComputeID()
	return job, true
}

// normalizeKeywords lowercases and dedups LLM-provided keywords; when none
// were provided it derives them from the job's own text using the same
// vocabulary as résumé profiling.
func normalizeKeywords(provided []string, title, company, location string) []string {
	out := make([]string, 0, len(provided))
	seen := make(map[string]bool)
	for _, kw := range provided {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		out = append(out, kw)
	}
	if len(out) > 0 {
		return out
	}
	return resume.DetectKeywords(title + " " + company + " " + location)
}

// normalizeScoreHint clamps an external score into [0,1]; values above 1 are
// assumed to be on a 0-100 scale.
func normalizeScoreHint(score float64) float64 {
	if score > 1 {
		score = score / 100
	}
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
