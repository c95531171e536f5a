// Package verify confirms that candidate job URLs are live, specific
// postings. It is a best-effort heuristic classifier: false negatives are an
// accepted cost, false positives are not — a dead link in the product is
// worse than a slightly smaller result set.
package verify

import (
	"context"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/alexmalwine/portfolio-backend/config"
	"github.com/alexmalwine/portfolio-backend/models"
	"github.com/alexmalwine/portfolio-backend/utils"
)

// Status is the outcome of checking one URL
type Status string

const (
	StatusValid   Status = "valid"
	StatusInvalid Status = "invalid"
)

const (
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	maxBodyBytes     = 2 * 1024 * 1024
)

// deadPostingPatterns mark pages that resolve but no longer show the job
var deadPostingPatterns = []string{
	"no longer accepting applications",
	"this job is no longer available",
	"job not found",
	"position has been filled",
	"this position is no longer open",
	"this job has expired",
	"posting has closed",
	"page not found",
	"page you requested doesn't exist",
	"job you requested is no longer active",
}

// jobPageIndicators are generic phrases a real posting page tends to carry
var jobPageIndicators = []string{
	"responsibilities",
	"qualifications",
	"apply now",
	"apply for this job",
	"what you'll do",
	"about the role",
	"requirements",
}

// atsHosts are applicant-tracking-system domains whose presence is a trust
// signal on its own
var atsHosts = []string{
	"greenhouse.io", "lever.co", "myworkdayjobs.com", "ashbyhq.com",
	"smartrecruiters.com", "jobvite.com", "icims.com", "workable.com",
	"bamboohr.com",
}

// Verifier checks candidate job URLs over live HTTP
type Verifier struct {
	client      *http.Client
	timeout     time.Duration
	concurrency int
}

// NewVerifier creates a verifier with the configured per-request timeout and
// fan-out limit
func NewVerifier(cfg *config.Config) *Verifier {
	return &Verifier{
		client:      utils.NewHTTPClient(cfg.VerifyTimeout),
		timeout:     cfg.VerifyTimeout,
		concurrency: cfg.VerifyConcurrency,
	}
}

// ResolveVerified filters a batch down to jobs whose URL confirmed as a live,
// specific posting. URLs are checked concurrently, one request in flight per
// candidate; a slow host never blocks the others. Kept jobs have their URL
// replaced by the verified one and their id recomputed. Input order is
// preserved.
func (v *Verifier) ResolveVerified(ctx context.Context, jobsIn []models.JobOpening) []models.JobOpening {
	verified := make([]*models.JobOpening, len(jobsIn))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(v.concurrency)
	for i := range jobsIn {
		i := i // pre-Go 1.22 loop semantics: pin the iteration variable
		g.Go(func() error {
			verified[i] = v.resolveJob(gctx, jobsIn[i])
			return nil
		})
	}
	_ = g.Wait() // workers only report via the slice

	out := make([]models.JobOpening, 0, len(jobsIn))
	for _, job := range verified {
		if job != nil {
			out = append(out, *job)
		}
	}
	log.Printf("[Verify] %d of %d candidate jobs confirmed live", len(out), len(jobsIn))
	return out
}

// resolveJob tries the company URL first, then the board URL. The first that
// validates becomes the job's URL; if neither does, the job is dropped.
func (v *Verifier) resolveJob(ctx context.Context, job models.JobOpening) *models.JobOpening {
	for _, candidate := range []string{job.CompanyURL, job.SourceURL} {
		if candidate == "" {
			continue
		}
		if v.CheckURL(ctx, candidate, &job) == StatusValid {
			job.URL = candidate
			job.ID = job.ComputeID()
			return &job
		}
	}
	return nil
}

// CheckURL classifies one URL as a live posting for the expected job or not.
// Strict policy: every non-confirmed outcome — timeouts, 401/403/429,
// non-HTML bodies, ambiguous content — is invalid.
func (v *Verifier) CheckURL(ctx context.Context, rawURL string, job *models.JobOpening) Status {
	reqCtx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return StatusInvalid
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := v.client.Do(req)
	if err != nil {
		// Timeouts and network errors count as invalid, no retry
		return StatusInvalid
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNotFound, http.StatusGone:
		return StatusInvalid
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusTooManyRequests:
		return StatusInvalid
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return StatusInvalid
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "text/html") &&
		!strings.Contains(contentType, "application/xhtml") &&
		!strings.Contains(contentType, "text/plain") {
		return StatusInvalid
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return StatusInvalid
	}

	return classifyPage(string(body), rawURL, job)
}

func classifyPage(html, pageURL string, job *models.JobOpening) Status {
	lowerHTML := strings.ToLower(html)
	for _, pattern := range deadPostingPatterns {
		if strings.Contains(lowerHTML, pattern) {
			return StatusInvalid
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return StatusInvalid
	}

	// JSON-LD is the high-confidence signal: when JobPosting entries exist,
	// one of them must actually describe this job
	if postings := extractJobPostings(doc); len(postings) > 0 {
		for _, p := range postings {
			if matchesPosting(p, pageURL, job) {
				return StatusValid
			}
		}
		return StatusInvalid
	}

	// No structured data: fall back to softer page-text heuristics
	pageText := doc.Text()
	if !looseTokenMatch(pageText, job.Title) || !looseTokenMatch(pageText, job.Company) {
		return StatusInvalid
	}
	if strings.Contains(lowerHTML, "schema.org/jobposting") {
		return StatusValid
	}
	if hasJobIndicators(strings.ToLower(pageText)) || isATSHost(pageURL) {
		return StatusValid
	}
	return StatusInvalid
}

func matchesPosting(p jobPosting, pageURL string, job *models.JobOpening) bool {
	if !looseTokenMatch(p.Title, job.Title) {
		return false
	}
	if p.OrgName != "" && !looseTokenMatch(p.OrgName, job.Company) {
		return false
	}
	canonical := p.URL
	if canonical == "" {
		canonical = p.Identifier
	}
	return urlCorresponds(canonical, pageURL)
}

func hasJobIndicators(lowerText string) bool {
	for _, indicator := range jobPageIndicators {
		if strings.Contains(lowerText, indicator) {
			return true
		}
	}
	return false
}

func isATSHost(pageURL string) bool {
	lower := strings.ToLower(pageURL)
	for _, host := range atsHosts {
		if strings.Contains(lower, host) {
			return true
		}
	}
	return false
}
