package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"cloud.google.com/go/vertexai/genai"

	"github.com/alexmalwine/portfolio-backend/config"
	"github.com/alexmalwine/portfolio-backend/models"
)

// GeminiClient implements JobSearcher and JobRanker on Vertex AI Gemini
type GeminiClient struct {
	client        *genai.Client
	model         *genai.GenerativeModel
	searchTimeout time.Duration
	rankTimeout   time.Duration
}

// NewGeminiClient creates a new Gemini-backed search/rank client
func NewGeminiClient(ctx context.Context, cfg *config.Config) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, cfg.ProjectID, cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(cfg.GeminiModel)

	// Lower temperature for more consistent JSON output
	model.SetTemperature(0.2)
	model.SetTopP(0.8)
	model.SetMaxOutputTokens(8192)

	return &GeminiClient{
		client:        client,
		model:         model,
		searchTimeout: cfg.SearchTimeout,
		rankTimeout:   cfg.RankTimeout,
	}, nil
}

// Close closes the underlying Gemini client
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// SearchJobs asks Gemini for real, currently-open roles matched to the résumé.
// The whole call fails on timeout or malformed output; there are no partial
// results.
func (c *GeminiClient) SearchJobs(ctx context.Context, resumeText string, opts models.SearchOptions) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, c.searchTimeout)
	defer cancel()

	prompt := buildSearchPrompt(resumeText, opts)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	text := cleanJSON(extractText(resp))
	if text == "" {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	var result Result
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		log.Printf("[Gemini] Failed to parse search response: %s", truncateForLog(text))
		return nil, fmt.Errorf("failed to parse search JSON: %w", err)
	}

	log.Printf("[Gemini] Search returned %d raw jobs (%d queries)", len(result.Jobs), len(result.SearchQueries))
	return &result, nil
}

// RankJobs asks Gemini to overlay refined scores, company sizes, and hints
// onto already-normalized jobs
func (c *GeminiClient) RankJobs(ctx context.Context, resumeText string, jobs []models.JobOpening, desiredTitle string) ([]Ranking, error) {
	ctx, cancel := context.WithTimeout(ctx, c.rankTimeout)
	defer cancel()

	jobsJSON, err := json.Marshal(jobs)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal jobs: %w", err)
	}

	prompt := buildRankPrompt(resumeText, string(jobsJSON), desiredTitle)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	text := cleanJSON(extractText(resp))

	var rankings []Ranking
	if err := json.Unmarshal([]byte(text), &rankings); err != nil {
		log.Printf("[Gemini] Failed to parse rank response: %s", truncateForLog(text))
		return nil, fmt.Errorf("failed to parse rankings JSON: %w", err)
	}

	return rankings, nil
}

func buildSearchPrompt(resumeText string, opts models.SearchOptions) string {
	var constraints strings.Builder
	if opts.Remote {
		constraints.WriteString("- Prefer remote-friendly roles.\n")
	}
	if opts.Location != "" {
		constraints.WriteString("- Prefer roles in or near: " + opts.Location + "\n")
	}
	if opts.DesiredTitle != "" {
		constraints.WriteString("- The candidate is targeting roles like: " + opts.DesiredTitle + "\n")
	}
	if constraints.Len() == 0 {
		constraints.WriteString("- No location constraints; include remote and on-site roles.\n")
	}

	return fmt.Sprintf(`Find 15-25 real, currently-open job postings that match this résumé.
Use major job boards (LinkedIn, Indeed, Glassdoor) and company career pages.

Return a JSON object:
{
  "summary": "1-2 sentences describing the search strategy",
  "search_queries": ["queries", "you", "used"],
  "jobs": [
    {
      "company": "Company name",
      "title": "Job title",
      "location": "City, State or Remote",
      "source": "LinkedIn|Glassdoor|Indeed|Company Careers|Fortune 500|Other",
      "company_url": "direct posting URL on the company's own careers/ATS site, if known",
      "source_url": "job-board detail page URL (e.g. linkedin.com/jobs/view/<id>), if known",
      "keywords": ["skills", "the", "role", "needs"],
      "company_size": "large|mid|startup",
      "company_hint": "one sentence describing the company WITHOUT naming it",
      "industry": "industry sector",
      "match_score": 0.0
    }
  ]
}

PREFERENCES:
%s
Only include postings you believe are live right now. Prefer specific detail-page
URLs over search pages. Never invent URLs.

RÉSUMÉ:
%s

Return ONLY the JSON object, no markdown formatting, no explanation.`, constraints.String(), resumeText)
}

func buildRankPrompt(resumeText, jobsJSON, desiredTitle string) string {
	target := "the candidate's background"
	if desiredTitle != "" {
		target = fmt.Sprintf("%q and the candidate's background", desiredTitle)
	}

	return fmt.Sprintf(`Rank these job openings by fit against %s.

RÉSUMÉ:
%s

JOBS:
%s

Return a JSON array, one entry per job, keyed by the job's "id" field:
[
  {
    "id": "job id from input",
    "match_score": 0.0,
    "company_size": "large|mid|startup",
    "company_hint": "one sentence describing the company WITHOUT naming it",
    "rationale": "1 sentence explaining the score"
  }
]

match_score is 0.0-1.0. Consider skills alignment first, then seniority,
location, and domain relevance.
Return ONLY the JSON array.`, target, resumeText, jobsJSON)
}

// Helper functions

func extractText(resp *genai.GenerateContentResponse) string {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String()
}

func cleanJSON(text string) string {
	// Remove markdown code blocks if present
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

func truncateForLog(s string) string {
	if len(s) > 500 {
		return s[:500] + "..."
	}
	return s
}
