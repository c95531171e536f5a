// Package search defines the external LLM collaborators the pipeline depends
// on: the job search client and the best-effort reranker. The service layer
// only sees these interfaces; the Gemini implementations live alongside.
package search

import (
	"context"

	"github.com/alexmalwine/portfolio-backend/models"
)

// Result is one upstream search response before normalization
type Result struct {
	Summary       string          `json:"summary"`
	SearchQueries []string        `json:"search_queries"`
	Jobs          []models.RawJob `json:"jobs"`
}

// JobSearcher issues one search request against the upstream LLM + job-board
// query service. Implementations must return an error on total failure, never
// a silent empty result: the caller has to distinguish "no results" from
// "search broken".
type JobSearcher interface {
	SearchJobs(ctx context.Context, resumeText string, opts models.SearchOptions) (*Result, error)
}

// Ranking is one per-job overlay produced by the reranker
type Ranking struct {
	ID          string               `json:"id"`
	MatchScore  models.FlexibleFloat `json:"match_score"`
	CompanySize string               `json:"company_size"`
	CompanyHint string               `json:"company_hint"`
	Rationale   string               `json:"rationale"`
}

// JobRanker overlays LLM score/size/hint refinements onto normalized jobs.
// Strictly best-effort: when it fails the pipeline continues on the
// deterministic scorer alone.
type JobRanker interface {
	RankJobs(ctx context.Context, resumeText string, jobs []models.JobOpening, desiredTitle string) ([]Ranking, error)
}
