// Package service orchestrates the résumé-to-game pipeline: profile
// extraction, upstream search, normalization, link verification, the
// best-effort ranker overlay, deterministic scoring, curation, and the
// guessing game built on top of the curated list.
package service

import (
	"context"
	"log"
	"math/rand"
	"sort"
	"strconv"
	"strings"

	"github.com/alexmalwine/portfolio-backend/cache"
	"github.com/alexmalwine/portfolio-backend/config"
	"github.com/alexmalwine/portfolio-backend/game"
	"github.com/alexmalwine/portfolio-backend/jobs"
	"github.com/alexmalwine/portfolio-backend/match"
	"github.com/alexmalwine/portfolio-backend/models"
	"github.com/alexmalwine/portfolio-backend/resume"
	"github.com/alexmalwine/portfolio-backend/search"
)

// hintBlendWeight is how much an externally-supplied score hint contributes
// to the final match score. The deterministic scorer stays dominant so a
// flaky ranker can nudge the ordering but never own it.
const hintBlendWeight = 0.3

// LinkVerifier filters candidate jobs down to confirmed-live postings
type LinkVerifier interface {
	ResolveVerified(ctx context.Context, jobsIn []models.JobOpening) []models.JobOpening
}

// Service wires the pipeline stages together behind the three public
// operations: StartGame, GetTopJobs, and Guess.
type Service struct {
	cfg      *config.Config
	searcher search.JobSearcher
	ranker   search.JobRanker
	verifier LinkVerifier
	games    *game.Store
	results  *cache.Store
	pick     func(n int) int // index sampler, injected for tests
}

// New creates the service with its in-memory stores
func New(cfg *config.Config, searcher search.JobSearcher, ranker search.JobRanker, verifier LinkVerifier) *Service {
	return &Service{
		cfg:      cfg,
		searcher: searcher,
		ranker:   ranker,
		verifier: verifier,
		games:    game.NewStore(cfg.MaxActiveGames, nil),
		results:  cache.New(cfg.CacheTTL, cfg.CacheMaxEntries, nil),
		pick:     rand.Intn,
	}
}

// pipelineResult is one fully scored, sorted search outcome. It is what the
// résumé cache stores, so a repeated résumé within the TTL skips the
// upstream calls entirely.
type pipelineResult struct {
	Profile *models.ResumeProfile
	Jobs    []models.RankedJob
	Summary string
	Stats   models.SearchStats
}

// StartGame runs the pipeline and seeds a guessing game around one job
// sampled uniformly from the curated list. Sampling, not top-pick: replay
// variety beats always revealing the single best match.
func (s *Service) StartGame(ctx context.Context, req models.StartGameRequest) (*models.StartGameResponse, error) {
	if strings.TrimSpace(req.ResumeText) == "" {
		return nil, &models.ValidationError{Field: "resume_text", Message: "resume_text is required"}
	}

	result, err := s.runPipeline(ctx, req.ResumeText, req.Options)
	if err != nil {
		return nil, err
	}

	curated := applyMatchThreshold(result.Jobs, s.cfg.GameThresholds, s.cfg.MaxTopJobs)
	curated = applyCompanyDiversity(curated, s.cfg.MaxTopJobs, s.cfg.PerSizeCap)
	if len(curated) == 0 {
		return nil, &models.NoMatchesError{Stage: "threshold filtering"}
	}

	chosen := curated[s.pick(len(curated))]
	g := game.NewGame(chosen, s.cfg.MaxGuesses, result.Summary, s.games.Clock())
	s.games.Put(g)

	log.Printf("[Service] Started game %s (%d curated candidates, score %.2f)",
		g.ID, len(curated), chosen.MatchScore)

	return &models.StartGameResponse{
		GameID:           g.ID,
		MaskedCompany:    g.MaskedCompany,
		GuessesLeft:      g.GuessesLeft,
		MaxGuesses:       g.MaxGuesses,
		JobTitle:         chosen.Title,
		Location:         chosen.Location,
		Source:           chosen.Source,
		SelectionSummary: result.Summary,
	}, nil
}

// GetTopJobs runs the pipeline and returns the full curated listing above
// the single low floor, rather than the game's stricter threshold ladder
func (s *Service) GetTopJobs(ctx context.Context, req models.TopJobsRequest) (*models.TopJobsResponse, error) {
	if strings.TrimSpace(req.ResumeText) == "" {
		return nil, &models.ValidationError{Field: "resume_text", Message: "resume_text is required"}
	}

	maxResults := req.MaxResults
	if maxResults <= 0 || maxResults > s.cfg.MaxTopJobs {
		maxResults = s.cfg.MaxTopJobs
	}

	result, err := s.runPipeline(ctx, req.ResumeText, req.Options)
	if err != nil {
		return nil, err
	}

	curated := applyMatchThreshold(result.Jobs, []float64{s.cfg.TopJobsFloor}, maxResults)
	stats := result.Stats
	stats.AboveCutoff = len(curated)

	curated = applyCompanyDiversity(curated, maxResults, s.cfg.PerSizeCap)
	if len(curated) == 0 {
		return nil, &models.NoMatchesError{Stage: "threshold filtering"}
	}
	stats.Returned = len(curated)

	return &models.TopJobsResponse{
		Jobs:         curated,
		Summary:      result.Summary,
		TotalResults: len(curated),
		Stats:        stats,
	}, nil
}

// Guess applies one letter guess to a live game
func (s *Service) Guess(gameID, letter string) (*models.GuessResponse, error) {
	g, ok := s.games.Get(gameID)
	if !ok {
		return nil, &models.NotFoundError{Resource: "game", ID: gameID}
	}

	snap, err := g.ApplyGuess(letter)
	if err != nil {
		return nil, err
	}
	return guessResponse(snap), nil
}

// GameState returns the current public state of a game without consuming a guess
func (s *Service) GameState(gameID string) (*models.GuessResponse, error) {
	g, ok := s.games.Get(gameID)
	if !ok {
		return nil, &models.NotFoundError{Resource: "game", ID: gameID}
	}
	return guessResponse(g.State()), nil
}

func guessResponse(snap game.Snapshot) *models.GuessResponse {
	resp := &models.GuessResponse{
		GameID:           snap.ID,
		Status:           snap.Status,
		MaskedCompany:    snap.MaskedCompany,
		GuessesLeft:      snap.GuessesLeft,
		GuessedLetters:   snap.GuessedLetters,
		IncorrectGuesses: snap.IncorrectGuesses,
		AlreadyGuessed:   snap.AlreadyGuessed,
	}
	if snap.HintUnlocked {
		resp.CompanyHint = snap.Job.CompanyHint
	}
	if snap.Status != game.StatusInProgress {
		resp.RevealedCompany = snap.Company
		resp.JobURL = snap.Job.URL
		resp.JobTitle = snap.Job.Title
	}
	return resp
}

// runPipeline executes search → normalize → verify → overlay → score → sort,
// consulting the résumé cache first
func (s *Service) runPipeline(ctx context.Context, resumeText string, opts models.SearchOptions) (*pipelineResult, error) {
	key := cache.Key(resumeText, opts.Location, opts.DesiredTitle, strconv.FormatBool(opts.Remote))
	if cached, ok := s.results.Get(key); ok {
		log.Printf("[Service] Reusing cached search result")
		return cached.(*pipelineResult), nil
	}

	profile := resume.BuildResumeProfile(resumeText)

	searchRes, err := s.searcher.SearchJobs(ctx, resumeText, opts)
	if err != nil {
		return nil, &models.UpstreamError{Op: "search", Cause: err}
	}

	stats := models.SearchStats{RawJobs: len(searchRes.Jobs)}
	log.Printf("[Service] Upstream search returned %d raw jobs", len(searchRes.Jobs))

	normalized := jobs.NormalizeJobResults(searchRes.Jobs)
	stats.Normalized = len(normalized)
	if len(normalized) == 0 {
		return nil, &models.NoMatchesError{Stage: "normalization"}
	}

	verified := s.verifier.ResolveVerified(ctx, normalized)
	stats.Verified = len(verified)
	if len(verified) == 0 {
		return nil, &models.NoMatchesError{Stage: "link verification"}
	}

	// Best-effort overlay: a ranker failure is logged and the pipeline
	// continues on the deterministic scorer alone.
	rankings, err := s.ranker.RankJobs(ctx, resumeText, verified, opts.DesiredTitle)
	if err != nil {
		log.Printf("[Service] Warning: ranker overlay failed, continuing without it: %v", err)
	} else {
		verified = applyRankings(verified, rankings)
		stats.RankerApplied = true
	}

	ranked := make([]models.RankedJob, 0, len(verified))
	for i := range verified {
		job := verified[i]
		score := match.ComputeMatchScore(&job, profile, opts.DesiredTitle, s.cfg.Weights)
		if job.MatchScoreHint > 0 {
			score = (1-hintBlendWeight)*score + hintBlendWeight*job.MatchScoreHint
		}
		ranked = append(ranked, models.RankedJob{
			JobOpening:   job,
			MatchScore:   score,
			OverallScore: score,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].MatchScore != ranked[j].MatchScore {
			return ranked[i].MatchScore > ranked[j].MatchScore
		}
		return ranked[i].ID < ranked[j].ID
	})

	result := &pipelineResult{
		Profile: profile,
		Jobs:    ranked,
		Summary: searchRes.Summary,
		Stats:   stats,
	}
	s.results.Set(key, result)
	return result, nil
}

// applyRankings merges the overlay onto the verified jobs by id. Unknown ids
// are ignored; partially-filled rankings update only the fields they carry.
func applyRankings(jobsIn []models.JobOpening, rankings []search.Ranking) []models.JobOpening {
	byID := make(map[string]search.Ranking, len(rankings))
	for _, r := range rankings {
		if r.ID != "" {
			byID[r.ID] = r
		}
	}

	out := make([]models.JobOpening, len(jobsIn))
	for i, job := range jobsIn {
		r, ok := byID[job.ID]
		if !ok {
			out[i] = job
			continue
		}
		if score := float64(r.MatchScore); score > 0 {
			if score > 1 {
				score /= 100 // 0-100 scale from the LLM
			}
			if score > 1 {
				score = 1
			}
			job.MatchScoreHint = score
		}
		if r.CompanySize != "" {
			job.CompanySize = models.NormalizeCompanySize(r.CompanySize)
		}
		if hint := jobs.SanitizeHint(r.CompanyHint, job.Company); hint != "" {
			job.CompanyHint = hint
		}
		out[i] = job
	}
	return out
}
