package models

// SearchOptions are best-effort hints forwarded to the upstream job search.
// They bias the search, they are never enforced as hard filters locally.
type SearchOptions struct {
	Remote       bool   `json:"remote,omitempty" form:"remote"`
	Location     string `json:"location,omitempty" form:"location" example:"Denver, CO"`
	DesiredTitle string `json:"desired_title,omitempty" form:"desired_title" example:"Backend Engineer"`
}

// StartGameRequest starts a new guessing game from résumé text
// @Description Start request with résumé text and optional search hints
type StartGameRequest struct {
	ResumeText string        `json:"resume_text" binding:"required" example:"Jane Doe\nSoftware Engineer..."`
	Options    SearchOptions `json:"options,omitempty"`
}

// StartGameResponse is the initial public state of a new game
type StartGameResponse struct {
	GameID           string `json:"game_id"`
	MaskedCompany    string `json:"masked_company"`
	GuessesLeft      int    `json:"guesses_left"`
	MaxGuesses       int    `json:"max_guesses"`
	JobTitle         string `json:"job_title"`
	Location         string `json:"location"`
	Source           string `json:"source"`
	SelectionSummary string `json:"selection_summary,omitempty"`
}

// GuessRequest is one letter guess against an active game
type GuessRequest struct {
	Letter string `json:"letter" binding:"required" example:"A"`
}

// GuessResponse is the game state after applying a guess
type GuessResponse struct {
	GameID           string   `json:"game_id"`
	Status           string   `json:"status"`
	MaskedCompany    string   `json:"masked_company"`
	GuessesLeft      int      `json:"guesses_left"`
	GuessedLetters   []string `json:"guessed_letters"`
	IncorrectGuesses []string `json:"incorrect_guesses"`
	AlreadyGuessed   bool     `json:"already_guessed"`
	CompanyHint      string   `json:"company_hint,omitempty"`
	RevealedCompany  string   `json:"revealed_company,omitempty"`
	JobURL           string   `json:"job_url,omitempty"`
	JobTitle         string   `json:"job_title,omitempty"`
}

// TopJobsRequest requests the full curated listing for a résumé
type TopJobsRequest struct {
	ResumeText string        `json:"resume_text" binding:"required"`
	Options    SearchOptions `json:"options,omitempty"`
	MaxResults int           `json:"max_results,omitempty" example:"10"`
}

// TopJobsResponse is the curated, ranked job listing
type TopJobsResponse struct {
	Jobs         []RankedJob `json:"jobs"`
	Summary      string      `json:"summary,omitempty"`
	TotalResults int         `json:"total_results"`
	Stats        SearchStats `json:"stats"`
}

// SearchStats tracks how many candidates survived each pipeline stage
type SearchStats struct {
	RawJobs       int `json:"raw_jobs"`
	Normalized    int `json:"normalized"`
	Verified      int `json:"verified"`
	AboveCutoff   int `json:"above_cutoff"`
	Returned      int `json:"returned"`
	RankerApplied bool `json:"ranker_applied"`
}

// ErrorResponse represents an API error response
// @Description Standard error response
type ErrorResponse struct {
	Error   string `json:"error" example:"Invalid request body"`
	Code    int    `json:"code" example:"400"`
	Details string `json:"details,omitempty"`
}

// HealthResponse represents health check response
// @Description Server health status
type HealthResponse struct {
	Status    string `json:"status" example:"healthy"`
	Version   string `json:"version" example:"1.0.0"`
	Timestamp string `json:"timestamp" example:"2024-01-15T10:30:00Z"`
}
