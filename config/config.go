package config

import (
	"os"
	"strconv"
	"time"
)

// MatchWeights holds the tunable blend weights for the deterministic match
// scorer. The defaults were chosen empirically; they are configuration, not
// load-bearing constants.
type MatchWeights struct {
	Experience      float64 // weight of job-keyword overlap with experience-section keywords
	Keyword         float64 // weight of job-keyword overlap with the whole résumé
	Focus           float64 // weight of focus-vector cosine alignment
	Title           float64 // weight of title-keyword overlap (only when title keywords exist)
	Floor           float64 // minimum score so "zero overlap" stays distinguishable from "no data"
	FocusOnlyBase   float64 // base score when a job carries no keywords at all
	FocusOnlySpan   float64 // focus-alignment multiplier in the no-keywords fallback
	MismatchPenalty float64 // deduction when résumé and job strongly belong to different focus areas
	PenaltyMinScore float64 // both dominant focus scores must reach this before the penalty applies
}

// Config holds all configuration for the application
type Config struct {
	// Google Cloud / Vertex AI
	ProjectID   string
	Location    string
	GeminiModel string

	// Server
	Port  string
	Debug bool

	// Upstream LLM search/rank timeouts
	SearchTimeout time.Duration
	RankTimeout   time.Duration

	// Link verification
	VerifyTimeout     time.Duration
	VerifyConcurrency int

	// Result curation
	MaxTopJobs      int
	PerSizeCap      int
	GameThresholds  []float64
	TopJobsFloor    float64
	Weights         MatchWeights

	// Caches and games
	CacheTTL        time.Duration
	CacheMaxEntries int
	MaxActiveGames  int
	MaxGuesses      int
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		ProjectID:   getEnv("PROJECT_ID", ""),
		Location:    getEnv("LOCATION", "us-central1"),
		GeminiModel: getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		Port:  getEnv("PORT", "8080"),
		Debug: getEnvBool("DEBUG", false),

		SearchTimeout: time.Duration(getEnvInt("SEARCH_TIMEOUT_SECONDS", 120)) * time.Second,
		RankTimeout:   time.Duration(getEnvInt("RANK_TIMEOUT_SECONDS", 60)) * time.Second,

		VerifyTimeout:     time.Duration(getEnvInt("VERIFY_TIMEOUT_MS", 4000)) * time.Millisecond,
		VerifyConcurrency: getEnvInt("VERIFY_CONCURRENCY", 8),

		MaxTopJobs:     getEnvInt("MAX_TOP_JOBS", 10),
		PerSizeCap:     getEnvInt("PER_SIZE_CAP", 4),
		GameThresholds: []float64{0.75, 0.70, 0.65, 0.60},
		TopJobsFloor:   getEnvFloat("TOP_JOBS_FLOOR", 0.45),
		Weights: MatchWeights{
			Experience:      getEnvFloat("WEIGHT_EXPERIENCE", 0.45),
			Keyword:         getEnvFloat("WEIGHT_KEYWORD", 0.25),
			Focus:           getEnvFloat("WEIGHT_FOCUS", 0.20),
			Title:           getEnvFloat("WEIGHT_TITLE", 0.10),
			Floor:           getEnvFloat("SCORE_FLOOR", 0.15),
			FocusOnlyBase:   getEnvFloat("FOCUS_ONLY_BASE", 0.35),
			FocusOnlySpan:   getEnvFloat("FOCUS_ONLY_SPAN", 0.45),
			MismatchPenalty: getEnvFloat("MISMATCH_PENALTY", 0.10),
			PenaltyMinScore: getEnvFloat("PENALTY_MIN_SCORE", 0.35),
		},

		CacheTTL:        time.Duration(getEnvInt("CACHE_TTL_MINUTES", 10)) * time.Minute,
		CacheMaxEntries: getEnvInt("CACHE_MAX_ENTRIES", 30),
		MaxActiveGames:  getEnvInt("MAX_ACTIVE_GAMES", 50),
		MaxGuesses:      getEnvInt("MAX_GUESSES", 7),
	}
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	// ProjectID is required for Vertex AI
	if c.ProjectID == "" {
		return &ConfigError{Field: "PROJECT_ID", Message: "PROJECT_ID is required for Vertex AI"}
	}
	if c.MaxGuesses < 1 {
		return &ConfigError{Field: "MAX_GUESSES", Message: "MAX_GUESSES must be at least 1"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
