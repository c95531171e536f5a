package models

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// FlexibleStringSlice can unmarshal from either a string or []string
type FlexibleStringSlice []string

func (f *FlexibleStringSlice) UnmarshalJSON(data []byte) error {
	// Try to unmarshal as []string first
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*f = arr
		return nil
	}

	// Try to unmarshal as string
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		if str != "" {
			*f = []string{str}
		} else {
			*f = []string{}
		}
		return nil
	}

	// If both fail, return empty slice
	*f = []string{}
	return nil
}

// FlexibleFloat accepts a JSON number or a numeric string
type FlexibleFloat float64

func (f *FlexibleFloat) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = FlexibleFloat(num)
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		if _, scanErr := fmt.Sscanf(strings.TrimSpace(str), "%f", &num); scanErr == nil {
			*f = FlexibleFloat(num)
			return nil
		}
	}

	*f = 0
	return nil
}

// RawJob is one loosely-typed job record as returned by the LLM search.
// Every field is optional; the normalizer decides what survives.
type RawJob struct {
	Company     string              `json:"company"`
	Title       string              `json:"title"`
	Location    string              `json:"location"`
	Source      string              `json:"source"`
	URL         string              `json:"url"`
	CompanyURL  string              `json:"company_url"`
	SourceURL   string              `json:"source_url"`
	Keywords    FlexibleStringSlice `json:"keywords"`
	CompanySize string              `json:"company_size"`
	CompanyHint string              `json:"company_hint"`
	Industry    string              `json:"industry"`
	MatchScore  FlexibleFloat       `json:"match_score"`
}

// JobOpening is one normalized candidate job
type JobOpening struct {
	ID             string   `json:"id"`
	Company        string   `json:"company"`
	Title          string   `json:"title"`
	Location       string   `json:"location"`
	Source         string   `json:"source"`
	Keywords       []string `json:"keywords"`
	URL            string   `json:"url"`
	CompanyURL     string   `json:"company_url,omitempty"`
	SourceURL      string   `json:"source_url,omitempty"`
	CompanySize    string   `json:"company_size"`
	CompanyHint    string   `json:"company_hint"`
	MatchScoreHint float64  `json:"match_score_hint,omitempty"`
}

// RankedJob is a JobOpening with computed fit scores
type RankedJob struct {
	JobOpening
	MatchScore   float64 `json:"match_score"`
	OverallScore float64 `json:"overall_score"` // currently equals MatchScore, kept separate for future weighting
}

// Job source constants
const (
	SourceLinkedIn       = "LinkedIn"
	SourceGlassdoor      = "Glassdoor"
	SourceFortune500     = "Fortune 500"
	SourceCompanyCareers = "Company Careers"
	SourceIndeed         = "Indeed"
	SourceOther          = "Other"
)

// Company size constants
const (
	SizeLarge   = "large"
	SizeMid     = "mid"
	SizeStartup = "startup"
)

// NormalizeSource maps a free-text source field onto the closed source enum.
// Priority order matters: "linkedin careers" must resolve to LinkedIn, not Company Careers.
func NormalizeSource(raw string) string {
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "linkedin"):
		return SourceLinkedIn
	case strings.Contains(lower, "glassdoor"):
		return SourceGlassdoor
	case strings.Contains(lower, "fortune"):
		return SourceFortune500
	case strings.Contains(lower, "indeed"):
		return SourceIndeed
	case strings.Contains(lower, "career"), strings.Contains(lower, "company"):
		return SourceCompanyCareers
	default:
		return SourceOther
	}
}

// NormalizeCompanySize maps free-text size descriptions onto {large, mid, startup}
func NormalizeCompanySize(raw string) string {
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "startup"), strings.Contains(lower, "seed"),
		strings.Contains(lower, "early"), strings.Contains(lower, "vc"):
		return SizeStartup
	case strings.Contains(lower, "mid"), strings.Contains(lower, "medium"),
		strings.Contains(lower, "scale"):
		return SizeMid
	case strings.Contains(lower, "large"), strings.Contains(lower, "enterprise"),
		strings.Contains(lower, "fortune"), strings.Contains(lower, "big"):
		return SizeLarge
	default:
		return SizeMid
	}
}

var companySuffixes = []string{
	"inc", "llc", "ltd", "corp", "corporation", "co", "company", "plc", "gmbh", "limited",
}

// NormalizeCompanyKey strips legal suffixes and punctuation so that
// "Acme, Inc." and "Acme LLC" collapse to the same dedup key.
func NormalizeCompanyKey(company string) string {
	lower := strings.ToLower(strings.TrimSpace(company))
	lower = strings.ReplaceAll(lower, ",", " ")
	fields := strings.Fields(lower)
	for len(fields) > 1 {
		last := strings.Trim(fields[len(fields)-1], ".")
		isSuffix := false
		for _, s := range companySuffixes {
			if last == s {
				isSuffix = true
				break
			}
		}
		if !isSuffix {
			break
		}
		fields = fields[:len(fields)-1]
	}
	return strings.Join(fields, " ")
}

// DedupKey is the batch-level uniqueness key: normalized company + title + location
func (j *JobOpening) DedupKey() string {
	return NormalizeCompanyKey(j.Company) + "|" + strings.ToLower(j.Title) + "|" + strings.ToLower(j.Location)
}

// ComputeID derives the content-addressed job id. It must be recomputed
// whenever the chosen URL changes (e.g. after link verification).
func (j *JobOpening) ComputeID() string {
	sum := sha256.Sum256([]byte(j.Company + "|" + j.Title + "|" + j.Location + "|" + j.URL))
	return hex.EncodeToString(sum[:])[:16]
}
