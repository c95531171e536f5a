package models

// FocusScore is the strength of one focus rule's match against résumé text, in [0,1]
type FocusScore struct {
	Tag   string  `json:"tag"`
	Score float64 `json:"score"`
}

// ResumeProfile represents the signal derived from raw résumé text.
// It is ephemeral and recomputed per request; nothing here is persisted.
type ResumeProfile struct {
	Keywords             []string     `json:"keywords"`
	ExperienceText       string       `json:"experience_text"`
	ExperienceKeywords   []string     `json:"experience_keywords"`
	ExperienceHighlights []string     `json:"experience_highlights"`
	FocusScores          []FocusScore `json:"focus_scores"`
	FocusTags            []string     `json:"focus_tags"`
}

// HasKeyword reports whether the résumé contains the given skill token
func (p *ResumeProfile) HasKeyword(kw string) bool {
	for _, k := range p.Keywords {
		if k == kw {
			return true
		}
	}
	return false
}

// HasExperienceKeyword reports whether the experience section contains the token
func (p *ResumeProfile) HasExperienceKeyword(kw string) bool {
	for _, k := range p.ExperienceKeywords {
		if k == kw {
			return true
		}
	}
	return false
}

// FocusScoreFor returns the score for a focus tag, or 0 if the rule did not match
func (p *ResumeProfile) FocusScoreFor(tag string) float64 {
	for _, fs := range p.FocusScores {
		if fs.Tag == tag {
			return fs.Score
		}
	}
	return 0
}

// DominantFocus returns the highest-scoring focus tag, or "" when none matched
func (p *ResumeProfile) DominantFocus() (string, float64) {
	best := ""
	bestScore := 0.0
	for _, fs := range p.FocusScores {
		if fs.Score > bestScore {
			best = fs.Tag
			bestScore = fs.Score
		}
	}
	return best, bestScore
}
