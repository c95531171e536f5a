// Package match computes the deterministic résumé-to-job fit score. It is a
// pure function over a profile and a job; no network, no LLM. The LLM ranker
// only ever overlays hints on top of this baseline.
package match

import (
	"math"
	"strings"

	"github.com/alexmalwine/portfolio-backend/config"
	"github.com/alexmalwine/portfolio-backend/models"
	"github.com/alexmalwine/portfolio-backend/resume"
)

// genericFocusWeight dampens the catch-all software-engineering dimension
// during cosine alignment so it cannot dominate two otherwise unrelated texts.
const genericFocusWeight = 0.6

// ComputeMatchScore blends keyword overlap and focus alignment into a fit
// score in [0,1]. Experience-section overlap carries the most weight: past
// responsibilities predict fit better than a flat skills list.
func ComputeMatchScore(job *models.JobOpening, profile *models.ResumeProfile, desiredTitle string, w config.MatchWeights) float64 {
	jobKeywords := job.Keywords
	if len(jobKeywords) == 0 {
		jobKeywords = resume.DetectKeywords(job.Title)
	}

	jobVec := resume.FocusVector(job.Title + " " + strings.Join(jobKeywords, " "))
	profileVec := focusMap(profile.FocusScores)
	focusAlignment := cosineAlignment(profileVec, jobVec)

	// No keyword signal at all: estimate from focus alignment alone
	if len(jobKeywords) == 0 {
		return clamp(w.FocusOnlyBase + focusAlignment*w.FocusOnlySpan)
	}

	experienceOverlap := overlapFraction(jobKeywords, profile.ExperienceKeywords)
	keywordOverlap := overlapFraction(jobKeywords, profile.Keywords)

	weighted := experienceOverlap*w.Experience + keywordOverlap*w.Keyword + focusAlignment*w.Focus
	totalWeight := w.Experience + w.Keyword + w.Focus

	titleKeywords := resume.DetectKeywords(job.Title)
	if len(titleKeywords) > 0 {
		titleOverlap := overlapFraction(titleKeywords, profile.ExperienceKeywords)
		if desiredTitle != "" {
			if desired := tokenOverlap(job.Title, desiredTitle); desired > titleOverlap {
				titleOverlap = desired
			}
		}
		weighted += titleOverlap * w.Title
		totalWeight += w.Title
	}

	score := w.Floor + (weighted/totalWeight)*(1-w.Floor)

	// A strongly-backend résumé should not rank a strongly-frontend job on
	// peripheral keyword overlap alone
	if focusMismatch(profile, jobVec, w.PenaltyMinScore) {
		score -= w.MismatchPenalty
	}

	return clamp(score)
}

func focusMap(scores []models.FocusScore) map[string]float64 {
	m := make(map[string]float64, len(scores))
	for _, fs := range scores {
		m[fs.Tag] = fs.Score
	}
	return m
}

// overlapFraction is the share of wanted tokens present in the have set
func overlapFraction(wanted, have []string) float64 {
	if len(wanted) == 0 {
		return 0
	}
	haveSet := make(map[string]bool, len(have))
	for _, h := range have {
		haveSet[strings.ToLower(h)] = true
	}
	matched := 0
	for _, kw := range wanted {
		if haveSet[strings.ToLower(kw)] {
			matched++
		}
	}
	return float64(matched) / float64(len(wanted))
}

// tokenOverlap is the share of b's significant tokens appearing in a
func tokenOverlap(a, b string) float64 {
	bTokens := significantTokens(b)
	if len(bTokens) == 0 {
		return 0
	}
	aSet := make(map[string]bool)
	for _, tok := range significantTokens(a) {
		aSet[tok] = true
	}
	matched := 0
	for _, tok := range bTokens {
		if aSet[tok] {
			matched++
		}
	}
	return float64(matched) / float64(len(bTokens))
}

func significantTokens(s string) []string {
	fields := strings.Fields(strings.ToLower(s))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".,()/-")
		if len(f) > 2 {
			out = append(out, f)
		}
	}
	return out
}

// cosineAlignment computes cosine similarity between two focus vectors, with
// the generic dimension down-weighted on both sides
func cosineAlignment(a, b map[string]float64) float64 {
	dims := make(map[string]bool, len(a)+len(b))
	for k := range a {
		dims[k] = true
	}
	for k := range b {
		dims[k] = true
	}

	var dot, normA, normB float64
	for dim := range dims {
		av, bv := a[dim], b[dim]
		if dim == resume.GenericTag {
			av *= genericFocusWeight
			bv *= genericFocusWeight
		}
		dot += av * bv
		normA += av * av
		normB += bv * bv
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// focusMismatch reports whether the résumé and job each strongly belong to a
// specific focus area and those areas differ
func focusMismatch(profile *models.ResumeProfile, jobVec map[string]float64, minScore float64) bool {
	profileTag, profileScore := profile.DominantFocus()
	jobTag, jobScore := dominant(jobVec)

	if profileTag == "" || jobTag == "" || profileTag == jobTag {
		return false
	}
	if profileTag == resume.GenericTag || jobTag == resume.GenericTag {
		return false
	}
	return profileScore >= minScore && jobScore >= minScore
}

func dominant(vec map[string]float64) (string, float64) {
	best := ""
	bestScore := 0.0
	for tag, score := range vec {
		if score > bestScore || (score == bestScore && tag < best) {
			best = tag
			bestScore = score
		}
	}
	return best, bestScore
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
