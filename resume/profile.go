// Package resume derives search signal from raw résumé text: skill keywords,
// the experience section, and weighted focus-area scores. Everything here is
// a pure function of the input text; no I/O, no LLM calls.
package resume

import (
	"sort"
	"strings"

	"github.com/alexmalwine/portfolio-backend/models"
)

// GenericTag is the catch-all focus rule. It matches almost any technical
// résumé, so tag selection deprioritizes it whenever a specific rule also fires.
const GenericTag = "software-engineering"

const (
	maxExperienceChars = 4000
	maxHighlights      = 8
	fallbackLines      = 40
	minSectionLines    = 3
	maxFocusTags       = 3
)

// keywordVocabulary is the fixed skill/domain dictionary shared by résumé
// profiling and job-keyword derivation.
var keywordVocabulary = []string{
	"go", "golang", "python", "java", "javascript", "typescript", "react",
	"node", "sql", "postgres", "aws", "gcp", "azure", "docker", "kubernetes",
	"terraform", "api", "microservices", "machine learning", "data analysis",
	"analytics", "etl", "marketing", "seo", "sales", "crm", "healthcare",
	"nursing", "clinical", "finance", "accounting", "design", "figma",
	"product management", "agile", "security", "compliance", "mobile",
	"ios", "android", "teaching", "curriculum", "legal", "litigation",
}

// FocusRule scores how strongly a text aligns with one role category
type FocusRule struct {
	Tag        string
	Keywords   []string
	Required   string // rule only fires when this keyword is present, "" = no requirement
	MinMatches int
}

var focusRules = []FocusRule{
	{Tag: "backend-engineering", Keywords: []string{"go", "java", "python", "sql", "postgres", "api", "microservices", "docker", "kubernetes"}, MinMatches: 2},
	{Tag: "frontend-engineering", Keywords: []string{"javascript", "typescript", "react", "design", "figma"}, Required: "javascript", MinMatches: 2},
	{Tag: "data-engineering", Keywords: []string{"sql", "python", "etl", "analytics", "data analysis", "machine learning"}, MinMatches: 2},
	{Tag: "machine-learning", Keywords: []string{"machine learning", "python", "data analysis", "analytics"}, Required: "machine learning", MinMatches: 2},
	{Tag: "devops", Keywords: []string{"docker", "kubernetes", "terraform", "aws", "gcp", "azure"}, MinMatches: 2},
	{Tag: "mobile-engineering", Keywords: []string{"mobile", "ios", "android", "react"}, Required: "mobile", MinMatches: 2},
	{Tag: "security-engineering", Keywords: []string{"security", "compliance", "linux", "api"}, Required: "security", MinMatches: 1},
	{Tag: "product-management", Keywords: []string{"product management", "agile", "analytics", "crm"}, Required: "product management", MinMatches: 1},
	{Tag: "marketing", Keywords: []string{"marketing", "seo", "analytics", "crm"}, Required: "marketing", MinMatches: 1},
	{Tag: "sales", Keywords: []string{"sales", "crm", "marketing"}, Required: "sales", MinMatches: 1},
	{Tag: "healthcare", Keywords: []string{"healthcare", "nursing", "clinical", "compliance"}, MinMatches: 1},
	{Tag: "finance", Keywords: []string{"finance", "accounting", "compliance", "analytics"}, MinMatches: 1},
	{Tag: "education", Keywords: []string{"teaching", "curriculum"}, MinMatches: 1},
	{Tag: "legal", Keywords: []string{"legal", "litigation", "compliance"}, Required: "legal", MinMatches: 1},
	{Tag: GenericTag, Keywords: []string{"go", "java", "python", "javascript", "api", "agile", "sql"}, MinMatches: 1},
}

var experienceHeaders = []string{
	"experience", "work experience", "professional experience",
	"work history", "employment", "employment history", "career history",
}

var sectionHeaders = []string{
	"education", "skills", "technical skills", "projects", "certifications",
	"summary", "objective", "awards", "publications", "references",
	"interests", "volunteering", "languages",
}

// normalizeToken lowercases and strips punctuation so "Node.js" matches "nodejs"
func normalizeToken(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// textIndex holds the precomputed views of one text used for keyword matching
type textIndex struct {
	lower      string
	normalized string          // punctuation stripped entirely, "node.js" -> "nodejs"
	tokens     map[string]bool // punctuation-split word set
}

func indexText(text string) *textIndex {
	lower := strings.ToLower(text)
	tokens := make(map[string]bool)
	for _, tok := range strings.FieldsFunc(lower, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	}) {
		tokens[tok] = true
	}
	return &textIndex{lower: lower, normalized: normalizeToken(text), tokens: tokens}
}

// contains tests case-insensitive substring OR normalized-token presence.
// Keywords of three characters or fewer ("go", "api", "ios") only match as
// whole words, otherwise "Chicago" would count as Go experience.
func (ti *textIndex) contains(keyword string) bool {
	if len(keyword) <= 3 {
		return ti.tokens[keyword]
	}
	if strings.Contains(ti.lower, keyword) {
		return true
	}
	nk := normalizeToken(keyword)
	return nk != "" && strings.Contains(ti.normalized, nk)
}

// DetectKeywords returns the vocabulary tokens present in the text, deduplicated,
// in vocabulary order.
func DetectKeywords(text string) []string {
	ti := indexText(text)

	found := make([]string, 0, 8)
	for _, kw := range keywordVocabulary {
		if ti.contains(kw) {
			found = append(found, kw)
		}
	}
	return found
}

// FocusVector scores every focus rule against the text. A rule contributes
// only when its required keyword is present and enough keywords overlap;
// the score is matched / total rule keywords.
func FocusVector(text string) map[string]float64 {
	ti := indexText(text)

	scores := make(map[string]float64)
	for _, rule := range focusRules {
		if rule.Required != "" && !ti.contains(rule.Required) {
			continue
		}
		matched := 0
		for _, kw := range rule.Keywords {
			if ti.contains(kw) {
				matched++
			}
		}
		if matched < rule.MinMatches {
			continue
		}
		scores[rule.Tag] = float64(matched) / float64(len(rule.Keywords))
	}
	return scores
}

// BuildResumeProfile derives the full résumé profile: keywords, the experience
// section (with highlight lines), and focus-rule scores over that section.
func BuildResumeProfile(resumeText string) *models.ResumeProfile {
	expText, expLines := extractExperienceSection(resumeText)

	profile := &models.ResumeProfile{
		Keywords:             DetectKeywords(resumeText),
		ExperienceText:       expText,
		ExperienceKeywords:   DetectKeywords(expText),
		ExperienceHighlights: extractHighlights(expLines),
	}

	vec := FocusVector(expText)
	tags := make([]string, 0, len(vec))
	for tag := range vec {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		if vec[tags[i]] != vec[tags[j]] {
			return vec[tags[i]] > vec[tags[j]]
		}
		return tags[i] < tags[j]
	})

	for _, tag := range tags {
		profile.FocusScores = append(profile.FocusScores, models.FocusScore{Tag: tag, Score: vec[tag]})
	}
	profile.FocusTags = selectFocusTags(tags, vec)

	return profile
}

// selectFocusTags picks up to three tags, pushing the generic rule behind
// every specific one that matched.
func selectFocusTags(sorted []string, vec map[string]float64) []string {
	hasSpecific := false
	for _, tag := range sorted {
		if tag != GenericTag {
			hasSpecific = true
			break
		}
	}

	picked := make([]string, 0, maxFocusTags)
	for _, tag := range sorted {
		if tag == GenericTag && hasSpecific {
			continue
		}
		picked = append(picked, tag)
		if len(picked) == maxFocusTags {
			return picked
		}
	}
	// Generic fills the remaining slot only when nothing else is available
	if hasSpecific && len(picked) < maxFocusTags {
		if _, ok := vec[GenericTag]; ok {
			picked = append(picked, GenericTag)
		}
	}
	return picked
}

func isHeaderLine(line string, headers []string) bool {
	normalized := strings.ToLower(strings.TrimSpace(line))
	normalized = strings.Trim(normalized, ":-— \t")
	// Header lines are short; "10 years of marketing experience" is not a header
	if len(normalized) > 40 {
		return false
	}
	for _, h := range headers {
		if normalized == h {
			return true
		}
	}
	return false
}

// extractExperienceSection locates the experience section by header matching.
// When the section is missing or too short, the top of the document stands in.
func extractExperienceSection(resumeText string) (string, []string) {
	lines := strings.Split(resumeText, "\n")

	start := -1
	for i, line := range lines {
		if isHeaderLine(line, experienceHeaders) {
			start = i + 1
			break
		}
	}

	var section []string
	if start >= 0 {
		for i := start; i < len(lines); i++ {
			if isHeaderLine(lines[i], sectionHeaders) {
				break
			}
			section = append(section, lines[i])
		}
	}

	nonEmpty := 0
	for _, l := range section {
		if strings.TrimSpace(l) != "" {
			nonEmpty++
		}
	}
	if nonEmpty < minSectionLines {
		// No usable section; fall back to the document head
		end := len(lines)
		if end > fallbackLines {
			end = fallbackLines
		}
		section = lines[:end]
	}

	text := strings.TrimSpace(strings.Join(section, "\n"))
	if len(text) > maxExperienceChars {
		text = text[:maxExperienceChars]
	}
	return text, section
}

var bulletPrefixes = []string{"-", "*", "•", "·", "◦"}

// extractHighlights returns up to 8 bullet lines, or the top non-empty lines
// when the section has no bullets.
func extractHighlights(lines []string) []string {
	highlights := make([]string, 0, maxHighlights)
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		for _, p := range bulletPrefixes {
			if strings.HasPrefix(trimmed, p) {
				highlights = append(highlights, strings.TrimSpace(strings.TrimPrefix(trimmed, p)))
				break
			}
		}
		if len(highlights) == maxHighlights {
			return highlights
		}
	}
	if len(highlights) > 0 {
		return highlights
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		highlights = append(highlights, trimmed)
		if len(highlights) == maxHighlights {
			break
		}
	}
	return highlights
}
