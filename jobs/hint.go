package jobs

import (
	"strings"

	"github.com/alexmalwine/portfolio-backend/models"
)

// maxHintLength caps the company hint shown during the guessing game
const maxHintLength = 160

// leaksCompanyName reports whether the hint gives the company away: the full
// name, the suffix-stripped name, or any distinctive word of it appearing in
// the hint all count as leaks.
func leaksCompanyName(hint, company string) bool {
	lowerHint := strings.ToLower(hint)
	lowerCompany := strings.ToLower(strings.TrimSpace(company))
	if lowerCompany == "" {
		return false
	}
	if strings.Contains(lowerHint, lowerCompany) {
		return true
	}
	normalized := models.NormalizeCompanyKey(company)
	if normalized != "" && strings.Contains(lowerHint, normalized) {
		return true
	}
	for _, word := range strings.Fields(normalized) {
		if len(word) > 3 && strings.Contains(lowerHint, word) {
			return true
		}
	}
	return false
}

// SanitizeHint validates an externally supplied company hint. Returns "" when
// the hint is missing or reveals the company name; the caller then synthesizes
// a replacement.
func SanitizeHint(hint, company string) string {
	hint = strings.TrimSpace(hint)
	if hint == "" {
		return ""
	}
	if leaksCompanyName(hint, company) {
		return ""
	}
	if len(hint) > maxHintLength {
		hint = strings.TrimSpace(hint[:maxHintLength-3]) + "..."
	}
	return hint
}

var sizeDescriptions = map[string]string{
	models.SizeLarge:   "A large, established company",
	models.SizeMid:     "A mid-sized company",
	models.SizeStartup: "A startup",
}

// SynthesizeHint builds a templated hint from whatever signals survived
// normalization. It never mentions the company by name.
func SynthesizeHint(job *models.JobOpening, industry string) string {
	desc, ok := sizeDescriptions[job.CompanySize]
	if !ok {
		desc = sizeDescriptions[models.SizeMid]
	}

	var sb strings.Builder
	sb.WriteString(desc)
	if industry = strings.TrimSpace(industry); industry != "" && !leaksCompanyName(industry, job.Company) {
		sb.WriteString(" in the " + strings.ToLower(industry) + " space")
	}
	if job.Location != "" && !strings.EqualFold(job.Location, "Remote") {
		sb.WriteString(", hiring in " + job.Location)
	}
	if kw := firstDistinctiveKeyword(job.Keywords); kw != "" {
		sb.WriteString(", working with " + kw)
	}
	sb.WriteString(".")

	hint := sb.String()
	if len(hint) > maxHintLength {
		hint = strings.TrimSpace(hint[:maxHintLength-3]) + "..."
	}
	return hint
}

// genericHintKeywords are too broad to help a guesser narrow anything down
var genericHintKeywords = map[string]bool{
	"api": true, "agile": true, "data analysis": true, "analytics": true,
}

func firstDistinctiveKeyword(keywords []string) string {
	for _, kw := range keywords {
		if !genericHintKeywords[kw] {
			return kw
		}
	}
	return ""
}
