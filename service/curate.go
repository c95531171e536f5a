package service

import (
	"github.com/alexmalwine/portfolio-backend/models"
)

// applyMatchThreshold walks a descending threshold ladder: keep the first
// threshold that yields any matches, then keep relaxing only while still
// short of desiredCount. Prefers the highest-quality cut that still gives
// enough results.
func applyMatchThreshold(ranked []models.RankedJob, thresholds []float64, desiredCount int) []models.RankedJob {
	var selected []models.RankedJob
	for _, t := range thresholds {
		matched := atOrAbove(ranked, t)
		if len(matched) == 0 {
			continue
		}
		if selected == nil || len(selected) < desiredCount {
			selected = matched
		}
		if len(selected) >= desiredCount {
			break
		}
	}
	return selected
}

func atOrAbove(ranked []models.RankedJob, threshold float64) []models.RankedJob {
	var out []models.RankedJob
	for _, job := range ranked {
		if job.MatchScore >= threshold {
			out = append(out, job)
		}
	}
	return out
}

// applyCompanyDiversity performs two-pass greedy selection over the incoming
// (score-descending) order. Pass 1 enforces per-company uniqueness and a
// per-size cap so one size bucket cannot dominate; pass 2 relaxes the size
// cap, still one job per company, only to fill remaining slots.
func applyCompanyDiversity(ranked []models.RankedJob, maxResults, perSizeCap int) []models.RankedJob {
	if maxResults <= 0 {
		return nil
	}

	seen := make(map[string]bool)
	sizeCount := make(map[string]int)
	selected := make([]models.RankedJob, 0, maxResults)

	for _, job := range ranked {
		if len(selected) >= maxResults {
			break
		}
		key := models.NormalizeCompanyKey(job.Company)
		if seen[key] || sizeCount[job.CompanySize] >= perSizeCap {
			continue
		}
		seen[key] = true
		sizeCount[job.CompanySize]++
		selected = append(selected, job)
	}

	if len(selected) < maxResults {
		for _, job := range ranked {
			if len(selected) >= maxResults {
				break
			}
			key := models.NormalizeCompanyKey(job.Company)
			if seen[key] {
				continue
			}
			seen[key] = true
			selected = append(selected, job)
		}
	}

	return selected
}
