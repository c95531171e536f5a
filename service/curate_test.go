package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexmalwine/portfolio-backend/models"
)

func rj(company, size string, score float64) models.RankedJob {
	return models.RankedJob{
		JobOpening: models.JobOpening{
			Company:     company,
			Title:       "Engineer",
			CompanySize: size,
		},
		MatchScore: score,
	}
}

var ladder = []float64{0.75, 0.70, 0.65, 0.60}

func TestApplyMatchThreshold_HighestQualityFirst(t *testing.T) {
	jobs := []models.RankedJob{
		rj("Alpha", models.SizeLarge, 0.80),
		rj("Beta", models.SizeMid, 0.78),
		rj("Gamma", models.SizeStartup, 0.66),
	}

	got := applyMatchThreshold(jobs, ladder, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "Alpha", got[0].Company)
	assert.Equal(t, "Beta", got[1].Company)
}

func TestApplyMatchThreshold_RelaxesWhenShort(t *testing.T) {
	jobs := []models.RankedJob{
		rj("Alpha", models.SizeLarge, 0.76),
		rj("Beta", models.SizeMid, 0.72),
		rj("Gamma", models.SizeStartup, 0.61),
	}

	// 0.75 yields one match, short of three, so the ladder keeps relaxing
	got := applyMatchThreshold(jobs, ladder, 3)
	assert.Len(t, got, 3)
}

func TestApplyMatchThreshold_KeepsFirstNonEmptyWhenEnough(t *testing.T) {
	jobs := []models.RankedJob{
		rj("Alpha", models.SizeLarge, 0.76),
		rj("Beta", models.SizeMid, 0.61),
	}

	got := applyMatchThreshold(jobs, ladder, 1)
	require.Len(t, got, 1)
	assert.Equal(t, "Alpha", got[0].Company)
}

func TestApplyMatchThreshold_NothingAboveLadder(t *testing.T) {
	jobs := []models.RankedJob{
		rj("Alpha", models.SizeLarge, 0.30),
		rj("Beta", models.SizeMid, 0.15),
	}

	assert.Empty(t, applyMatchThreshold(jobs, ladder, 5))
}

func TestApplyMatchThreshold_SingleFloorMode(t *testing.T) {
	jobs := []models.RankedJob{
		rj("Alpha", models.SizeLarge, 0.76),
		rj("Beta", models.SizeMid, 0.50),
		rj("Gamma", models.SizeStartup, 0.30),
	}

	got := applyMatchThreshold(jobs, []float64{0.45}, 10)
	assert.Len(t, got, 2)
}

func TestApplyCompanyDiversity_UniqueCompanies(t *testing.T) {
	jobs := []models.RankedJob{
		rj("Acme, Inc.", models.SizeLarge, 0.9),
		rj("Acme LLC", models.SizeMid, 0.8), // same normalized company
		rj("Globex", models.SizeMid, 0.7),
	}

	got := applyCompanyDiversity(jobs, 10, 4)
	require.Len(t, got, 2)
	assert.Equal(t, "Acme, Inc.", got[0].Company)
	assert.Equal(t, "Globex", got[1].Company)
}

func TestApplyCompanyDiversity_SizeCapHolds(t *testing.T) {
	jobs := []models.RankedJob{
		rj("L1", models.SizeLarge, 0.95),
		rj("L2", models.SizeLarge, 0.94),
		rj("L3", models.SizeLarge, 0.93),
		rj("L4", models.SizeLarge, 0.92),
		rj("L5", models.SizeLarge, 0.91),
		rj("M1", models.SizeMid, 0.90),
		rj("M2", models.SizeMid, 0.89),
		rj("M3", models.SizeMid, 0.88),
		rj("M4", models.SizeMid, 0.87),
	}

	// Eight slots fill without relaxation, so the fifth large company is out
	got := applyCompanyDiversity(jobs, 8, 4)
	require.Len(t, got, 8)
	for _, job := range got {
		assert.NotEqual(t, "L5", job.Company)
	}
}

func TestApplyCompanyDiversity_RelaxesSizeCapToFill(t *testing.T) {
	jobs := []models.RankedJob{
		rj("L1", models.SizeLarge, 0.95),
		rj("L2", models.SizeLarge, 0.94),
		rj("L3", models.SizeLarge, 0.93),
		rj("L4", models.SizeLarge, 0.92),
		rj("L5", models.SizeLarge, 0.91),
		rj("L6", models.SizeLarge, 0.90),
	}

	got := applyCompanyDiversity(jobs, 6, 4)
	require.Len(t, got, 6)
	// Pass 1 order, then the relaxed fills, still score-descending
	assert.Equal(t, "L1", got[0].Company)
	assert.Equal(t, "L6", got[5].Company)
}

func TestApplyCompanyDiversity_PreservesIncomingOrder(t *testing.T) {
	jobs := []models.RankedJob{
		rj("Alpha", models.SizeLarge, 0.9),
		rj("Beta", models.SizeStartup, 0.8),
		rj("Gamma", models.SizeMid, 0.7),
	}

	got := applyCompanyDiversity(jobs, 3, 4)
	require.Len(t, got, 3)
	assert.Equal(t, "Alpha", got[0].Company)
	assert.Equal(t, "Beta", got[1].Company)
	assert.Equal(t, "Gamma", got[2].Company)
}
