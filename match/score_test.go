package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexmalwine/portfolio-backend/config"
	"github.com/alexmalwine/portfolio-backend/models"
	"github.com/alexmalwine/portfolio-backend/resume"
)

func defaultWeights() config.MatchWeights {
	return config.Load().Weights
}

const backendResume = `Experience
- Built Go microservices and REST APIs on Kubernetes
- Operated Postgres and AWS infrastructure
- Led Docker adoption across teams
`

const marketingResume = `Experience
- Ran marketing campaigns with heavy SEO focus
- Managed CRM pipelines and analytics reporting
- Grew inbound leads 3x year over year
`

func TestComputeMatchScore_Bounds(t *testing.T) {
	profiles := []*models.ResumeProfile{
		resume.BuildResumeProfile(backendResume),
		resume.BuildResumeProfile(marketingResume),
		resume.BuildResumeProfile(""),
	}
	jobsToScore := []*models.JobOpening{
		{Title: "Backend Engineer", Keywords: []string{"go", "postgres", "kubernetes"}},
		{Title: "Marketing Manager", Keywords: []string{"marketing", "seo", "crm"}},
		{Title: "Receptionist"},
		{Title: "", Keywords: nil},
	}

	w := defaultWeights()
	for _, p := range profiles {
		for _, j := range jobsToScore {
			score := ComputeMatchScore(j, p, "", w)
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 1.0)
		}
	}
}

func TestComputeMatchScore_AlignedBeatsUnaligned(t *testing.T) {
	profile := resume.BuildResumeProfile(backendResume)
	w := defaultWeights()

	backendJob := &models.JobOpening{Title: "Backend Engineer", Keywords: []string{"go", "postgres", "kubernetes", "docker"}}
	marketingJob := &models.JobOpening{Title: "Marketing Manager", Keywords: []string{"marketing", "seo", "crm"}}

	backendScore := ComputeMatchScore(backendJob, profile, "", w)
	marketingScore := ComputeMatchScore(marketingJob, profile, "", w)

	assert.Greater(t, backendScore, marketingScore)
}

func TestComputeMatchScore_FloorKeepsZeroOverlapDistinct(t *testing.T) {
	profile := resume.BuildResumeProfile(backendResume)
	w := defaultWeights()

	// Keywords exist but overlap nothing in a backend résumé
	job := &models.JobOpening{Title: "Nurse", Keywords: []string{"nursing", "clinical"}}
	score := ComputeMatchScore(job, profile, "", w)

	assert.Greater(t, score, 0.0, "floor prevents a true zero")
}

func TestComputeMatchScore_FocusOnlyFallback(t *testing.T) {
	profile := resume.BuildResumeProfile(backendResume)
	w := defaultWeights()

	// No keywords provided and none derivable from the title
	job := &models.JobOpening{Title: "Receptionist"}
	score := ComputeMatchScore(job, profile, "", w)

	// Zero alignment: exactly the fallback base
	assert.InDelta(t, w.FocusOnlyBase, score, 1e-9)
}

func TestComputeMatchScore_MismatchPenaltyApplies(t *testing.T) {
	profile := resume.BuildResumeProfile(backendResume)
	require.NotEmpty(t, profile.FocusScores)

	w := defaultWeights()
	job := &models.JobOpening{
		Title:    "Marketing Manager",
		Keywords: []string{"marketing", "seo", "crm", "go", "postgres"},
	}

	withPenalty := ComputeMatchScore(job, profile, "", w)

	noPenalty := w
	noPenalty.MismatchPenalty = 0
	assert.InDelta(t, ComputeMatchScore(job, profile, "", noPenalty)-w.MismatchPenalty, withPenalty, 1e-9,
		"strongly-marketing job against strongly-backend résumé loses the penalty")
}

func TestComputeMatchScore_DesiredTitleBoosts(t *testing.T) {
	profile := resume.BuildResumeProfile(marketingResume)
	w := defaultWeights()

	job := &models.JobOpening{Title: "Golang Developer", Keywords: []string{"golang"}}

	plain := ComputeMatchScore(job, profile, "", w)
	boosted := ComputeMatchScore(job, profile, "Golang Developer", w)

	assert.Greater(t, boosted, plain, "matching desired title lifts the title component")
}

func TestComputeMatchScore_Deterministic(t *testing.T) {
	profile := resume.BuildResumeProfile(backendResume)
	w := defaultWeights()
	job := &models.JobOpening{Title: "Backend Engineer", Keywords: []string{"go", "aws"}}

	first := ComputeMatchScore(job, profile, "", w)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ComputeMatchScore(job, profile, "", w))
	}
}

func TestCosineAlignment(t *testing.T) {
	a := map[string]float64{"backend-engineering": 0.8, "devops": 0.4}

	assert.InDelta(t, 1.0, cosineAlignment(a, a), 1e-9, "identical vectors align perfectly")
	assert.Equal(t, 0.0, cosineAlignment(a, map[string]float64{"marketing": 0.9}), "disjoint vectors")
	assert.Equal(t, 0.0, cosineAlignment(a, map[string]float64{}), "empty vector")
}
