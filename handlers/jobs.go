package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alexmalwine/portfolio-backend/models"
	"github.com/alexmalwine/portfolio-backend/service"
)

// JobsHandler handles the curated job-listing endpoint
type JobsHandler struct {
	svc *service.Service
}

// NewJobsHandler creates a new jobs handler
func NewJobsHandler(svc *service.Service) *JobsHandler {
	return &JobsHandler{svc: svc}
}

// TopJobs returns the full curated, ranked listing for a résumé
// @Summary Get top job matches
// @Description Runs the job-matching pipeline and returns every verified match above the quality floor, diversified across companies and company sizes.
// @Tags Jobs
// @Accept json
// @Produce json
// @Param request body models.TopJobsRequest true "Résumé text, optional search hints, optional result cap"
// @Success 200 {object} models.TopJobsResponse "Curated job listing"
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Failure 503 {object} models.ErrorResponse "Search unavailable or no usable matches"
// @Router /api/top-jobs [post]
func (h *JobsHandler) TopJobs(c *gin.Context) {
	var req models.TopJobsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "Invalid request body",
			Code:  http.StatusBadRequest,
		})
		return
	}

	resp, err := h.svc.GetTopJobs(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	log.Printf("[Handler] TopJobs success: returning %d results", resp.TotalResults)
	c.JSON(http.StatusOK, resp)
}

// HealthCheck returns server health status
// @Summary Health check
// @Description Check if the server is running and healthy
// @Tags System
// @Produce json
// @Success 200 {object} models.HealthResponse "Server is healthy"
// @Router /health [get]
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Version:   "1.0.0",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
