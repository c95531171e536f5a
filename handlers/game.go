package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alexmalwine/portfolio-backend/models"
	"github.com/alexmalwine/portfolio-backend/service"
)

// GameHandler handles the company-guessing game endpoints
type GameHandler struct {
	svc *service.Service
}

// NewGameHandler creates a new game handler
func NewGameHandler(svc *service.Service) *GameHandler {
	return &GameHandler{svc: svc}
}

// StartGame starts a new guessing game from résumé text
// @Summary Start a guessing game
// @Description Runs the job-matching pipeline against the submitted résumé and seeds a letter-guessing game around one of the curated matches.
// @Tags Game
// @Accept json
// @Produce json
// @Param request body models.StartGameRequest true "Résumé text and optional search hints"
// @Success 200 {object} models.StartGameResponse "New game state"
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Failure 503 {object} models.ErrorResponse "Search unavailable or no usable matches"
// @Router /api/game/start [post]
func (h *GameHandler) StartGame(c *gin.Context) {
	var req models.StartGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "Invalid request body",
			Code:  http.StatusBadRequest,
		})
		return
	}

	resp, err := h.svc.StartGame(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	log.Printf("[Handler] Started game %s", resp.GameID)
	c.JSON(http.StatusOK, resp)
}

// Guess applies one letter guess to an active game
// @Summary Guess a letter
// @Description Applies a single A-Z guess to the game and returns the updated state. Terminal games return their final state unchanged.
// @Tags Game
// @Accept json
// @Produce json
// @Param id path string true "Game ID"
// @Param request body models.GuessRequest true "Single letter guess"
// @Success 200 {object} models.GuessResponse "Updated game state"
// @Failure 400 {object} models.ErrorResponse "Malformed letter"
// @Failure 404 {object} models.ErrorResponse "Unknown game id"
// @Router /api/game/{id}/guess [post]
func (h *GameHandler) Guess(c *gin.Context) {
	var req models.GuessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "Invalid request body",
			Code:  http.StatusBadRequest,
		})
		return
	}

	resp, err := h.svc.Guess(c.Param("id"), req.Letter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GameState returns the current state of a game without consuming a guess
// @Summary Get game state
// @Description Returns the current public state of a game.
// @Tags Game
// @Produce json
// @Param id path string true "Game ID"
// @Success 200 {object} models.GuessResponse "Current game state"
// @Failure 404 {object} models.ErrorResponse "Unknown game id"
// @Router /api/game/{id} [get]
func (h *GameHandler) GameState(c *gin.Context) {
	resp, err := h.svc.GameState(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// respondError maps the service error taxonomy onto HTTP statuses
func respondError(c *gin.Context, err error) {
	var vErr *models.ValidationError
	var nfErr *models.NotFoundError
	var upErr *models.UpstreamError
	var nmErr *models.NoMatchesError

	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: vErr.Error(),
			Code:  http.StatusBadRequest,
		})
	case errors.As(err, &nfErr):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: nfErr.Error(),
			Code:  http.StatusNotFound,
		})
	case errors.As(err, &upErr):
		log.Printf("[Handler] Upstream failure: %v", err)
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Error:   "Job search is temporarily unavailable",
			Code:    http.StatusServiceUnavailable,
			Details: upErr.Error(),
		})
	case errors.As(err, &nmErr):
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Error:   "No live job matches found for this résumé right now",
			Code:    http.StatusServiceUnavailable,
			Details: nmErr.Error(),
		})
	default:
		log.Printf("[Handler] Unexpected error: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Internal server error",
			Code:  http.StatusInternalServerError,
		})
	}
}
