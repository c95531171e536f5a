package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/alexmalwine/portfolio-backend/config"
	"github.com/alexmalwine/portfolio-backend/handlers"
	"github.com/alexmalwine/portfolio-backend/search"
	"github.com/alexmalwine/portfolio-backend/service"
	"github.com/alexmalwine/portfolio-backend/verify"
)

// @title Unemployedle API
// @version 1.0
// @description Résumé-driven job matching with a company-guessing game on top.

// @host localhost:8080
// @BasePath /

func main() {
	// Load .env file if present (for local development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Set Gin mode based on debug setting
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create context for initialization
	ctx := context.Background()

	// Initialize the Gemini search/rank client
	log.Println("Initializing Gemini client...")
	geminiClient, err := search.NewGeminiClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Gemini client: %v", err)
	}
	defer geminiClient.Close()
	log.Println("Gemini client initialized successfully")

	// Wire the pipeline
	verifier := verify.NewVerifier(cfg)
	svc := service.New(cfg, geminiClient, geminiClient, verifier)

	// Create handlers
	gameHandler := handlers.NewGameHandler(svc)
	jobsHandler := handlers.NewJobsHandler(svc)

	// Create Gin router
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	// Configure CORS for the portfolio frontend
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173", "*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Register routes
	router.GET("/health", handlers.HealthCheck)

	api := router.Group("/api")
	{
		gameGroup := api.Group("/game")
		{
			gameGroup.POST("/start", gameHandler.StartGame)
			gameGroup.GET("/:id", gameHandler.GameState)
			gameGroup.POST("/:id/guess", gameHandler.Guess)
		}

		api.POST("/top-jobs", jobsHandler.TopJobs)
	}

	// Create HTTP server. Write timeout exceeds the upstream search timeout
	// so a slow LLM call is surfaced as a 503, not a dropped connection.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: cfg.SearchTimeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on port %s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}
