package main

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/anilaldemir-collab/certificate-checker/internal/config"
	"github.com/anilaldemir-collab/certificate-checker/internal/evidence"
	"github.com/anilaldemir-collab/certificate-checker/internal/genai"
	"github.com/anilaldemir-collab/certificate-checker/internal/handler"
	"github.com/anilaldemir-collab/certificate-checker/internal/middleware"
	"github.com/anilaldemir-collab/certificate-checker/internal/search"
	"github.com/anilaldemir-collab/certificate-checker/internal/service"
	"github.com/anilaldemir-collab/certificate-checker/internal/session"
)

// main is the single entry-point for the REST API.
func main() {
	// Load configuration
	cfg := config.Load()
	log.Printf("Configuration loaded:")
	log.Printf("  - Search region: %s", cfg.SearchRegion)
	log.Printf("  - Response language: %s", cfg.ResponseLanguage)
	if cfg.GoogleAPIKey == "" {
		log.Printf("  - GOOGLE_API_KEY not set: AI paths disabled, search-only paths remain usable")
	}

	// Persona table (built-in, optionally overridden from file)
	personas, err := genai.LoadPersonas(cfg.PersonasFile)
	if err != nil {
		log.Fatalf("Failed to load personas: %v", err)
	}
	log.Printf("Loaded %d persona(s)", len(personas))

	// External collaborators
	searcher := search.NewCache(search.NewClient(cfg.SearchRegion, cfg.SearchTimeout))
	verifier := evidence.NewVerifier(cfg.SearchTimeout)
	aiClient := genai.NewClient(cfg.GoogleAPIKey)

	// Initialize services
	analysisSvc := service.NewAnalysisService(searcher, verifier)
	consultSvc := service.NewConsultService(aiClient, personas, cfg.ResponseLanguage, cfg.GenerateTimeout)
	councilSvc := service.NewCouncilService(consultSvc)
	lensSvc := service.NewLensService(session.NewStore(), consultSvc, analysisSvc)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	// Add middleware
	app.Use(middleware.Logging())

	// Register routes
	handler.RegisterRoutes(app, analysisSvc, consultSvc, councilSvc, lensSvc)

	// Add health check
	handler.NewHealthHandler(aiClient).Register(app)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
