package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/rBrgv/KRF-sub000/api"
	"github.com/rBrgv/KRF-sub000/config"
	"github.com/rBrgv/KRF-sub000/database"
	"github.com/rBrgv/KRF-sub000/middleware"
	"github.com/rBrgv/KRF-sub000/repository"
	"github.com/rBrgv/KRF-sub000/services"
)

func main() {
	// Load application configuration
	config.LoadConfig()
	cfg := config.AppConfig

	// Initialize database connection and schema
	db, err := database.Init(cfg.Database.DSN)
	if err != nil {
		log.Fatalf("FATAL: [Main] Failed to initialize database: %v", err)
	}

	// Questionnaire
	catalog, err := services.LoadCatalog(cfg.Assessment.DefinitionPath)
	if err != nil {
		log.Fatalf("FATAL: [Main] Failed to load questionnaire: %v", err)
	}
	log.Printf("INFO: [Main] Questionnaire loaded: %d questions in %d sections.", len(catalog.Questions()), len(catalog.Sections()))

	// Initialize Repositories
	leadRepo := repository.NewLeadRepository(db)
	assessmentRepo := repository.NewAssessmentRepository(db)
	log.Println("INFO: [Main] Repositories initialized.")

	// Initialize Services
	scorer := services.NewScoringEngine(catalog)
	recommender := services.NewRecommendationEngine(catalog.Rules(), cfg.Assessment.MaxRecommendations, cfg.Assessment.AttentionRatio)
	assessmentService := services.NewAssessmentService(assessmentRepo, catalog, scorer, recommender)
	log.Println("INFO: [Main] Services initialized.")

	apiHandler := api.NewAPIHandler(leadRepo, assessmentService)

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.SetTrustedProxies(nil)

	// Register middlewares
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Cors(cfg.CORS.AllowedOrigins))
	log.Println("INFO: [Main] Middlewares registered.")

	api.RegisterRoutes(r, apiHandler)
	log.Println("INFO: [Main] Routes registered.")

	serverPort := ":" + cfg.Server.Port
	if cfg.Server.Port == "" {
		log.Println("WARN: [Main] Server port not configured, using default :8080.")
		serverPort = ":8080"
	}
	srv := &http.Server{Addr: serverPort, Handler: r}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("INFO: [Main] Starting server on port %s", serverPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Println("INFO: [Main] Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("FATAL: [Main] Server failed: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Println("INFO: [Main] Server stopped.")
}
