// @title matterdesk API
// @version 1.0
// @description Legal matter management with LLM-backed contract field extraction.
// @BasePath /api/v1
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "matterdesk/docs"
	"matterdesk/internal/config"
	"matterdesk/internal/document"
	"matterdesk/internal/extraction"
	"matterdesk/internal/handler"
	"matterdesk/internal/ollama"
	"matterdesk/internal/repository/postgres"
	"matterdesk/internal/router"
	"matterdesk/internal/service"
	"matterdesk/internal/storage"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := config.InitLogger(cfg.Log); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer func() { _ = zap.L().Sync() }()

	if !cfg.Server.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(&cfg.DB); err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
		zap.L().Info("migrations applied")
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	lawyerRepo := postgres.NewLawyerRepo(db)
	matterRepo := postgres.NewLegalMatterRepo(db)
	extractionRepo := postgres.NewContractExtractionRepo(db)
	statsRepo := postgres.NewStatsRepo(db)

	// Initialize storage
	store, bucket, err := storage.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Initialize extraction stack
	llm := ollama.NewClient(&cfg.Ollama)
	extractor, err := document.NewExtractor(cfg.Document)
	if err != nil {
		return fmt.Errorf("failed to initialize document extractor: %w", err)
	}
	model := cfg.Extraction.Model
	if model == "" {
		model = llm.DefaultModel()
	}
	pipeline := extraction.NewPipeline(llm, model, cfg.Extraction)

	// Initialize services
	contractSvc := service.NewContractService(extractionRepo, store, bucket, extractor, pipeline, llm, cfg.Contract)
	matterSvc := service.NewMatterService(matterRepo, lawyerRepo, extractionRepo)
	lawyerSvc := service.NewLawyerService(lawyerRepo, matterRepo)
	statsSvc := service.NewStatsService(statsRepo)

	// Setup router
	r := router.Setup(router.Handlers{
		Health:   handler.NewHealthHandler(db, llm),
		Contract: handler.NewContractHandler(contractSvc, cfg.Contract.MaxFileSizeBytes()),
		Matter:   handler.NewMatterHandler(matterSvc),
		Lawyer:   handler.NewLawyerHandler(lawyerSvc),
		Stats:    handler.NewStatsHandler(statsSvc),
	}, cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("server starting",
			zap.String("addr", cfg.Server.Port),
			zap.String("ollama", cfg.Ollama.BaseURL),
			zap.String("model", pipeline.Model()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zap.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
