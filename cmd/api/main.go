package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ressKim-io/promptclf/internal/adapter/client"
	"github.com/ressKim-io/promptclf/internal/adapter/http/router"
	"github.com/ressKim-io/promptclf/internal/adapter/repository/postgres"
	"github.com/ressKim-io/promptclf/internal/infrastructure/config"
	"github.com/ressKim-io/promptclf/internal/infrastructure/database"
	"github.com/ressKim-io/promptclf/internal/infrastructure/logger"
	"github.com/ressKim-io/promptclf/internal/infrastructure/metrics"
	"github.com/ressKim-io/promptclf/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)

	ctx := context.Background()

	// Completion provider
	completer, err := client.NewCompleter(ctx, &cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to create completion provider: %w", err)
	}
	if cfg.LLM.APIKey == "" {
		log.Warn("No API key configured for completion provider", zap.String("provider", cfg.LLM.Provider))
	}
	log.Info("Completion provider ready", zap.String("provider", completer.Name()))

	// Evaluation history (optional)
	var (
		db           *gorm.DB
		evaluationUC usecase.EvaluationUsecase
	)
	if cfg.Database.Enabled {
		db, err = database.NewPostgresDB(&cfg.Database, log)
		if err != nil {
			log.Error("Failed to connect to database", zap.Error(err))
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer func() { _ = database.Close(db) }()
		log.Info("Connected to database")

		if err := database.AutoMigrate(db); err != nil {
			log.Error("Failed to run migrations", zap.Error(err))
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Info("Database migrations completed")

		evaluationUC = usecase.NewEvaluationUsecase(nil, nil,
			postgres.NewEvaluationRunRepository(db),
			postgres.NewEvaluationRecordRepository(db),
			log,
		)
	}

	// Setup router
	m := metrics.New(prometheus.DefaultRegisterer)
	r := router.Setup(router.Deps{
		ClassifyUC:   usecase.NewClassifyUsecase(completer, m),
		EvaluationUC: evaluationUC,
		DB:           db,
		Provider:     completer.Name(),
		Logger:       log,
	})

	// Create HTTP server. The write timeout must outlast a provider call.
	addr := cfg.Server.Address()
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.LLM.Timeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	serveErr := make(chan error, 1)
	go func() {
		log.Info("Starting server", zap.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Wait for interrupt signal or a failed listener
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	}

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
	return nil
}
