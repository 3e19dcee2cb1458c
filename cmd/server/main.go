package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/blog-api/internal/api"
	"github.com/blog-api/internal/config"
	"github.com/blog-api/internal/database"
	"github.com/blog-api/internal/repository"
	"github.com/blog-api/internal/service"
	"github.com/blog-api/internal/storage"
	"github.com/blog-api/pkg/logger"
)

func main() {
	// Initialize logger
	log := logger.New()
	log.Info().Msg("Starting Blog API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Ensure indexes (unique title)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.ConnectTimeout)
	if err := db.EnsureIndexes(ctx); err != nil {
		cancel()
		log.Fatal().Err(err).Msg("Failed to ensure database indexes")
	}
	cancel()

	// Initialize file store
	files, err := storage.NewLocalFileStore(cfg.Upload.Dir, cfg.Upload.MaxUploadSize, cfg.Upload.MaxImageWidth, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize file store")
	}

	// Initialize repositories
	repos := repository.New(db)

	// Initialize services
	services := service.NewServices(repos, files, cfg, log)

	// Start background file cleanup processor
	go services.Cleanup.StartProcessor(context.Background())
	log.Info().Msg("Background file cleanup processor started")

	// Initialize router
	router := api.NewRouter(services, cfg, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	// Stop cleanup processor
	services.Cleanup.StopProcessor()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}
