package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tomotune/tomotune/internal/app"
	"github.com/tomotune/tomotune/internal/config"
	"github.com/tomotune/tomotune/internal/constants"
	"github.com/tomotune/tomotune/internal/handlers"
	"github.com/tomotune/tomotune/internal/library"
	"github.com/tomotune/tomotune/internal/logger"
	"github.com/tomotune/tomotune/internal/store"
)

func main() {
	cfg := config.Load()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Initialize Logger
	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	// Initialize DB
	db, err := store.NewSQLiteDB(cfg.DBPath)
	if err != nil {
		appLogger.Error("Failed to init DB", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Initialize Services
	reconciler := library.New(cfg.MediaDir, cfg.TablePath, cfg.BaseURL, appLogger)
	libraryService := app.NewLibraryService(reconciler, db, appLogger)
	tasteService := app.NewTasteService(db, cfg.LearningRate, appLogger)

	// Seed the catalog before serving; the sync endpoint refreshes it
	// afterwards on demand.
	if _, err := libraryService.Refresh(); err != nil {
		appLogger.Error("Failed to refresh catalog", "error", err)
		os.Exit(1)
	}

	// Initialize Router
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Routes
	h := handlers.NewHandler(libraryService, tasteService, appLogger)
	h.RegisterRoutes(r)

	// Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
