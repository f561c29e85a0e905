package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"prompt_generator_server/config"
	"prompt_generator_server/internal/ai"
	"prompt_generator_server/internal/api"
	"prompt_generator_server/internal/store"
	"prompt_generator_server/internal/templates"
	"prompt_generator_server/internal/workflow"
)

func main() {
	// --- Load .env file ---
	// Must happen before viper reads the environment.
	err := godotenv.Load()
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("error loading .env file", "error", err)
		} else {
			slog.Info(".env file not found, relying on system environment variables")
		}
	} else {
		slog.Info("loaded environment variables from .env file")
	}

	// --- Configuration Loading ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("cannot load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	// --- Dependency Initialization ---
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	promptStore, err := store.Open(cfg.StorePath, logger)
	if err != nil {
		logger.Error("cannot open prompt store", "path", cfg.StorePath, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := promptStore.Close(); err != nil {
			logger.Warn("prompt store close failed", "error", err)
		}
	}()

	registry := templates.NewRegistry()
	generator := ai.NewGenerator(cfg.GeminiAPIKey, cfg.AIBaseURL, cfg.RequestTimeout)
	wf := workflow.New(ctx, registry, generator, promptStore, cfg.ModelID, logger)

	apiHandler := api.NewAPIHandler(wf, registry, logger)

	// --- Start API Server ---
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
		logger.Info("running in gin debug mode")
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	api.RegisterRoutes(router, apiHandler)

	server := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: router,
		// Generate and improve wait on the remote call.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting API server", "address", cfg.ServerAddress)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("API server listen error", "error", err)
			os.Exit(1)
		}
		logger.Info("API server has stopped listening")
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("received signal, shutting down server", "signal", sig.String())

	shutdownCtx, serverCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer serverCancel()

	cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("API server forced shutdown", "error", err)
	} else {
		logger.Info("API server gracefully stopped")
	}

	logger.Info("application exiting")
}
