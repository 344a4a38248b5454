package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jbclements/t-test/internal"
	"github.com/jbclements/t-test/internal/config"
	"github.com/jbclements/t-test/internal/container"
	"github.com/jbclements/t-test/ui"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	logger := internal.NewDefaultLogger()
	internal.DefaultLogger = logger

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appContainer, err := container.Open(ctx, appConfig, logger)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer appContainer.Shutdown(context.Background())

	// Health and profiling endpoints on their own port
	if appConfig.Profiling.Enabled {
		ops := ui.NewOpsRouter(appContainer.HealthCheck, true)
		go func() {
			logger.Info("ops server (healthz, pprof) on :%s", appConfig.Profiling.Port)
			logger.Info("View profiles: go tool pprof -http=:8081 http://localhost:%s/debug/pprof/profile?seconds=30", appConfig.Profiling.Port)
			if err := http.ListenAndServe(":"+appConfig.Profiling.Port, ops); err != nil {
				logger.Error("ops server failed: %v", err)
			}
		}()
	}

	server := ui.NewServer(appContainer.Service, appConfig.Server, logger)
	httpServer := &http.Server{
		Addr:              ":" + appConfig.Server.Port,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting t-test API on http://localhost:%s", appConfig.Server.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed: %v", err)
	}
}
