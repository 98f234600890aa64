// finetune-mockd runs a local mock of the fine-tunes API for
// development and demos. Point finetunectl at it with
// OPENAI_API_BASE=http://localhost:8181 and any non-empty key.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/tunewell/finetune-go/internal/config"
	"github.com/tunewell/finetune-go/internal/mockapi"
	"github.com/tunewell/finetune-go/internal/telemetry"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	shutdown, err := telemetry.InitTracer("finetune-mockd", logger)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Error("failed to shutdown tracer", slog.String("error", err.Error()))
		}
	}()

	if err := os.MkdirAll(filepath.Dir(cfg.Mock.DBPath), 0o755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	store, err := mockapi.NewStore(cfg.Mock.DBPath)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	srv := mockapi.New(cfg.Mock.Port, store, logger)
	if err := srv.Start(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
