package main

import (
	"context"
	"log"
	"os"

	"log/slog"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	appconfig "github.com/binhminh2409/WebXeDapApi/internal/config"
	apphttp "github.com/binhminh2409/WebXeDapApi/internal/http"
	"github.com/binhminh2409/WebXeDapApi/internal/storage"
)

func main() {
	// Load .env file (ignore error if not found - prod uses real env vars)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := appconfig.FromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := gorm.Open(mysql.Open(cfg.DBDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	store, err := storage.FromConfig(context.Background(), cfg.Storage)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	logger.Info("storage_ready", slog.String("driver", store.Driver))

	r := apphttp.NewRouter(logger, db, store.Storage)
	logger.Info("listening", slog.String("addr", cfg.HTTPAddr))
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
