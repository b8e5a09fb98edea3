package config

import (
	"fmt"
	"os"
)

// Config carries everything the process reads from the environment.
// It is populated once in main and passed down explicitly; no component
// reads env vars on its own.
type Config struct {
	HTTPAddr string
	DBDSN    string

	Storage StorageConfig
}

type StorageConfig struct {
	Driver string // local | s3

	LocalBaseDir   string
	LocalURLPrefix string

	S3Region        string
	S3Bucket        string
	S3Prefix        string
	S3PublicBaseURL string
}

func FromEnv() (Config, error) {
	cfg := Config{
		HTTPAddr: envOr("HTTP_ADDR", ":8080"),
		DBDSN:    os.Getenv("DB_DSN"),
		Storage: StorageConfig{
			Driver:          envOr("STORAGE_DRIVER", "local"),
			LocalBaseDir:    envOr("LOCAL_UPLOAD_DIR", "./storage/uploads"),
			LocalURLPrefix:  envOr("LOCAL_UPLOAD_URL_PREFIX", "/uploads"),
			S3Region:        os.Getenv("S3_REGION"),
			S3Bucket:        os.Getenv("S3_BUCKET"),
			S3Prefix:        envOr("S3_PREFIX", "uploads"),
			S3PublicBaseURL: os.Getenv("S3_PUBLIC_BASE_URL"),
		},
	}

	if cfg.DBDSN == "" {
		return Config{}, fmt.Errorf("DB_DSN environment variable is required")
	}
	if cfg.Storage.Driver == "s3" {
		if cfg.Storage.S3Region == "" || cfg.Storage.S3Bucket == "" || cfg.Storage.S3PublicBaseURL == "" {
			return Config{}, fmt.Errorf("S3 config missing: S3_REGION, S3_BUCKET, S3_PUBLIC_BASE_URL required")
		}
	}
	return cfg, nil
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
