package config

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/folio/internal/logfields"
)

// Environment variables that override file configuration.
const (
	EnvRoot        = "FOLIO_ROOT"
	EnvGallery     = "FOLIO_GALLERY"
	EnvCollections = "FOLIO_COLLECTIONS"
)

// loadEnvFile loads environment variables from .env/.env.local in dir.
// It stops at the first file that parses. Existing process variables are not overwritten.
func loadEnvFile(dir string) {
	for _, name := range []string{".env", ".env.local"} {
		envPath := filepath.Join(dir, name)
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			slog.Warn("Failed to load env file", logfields.Path(envPath), logfields.Error(err))
			continue
		}
		slog.Debug("Loaded environment variables", logfields.Path(envPath))
		return
	}
}

// applyEnvOverrides lets FOLIO_* variables take precedence over the file.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvRoot); v != "" {
		cfg.Root = v
	}
	if v := os.Getenv(EnvGallery); v != "" {
		cfg.Gallery.Document = v
	}
	if v := os.Getenv(EnvCollections); v != "" {
		cfg.Collections.Document = v
	}
}
