package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port string

	// Auth. Empty disables bearer checks on /api routes.
	DocdeckAPIKey string

	// Upload limits
	MaxUploadBytes int64

	// Batch builds
	BuildConcurrency int

	// Sessions
	SessionTTL  time.Duration
	MaxSessions int

	// Classification
	FigureClasses []string
	HeadingItem   bool

	// Page
	RevealVersion string

	// Headless fitting
	FitMaxSplits int
	FitViewport  float64

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		DocdeckAPIKey: os.Getenv("DOCDECK_API_KEY"),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		BuildConcurrency: envInt("BUILD_CONCURRENCY", 4),

		SessionTTL:  envDuration("SESSION_TTL", 1*time.Hour),
		MaxSessions: envInt("MAX_SESSIONS", 1000),

		FigureClasses: envList("FIGURE_CLASSES", []string{"image-reference"}),
		HeadingItem:   envBool("HEADING_ITEM", true),

		RevealVersion: envOr("REVEAL_VERSION", "4.1.2"),

		FitMaxSplits: envInt("FIT_MAX_SPLITS", 64),
		FitViewport:  envFloat("FIT_VIEWPORT", 700),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.BuildConcurrency <= 0 {
		cfg.BuildConcurrency = 4
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 1 * time.Hour
	}
	if cfg.FitMaxSplits < 0 {
		cfg.FitMaxSplits = 0
	}
	if cfg.FitViewport <= 0 {
		cfg.FitViewport = 700
	}

	return cfg
}

func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if len(c.FigureClasses) == 0 {
		return fmt.Errorf("FIGURE_CLASSES must name at least one class")
	}
	if c.RevealVersion == "" {
		return fmt.Errorf("REVEAL_VERSION must not be empty")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

// envList splits a comma-separated value, dropping blanks.
func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
