package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth
	DDRAPIKey string

	// Gemini narrative generation
	GeminiAPIKey string
	GeminiModel  string
	GenerateRPM  int

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration

	// PDF
	PDFFallbackPdftotext bool

	// Report output
	OutputDir string

	// Structuring knobs
	ThermalImagesPerArea int
	MaxAreaDescChars     int
	MaxRawContentChars   int
	MaxChecklistChars    int
	SiteFallbackChars    int
	DegradedRawChars     int
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		DDRAPIKey: os.Getenv("DDR_API_KEY"),

		GeminiAPIKey: envOr("GEMINI_API_KEY", os.Getenv("GOOGLE_API_KEY")),
		GeminiModel:  envOr("GEMINI_MODEL", "gemini-2.5-flash"),
		GenerateRPM:  envInt("GENERATE_RPM", 10),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),

		OutputDir: envOr("OUTPUT_DIR", "output"),

		ThermalImagesPerArea: envInt("THERMAL_IMAGES_PER_AREA", 3),
		MaxAreaDescChars:     envInt("MAX_AREA_DESC_CHARS", 400),
		MaxRawContentChars:   envInt("MAX_RAW_CONTENT_CHARS", 600),
		MaxChecklistChars:    envInt("MAX_CHECKLIST_CHARS", 3000),
		SiteFallbackChars:    envInt("SITE_FALLBACK_CHARS", 800),
		DegradedRawChars:     envInt("DEGRADED_RAW_CHARS", 2000),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.ThermalImagesPerArea <= 0 {
		cfg.ThermalImagesPerArea = 3
	}

	return cfg
}

func (c Config) Validate() error {
	if c.DDRAPIKey == "" {
		return fmt.Errorf("DDR_API_KEY is required")
	}
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
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
