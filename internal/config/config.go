package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Model call shapes.
const (
	ModeGenerate = "generate"
	ModeChat     = "chat"
)

// Default content caps per call shape, in characters.
const (
	DefaultGenerateContentCap = 30000
	DefaultChatContentCap     = 10000
)

// Config holds all configuration for the application.
type Config struct {
	// Google Cloud
	ProjectID string
	Region    string

	// Model
	ModelName       string
	ModelMode       string
	ContentMaxChars int
	MaxOutputTokens int32
	Temperature     float32
	TopP            float32
	TopK            float32

	// Server
	Port            string
	ShutdownTimeout time.Duration

	// Logging
	LogLevel  slog.Level
	LogFormat string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates the rest.
// If a .env file exists in the current directory or one of its parents, it is loaded first.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	loadDotEnv()

	cfg := &Config{
		ProjectID: getEnv("GOOGLE_CLOUD_PROJECT", "your-project-id"),
		Region:    getEnv("GOOGLE_CLOUD_REGION", "us-central1"),
		ModelName: getEnv("GEMINI_MODEL", "gemini-1.0-pro"),
		ModelMode: strings.ToLower(getEnv("MODEL_MODE", ModeGenerate)),
		Port:      getEnv("PORT", "8080"),
		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}

	switch cfg.ModelMode {
	case ModeGenerate, ModeChat:
	default:
		return nil, fmt.Errorf("MODEL_MODE must be %q or %q, got %q", ModeGenerate, ModeChat, cfg.ModelMode)
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("LOG_FORMAT must be \"text\" or \"json\", got %q", cfg.LogFormat)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL is invalid: %w", err)
	}

	// The cap follows the call shape unless set explicitly.
	defaultCap := DefaultGenerateContentCap
	if cfg.ModelMode == ModeChat {
		defaultCap = DefaultChatContentCap
	}
	contentCap, err := getEnvInt("CONTENT_MAX_CHARS", defaultCap)
	if err != nil {
		return nil, err
	}
	if contentCap <= 0 {
		return nil, fmt.Errorf("CONTENT_MAX_CHARS must be greater than 0")
	}
	cfg.ContentMaxChars = contentCap

	maxTokens, err := getEnvInt("MAX_OUTPUT_TOKENS", 1000)
	if err != nil {
		return nil, err
	}
	if maxTokens <= 0 {
		return nil, fmt.Errorf("MAX_OUTPUT_TOKENS must be greater than 0")
	}
	cfg.MaxOutputTokens = int32(maxTokens)

	if cfg.Temperature, err = getEnvFloat("TEMPERATURE", 0.2); err != nil {
		return nil, err
	}
	if cfg.Temperature < 0 || cfg.Temperature > 2 {
		return nil, fmt.Errorf("TEMPERATURE must be between 0 and 2")
	}

	if cfg.TopP, err = getEnvFloat("TOP_P", 0.8); err != nil {
		return nil, err
	}
	if cfg.TopP <= 0 || cfg.TopP > 1 {
		return nil, fmt.Errorf("TOP_P must be in (0, 1]")
	}

	topK, err := getEnvInt("TOP_K", 40)
	if err != nil {
		return nil, err
	}
	if topK <= 0 {
		return nil, fmt.Errorf("TOP_K must be greater than 0")
	}
	cfg.TopK = float32(topK)

	shutdown := getEnv("SHUTDOWN_TIMEOUT", "30s")
	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdown); err != nil {
		return nil, fmt.Errorf("SHUTDOWN_TIMEOUT must be a valid duration: %w", err)
	}

	return cfg, nil
}

// loadDotEnv loads the nearest .env file, walking up from the working directory.
// godotenv never overrides variables that are already set.
func loadDotEnv() {
	wd, err := os.Getwd()
	if err != nil {
		return
	}
	dir := wd
	for i := 0; i < 5; i++ {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, defaultValue float32) (float32, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(raw, 32)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid number: %w", key, err)
	}
	return float32(f), nil
}
