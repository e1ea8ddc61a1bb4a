// Package config centralises all environment / flag configuration for the API.
// It should be imported only by `cmd/server` (and test code). Business-logic
// layers receive an already-built Config instance via dependency-injection.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime option the server needs.
// Keep it flat and simple—prefer primitive types over embedding structs.
type Config struct {
	// Network
	Port string

	// External services
	GoogleAPIKey string // optional: AI paths are disabled when empty
	SearchRegion string // DuckDuckGo locale hint, e.g. "wt-wt", "tr-tr"

	// Presentation
	ResponseLanguage string // language the AI is asked to answer in
	PersonasFile     string // optional YAML overriding the built-in personas

	// Server tuning
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	SearchTimeout   time.Duration // per-backend bound on one search call
	GenerateTimeout time.Duration // bound on one AI generation call
}

// Load parses the environment (and an optional .env file) into Config.
// The AI credential is deliberately not required: a missing key degrades the
// AI paths with a visible notice instead of failing startup.
func Load() Config {
	// godotenv.Load() is a no-op if .env doesn't exist—safe in production.
	_ = godotenv.Load()

	return Config{
		Port:             getEnv("PORT", "8080"),
		GoogleAPIKey:     os.Getenv("GOOGLE_API_KEY"),
		SearchRegion:     getEnv("SEARCH_REGION", "wt-wt"),
		ResponseLanguage: getEnv("RESPONSE_LANGUAGE", "English"),
		PersonasFile:     os.Getenv("PERSONAS_FILE"),
		ReadTimeout:      getDuration("READ_TIMEOUT_SEC", 5),
		WriteTimeout:     getDuration("WRITE_TIMEOUT_SEC", 60),
		SearchTimeout:    getDuration("SEARCH_TIMEOUT_SEC", 15),
		GenerateTimeout:  getDuration("GENERATE_TIMEOUT_SEC", 45),
	}
}

// getEnv returns env[key] if set, otherwise defaultVal.
func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getDuration reads an integer (seconds) from env, falling back to defaultSec.
func getDuration(key string, defaultSec int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if sec, err := strconv.Atoi(v); err == nil {
			return time.Duration(sec) * time.Second
		}
		log.Printf("invalid %s=%q; using default %ds", key, v, defaultSec)
	}
	return time.Duration(defaultSec) * time.Second
}
