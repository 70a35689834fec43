package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DatabaseURL string

	// Redis
	RedisURL string

	// Advisor LLM
	AdvisorProvider    string // "groq" or "gemini"
	GroqAPIKey         string
	GroqBaseURL        string
	GroqModel          string
	GeminiAPIKey       string
	AdvisorConcurrency int

	// Translation (farmers often write in their own language)
	TranslationEnabled bool
	TranslatePrimary   string
	TranslateSecondary string

	// CORS
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:               getEnvOrDefault("PORT", "8000"),
		Env:                getEnvOrDefault("ENV", "development"),
		DatabaseURL:        mustGetEnv("DATABASE_URL"),
		RedisURL:           mustGetEnv("REDIS_URL"),
		AdvisorProvider:    getEnvOrDefault("ADVISOR_PROVIDER", "groq"),
		GroqAPIKey:         getEnvOrDefault("GROQ_API_KEY", ""),
		GroqBaseURL:        getEnvOrDefault("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		GroqModel:          getEnvOrDefault("GROQ_MODEL", "llama-3.3-70b-versatile"),
		GeminiAPIKey:       getEnvOrDefault("GEMINI_API_KEY", ""),
		AdvisorConcurrency: getEnvAsIntOrDefault("ADVISOR_CONCURRENT_REQUESTS", 3),
		TranslationEnabled: getEnvOrDefault("TRANSLATION_ENABLED", "true") == "true",
		TranslatePrimary:   getEnvOrDefault("TRANSLATE_MODEL_PRIMARY", "openai/gpt-oss-20b"),
		TranslateSecondary: getEnvOrDefault("TRANSLATE_MODEL_SECONDARY", "moonshotai/kimi-k2-instruct-0905"),
		FrontendURL:        getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
