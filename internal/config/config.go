package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr      string
	PersistBackend  string
	DBPath          string
	StatePath       string
	AIBackend       string
	OpenAIAPIKey    string
	OpenAIModel     string
	AnthropicAPIKey string
	ClaudeModel     string
	OCRBackend      string
	TaxonomyPath    string
	LogLevel        string
	LogFormat       string
	LogFile         string
}

func Load() *Config {
	// A missing .env file is fine; real environment variables win either way.
	_ = godotenv.Load()

	return &Config{
		ListenAddr:      getEnv("LISTEN_ADDR", ":8080"),
		PersistBackend:  getEnv("PERSIST_BACKEND", "sqlite"),
		DBPath:          getEnv("DB_PATH", "/data/checklister.db"),
		StatePath:       getEnv("STATE_PATH", "/data/checklist.json"),
		AIBackend:       getEnv("AI_BACKEND", ""),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		ClaudeModel:     getEnv("CLAUDE_MODEL", "claude-3-5-sonnet-20241022"),
		OCRBackend:      getEnv("OCR_BACKEND", ""),
		TaxonomyPath:    getEnv("TAXONOMY_PATH", ""),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
		LogFile:         getEnv("LOG_FILE", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}
