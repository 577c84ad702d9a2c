package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Ai        AIConfig
	Retrieval RetrievalConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type AIConfig struct {
	OpenAIAPIKey string
	Model        string
	Temperature  float64
	MaxTokens    int
	MaxRetries   int
}

type RetrievalConfig struct {
	PreferredDomain string
	OrgName         string
	ProxyHost       string
	MaxResults      int
	MaxChars        int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8080"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Ai: AIConfig{
			OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
			Model:        getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			Temperature:  getEnvAsFloat("OPENAI_TEMPERATURE", 0.7),
			MaxTokens:    getEnvAsInt("OPENAI_MAX_TOKENS", 500),
			MaxRetries:   getEnvAsInt("GENERATION_MAX_RETRIES", 2),
		},
		Retrieval: RetrievalConfig{
			PreferredDomain: getEnv("PREFERRED_DOMAIN", "harbour.space"),
			OrgName:         getEnv("ORG_NAME", "Harbour.Space"),
			ProxyHost:       getEnv("READABILITY_PROXY_HOST", "r.jina.ai"),
			MaxResults:      getEnvAsInt("SEARCH_MAX_RESULTS", 3),
			MaxChars:        getEnvAsInt("DOCUMENT_MAX_CHARS", 3000),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
