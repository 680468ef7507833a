package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL  string
	RedisURL     string
	OpenAIKey    string
	MetricsPort  string
	HTTPPort     string
	MaxResults   int
	MockScrapers bool
}

func Load() *Config {
	// Loads .env from the project root when run via cmd/, then falls back
	// to the current directory.
	_ = godotenv.Load("../../.env")
	_ = godotenv.Load()
	return &Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RedisURL:     os.Getenv("REDIS_URL"),
		OpenAIKey:    os.Getenv("OPENAI_API_KEY"),
		MetricsPort:  getEnv("METRICS_PORT", "9090"),
		HTTPPort:     getEnv("HTTP_PORT", "8080"),
		MaxResults:   getEnvInt("MAX_RESULTS", 10),
		MockScrapers: getEnv("MOCK_SCRAPERS", "") == "true",
	}
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getEnvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return d
}
