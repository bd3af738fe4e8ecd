package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration. It is built once in main and
// passed down explicitly; nothing reads the environment after Load.
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string

	// Discovery defaults
	DefaultRadiusKm  float64 // search radius when no child preference sets one
	DefaultPriceMax  float64 // global price ceiling fallback
	BudgetCeiling    float64 // price cap forced by the budget screen
	ClusterThreshold float64 // degrees, map clustering proximity
	MaxPageSize      int
}

// Load reads configuration from the environment with sensible defaults.
// A .env file is honored when present.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	return &Config{
		Port:             getEnv("PORT", ":8080"),
		DBPath:           getEnv("DB_PATH", "./data/activities.db"),
		JWTSecret:        getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		DefaultRadiusKm:  getEnvFloat("DEFAULT_RADIUS_KM", 25),
		DefaultPriceMax:  getEnvFloat("DEFAULT_PRICE_MAX", 500),
		BudgetCeiling:    getEnvFloat("BUDGET_CEILING", 50),
		ClusterThreshold: getEnvFloat("CLUSTER_THRESHOLD", 0.001),
		MaxPageSize:      getEnvInt("MAX_PAGE_SIZE", 500),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
