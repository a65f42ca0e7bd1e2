package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env  string
	Port int

	DBURL string

	// optional bootstrap user, skipped when empty
	SeedEmail    string
	SeedPassword string
	SeedFullname string

	SessionTTL      time.Duration
	MetricsCacheTTL time.Duration

	OTLPEndpoint   string
	AllowedOrigins []string
}

func Load() Config {
	// .env is for local dev only; absence is fine
	_ = godotenv.Load()

	env := getEnv("APP_ENV", "dev")
	port := getEnvInt("PORT", 8080)
	dbURL := buildDBURL()

	return Config{
		Env:             env,
		Port:            port,
		DBURL:           dbURL,
		SeedEmail:       getEnv("SEED_EMAIL", ""),
		SeedPassword:    getEnv("SEED_PASSWORD", ""),
		SeedFullname:    getEnv("SEED_FULLNAME", "Seed User"),
		SessionTTL:      time.Duration(getEnvInt("SESSION_TTL_DAYS", 7)) * 24 * time.Hour,
		MetricsCacheTTL: time.Duration(getEnvInt("METRICS_CACHE_TTL_SECONDS", 15)) * time.Second,
		OTLPEndpoint:    getEnv("OTLP_ENDPOINT", ""),
		AllowedOrigins:  []string{getEnv("CORS_ORIGIN", "http://localhost:5173")},
	}
}

func buildDBURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "mealtrack")
	pass := getEnv("DB_PASSWORD", "mealtrack")
	name := getEnv("DB_NAME", "mealtrack")
	ssl := getEnv("DB_SSLMODE", "disable")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			fmt.Println(err)
			return fallback
		}

		return num
	}
	return fallback
}
