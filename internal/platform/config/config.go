package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr          string
	OwnerWallet   string
	MonthlyQuota  int64
	JWTSigningKey string
	JWTTTL        time.Duration

	PostgresURL  string
	RedisURL     string
	KafkaBrokers []string
	EventsTopic  string
}

// FromEnv builds a Server config from environment variables so main stays
// lean.
func FromEnv() Server {
	cfg := Server{
		Addr:          envOr("CONDO_ADDR", ":8080"),
		OwnerWallet:   os.Getenv("CONDO_OWNER_WALLET"),
		MonthlyQuota:  envInt64("CONDO_MONTHLY_QUOTA", 10_000),
		JWTSigningKey: os.Getenv("CONDO_JWT_SIGNING_KEY"),
		JWTTTL:        envDuration("CONDO_JWT_TTL", 30*time.Minute),
		PostgresURL:   os.Getenv("CONDO_POSTGRES_URL"),
		RedisURL:      os.Getenv("CONDO_REDIS_URL"),
		EventsTopic:   envOr("CONDO_EVENTS_TOPIC", "condo.events"),
	}
	if brokers := os.Getenv("CONDO_KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	if cfg.JWTSigningKey == "" {
		// Use a default for development - should be overridden in production
		cfg.JWTSigningKey = "dev-secret-key-change-in-production"
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
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

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
