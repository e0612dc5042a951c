package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures process-level configuration for the claims engine.
type Server struct {
	Addr          string
	DatabaseURL   string
	RedisURL      string
	KafkaBrokers  string
	AuditTopic    string
	DefaultBudget int64
	MaxClaims     int
	CooldownDays  int
}

// Defaults mirroring the original deployment: a 10-lakh budget pool, three
// claims per citizen, thirty days between claims.
const (
	DefaultBudget       = 1_000_000
	DefaultMaxClaims    = 3
	DefaultCooldownDays = 30
	DefaultAuditTopic   = "vitaran.audit"
)

// ShutdownTimeout bounds graceful shutdown of the HTTP server.
var ShutdownTimeout = 10 * time.Second

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("VITARAN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	auditTopic := os.Getenv("VITARAN_AUDIT_TOPIC")
	if auditTopic == "" {
		auditTopic = DefaultAuditTopic
	}

	return Server{
		Addr:          addr,
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisURL:      os.Getenv("REDIS_URL"),
		KafkaBrokers:  os.Getenv("KAFKA_BROKERS"),
		AuditTopic:    auditTopic,
		DefaultBudget: envInt64("VITARAN_DEFAULT_BUDGET", DefaultBudget),
		MaxClaims:     envInt("VITARAN_MAX_CLAIMS", DefaultMaxClaims),
		CooldownDays:  envInt("VITARAN_CLAIM_COOLDOWN_DAYS", DefaultCooldownDays),
	}
}

func envInt64(key string, fallback int64) int64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || parsed < 0 {
		return fallback
	}
	return parsed
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
