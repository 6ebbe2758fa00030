// Package config builds runtime configuration from environment variables so
// main stays lean. Process-wide toggles are carried here as explicit values
// and passed into constructors; domain code never reads the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures the full runtime configuration.
type Server struct {
	Addr          string
	DatabaseURL   string
	Redis         RedisConfig
	KafkaBrokers  []string
	AuditTopic    string
	JWTSigningKey string
	LookaheadDays int
	SummaryTTL    time.Duration
	RateLimit     int
	StrictReview  bool
}

// RedisConfig holds the optional summary cache backend settings.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Server config from environment variables.
//
// DATABASE_URL is the one required setting: compliance data has to land
// somewhere, and starting without a backend would silently drop every
// reconciliation. This is the only fail-fast point; the engine itself
// degrades to safe defaults instead of failing.
func FromEnv() (Server, error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return Server{}, fmt.Errorf("DATABASE_URL is required")
	}

	addr := os.Getenv("NACHWEIS_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	lookaheadDays := 30
	if v := os.Getenv("LOOKAHEAD_DAYS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			lookaheadDays = parsed
		}
	}

	rateLimit := 120
	if v := os.Getenv("RATE_LIMIT_PER_MINUTE"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			rateLimit = parsed
		}
	}

	var brokers []string
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		brokers = strings.Split(v, ",")
	}
	auditTopic := os.Getenv("AUDIT_TOPIC")
	if auditTopic == "" {
		auditTopic = "nachweis.audit"
	}

	return Server{
		Addr:          addr,
		DatabaseURL:   databaseURL,
		Redis:         redisFromEnv(),
		KafkaBrokers:  brokers,
		AuditTopic:    auditTopic,
		JWTSigningKey: jwtSigningKey,
		LookaheadDays: lookaheadDays,
		SummaryTTL:    5 * time.Minute,
		RateLimit:     rateLimit,
		StrictReview:  os.Getenv("STRICT_REVIEW") == "true",
	}, nil
}

func redisFromEnv() RedisConfig {
	return RedisConfig{
		URL:          os.Getenv("REDIS_URL"),
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}
