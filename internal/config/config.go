package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	defaultPort        = "8080"
	defaultJWTTTL      = "24h"
	defaultFullDays    = "7"
	defaultPartialDays = "3"
	defaultPartialPct  = "50"
	defaultDatabaseURL = "coworking.db"
)

// RefundPolicy decides how much of a cancelled booking flows back to the
// wallet, based on how many days remain before the booking date.
type RefundPolicy struct {
	FullRefundDays    int // cancel at least this many days ahead: 100%
	PartialRefundDays int // at least this many days ahead: PartialPercent
	PartialPercent    int
}

type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	JWTTTL      time.Duration
	Refund      RefundPolicy
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:        envOr("PORT", defaultPort),
		DatabaseURL: envOr("DATABASE_URL", defaultDatabaseURL),
		JWTSecret:   os.Getenv("JWT_SECRET"),
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is empty")
	}

	ttl, err := time.ParseDuration(envOr("JWT_TTL", defaultJWTTTL))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}
	cfg.JWTTTL = ttl

	cfg.Refund.FullRefundDays, err = envInt("REFUND_FULL_DAYS", defaultFullDays)
	if err != nil {
		return nil, err
	}
	cfg.Refund.PartialRefundDays, err = envInt("REFUND_PARTIAL_DAYS", defaultPartialDays)
	if err != nil {
		return nil, err
	}
	cfg.Refund.PartialPercent, err = envInt("REFUND_PARTIAL_PERCENT", defaultPartialPct)
	if err != nil {
		return nil, err
	}
	if cfg.Refund.PartialPercent < 0 || cfg.Refund.PartialPercent > 100 {
		return nil, fmt.Errorf("REFUND_PARTIAL_PERCENT out of range")
	}

	return cfg, nil
}

func envOr(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func envInt(name, def string) (int, error) {
	v, err := strconv.Atoi(envOr(name, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return v, nil
}
