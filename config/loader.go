package config

// loader.go - configuration loading from environment variables.
//
// Precedence order (highest wins):
//   1. CLI flags and positional arguments  (handled by cmd/root.go)
//   2. Environment variables  (this file)
//   3. Defaults   (defaults.go)

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ── Environment variable mapping ─────────────────────────────────────
//
// Every supported env var uses the GORELAY_ prefix.  Boolean values
// accept "1", "true", "yes" (case-insensitive).

// LoadFromEnv overlays environment variables onto cfg.  Only non-empty
// env vars override the existing value.  This should be called BEFORE
// CLI flag parsing so that flags take precedence.
func LoadFromEnv(cfg *Config) {
	if v := envInt("GORELAY_PORT"); v > 0 {
		cfg.Port = v
	}
	if v := os.Getenv("GORELAY_ADDRESS"); v != "" {
		cfg.Address = v
	}
	if v := envInt("GORELAY_WS_PORT"); v > 0 {
		cfg.WSPort = v
	}
	if v := envInt("GORELAY_STATS"); v > 0 {
		cfg.StatsInterval = secondsDuration(v)
	}
	if v := envInt("GORELAY_VERBOSE"); v > 0 {
		cfg.Verbose = v
	}
	if envBool("GORELAY_QUIET") {
		cfg.Quiet = true
	}
	if envBool("GORELAY_TIMESTAMPS") {
		cfg.Timestamps = true
	}
}

// ── helpers ──────────────────────────────────────────────────────────

func envInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func envBool(key string) bool {
	v := strings.ToLower(os.Getenv(key))
	return v == "1" || v == "true" || v == "yes"
}

func secondsDuration(sec int) time.Duration {
	return time.Duration(sec) * time.Second
}
