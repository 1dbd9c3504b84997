// Package config defines the runtime configuration for gorelay and
// provides helpers for parsing the port and address arguments.
package config

import (
	"strconv"
	"time"

	errs "gorelay/internal/errors"
	"gorelay/util"
)

// Config holds every tuneable for a relay process.
type Config struct {
	// ── Listener ─────────────────────────────────────────────────────
	Port    int    // TCP listen port
	Address string // IP literal to bind
	WSPort  int    // WebSocket gateway port (0 = disabled)

	// ── Tuning ───────────────────────────────────────────────────────
	PollInterval  time.Duration // read poll deadline per session
	WriteTimeout  time.Duration // per-write cap while holding the lock
	StatsInterval time.Duration // periodic stats log (0 = off)

	// ── Output ───────────────────────────────────────────────────────
	Verbose    int
	Quiet      bool
	Timestamps bool
}

// Default returns a Config populated with the built-in defaults.
func Default() *Config {
	return &Config{
		Port:         DefaultPort,
		Address:      DefaultAddress,
		PollInterval: DefaultPollInterval,
		WriteTimeout: DefaultWriteTimeout,
	}
}

// ListenAddr returns the TCP bind address as "host:port".
func (c *Config) ListenAddr() string {
	return util.FormatAddr(c.Address, c.Port)
}

// WSAddr returns the WebSocket gateway bind address.
func (c *Config) WSAddr() string {
	return util.FormatAddr(c.Address, c.WSPort)
}

// Verbosity maps the quiet/verbose switches onto logger levels:
// default 1 (announcements visible), -q forces 0, each -v adds one.
func (c *Config) Verbosity() int {
	if c.Quiet {
		return 0
	}
	return 1 + c.Verbose
}

// ParsePort parses spec as an unsigned 16-bit port number.
func ParsePort(spec string) (int, error) {
	port, err := strconv.Atoi(spec)
	if err != nil {
		return 0, &errs.ConfigError{
			Field:   "port",
			Value:   spec,
			Message: "must be a number",
		}
	}
	if port < 1 || port > 65535 {
		return 0, &errs.ConfigError{
			Field:   "port",
			Value:   port,
			Message: "out of range 1-65535",
		}
	}
	return port, nil
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return &errs.ConfigError{
			Field:   "port",
			Value:   c.Port,
			Message: "out of range 1-65535",
		}
	}
	if _, err := util.ParseIPLiteral(c.Address); err != nil {
		return &errs.ConfigError{
			Field:   "address",
			Value:   c.Address,
			Message: "not a valid IPv4/IPv6 literal",
			Hint:    "use a numeric address such as 127.0.0.1 or ::1",
		}
	}
	if c.WSPort != 0 {
		if c.WSPort < 1 || c.WSPort > 65535 {
			return &errs.ConfigError{
				Field:   "ws-port",
				Value:   c.WSPort,
				Message: "out of range 1-65535",
			}
		}
		if c.WSPort == c.Port {
			return &errs.ConfigError{
				Field:   "ws-port",
				Value:   c.WSPort,
				Message: "conflicts with the TCP listen port",
			}
		}
	}
	if c.PollInterval <= 0 {
		return &errs.ConfigError{
			Field:   "poll-interval",
			Value:   c.PollInterval.String(),
			Message: "must be positive",
		}
	}
	return nil
}
