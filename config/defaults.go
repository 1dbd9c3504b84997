package config

import "time"

// ── Default values ───────────────────────────────────────────────────
//
// All tuneable defaults live here so they are easy to audit and reuse
// across CLI flags and environment variable loading.

const (
	// DefaultPort is the TCP listen port when none is given.
	DefaultPort = 1300

	// DefaultAddress is the bind address when none is given.
	DefaultAddress = "127.0.0.1"

	// DefaultPollInterval is how long a session read waits for data
	// before reporting would-block and re-checking its socket health.
	DefaultPollInterval = 10 * time.Millisecond

	// DefaultWriteTimeout caps how long a single fan-out write may
	// hold a peer's write lock before it is abandoned.
	DefaultWriteTimeout = 10 * time.Second
)
