// Package errors provides domain-specific error types for gorelay.
//
// These types carry structured context (operation, address, retryability)
// that helps callers decide how to handle failures and provides better
// diagnostics than plain string wrapping.
package errors

import (
	"errors"
	"fmt"
	"net"
	"os"
	"syscall"
)

// ── Sentinel errors ──────────────────────────────────────────────────

var (
	// ErrWouldBlock signals that no data (or no pending connection) was
	// available on a poll attempt.  Retriable, never fatal.
	ErrWouldBlock = errors.New("operation would block")

	// ErrRelayClosed is returned when an operation is attempted against
	// a relay that has already shut down.
	ErrRelayClosed = errors.New("relay is closed")

	// ErrPeerGone is returned by writes against a peer whose socket has
	// already been closed.
	ErrPeerGone = errors.New("peer connection is gone")
)

// ── Structured error types ───────────────────────────────────────────

// NetworkError represents a failure in a network operation.
type NetworkError struct {
	Op        string // operation: "listen", "accept", "read", "write", "upgrade"
	Addr      string // network address involved
	Err       error  // underlying error
	Retryable bool   // whether the caller should retry
}

func (e *NetworkError) Error() string {
	s := fmt.Sprintf("%s %s: %v", e.Op, e.Addr, e.Err)
	if e.Retryable {
		s += " (retryable)"
	}
	return s
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ConfigError represents an invalid configuration value.
type ConfigError struct {
	Field   string      // config field name
	Value   interface{} // the invalid value (nil if missing)
	Message string      // human-readable explanation
	Hint    string      // suggestion for the user (optional)
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("config: %s", e.Field)
	if e.Value != nil {
		msg += fmt.Sprintf("=%v", e.Value)
	}
	msg += ": " + e.Message
	if e.Hint != "" {
		msg += "\n  hint: " + e.Hint
	}
	return msg
}

// ── Constructors ─────────────────────────────────────────────────────

// Wrap creates a NetworkError, automatically detecting retryability
// from the underlying error.
func Wrap(op, addr string, err error) *NetworkError {
	return &NetworkError{
		Op:        op,
		Addr:      addr,
		Err:       err,
		Retryable: classifyRetryable(err),
	}
}

// ── Classification helpers ───────────────────────────────────────────

// IsWouldBlock reports whether err is the retriable no-data-yet outcome
// of a non-blocking or deadline-polled operation.
func IsWouldBlock(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrWouldBlock) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	return errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.EWOULDBLOCK)
}

// IsRetryable reports whether err is worth retrying.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		return ne.Retryable
	}
	return classifyRetryable(err)
}

// IsClosed reports whether err indicates an already-closed socket, the
// expected outcome when a session tears down mid-operation.
func IsClosed(err error) bool {
	if errors.Is(err, net.ErrClosed) || errors.Is(err, ErrPeerGone) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return errors.Is(opErr.Err, net.ErrClosed)
	}
	return false
}

// classifyRetryable inspects standard library error types.
func classifyRetryable(err error) bool {
	if err == nil {
		return false
	}
	if IsWouldBlock(err) {
		return true
	}
	// net.OpError with Temporary() hint
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return opErr.Temporary() //nolint:staticcheck // Temporary is deprecated but still useful
	}
	return false
}

// ── Re-exports for convenience ───────────────────────────────────────
//
// These allow callers to use gorelay/internal/errors as a drop-in
// replacement for the standard library in common operations.

// As is [errors.As].
func As(err error, target interface{}) bool { return errors.As(err, target) }

// Is is [errors.Is].
func Is(err, target error) bool { return errors.Is(err, target) }

// New is [errors.New].
func New(text string) error { return errors.New(text) }

// Unwrap is [errors.Unwrap].
func Unwrap(err error) error { return errors.Unwrap(err) }

// Join is [errors.Join].
func Join(errs ...error) error { return errors.Join(errs...) }
