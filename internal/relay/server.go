package relay

import (
	"context"
	"net"
	"time"

	errs "gorelay/internal/errors"
	"gorelay/internal/metrics"
	"gorelay/internal/retry"
	"gorelay/util"
)

// Server accepts TCP connections and launches a session per accepted
// socket.  Sessions are not tracked beyond their registry entry.
type Server struct {
	Addr         string // host:port to bind
	Poll         time.Duration
	WriteTimeout time.Duration

	Registry *Registry
	Logger   *util.Logger
	Stats    *metrics.Collector
}

// Run binds the listener and accepts until ctx is cancelled or a
// non-retriable accept error occurs.  A bind failure is returned
// immediately: the process has no secondary listening mechanism, so
// the caller treats it as fatal.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return errs.Wrap("listen", s.Addr, err)
	}
	defer ln.Close()

	s.Logger.Info("listening on %s (tcp)", ln.Addr())

	// Shut the listener down when the context expires.
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	throttle := retry.DefaultThrottle()
	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			if errs.IsRetryable(err) {
				// Transient accept failure (out of descriptors and the
				// like); back off and keep listening.
				s.Logger.Warn("accept: %v", err)
				select {
				case <-ctx.Done():
					return nil
				case <-time.After(throttle.Delay()):
				}
				continue
			}
			return errs.Wrap("accept", s.Addr, err)
		}
		throttle.Reset()

		s.Logger.Verbose("connection from %s", conn.RemoteAddr())

		sess := NewSession(NewConn(conn, s.Poll, s.WriteTimeout), s.Registry, s.Logger, s.Stats)
		go sess.Run(ctx)
	}
}
