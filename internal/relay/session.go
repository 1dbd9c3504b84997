package relay

import (
	"context"
	"fmt"
	"io"
	"strings"

	errs "gorelay/internal/errors"
	"gorelay/internal/metrics"
	"gorelay/util"
)

// Session runs the per-connection loop: register, read chunks, tag
// them with the session id, broadcast, and deregister on the way out.
// Sessions are fire-and-forget; a failure terminates only its own
// session and never propagates.
type Session struct {
	conn     *Conn
	registry *Registry
	logger   *util.Logger
	stats    *metrics.Collector
}

// NewSession binds conn to the shared registry.  stats may be nil.
func NewSession(conn *Conn, registry *Registry, logger *util.Logger, stats *metrics.Collector) *Session {
	if logger == nil {
		logger = util.NewLogger(0)
	}
	return &Session{
		conn:     conn,
		registry: registry,
		logger:   logger,
		stats:    stats,
	}
}

// Run drives the session until the peer disconnects, the socket
// errors, or ctx is cancelled.  It always deregisters and closes the
// connection before returning.
func (s *Session) Run(ctx context.Context) {
	id := s.registry.Register(s.conn)
	s.logger.Info("[%d] connected (%s)", id, s.conn.RemoteAddr())

	defer func() {
		s.registry.Deregister(id)
		s.conn.Close() //nolint:errcheck
		s.logger.Info("[%d] disconnected", id)
	}()

	bufp := util.GetBuf()
	defer util.PutBuf(bufp)
	buf := *bufp

	for ctx.Err() == nil {
		if err := s.conn.HealthCheck(); err != nil {
			s.logger.Verbose("[%d] health check failed: %v", id, err)
			s.stats.RecordError(err.Error())
			return
		}

		n, err := s.conn.Read(buf)
		if n > 0 {
			s.stats.BytesReceived(int64(n))
			s.registry.Broadcast(TagMessage(id, buf[:n]))
		}

		switch {
		case err == nil:
			if n == 0 {
				// Zero bytes without error signals EOF on some conn
				// implementations.
				return
			}
		case errs.Is(err, errs.ErrWouldBlock):
			// Nothing to read within the poll deadline; go around.
		case errs.Is(err, io.EOF):
			return
		case errs.IsClosed(err):
			return
		default:
			s.logger.Verbose("[%d] read error: %v", id, err)
			s.stats.RecordError(err.Error())
			return
		}
	}
}

// TagMessage prepends the "[id] " sender tag to raw, lossily decoded:
// invalid UTF-8 sequences are replaced with U+FFFD rather than dropped.
func TagMessage(id uint64, raw []byte) []byte {
	return []byte(fmt.Sprintf("[%d] %s", id, strings.ToValidUTF8(string(raw), "�")))
}
