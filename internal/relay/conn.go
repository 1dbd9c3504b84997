package relay

import (
	"net"
	"sync"
	"time"

	errs "gorelay/internal/errors"
)

// Conn wraps one accepted TCP socket.  No other component touches the
// raw net.Conn: reads belong to the owning session, writes arrive
// concurrently from broadcasting sessions and are serialised by a
// non-blocking lock.
type Conn struct {
	nc net.Conn

	poll         time.Duration // read poll deadline
	writeTimeout time.Duration

	rmu sync.Mutex // guards reads
	wmu sync.Mutex // guards writes; broadcast path uses TryLock

	closeOnce sync.Once
	closeErr  error
}

// NewConn wraps nc.  poll bounds how long a single Read waits for data
// before reporting the retriable would-block outcome; writeTimeout
// bounds how long a single Write may hold the write lock.
func NewConn(nc net.Conn, poll, writeTimeout time.Duration) *Conn {
	return &Conn{nc: nc, poll: poll, writeTimeout: writeTimeout}
}

// Read fills buf from the socket, waiting at most the poll interval.
// An elapsed deadline is reported as errs.ErrWouldBlock so callers can
// distinguish "no data yet" from real failures.  io.EOF means the peer
// closed the connection gracefully.
func (c *Conn) Read(buf []byte) (int, error) {
	c.rmu.Lock()
	defer c.rmu.Unlock()

	if c.poll > 0 {
		if err := c.nc.SetReadDeadline(time.Now().Add(c.poll)); err != nil {
			return 0, err
		}
	}
	n, err := c.nc.Read(buf)
	if err != nil && errs.IsWouldBlock(err) {
		return n, errs.ErrWouldBlock
	}
	return n, err
}

// Write sends p to the peer unless another write is already in flight,
// in which case it returns (0, nil) without blocking.  A broadcast
// must never stall waiting on one busy peer; dropping the chunk for
// that peer is the accepted cost.
func (c *Conn) Write(p []byte) (int, error) {
	if !c.wmu.TryLock() {
		return 0, nil
	}
	defer c.wmu.Unlock()

	if c.writeTimeout > 0 {
		if err := c.nc.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
			return 0, err
		}
	}
	return c.nc.Write(p)
}

// HealthCheck inspects the socket for a pending asynchronous error
// without consuming data, so a broken connection is noticed before the
// next read fails.
func (c *Conn) HealthCheck() error {
	return socketError(c.nc)
}

// Close shuts the socket down.  Idempotent.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.nc.Close()
	})
	return c.closeErr
}

// RemoteAddr reports the peer's remote address.
func (c *Conn) RemoteAddr() net.Addr { return c.nc.RemoteAddr() }
