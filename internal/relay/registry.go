package relay

import (
	"sync"

	"gorelay/internal/metrics"
	"gorelay/util"
)

// Registry maps connection identifiers to live peers.  One instance is
// created at startup and injected into the acceptor, every session,
// and the WebSocket gateway; there is no ambient global state.
//
// Identifiers increase monotonically from 1 and are never reused for
// the life of the process.
type Registry struct {
	logger *util.Logger
	stats  *metrics.Collector

	mu    sync.Mutex
	next  uint64
	peers map[uint64]Peer
}

// NewRegistry returns an empty registry.  stats may be nil.
func NewRegistry(logger *util.Logger, stats *metrics.Collector) *Registry {
	if logger == nil {
		logger = util.NewLogger(0)
	}
	return &Registry{
		logger: logger,
		stats:  stats,
		peers:  make(map[uint64]Peer),
	}
}

// Register allocates the next identifier, inserts p under it, and
// returns it.  Allocation and insertion happen under one lock, so no
// two callers ever receive the same id.
func (r *Registry) Register(p Peer) uint64 {
	r.mu.Lock()
	r.next++
	id := r.next
	r.peers[id] = p
	r.mu.Unlock()

	r.stats.ConnectionOpened()
	return id
}

// Deregister removes the entry for id.  A no-op if the id is already
// absent, so racing teardown paths never double-count.
func (r *Registry) Deregister(id uint64) {
	r.mu.Lock()
	_, present := r.peers[id]
	delete(r.peers, id)
	r.mu.Unlock()

	if present {
		r.stats.ConnectionClosed()
	}
}

// Len reports the number of currently registered peers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.peers)
}

// Broadcast delivers msg to every currently registered peer, the
// sender included.  The peer set is snapshotted under the lock and the
// writes happen outside it, so a stalled peer cannot hold up
// registrations; peers added or removed mid-broadcast may or may not
// be included.  Per-peer failures are logged and swallowed — each
// delivery is independent.
func (r *Registry) Broadcast(msg []byte) {
	r.mu.Lock()
	ids := make([]uint64, 0, len(r.peers))
	targets := make([]Peer, 0, len(r.peers))
	for id, p := range r.peers {
		ids = append(ids, id)
		targets = append(targets, p)
	}
	r.mu.Unlock()

	r.stats.BroadcastStarted()
	for i, p := range targets {
		n, err := p.Write(msg)
		switch {
		case err != nil:
			r.logger.Verbose("[%d] broadcast write failed: %v", ids[i], err)
			r.stats.RecordError(err.Error())
		case n == 0 && len(msg) > 0:
			// Busy-skip: the peer's write lock was held.
			r.logger.Debug("[%d] busy, chunk skipped", ids[i])
			r.stats.BusySkip()
		default:
			r.logger.Debug("[%d] wrote %d bytes", ids[i], n)
			r.stats.DeliverySucceeded()
			r.stats.BytesSent(int64(n))
		}
	}
}

// CloseAll closes every registered peer.  Used at shutdown to unblock
// session reads; sessions still deregister themselves as they drain.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	targets := make([]Peer, 0, len(r.peers))
	for _, p := range r.peers {
		targets = append(targets, p)
	}
	r.mu.Unlock()

	for _, p := range targets {
		p.Close() //nolint:errcheck
	}
}
