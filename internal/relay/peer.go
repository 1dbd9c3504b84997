// Package relay implements the core of gorelay: a registry of live
// client connections and the broadcast fan-out that copies every chunk
// received from one client to all of them.
//
// The cardinal rule of the fan-out is that one slow or broken peer
// must never delay delivery to the others.  Writes therefore use a
// non-blocking lock attempt and are skipped outright when the peer is
// busy, and every per-peer delivery failure is swallowed at the
// registry layer.
package relay

import "net"

// Peer is one registered client as seen by the Registry.  Both plain
// TCP sessions and WebSocket gateway clients implement it, so they
// share a single id space and fan-out path.
type Peer interface {
	// Write delivers p to the peer.  Implementations must not block
	// behind a concurrent write: when the peer's write lock is held,
	// Write returns (0, nil) and the chunk is dropped for this peer.
	Write(p []byte) (int, error)

	// Close releases the underlying socket.  Safe to call more than
	// once.
	Close() error

	// RemoteAddr reports the peer's remote address for diagnostics.
	RemoteAddr() net.Addr
}
