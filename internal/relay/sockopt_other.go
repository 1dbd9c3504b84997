//go:build !unix

package relay

import "net"

// socketError is a no-op where SO_ERROR is not portably accessible;
// broken connections surface through the read path instead.
func socketError(net.Conn) error { return nil }
