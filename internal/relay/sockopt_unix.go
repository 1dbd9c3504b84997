//go:build unix

package relay

import (
	"net"
	"syscall"

	"golang.org/x/sys/unix"
)

// socketError drains a pending asynchronous socket error (SO_ERROR)
// without reading data.  Returns nil when the socket is healthy or
// when the connection type does not expose its descriptor.
func socketError(nc net.Conn) error {
	sc, ok := nc.(syscall.Conn)
	if !ok {
		return nil
	}
	raw, err := sc.SyscallConn()
	if err != nil {
		return err
	}

	var soErr int
	var getErr error
	if err := raw.Control(func(fd uintptr) {
		soErr, getErr = unix.GetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_ERROR)
	}); err != nil {
		return err
	}
	if getErr != nil {
		return getErr
	}
	if soErr != 0 {
		return syscall.Errno(soErr)
	}
	return nil
}
