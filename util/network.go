package util

import (
	"fmt"
	"net"
	"strconv"
)

// FormatAddr returns "host:port", bracketing IPv6 hosts as needed.
func FormatAddr(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}

// ParseIPLiteral validates that host is a numeric IPv4 or IPv6 address
// and returns it in canonical form.  Hostnames are rejected; the relay
// binds to literals only.
func ParseIPLiteral(host string) (net.IP, error) {
	ip := net.ParseIP(host)
	if ip == nil {
		return nil, fmt.Errorf("cannot parse %q as an IP address", host)
	}
	return ip, nil
}

// FindFreePort returns an available TCP port on 127.0.0.1.
func FindFreePort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, fmt.Errorf("finding free port: %w", err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}
