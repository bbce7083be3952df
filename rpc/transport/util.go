package transport

import (
	"errors"
	"net"
)

// ErrHalfCloseUnsupported is returned by CloseWrite for connections that cannot shut down only their write side
var ErrHalfCloseUnsupported = errors.New("connection does not support half-close")

// halfCloser is implemented by *net.TCPConn and *net.UnixConn
type halfCloser interface {
	CloseWrite() error
}

// CloseWrite shuts down the writing side of the connection, signalling end-of-stream to the peer
func CloseWrite(conn net.Conn) error {
	hc, ok := conn.(halfCloser)
	if !ok {
		return ErrHalfCloseUnsupported
	}
	return hc.CloseWrite()
}

// PeerAddr returns the address and port of the remote end of a connection.
// Connections without a port (e.g. unix sockets) report port 0.
func PeerAddr(conn net.Conn) (string, int) {
	switch addr := conn.RemoteAddr().(type) {
	case *net.TCPAddr:
		return addr.IP.String(), addr.Port
	case nil:
		return "", 0
	default:
		if host, port, err := net.SplitHostPort(addr.String()); err == nil {
			p, _ := net.LookupPort(addr.Network(), port)
			return host, p
		}
		return addr.String(), 0
	}
}
