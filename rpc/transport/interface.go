package transport

import (
	"github.com/ValentinKolb/dictd/rpc/common"
	"net"
	"time"
)

// --------------------------------------------------------------------------
// Server Side
// --------------------------------------------------------------------------

// IServerConnector creates listeners for one transport type (tcp, unix, ...)
// and prepares accepted connections for use by a session.
type IServerConnector interface {
	// GetName returns the name of the transport type (e.g., "unix", "tcp")
	GetName() string
	// Listen creates a listener for the endpoint described by the configuration.
	// Connections accepted from the listener must support half-close, i.e. a peer
	// shutting down its write side is surfaced as io.EOF on read while writes still succeed.
	Listen(config common.ServerConfig) (net.Listener, error)
	// UpgradeConnection applies transport specific socket options to an accepted connection
	UpgradeConnection(conn net.Conn, config common.ServerConfig) error
}

// --------------------------------------------------------------------------
// Client Side
// --------------------------------------------------------------------------

// IClientConnector dials a server for one transport type
type IClientConnector interface {
	// GetName returns the name of the transport type (e.g., "unix", "tcp")
	GetName() string
	// Connect establishes a single connection to the endpoint.
	// A zero timeout means no timeout.
	Connect(endpoint string, timeout time.Duration) (net.Conn, error)
}
