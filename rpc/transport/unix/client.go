package unix

import (
	"github.com/ValentinKolb/dictd/rpc/transport"
	"net"
	"time"
)

// clientConnector implements the IClientConnector interface for Unix sockets
type clientConnector struct{}

// NewUnixClientConnector creates a connector dialing unix socket paths
func NewUnixClientConnector() transport.IClientConnector {
	return &clientConnector{}
}

func (c *clientConnector) GetName() string {
	return "unix"
}

func (c *clientConnector) Connect(endpoint string, timeout time.Duration) (net.Conn, error) {
	return net.DialTimeout("unix", endpoint, timeout)
}
