package common

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Defaults
// --------------------------------------------------------------------------

const (
	DefaultHost         = "127.0.0.1"
	DefaultPort         = 8124
	DefaultMaxLineBytes = 64 * 1024 // 64 KB
	DefaultLogLevel     = "info"
)

// --------------------------------------------------------------------------
// Transport configuration
// --------------------------------------------------------------------------

type TransportType string

const (
	TransportTCP  TransportType = "tcp"
	TransportUnix TransportType = "unix"
)

// ParseTransportType converts a string (as given on the command line) to a TransportType
func ParseTransportType(s string) (TransportType, error) {
	switch TransportType(strings.ToLower(strings.TrimSpace(s))) {
	case TransportTCP:
		return TransportTCP, nil
	case TransportUnix:
		return TransportUnix, nil
	default:
		return "", fmt.Errorf("invalid transport %q (expected one of: tcp, unix)", s)
	}
}

// SocketConf holds socket options shared by all stream transports
type SocketConf struct {
	WriteBufferSize int
	ReadBufferSize  int
}

// TCPConf holds TCP specific socket options
type TCPConf struct {
	TCPNoDelay      bool
	TCPKeepAliveSec int
	TCPLingerSec    int
}

// --------------------------------------------------------------------------
// Server configuration struct
// --------------------------------------------------------------------------

// ServerConfig holds all configuration parameters of the dictionary server.
type ServerConfig struct {
	// Listener
	Transport  TransportType
	Host       string
	Port       int
	SocketPath string // only used by the unix transport

	// Socket tuning
	TCPConf    TCPConf
	SocketConf SocketConf

	// Session behaviour
	MaxLineBytes          int
	IdleTimeoutSecond     int64 // 0 = connections never time out
	ShutdownTimeoutSecond int64 // 0 = wait until every session ended

	// Observability
	MetricsEndpoint     string // empty = no metrics http endpoint
	StatsIntervalSecond int64  // 0 = no periodic stats logging

	// Logging configuration
	LogLevel string
}

// DefaultServerConfig returns a configuration listening on 127.0.0.1:8124 via TCP
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Transport:    TransportTCP,
		Host:         DefaultHost,
		Port:         DefaultPort,
		TCPConf:      TCPConf{TCPNoDelay: true, TCPLingerSec: -1},
		MaxLineBytes: DefaultMaxLineBytes,
		LogLevel:     DefaultLogLevel,
	}
}

// Endpoint returns the address the server listens on (host:port or the socket path)
func (c *ServerConfig) Endpoint() string {
	if c.Transport == TransportUnix {
		return c.SocketPath
	}
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Validate checks the configuration for values the server cannot work with
func (c *ServerConfig) Validate() error {
	switch c.Transport {
	case TransportTCP:
		if c.Port < 0 || c.Port > 65535 {
			return fmt.Errorf("invalid port %d (expected 0-65535)", c.Port)
		}
	case TransportUnix:
		if c.SocketPath == "" {
			return fmt.Errorf("a socket path is required for the unix transport")
		}
	default:
		return fmt.Errorf("invalid transport %q", c.Transport)
	}
	if c.MaxLineBytes <= 0 {
		return fmt.Errorf("max line bytes must be positive, got %d", c.MaxLineBytes)
	}
	if c.IdleTimeoutSecond < 0 || c.ShutdownTimeoutSecond < 0 || c.StatsIntervalSecond < 0 {
		return fmt.Errorf("timeouts and intervals must not be negative")
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// String returns a formatted string representation of the configuration
func (c *ServerConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	secondsOrOff := func(sec int64) string {
		if sec == 0 {
			return "off"
		}
		return fmt.Sprintf("%d sec", sec)
	}

	addSection("Listener")
	addField("Transport", string(c.Transport))
	addField("Endpoint", c.Endpoint())

	if c.Transport == TransportTCP {
		addSection("TCP")
		addField("No Delay", strconv.FormatBool(c.TCPConf.TCPNoDelay))
		addField("Keep Alive", secondsOrOff(int64(c.TCPConf.TCPKeepAliveSec)))
		if c.TCPConf.TCPLingerSec >= 0 {
			addField("Linger", fmt.Sprintf("%d sec", c.TCPConf.TCPLingerSec))
		}
	}

	addSection("Sessions")
	addField("Max Line Length", fmt.Sprintf("%d bytes", c.MaxLineBytes))
	addField("Idle Timeout", secondsOrOff(c.IdleTimeoutSecond))
	addField("Shutdown Timeout", secondsOrOff(c.ShutdownTimeoutSecond))

	addSection("Observability")
	if c.MetricsEndpoint == "" {
		addField("Metrics Endpoint", "off")
	} else {
		addField("Metrics Endpoint", c.MetricsEndpoint)
	}
	addField("Stats Interval", secondsOrOff(c.StatsIntervalSecond))

	addSection("Logging")
	addField("Log Level", c.LogLevel)

	return sb.String()
}

// --------------------------------------------------------------------------
// Client configuration struct
// --------------------------------------------------------------------------

type ClientConfig struct {
	Transport     TransportType
	Endpoint      string
	TimeoutSecond int // 0 = no timeout
}

// Timeout returns the per-operation timeout (0 = no timeout)
func (c *ClientConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecond) * time.Second
}

// String returns a formatted string representation of the client configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Client Configuration")
	addField("Transport", string(c.Transport))
	addField("Endpoint", c.Endpoint)
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))

	return sb.String()
}
