package common

import (
	"strings"
	"testing"
)

func TestDefaultServerConfig(t *testing.T) {
	c := DefaultServerConfig()
	if got := c.Endpoint(); got != "127.0.0.1:8124" {
		t.Errorf("Expected default endpoint 127.0.0.1:8124, got %s", got)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Default config should be valid, got %v", err)
	}
	if !strings.Contains(c.String(), "127.0.0.1:8124") {
		t.Errorf("Expected String() to contain the endpoint, got:\n%s", c.String())
	}
}

func TestServerConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *ServerConfig)
	}{
		{"port too large", func(c *ServerConfig) { c.Port = 70000 }},
		{"unix without path", func(c *ServerConfig) { c.Transport = TransportUnix }},
		{"unknown transport", func(c *ServerConfig) { c.Transport = "udp" }},
		{"zero line length", func(c *ServerConfig) { c.MaxLineBytes = 0 }},
		{"negative idle timeout", func(c *ServerConfig) { c.IdleTimeoutSecond = -1 }},
		{"bad log level", func(c *ServerConfig) { c.LogLevel = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultServerConfig()
			tt.modify(&c)
			if err := c.Validate(); err == nil {
				t.Errorf("Expected validation error")
			}
		})
	}
}

func TestUnixEndpoint(t *testing.T) {
	c := DefaultServerConfig()
	c.Transport = TransportUnix
	c.SocketPath = "/tmp/dictd.sock"
	if got := c.Endpoint(); got != "/tmp/dictd.sock" {
		t.Errorf("Expected socket path as endpoint, got %s", got)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestParseTransportType(t *testing.T) {
	if tt, err := ParseTransportType(" TCP "); err != nil || tt != TransportTCP {
		t.Errorf("Expected tcp, got %q (%v)", tt, err)
	}
	if tt, err := ParseTransportType("unix"); err != nil || tt != TransportUnix {
		t.Errorf("Expected unix, got %q (%v)", tt, err)
	}
	if _, err := ParseTransportType("http"); err == nil {
		t.Errorf("Expected error for http transport")
	}
}
