package server

import (
	"bufio"
	"context"
	"fmt"
	"github.com/ValentinKolb/dictd/lib/store/lstore"
	"github.com/ValentinKolb/dictd/rpc/common"
	"github.com/ValentinKolb/dictd/rpc/transport/tcp"
	"net"
	"strings"
	"testing"
	"time"
)

// startTestServer starts a TCP server on a random loopback port.
// The server is stopped when the test ends.
func startTestServer(t *testing.T, modify func(c *common.ServerConfig)) *Server {
	t.Helper()

	config := common.DefaultServerConfig()
	config.Port = 0
	if modify != nil {
		modify(&config)
	}

	s := NewServer(config, tcp.NewTCPServerConnector(), lstore.NewLocalStore)
	if err := s.Start(); err != nil {
		t.Fatalf("failed to start server: %v", err)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.Stop(ctx)
	})
	return s
}

// testClient is a minimal line client used to drive sessions in tests
type testClient struct {
	t      *testing.T
	conn   net.Conn
	reader *bufio.Reader
}

// dial connects to the server and consumes the greeting
func dial(t *testing.T, network, addr string) *testClient {
	t.Helper()

	conn, err := net.DialTimeout(network, addr, 2*time.Second)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	c := &testClient{t: t, conn: conn, reader: bufio.NewReader(conn)}
	c.expectLine(common.GreetingLine)
	c.expectLine(common.CommandsLine)
	return c
}

func (c *testClient) readLine() string {
	c.t.Helper()
	_ = c.conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	line, err := c.reader.ReadString('\n')
	if err != nil {
		c.t.Fatalf("failed to read line: %v (partial %q)", err, line)
	}
	if !strings.HasSuffix(line, "\r\n") {
		c.t.Fatalf("expected \\r\\n terminated line, got %q", line)
	}
	return strings.TrimSuffix(line, "\r\n")
}

func (c *testClient) expectLine(want string) {
	c.t.Helper()
	if got := c.readLine(); got != want {
		c.t.Fatalf("expected line %q, got %q", want, got)
	}
}

// send writes one request line and returns the response line (separator consumed)
func (c *testClient) send(line string) string {
	c.t.Helper()
	if _, err := c.conn.Write([]byte(line + "\r\n")); err != nil {
		c.t.Fatalf("failed to send %q: %v", line, err)
	}
	resp := c.readLine()
	c.expectLine(common.Separator)
	return resp
}

// do is the non-fatal variant of send, safe to use from spawned goroutines
func (c *testClient) do(line string) (string, error) {
	if _, err := c.conn.Write([]byte(line + "\r\n")); err != nil {
		return "", err
	}
	_ = c.conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	resp, err := c.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	if sep, err := c.reader.ReadString('\n'); err != nil {
		return "", err
	} else if sep != common.Separator+"\r\n" {
		return "", fmt.Errorf("expected separator, got %q", sep)
	}
	return strings.TrimSuffix(resp, "\r\n"), nil
}

// closeWrite half-closes the client side of the connection
func (c *testClient) closeWrite() {
	c.t.Helper()
	type halfCloser interface{ CloseWrite() error }
	if err := c.conn.(halfCloser).CloseWrite(); err != nil {
		c.t.Fatalf("failed to half-close: %v", err)
	}
}

// expectEOF asserts that the server closed the connection
func (c *testClient) expectEOF() {
	c.t.Helper()
	_ = c.conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if line, err := c.reader.ReadString('\n'); err == nil {
		c.t.Fatalf("expected connection to be closed, got line %q", line)
	}
}

// waitFor polls cond until it returns true or the timeout expires
func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within %s", timeout)
}
