package server

import (
	"bufio"
	"github.com/ValentinKolb/dictd/rpc/common"
	"github.com/ValentinKolb/dictd/rpc/metrics"
	"github.com/ValentinKolb/dictd/rpc/transport"
	"github.com/ValentinKolb/dictd/rpc/transport/tcp"
	"io"
	"net"
	"strings"
	"testing"
	"time"
)

func tcpConnector() transport.IServerConnector {
	return tcp.NewTCPServerConnector()
}

// runPipeSession starts a session on one end of an in-memory pipe and returns the other end
func runPipeSession(t *testing.T, config common.ServerConfig, handler HandleFunc) (*session, net.Conn, <-chan struct{}) {
	t.Helper()
	serverEnd, clientEnd := net.Pipe()
	t.Cleanup(func() { clientEnd.Close() })

	s := newSession(1, serverEnd, config, handler, metrics.NewCollector())
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.run()
	}()
	return s, clientEnd, done
}

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("session did not finish")
	}
}

func TestStateString(t *testing.T) {
	tests := map[State]string{
		StateConnecting: "connecting",
		StateActive:     "active",
		StateClosing:    "closing",
		StateClosed:     "closed",
		State(42):       "unknown",
	}
	for state, want := range tests {
		if got := state.String(); got != want {
			t.Errorf("Expected %q, got %q", want, got)
		}
	}
}

func TestSessionPanicRecovered(t *testing.T) {
	handler := func(line string) common.Response {
		if line == "BOOM" {
			panic("kaboom")
		}
		return common.NewAnswer("echo " + line)
	}
	s, client, done := runPipeSession(t, common.DefaultServerConfig(), handler)
	reader := bufio.NewReader(client)

	readLine := func() string {
		line, err := reader.ReadString('\n')
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		return strings.TrimSuffix(line, "\r\n")
	}

	if got := readLine(); got != common.GreetingLine {
		t.Fatalf("unexpected greeting %q", got)
	}
	readLine()

	go client.Write([]byte("BOOM\r\n"))
	if got := readLine(); got != "ERROR "+common.MsgInternalError {
		t.Errorf("Expected internal error response, got %q", got)
	}
	if got := readLine(); got != common.Separator {
		t.Errorf("Expected separator, got %q", got)
	}
	if s.State() != StateActive {
		t.Errorf("Expected session to stay active after a panic, got %s", s.State())
	}

	go client.Write([]byte("hello\r\n"))
	if got := readLine(); got != "ANSWER echo hello" {
		t.Errorf("Expected session to keep serving, got %q", got)
	}
	readLine()

	// the farewell cannot be delivered on a fully closed pipe; the session must still finish
	client.Close()
	waitDone(t, done)
	if s.State() != StateClosed {
		t.Errorf("Expected closed state, got %s", s.State())
	}
}

func TestSessionGreetingFailure(t *testing.T) {
	serverEnd, clientEnd := net.Pipe()
	clientEnd.Close()

	called := false
	collector := metrics.NewCollector()
	s := newSession(7, serverEnd, common.DefaultServerConfig(), func(string) common.Response {
		called = true
		return common.NewAnswer("")
	}, collector)

	s.run()

	if s.State() != StateClosed {
		t.Errorf("Expected closed state, got %s", s.State())
	}
	if called {
		t.Errorf("Handler must not be called when the greeting fails")
	}
	lines := strings.Join(collector.StatsLines(), "\n")
	if !strings.Contains(lines, "session_errors.greeting") {
		t.Errorf("Expected greeting error to be recorded, got:\n%s", lines)
	}
}

func TestSessionIdleTimeout(t *testing.T) {
	config := common.DefaultServerConfig()
	config.IdleTimeoutSecond = 1

	s, client, done := runPipeSession(t, config, func(string) common.Response {
		return common.NewAnswer("ok")
	})
	go io.Copy(io.Discard, client)

	waitDone(t, done)
	if s.State() != StateClosed {
		t.Errorf("Expected closed state after idle timeout, got %s", s.State())
	}
}

func TestSessionPeerAddress(t *testing.T) {
	serverEnd, clientEnd := net.Pipe()
	defer serverEnd.Close()
	defer clientEnd.Close()

	s := newSession(3, serverEnd, common.DefaultServerConfig(), nil, nil)
	if s.peerPort != 0 {
		t.Errorf("Expected port 0 for a pipe, got %d", s.peerPort)
	}
	if s.State() != StateConnecting {
		t.Errorf("Expected connecting state, got %s", s.State())
	}
	if !strings.HasPrefix(s.String(), "session 3 (") {
		t.Errorf("Unexpected session string %q", s.String())
	}
}
