package metrics

import (
	"bytes"
	"context"
	"github.com/ValentinKolb/dictd/rpc/common"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestVerbLabel(t *testing.T) {
	tests := map[string]string{
		"GET":   "GET",
		"SET":   "SET",
		"CLEAR": "CLEAR",
		"ALL":   "ALL",
		"get":   "unknown",
		"PING":  "unknown",
		"":      "none",
	}
	for verb, want := range tests {
		if got := verbLabel(verb); got != want {
			t.Errorf("verbLabel(%q): expected %q, got %q", verb, want, got)
		}
	}
}

func TestCollectorPrometheus(t *testing.T) {
	c := NewCollector()
	defer c.Close(context.Background())

	c.RegisterGauges(func() int { return 2 }, func() int { return 7 })
	c.ConnectionOpened()
	c.ConnectionOpened()
	c.ObserveCommand("GET", common.NewAnswer("x"), time.Now())
	c.ObserveCommand("GET", common.NewError(common.MsgWordNotFound), time.Now())
	c.ObserveCommand("PING", common.NewError(common.MsgCommandNotFound), time.Now())
	c.SessionError(StageWrite)

	var buf bytes.Buffer
	c.WritePrometheus(&buf, false)
	out := buf.String()

	for _, want := range []string{
		"dictd_connections_total 2",
		"dictd_sessions_active 2",
		"dictd_words 7",
		`dictd_commands_total{verb="GET",result="answer"} 1`,
		`dictd_commands_total{verb="GET",result="error"} 1`,
		`dictd_commands_total{verb="unknown",result="error"} 1`,
		`dictd_session_errors_total{stage="write"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestCollectorStatsLines(t *testing.T) {
	c := NewCollector()
	defer c.Close(context.Background())

	c.ConnectionOpened()
	c.ObserveCommand("SET", common.NewAnswer("ok"), time.Now())
	c.SessionError(StageRead)

	lines := c.StatsLines()
	joined := strings.Join(lines, "\n")
	for _, want := range []string{"connections", "commands.SET", "session_errors.read"} {
		if !strings.Contains(joined, want) {
			t.Errorf("Expected stats lines to mention %q, got:\n%s", want, joined)
		}
	}
}

func TestCollectorServe(t *testing.T) {
	c := NewCollector()
	c.ConnectionOpened()

	addr, err := c.Serve("127.0.0.1:0")
	if err != nil {
		t.Fatalf("Serve failed: %v", err)
	}

	resp, err := http.Get("http://" + addr.String() + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), "dictd_connections_total 1") {
		t.Errorf("Expected connection counter in body, got:\n%s", body)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := c.Close(ctx); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}
