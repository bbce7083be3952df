package util

import (
	"github.com/ValentinKolb/dictd/rpc/common"
	"strings"
	"testing"
)

func TestWrapString(t *testing.T) {
	text := strings.Repeat("word ", 30)
	wrapped := WrapString(text)

	for _, line := range strings.Split(wrapped, "\n") {
		if len(line) > Wrap {
			t.Errorf("Expected lines of at most %d characters, got %d: %q", Wrap, len(line), line)
		}
	}
	if got := strings.Join(strings.Fields(wrapped), " "); got != strings.TrimSpace(text) {
		t.Errorf("Expected wrapping to keep all words, got %q", got)
	}
}

func TestConnectors(t *testing.T) {
	for _, tt := range []common.TransportType{common.TransportTCP, common.TransportUnix} {
		server, err := GetServerConnector(tt)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tt, err)
		}
		client, err := GetClientConnector(tt)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tt, err)
		}
		if server.GetName() != string(tt) || client.GetName() != string(tt) {
			t.Errorf("Expected connectors named %s, got %s/%s", tt, server.GetName(), client.GetName())
		}
	}

	if _, err := GetServerConnector("http"); err == nil {
		t.Errorf("Expected an error for an unknown transport")
	}
	if _, err := GetClientConnector("http"); err == nil {
		t.Errorf("Expected an error for an unknown transport")
	}
}
