package common

import (
	"errors"
	"fmt"
	"testing"
)

func TestResponseFrame(t *testing.T) {
	tests := []struct {
		name string
		resp Response
		want string
	}{
		{"answer", NewAnswer("hello world"), "ANSWER hello world\r\n---------------\r\n"},
		{"error", NewError(MsgCommandNotFound), "ERROR Command not found.\r\n---------------\r\n"},
		{"formatted", NewAnswer(fmt.Sprintf(MsgWordSet, "go")), "ANSWER Word go has been set.\r\n---------------\r\n"},
		{"percent without args", NewAnswer("100% sure"), "ANSWER 100% sure\r\n---------------\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(tt.resp.Frame()); got != tt.want {
				t.Errorf("Expected frame %q, got %q", tt.want, got)
			}
		})
	}
}

func TestParseResponse(t *testing.T) {
	resp, err := ParseResponse("ANSWER Available words: a, b.")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if resp.Kind != KindAnswer || resp.Text != "Available words: a, b." {
		t.Errorf("Unexpected response %+v", resp)
	}

	resp, err = ParseResponse("ERROR There are no words saved.")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !resp.IsError() || resp.Text != MsgNoWords {
		t.Errorf("Unexpected response %+v", resp)
	}

	for _, line := range []string{"", "ANSWER", "OK fine", Separator} {
		if _, err := ParseResponse(line); !errors.Is(err, ErrMalformedResponse) {
			t.Errorf("Expected ErrMalformedResponse for %q, got %v", line, err)
		}
	}
}

func TestFixedMessages(t *testing.T) {
	if got := string(Greeting()); got != GreetingLine+"\r\n"+CommandsLine+"\r\n" {
		t.Errorf("Unexpected greeting %q", got)
	}
	if got := string(Farewell()); got != "Goodbye!\r\n" {
		t.Errorf("Unexpected farewell %q", got)
	}
}
