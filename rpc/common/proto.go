package common

import (
	"errors"
	"fmt"
	"strings"
)

// --------------------------------------------------------------------------
// Wire Constants
// --------------------------------------------------------------------------

// Verbs understood by the server. Matching is case-sensitive.
const (
	VerbGet   = "GET"
	VerbSet   = "SET"
	VerbClear = "CLEAR"
	VerbAll   = "ALL"
)

// Verbs lists all supported verbs in the order they are announced to clients.
var Verbs = []string{VerbGet, VerbSet, VerbClear, VerbAll}

const (
	// LineTerminator ends every line written by the server.
	LineTerminator = "\r\n"
	// Separator is written after every response line.
	Separator = "---------------"

	GreetingLine = "Welcome! You are connected to the dictionary server."
	CommandsLine = "Available commands: GET <word>, SET <word> <desc>, CLEAR, ALL"
	FarewellLine = "Goodbye!"
)

// Messages carried by the responses of the command interpreter.
const (
	MsgCommandExpected = "A command was expected."
	MsgCommandNotFound = "Command not found."
	MsgGetFormat       = "Expected format is: GET <word>."
	MsgWordNotFound    = "Could not find the specified word."
	MsgSetFormat       = "Expected format is: SET <word> <desc>"
	MsgWordSet         = "Word %s has been set."
	MsgCleared         = "The dictionary has been cleared."
	MsgAvailableWords  = "Available words: %s."
	MsgNoWords         = "There are no words saved."
	MsgInternalError   = "An internal error occurred."
)

// --------------------------------------------------------------------------
// Response Structure
// --------------------------------------------------------------------------

// ResponseKind distinguishes successful answers from protocol errors.
type ResponseKind int

const (
	KindAnswer ResponseKind = iota
	KindError
)

func (k ResponseKind) String() string {
	switch k {
	case KindAnswer:
		return "ANSWER"
	case KindError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Response is exactly one response line of the protocol.
type Response struct {
	Kind ResponseKind
	Text string
}

// NewAnswer creates a successful response
func NewAnswer(text string) Response {
	return Response{Kind: KindAnswer, Text: text}
}

// NewError creates an error response. Error responses are part of the protocol and
// do not end the connection.
func NewError(text string) Response {
	return Response{Kind: KindError, Text: text}
}

// IsError reports whether the response is an ERROR line.
func (r Response) IsError() bool {
	return r.Kind == KindError
}

// String returns the response line without terminator (e.g. "ANSWER hello")
func (r Response) String() string {
	return r.Kind.String() + " " + r.Text
}

// Frame returns the bytes written to the peer for this response:
// the response line followed by the separator line.
func (r Response) Frame() []byte {
	return []byte(r.String() + LineTerminator + Separator + LineTerminator)
}

// ErrMalformedResponse is returned by ParseResponse for lines that are neither ANSWER nor ERROR.
var ErrMalformedResponse = errors.New("malformed response line")

// ParseResponse parses a response line as written by the server (terminator already removed).
func ParseResponse(line string) (Response, error) {
	kind, text, ok := strings.Cut(line, " ")
	if !ok {
		return Response{}, fmt.Errorf("%w: %q", ErrMalformedResponse, line)
	}
	switch kind {
	case KindAnswer.String():
		return Response{Kind: KindAnswer, Text: text}, nil
	case KindError.String():
		return Response{Kind: KindError, Text: text}, nil
	default:
		return Response{}, fmt.Errorf("%w: %q", ErrMalformedResponse, line)
	}
}

// --------------------------------------------------------------------------
// Fixed Messages
// --------------------------------------------------------------------------

// Greeting returns the two lines sent right after a connection was accepted.
func Greeting() []byte {
	return []byte(GreetingLine + LineTerminator + CommandsLine + LineTerminator)
}

// Farewell returns the line sent when the peer half-closed the connection.
func Farewell() []byte {
	return []byte(FarewellLine + LineTerminator)
}
