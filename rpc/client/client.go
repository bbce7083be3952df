package client

import (
	"bufio"
	"errors"
	"fmt"
	"github.com/ValentinKolb/dictd/rpc/common"
	"github.com/ValentinKolb/dictd/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
	"net"
	"strings"
	"sync"
	"time"
)

var Logger = logger.GetLogger("client")

var (
	// ErrClosed is returned when the client is used after Close
	ErrClosed = errors.New("client is closed")
	// ErrUnexpectedGreeting is returned by Dial if the peer does not greet like a dictionary server
	ErrUnexpectedGreeting = errors.New("unexpected greeting")
	// ErrNoSeparator is returned if a response line is not followed by the separator line
	ErrNoSeparator = errors.New("response not followed by separator")
	// ErrNoFarewell is returned by Close if the server did not say goodbye before closing
	ErrNoFarewell = errors.New("server closed without farewell")
	// ErrInvalidArgument is returned for words or descriptions the protocol cannot carry
	ErrInvalidArgument = errors.New("invalid argument")
)

// ServerError is an ERROR response of the server
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error: %s", e.Message)
}

// Client is a connection to a dictionary server. Commands are sent one at a time;
// concurrent calls are serialized.
type Client struct {
	config common.ClientConfig
	conn   net.Conn
	reader *bufio.Reader

	mu     sync.Mutex
	closed bool
}

// Dial connects to the server and consumes the greeting.
//
// Usage:
//
//	c, err := client.Dial(common.ClientConfig{
//		Transport:     common.TransportTCP,
//		Endpoint:      "127.0.0.1:8124",
//		TimeoutSecond: 5,
//	}, tcp.NewTCPClientConnector())
//	if err != nil {
//		panic(err)
//	}
//	defer c.Close()
//
//	_ = c.Set("go", "a programming language")
func Dial(config common.ClientConfig, connector transport.IClientConnector) (*Client, error) {
	conn, err := connector.Connect(config.Endpoint, config.Timeout())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", config.Endpoint, err)
	}

	c := &Client{
		config: config,
		conn:   conn,
		reader: bufio.NewReader(conn),
	}

	c.setDeadline()
	for _, want := range []string{common.GreetingLine, common.CommandsLine} {
		line, err := c.readLine()
		if err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to read greeting: %w", err)
		}
		if line != want {
			_ = conn.Close()
			return nil, fmt.Errorf("%w: %q", ErrUnexpectedGreeting, line)
		}
	}

	Logger.Debugf("connected to %s via %s", config.Endpoint, connector.GetName())
	return c, nil
}

// --------------------------------------------------------------------------
// Commands
// --------------------------------------------------------------------------

// Do sends one raw request line and returns the response.
// ERROR responses are returned as regular responses, not as Go errors.
func (c *Client) Do(line string) (common.Response, error) {
	if strings.ContainsAny(line, "\r\n") {
		return common.Response{}, fmt.Errorf("%w: request must be a single line", ErrInvalidArgument)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return common.Response{}, ErrClosed
	}

	c.setDeadline()
	if _, err := c.conn.Write([]byte(line + common.LineTerminator)); err != nil {
		return common.Response{}, fmt.Errorf("failed to send request: %w", err)
	}

	respLine, err := c.readLine()
	if err != nil {
		return common.Response{}, fmt.Errorf("failed to read response: %w", err)
	}
	resp, err := common.ParseResponse(respLine)
	if err != nil {
		return common.Response{}, err
	}

	sep, err := c.readLine()
	if err != nil {
		return common.Response{}, fmt.Errorf("failed to read separator: %w", err)
	}
	if sep != common.Separator {
		return common.Response{}, fmt.Errorf("%w: got %q", ErrNoSeparator, sep)
	}

	return resp, nil
}

// Get returns the description of a word. A word that is not in the dictionary
// is reported with found == false and a nil error.
func (c *Client) Get(word string) (description string, found bool, err error) {
	if err := checkWord(word); err != nil {
		return "", false, err
	}

	resp, err := c.Do(fmt.Sprintf("%s %s", common.VerbGet, word))
	if err != nil {
		return "", false, err
	}
	if resp.IsError() {
		if resp.Text == common.MsgWordNotFound {
			return "", false, nil
		}
		return "", false, &ServerError{Message: resp.Text}
	}
	return resp.Text, true, nil
}

// Set stores a description for a word. Whitespace runs inside the description
// are collapsed to single spaces by the server.
func (c *Client) Set(word, description string) error {
	if err := checkWord(word); err != nil {
		return err
	}
	if len(strings.Fields(description)) == 0 {
		return fmt.Errorf("%w: description must not be blank", ErrInvalidArgument)
	}

	return c.expectAnswer(fmt.Sprintf("%s %s %s", common.VerbSet, word, description))
}

// Clear removes all words
func (c *Client) Clear() error {
	return c.expectAnswer(common.VerbClear)
}

// All returns all words of the dictionary in the order the server lists them.
// An empty dictionary yields an empty slice and a nil error.
func (c *Client) All() ([]string, error) {
	resp, err := c.Do(common.VerbAll)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		if resp.Text == common.MsgNoWords {
			return []string{}, nil
		}
		return nil, &ServerError{Message: resp.Text}
	}
	return parseWordList(resp.Text)
}

// Close half-closes the connection, waits for the farewell and closes the connection.
// Calling Close more than once returns ErrClosed.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	c.closed = true
	defer c.conn.Close()

	if err := transport.CloseWrite(c.conn); err != nil {
		return fmt.Errorf("failed to half-close connection: %w", err)
	}

	c.setDeadline()
	line, err := c.readLine()
	if err != nil || line != common.FarewellLine {
		return ErrNoFarewell
	}
	return nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

func (c *Client) expectAnswer(line string) error {
	resp, err := c.Do(line)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return &ServerError{Message: resp.Text}
	}
	return nil
}

// readLine reads one line and strips the \r\n (or bare \n) terminator
func (c *Client) readLine() (string, error) {
	line, err := c.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r"), nil
}

func (c *Client) setDeadline() {
	if timeout := c.config.Timeout(); timeout > 0 {
		_ = c.conn.SetDeadline(time.Now().Add(timeout))
	}
}

func checkWord(word string) error {
	if word == "" || len(strings.Fields(word)) != 1 || strings.TrimSpace(word) != word {
		return fmt.Errorf("%w: word must be a single non-empty token, got %q", ErrInvalidArgument, word)
	}
	return nil
}

// parseWordList parses the text of an ALL answer ("Available words: a, b.")
func parseWordList(text string) ([]string, error) {
	prefix, _, _ := strings.Cut(common.MsgAvailableWords, "%s")
	list, ok := strings.CutPrefix(text, prefix)
	if !ok {
		return nil, fmt.Errorf("%w: %q", common.ErrMalformedResponse, text)
	}
	list, ok = strings.CutSuffix(list, ".")
	if !ok {
		return nil, fmt.Errorf("%w: %q", common.ErrMalformedResponse, text)
	}
	return strings.Split(list, ", "), nil
}
