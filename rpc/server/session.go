package server

import (
	"bufio"
	"errors"
	"fmt"
	"github.com/ValentinKolb/dictd/rpc/common"
	"github.com/ValentinKolb/dictd/rpc/metrics"
	"github.com/ValentinKolb/dictd/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
	"net"
	"sync/atomic"
	"time"
)

var SessionLogger = logger.GetLogger("session")

// --------------------------------------------------------------------------
// Session State
// --------------------------------------------------------------------------

// State is the lifecycle state of a connection session
type State int32

const (
	StateConnecting State = iota // accepted, greeting not yet written
	StateActive                  // reading and answering lines
	StateClosing                 // peer half-closed, farewell being written
	StateClosed                  // transport closed, terminal
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateActive:
		return "active"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// HandleFunc turns one request line (without line terminator) into one response
type HandleFunc func(line string) common.Response

// --------------------------------------------------------------------------
// Session
// --------------------------------------------------------------------------

// session is the state bound to one accepted connection.
// All methods except State are called from the session's own goroutine.
type session struct {
	id       uint64
	conn     net.Conn
	peerAddr string
	peerPort int

	handler      HandleFunc
	metrics      *metrics.Collector
	maxLineBytes int
	idleTimeout  time.Duration

	state atomic.Int32
}

func newSession(id uint64, conn net.Conn, config common.ServerConfig, handler HandleFunc, collector *metrics.Collector) *session {
	addr, port := transport.PeerAddr(conn)
	s := &session{
		id:           id,
		conn:         conn,
		peerAddr:     addr,
		peerPort:     port,
		handler:      handler,
		metrics:      collector,
		maxLineBytes: config.MaxLineBytes,
		idleTimeout:  time.Duration(config.IdleTimeoutSecond) * time.Second,
	}
	if s.maxLineBytes <= 0 {
		s.maxLineBytes = common.DefaultMaxLineBytes
	}
	s.state.Store(int32(StateConnecting))
	return s
}

// State returns the current lifecycle state. It is safe to call from any goroutine.
func (s *session) State() State {
	return State(s.state.Load())
}

func (s *session) setState(state State) {
	s.state.Store(int32(state))
}

// String identifies the session in log lines
func (s *session) String() string {
	return fmt.Sprintf("session %d (%s:%d)", s.id, s.peerAddr, s.peerPort)
}

// run drives the session through its lifecycle and returns once the transport is closed.
func (s *session) run() {
	// Connecting -> Active
	if err := s.write(common.Greeting()); err != nil {
		s.recordError(metrics.StageGreeting)
		SessionLogger.Errorf("%s: failed to send greeting: %v", s, err)
		s.close()
		return
	}
	s.setState(StateActive)
	SessionLogger.Infof("%s: connected", s)

	// Active -> Active until end-of-stream or an I/O failure
	if err := s.serve(); err != nil {
		SessionLogger.Errorf("%s: %v", s, err)
		s.close()
		return
	}

	// Active -> Closing -> Closed (best-effort farewell)
	s.setState(StateClosing)
	if err := s.write(common.Farewell()); err != nil {
		s.recordError(metrics.StageFarewell)
		SessionLogger.Warningf("%s: failed to send farewell: %v", s, err)
	}
	s.close()
}

// serve reads lines until the peer half-closes (nil is returned) or the transport fails.
func (s *session) serve() error {
	scanner := bufio.NewScanner(s.conn)
	scanner.Buffer(make([]byte, 0, min(4096, s.maxLineBytes)), s.maxLineBytes)
	scanner.Split(bufio.ScanLines) // strips the trailing \r of \r\n terminated lines

	for {
		if s.idleTimeout > 0 {
			if err := s.conn.SetReadDeadline(time.Now().Add(s.idleTimeout)); err != nil {
				s.recordError(metrics.StageRead)
				return fmt.Errorf("failed to set read deadline: %w", err)
			}
		}

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				s.recordError(metrics.StageRead)
				if errors.Is(err, bufio.ErrTooLong) {
					return fmt.Errorf("line exceeds %d bytes: %w", s.maxLineBytes, err)
				}
				return fmt.Errorf("read failed: %w", err)
			}
			SessionLogger.Debugf("%s: end of stream", s)
			return nil
		}

		resp := s.dispatch(scanner.Text())
		if err := s.write(resp.Frame()); err != nil {
			s.recordError(metrics.StageWrite)
			return fmt.Errorf("failed to write response: %w", err)
		}
	}
}

// dispatch calls the handler; a panic is logged and answered with an internal error
// so that one bad line never tears down the session.
func (s *session) dispatch(line string) (resp common.Response) {
	defer func() {
		if r := recover(); r != nil {
			SessionLogger.Errorf("%s: handler panicked on %q: %v", s, line, r)
			resp = common.NewError(common.MsgInternalError)
		}
	}()

	resp = s.handler(line)
	SessionLogger.Debugf("%s: %q -> %q", s, line, resp.String())
	return resp
}

func (s *session) write(b []byte) error {
	_, err := s.conn.Write(b)
	return err
}

func (s *session) close() {
	if err := s.conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		SessionLogger.Warningf("%s: failed to close connection: %v", s, err)
	}
	s.setState(StateClosed)
	SessionLogger.Infof("%s: closed", s)
}

func (s *session) recordError(stage string) {
	if s.metrics != nil {
		s.metrics.SessionError(stage)
	}
}
