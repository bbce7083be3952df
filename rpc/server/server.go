package server

import (
	"context"
	"errors"
	"fmt"
	"github.com/ValentinKolb/dictd/lib/store"
	"github.com/ValentinKolb/dictd/rpc/common"
	"github.com/ValentinKolb/dictd/rpc/interpreter"
	"github.com/ValentinKolb/dictd/rpc/metrics"
	"github.com/ValentinKolb/dictd/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
	"net"
	"sync"
	"sync/atomic"
	"time"
)

var Logger = logger.GetLogger("server")

const (
	minAcceptBackoff = 5 * time.Millisecond
	maxAcceptBackoff = 1 * time.Second
)

// Server owns the dictionary and the listener. Every accepted connection is
// wrapped into a session that runs in its own goroutine.
type Server struct {
	config    common.ServerConfig
	connector transport.IServerConnector
	store     store.IStore
	metrics   *metrics.Collector

	listener   net.Listener
	sessions   *xsync.MapOf[uint64, *session]
	nextID     atomic.Uint64
	sessionsWg sync.WaitGroup
	acceptDone chan struct{}
	stopping   atomic.Bool
	closeOnce  sync.Once
	finishOnce sync.Once
	stopStats  context.CancelFunc
}

// NewServer creates a new dictionary server.
// The store is created once from the factory and lives as long as the server.
//
// Usage:
//
//	s := server.NewServer(
//		common.DefaultServerConfig(),
//		tcp.NewTCPServerConnector(),
//		lstore.NewLocalStore,
//	)
//
//	if err := s.Start(); err != nil {
//		panic(err)
//	}
//	defer s.Stop(context.Background())
func NewServer(
	config common.ServerConfig,
	connector transport.IServerConnector,
	factory store.Factory,
) *Server {
	s := &Server{
		config:     config,
		connector:  connector,
		store:      factory(),
		metrics:    metrics.NewCollector(),
		sessions:   xsync.NewMapOf[uint64, *session](),
		acceptDone: make(chan struct{}),
	}
	s.metrics.RegisterGauges(s.ActiveSessions, s.store.Len)

	Logger.Infof("created dictionary server")
	Logger.Infof("%s", config.String())
	return s
}

// Start binds the listener and begins accepting connections in the background.
// Start must be called at most once.
func (s *Server) Start() error {
	if err := s.config.Validate(); err != nil {
		return fmt.Errorf("invalid server config: %w", err)
	}

	listener, err := s.connector.Listen(s.config)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}

	if s.config.MetricsEndpoint != "" {
		if _, err := s.metrics.Serve(s.config.MetricsEndpoint); err != nil {
			_ = listener.Close()
			return err
		}
	}
	s.listener = listener

	statsCtx, cancel := context.WithCancel(context.Background())
	s.stopStats = cancel
	if s.config.StatsIntervalSecond > 0 {
		go s.metrics.RunStatsLog(statsCtx, time.Duration(s.config.StatsIntervalSecond)*time.Second)
	}

	go s.acceptLoop()

	Logger.Infof("%s server ready on %s", s.connector.GetName(), listener.Addr())
	return nil
}

// Stop stops accepting new connections and waits for all active sessions to end on
// their own. Sessions are never severed; if ctx ends first, Stop returns ctx.Err()
// and the remaining sessions keep running. Stop may be called again to keep waiting.
func (s *Server) Stop(ctx context.Context) error {
	if s.listener == nil {
		return nil
	}

	s.closeOnce.Do(func() {
		s.stopping.Store(true)
		if err := s.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			Logger.Warningf("failed to close listener: %v", err)
		}
		<-s.acceptDone
		Logger.Infof("stopped accepting connections, waiting for %d active session(s)", s.ActiveSessions())
	})

	drained := make(chan struct{})
	go func() {
		s.sessionsWg.Wait()
		close(drained)
	}()

	select {
	case <-drained:
	case <-ctx.Done():
		Logger.Warningf("shutdown interrupted with %d active session(s): %v", s.ActiveSessions(), ctx.Err())
		return ctx.Err()
	}

	s.finishOnce.Do(func() {
		s.stopStats()
		if err := s.metrics.Close(ctx); err != nil {
			Logger.Warningf("failed to stop metrics: %v", err)
		}
		Logger.Infof("server stopped")
	})
	return nil
}

// Addr returns the address the server is listening on (nil before Start)
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Store returns the dictionary owned by the server
func (s *Server) Store() store.IStore {
	return s.store
}

// Metrics returns the metrics collector of the server
func (s *Server) Metrics() *metrics.Collector {
	return s.metrics
}

// ActiveSessions returns the number of sessions that have not reached the closed state
func (s *Server) ActiveSessions() int {
	return s.sessions.Size()
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// acceptLoop accepts connections until the listener is closed
func (s *Server) acceptLoop() {
	defer close(s.acceptDone)

	backoff := time.Duration(0)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.stopping.Load() || errors.Is(err, net.ErrClosed) {
				return
			}

			// e.g. too many open files: retry with exponential backoff
			if backoff == 0 {
				backoff = minAcceptBackoff
			} else {
				backoff = min(2*backoff, maxAcceptBackoff)
			}
			Logger.Errorf("accept error: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			continue
		}
		backoff = 0

		if err := s.connector.UpgradeConnection(conn, s.config); err != nil {
			Logger.Warningf("failed to apply socket options for %s: %v", conn.RemoteAddr(), err)
		}

		id := s.nextID.Add(1)
		sess := newSession(id, conn, s.config, s.handleLine, s.metrics)
		s.sessions.Store(id, sess)
		s.metrics.ConnectionOpened()

		s.sessionsWg.Add(1)
		go func() {
			defer s.sessionsWg.Done()
			defer s.sessions.Delete(id)
			sess.run()
		}()
	}
}

// handleLine interprets one line against the dictionary and records metrics
func (s *Server) handleLine(line string) common.Response {
	start := time.Now()

	cmd, ok := interpreter.Parse(line)
	if !ok {
		resp := common.NewError(common.MsgCommandExpected)
		s.metrics.ObserveCommand("", resp, start)
		return resp
	}

	resp := interpreter.Execute(cmd, s.store)
	s.metrics.ObserveCommand(cmd.Verb, resp, start)
	return resp
}
