package metrics

import (
	"context"
	"errors"
	"fmt"
	"github.com/ValentinKolb/dictd/rpc/common"
	vm "github.com/VictoriaMetrics/metrics"
	"github.com/lni/dragonboat/v4/logger"
	gometrics "github.com/rcrowley/go-metrics"
	"io"
	"net"
	"net/http"
	"sort"
	"time"
)

var Logger = logger.GetLogger("metrics")

// Session lifecycle stages used as label for transport failures
const (
	StageGreeting = "greeting"
	StageRead     = "read"
	StageWrite    = "write"
	StageFarewell = "farewell"
)

const (
	verbUnknown = "unknown"
	verbNone    = "none"
)

// Collector records server activity. All methods are safe for concurrent use.
type Collector struct {
	set      *vm.Set
	registry gometrics.Registry

	connections *vm.Counter
	connMeter   gometrics.Meter

	httpServer *http.Server
}

// NewCollector creates a collector with its own metric set and registry
func NewCollector() *Collector {
	set := vm.NewSet()
	registry := gometrics.NewRegistry()

	return &Collector{
		set:         set,
		registry:    registry,
		connections: set.NewCounter("dictd_connections_total"),
		connMeter:   gometrics.GetOrRegisterMeter("connections", registry),
	}
}

// RegisterGauges registers gauges that are evaluated on every scrape
func (c *Collector) RegisterGauges(activeSessions func() int, words func() int) {
	c.set.NewGauge("dictd_sessions_active", func() float64 {
		return float64(activeSessions())
	})
	c.set.NewGauge("dictd_words", func() float64 {
		return float64(words())
	})
}

// ConnectionOpened records an accepted connection
func (c *Collector) ConnectionOpened() {
	c.connections.Inc()
	c.connMeter.Mark(1)
}

// ObserveCommand records one processed line. verb is the first token of the line ("" for blank lines).
func (c *Collector) ObserveCommand(verb string, resp common.Response, start time.Time) {
	label := verbLabel(verb)
	result := "answer"
	if resp.IsError() {
		result = "error"
	}

	c.set.GetOrCreateCounter(fmt.Sprintf(`dictd_commands_total{verb=%q,result=%q}`, label, result)).Inc()
	c.set.GetOrCreateHistogram(fmt.Sprintf(`dictd_command_duration_seconds{verb=%q}`, label)).UpdateDuration(start)
	gometrics.GetOrRegisterTimer("commands."+label, c.registry).UpdateSince(start)
}

// SessionError records a transport failure in the given session stage
func (c *Collector) SessionError(stage string) {
	c.set.GetOrCreateCounter(fmt.Sprintf(`dictd_session_errors_total{stage=%q}`, stage)).Inc()
	gometrics.GetOrRegisterCounter("session_errors."+stage, c.registry).Inc(1)
}

// WritePrometheus writes all metrics of this collector in Prometheus text format
func (c *Collector) WritePrometheus(w io.Writer, exposeProcessMetrics bool) {
	c.set.WritePrometheus(w)
	if exposeProcessMetrics {
		vm.WriteProcessMetrics(w)
	}
}

// --------------------------------------------------------------------------
// HTTP Exposition
// --------------------------------------------------------------------------

// Serve starts an HTTP server exposing /metrics on the given endpoint.
// It returns once the listener is bound; requests are served in the background.
func (c *Collector) Serve(endpoint string) (net.Addr, error) {
	listener, err := net.Listen("tcp", endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to listen for metrics on %s: %w", endpoint, err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		c.WritePrometheus(w, true)
	})

	c.httpServer = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := c.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			Logger.Errorf("metrics endpoint stopped: %v", err)
		}
	}()

	Logger.Infof("serving metrics on http://%s/metrics", listener.Addr())
	return listener.Addr(), nil
}

// --------------------------------------------------------------------------
// Periodic Stats Log
// --------------------------------------------------------------------------

// RunStatsLog writes a snapshot of all meters and timers to the log every interval
// until the context is done.
func (c *Collector) RunStatsLog(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, line := range c.StatsLines() {
				Logger.Infof("%s", line)
			}
		}
	}
}

// StatsLines renders one line per registered meter, timer and counter, sorted by name
func (c *Collector) StatsLines() []string {
	var lines []string
	c.registry.Each(func(name string, i interface{}) {
		switch m := i.(type) {
		case gometrics.Timer:
			s := m.Snapshot()
			lines = append(lines, fmt.Sprintf("%-24s count=%d rate1=%.2f/s mean=%s p99=%s",
				name, s.Count(), s.Rate1(), time.Duration(s.Mean()), time.Duration(s.Percentile(0.99))))
		case gometrics.Meter:
			s := m.Snapshot()
			lines = append(lines, fmt.Sprintf("%-24s count=%d rate1=%.2f/s", name, s.Count(), s.Rate1()))
		case gometrics.Counter:
			lines = append(lines, fmt.Sprintf("%-24s count=%d", name, m.Count()))
		}
	})
	sort.Strings(lines)
	return lines
}

// --------------------------------------------------------------------------
// Shutdown
// --------------------------------------------------------------------------

// Close stops the metrics endpoint (if started) and the meter goroutines of the registry
func (c *Collector) Close(ctx context.Context) error {
	var err error
	if c.httpServer != nil {
		err = c.httpServer.Shutdown(ctx)
	}
	c.registry.UnregisterAll()
	return err
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func verbLabel(verb string) string {
	if verb == "" {
		return verbNone
	}
	for _, v := range common.Verbs {
		if v == verb {
			return verb
		}
	}
	return verbUnknown
}
