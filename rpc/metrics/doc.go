// Package metrics records what the dictionary server is doing and exposes it in
// two ways:
//
//   - Prometheus exposition: counters, gauges and latency histograms kept in a
//     VictoriaMetrics metrics.Set and served as text on an optional HTTP endpoint
//     (e.g. "127.0.0.1:9124" -> http://127.0.0.1:9124/metrics).
//
//   - Periodic stats log: meters and timers kept in a go-metrics registry and
//     written through the "metrics" logger every StatsIntervalSecond seconds.
//
// Metric names:
//
//	dictd_connections_total                                accepted connections
//	dictd_sessions_active                                  sessions not yet closed
//	dictd_words                                            entries in the dictionary
//	dictd_commands_total{verb="GET",result="answer"}       processed lines
//	dictd_command_duration_seconds{verb="GET"}             interpreter latency
//	dictd_session_errors_total{stage="write"}              transport failures by lifecycle stage
//
// Unknown verbs are recorded as verb="unknown" and blank lines as verb="none" so that
// clients cannot create unbounded label values.
//
// A Collector is owned by one server. Every server gets its own Set and registry,
// which keeps parallel servers (e.g. in tests) from sharing counters.
package metrics
