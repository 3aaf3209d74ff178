// Package metrics exposes Prometheus instrumentation for the feed pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the console's Prometheus collectors. All collectors are
// registered against the registry passed to New, so tests can use an
// isolated registry.
type Metrics struct {
	EventsIngested  *prometheus.CounterVec
	CommandsSent    *prometheus.CounterVec
	CommandsDropped *prometheus.CounterVec
	AlertsPushed    *prometheus.CounterVec
	ConnectionUp    prometheus.Gauge
	EventLogSize    prometheus.Gauge
}

// New creates and registers the console metrics.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		EventsIngested: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "console_events_ingested_total",
			Help: "Total number of feed events ingested, by kind",
		}, []string{"kind"}),

		CommandsSent: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "console_commands_sent_total",
			Help: "Total number of commands forwarded upstream, by kind",
		}, []string{"kind"}),

		CommandsDropped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "console_commands_dropped_total",
			Help: "Total number of commands dropped while disconnected, by kind",
		}, []string{"kind"}),

		AlertsPushed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "console_alerts_pushed_total",
			Help: "Total number of alerts pushed to the ring, by severity",
		}, []string{"severity"}),

		ConnectionUp: factory.NewGauge(prometheus.GaugeOpts{
			Name: "console_feed_connected",
			Help: "1 when the upstream feed connection is established, 0 otherwise",
		}),

		EventLogSize: factory.NewGauge(prometheus.GaugeOpts{
			Name: "console_event_log_size",
			Help: "Current number of events retained in the event log",
		}),
	}
}
