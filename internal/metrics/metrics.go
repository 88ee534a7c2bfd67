package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// EventsAccepted counts accepted state-changing events by kind.
	EventsAccepted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "game_events_accepted_total",
			Help: "Total number of accepted gameplay events",
		},
		[]string{"event"},
	)

	// EventsRejected counts rejected events by kind and reason code.
	EventsRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "game_events_rejected_total",
			Help: "Total number of rejected gameplay events",
		},
		[]string{"event", "reason"},
	)

	// LiveConnections tracks the number of registered live connections.
	LiveConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "game_live_connections",
			Help: "Number of live WebSocket connections in the registry",
		},
	)

	// BroadcastsDropped counts messages dropped on full send buffers.
	BroadcastsDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "game_broadcasts_dropped_total",
			Help: "Broadcast messages dropped because a connection buffer was full",
		},
	)
)

// Handler returns the /metrics HTTP handler with all collectors registered.
func Handler() http.Handler {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		EventsAccepted,
		EventsRejected,
		LiveConnections,
		BroadcastsDropped,
	)
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
