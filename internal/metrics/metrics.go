package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hookline_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hookline_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hookline_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	relayEventsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hookline_relay_events_total",
			Help: "Total number of relayed webhook calls",
		},
	)

	relayDeliveriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hookline_relay_deliveries_total",
			Help: "Total number of subscriber deliveries across all relayed calls",
		},
	)

	endpointsRegisteredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hookline_endpoints_registered_total",
			Help: "Total number of webhook endpoints registered",
		},
	)

	realtimeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hookline_realtime_connections",
			Help: "Number of active WebSocket connections",
		},
	)

	realtimeSubscriptions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hookline_realtime_subscriptions",
			Help: "Number of active topic subscriptions",
		},
	)
)

func Handler() http.Handler {
	return promhttp.Handler()
}

func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	statusStr := strconv.Itoa(status)
	httpRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func IncrementInFlight() {
	httpRequestsInFlight.Inc()
}

func DecrementInFlight() {
	httpRequestsInFlight.Dec()
}

// RecordRelayEvent counts one relayed webhook call and how many subscribers
// it fanned out to.
func RecordRelayEvent(delivered int) {
	relayEventsTotal.Inc()
	relayDeliveriesTotal.Add(float64(delivered))
}

func RecordEndpointRegistered() {
	endpointsRegisteredTotal.Inc()
}

func UpdateRealtimeStats(connections, subscriptions int) {
	realtimeConnections.Set(float64(connections))
	realtimeSubscriptions.Set(float64(subscriptions))
}

// NormalizePath collapses path parameters so metric labels stay low
// cardinality ("/{code}/webhook" rather than one series per code).
func NormalizePath(path string) string {
	if len(path) > 100 {
		path = path[:100]
	}

	normalized := ""
	inParam := false
	for i := 0; i < len(path); i++ {
		if path[i] == '{' {
			inParam = true
			normalized += ":"
			continue
		}
		if path[i] == '}' {
			inParam = false
			continue
		}
		if !inParam {
			normalized += string(path[i])
		}
	}
	return normalized
}
