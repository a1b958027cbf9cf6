package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	probesTotal *prometheus.CounterVec
	latencyMs   *prometheus.HistogramVec
}

func New() *Metrics {
	r := prometheus.NewRegistry()
	m := &Metrics{
		registry: r,
		probesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mcp_probe_requests_total",
			Help: "Total number of probe requests sent upstream.",
		}, []string{"mode", "status"}),
		latencyMs: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mcp_probe_request_latency_ms",
			Help:    "Upstream probe latency in milliseconds.",
			Buckets: []float64{50, 100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000, 120000},
		}, []string{"mode", "status"}),
	}
	r.MustRegister(m.probesTotal, m.latencyMs)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveProbe records one upstream call. status 0 means the transport
// failed before any HTTP status was seen.
func (m *Metrics) ObserveProbe(mode string, status int, dur time.Duration) {
	s := strconv.Itoa(status)
	m.probesTotal.WithLabelValues(mode, s).Inc()
	m.latencyMs.WithLabelValues(mode, s).Observe(float64(dur.Milliseconds()))
}
