package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics are registered on a per server registry so several servers can
// live in one process.
type metrics struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	framesBuilt     *prometheus.CounterVec
	partMisses      *prometheus.CounterVec
	triangles       prometheus.Counter
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &metrics{
		registry: reg,
		requests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "d3dframe_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"route", "status"},
		),
		requestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "d3dframe_http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		framesBuilt: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "d3dframe_frames_built_total",
				Help: "Total number of frame layouts requested",
			},
			[]string{"result"},
		),
		partMisses: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "d3dframe_part_not_found_total",
				Help: "Catalog lookups that found no part",
			},
			[]string{"part"},
		),
		triangles: f.NewCounter(
			prometheus.CounterOpts{
				Name: "d3dframe_stl_triangles_total",
				Help: "Total triangles written as STL",
			},
		),
	}
}

// recordRequest records a finished request.
func (m *metrics) recordRequest(route, status string, d time.Duration) {
	m.requests.WithLabelValues(route, status).Inc()
	m.requestDuration.WithLabelValues(route).Observe(d.Seconds())
}
