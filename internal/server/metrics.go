package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Assessment outcomes recorded in metalca_assessments_total.
const (
	outcomeOK         = "ok"
	outcomeInvalid    = "invalid"
	outcomeUnresolved = "unresolved"
	outcomeError      = "error"
)

// metrics are registered on a per-server registry so that several servers
// (and tests) can coexist in one process.
type metrics struct {
	registry *prometheus.Registry

	assessments      *prometheus.CounterVec
	assessDuration   prometheus.Histogram
	circularityScore prometheus.Histogram
	requests         *prometheus.CounterVec
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &metrics{
		registry: reg,
		assessments: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "metalca",
			Name:      "assessments_total",
			Help:      "Assessments handled, by outcome.",
		}, []string{"outcome"}),
		assessDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "metalca",
			Name:      "assessment_duration_seconds",
			Help:      "Time spent computing one assessment.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8), //nolint:mnd // 10µs .. ~160ms
		}),
		circularityScore: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "metalca",
			Name:      "circularity_score",
			Help:      "Distribution of computed circularity scores.",
			Buckets:   prometheus.LinearBuckets(25, 10, 8), //nolint:mnd // 25 .. 95
		}),
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "metalca",
			Name:      "http_requests_total",
			Help:      "HTTP requests, by route pattern and status code.",
		}, []string{"method", "route", "status"}),
	}
}
