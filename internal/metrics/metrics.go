// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lifedemo_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lifedemo_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 120},
		},
		[]string{"method", "route"},
	)
)

// Render metrics
var (
	RenderJobsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lifedemo_render_jobs_total",
			Help: "Total number of render jobs by outcome",
		},
		[]string{"status"},
	)

	RenderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lifedemo_render_duration_seconds",
			Help:    "Media tool run time in seconds",
			Buckets: []float64{1, 2, 5, 10, 20, 30, 60, 120, 300},
		},
	)

	RenderJobsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lifedemo_render_jobs_in_progress",
			Help: "Number of media tool processes currently running",
		},
	)

	SampleFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lifedemo_sample_fetches_total",
			Help: "Sample asset lookups by result (hit, downloaded, error)",
		},
		[]string{"result"},
	)

	ShareUploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lifedemo_share_uploads_total",
			Help: "Share uploads by provider and result",
		},
		[]string{"provider", "result"},
	)

	OutputsDeletedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lifedemo_outputs_deleted_total",
			Help: "Rendered outputs removed from local disk",
		},
		[]string{"reason"},
	)

	OutputsPending = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lifedemo_outputs_pending_cleanup",
			Help: "Rendered outputs waiting for their cleanup timer",
		},
	)
)
