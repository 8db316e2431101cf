package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gateway_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_gateway_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_gateway_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Proxy metrics
var (
	ProxyBytesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_gateway_proxy_bytes_total",
			Help: "Total bytes relayed from upstream origins to clients",
		},
	)

	ProxyUpstreamErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gateway_proxy_upstream_errors_total",
			Help: "Upstream request failures by kind",
		},
		[]string{"kind"}, // "timeout", "connect", "status"
	)
)

// Probe metrics
var (
	ProbeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "media_gateway_probe_duration_seconds",
			Help:    "ffprobe invocation duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)

	ProbeFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_gateway_probe_failures_total",
			Help: "Total ffprobe invocations that failed or returned unparseable output",
		},
	)
)

// Pipeline metrics
var (
	PipelineJobsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gateway_pipeline_jobs_total",
			Help: "Transcode pipeline jobs started, by operation",
		},
		[]string{"operation"}, // "remux", "subtitle", "audio"
	)

	PipelineProcessesActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_gateway_pipeline_processes_active",
			Help: "Number of ffmpeg child processes currently running",
		},
	)

	PipelineBytesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gateway_pipeline_bytes_total",
			Help: "Bytes relayed from ffmpeg to clients, by operation",
		},
		[]string{"operation"},
	)
)
