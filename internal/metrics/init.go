package metrics

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	for _, kind := range []string{"timeout", "connect", "status"} {
		ProxyUpstreamErrors.WithLabelValues(kind)
	}

	for _, operation := range []string{"remux", "subtitle", "audio"} {
		PipelineJobsTotal.WithLabelValues(operation)
		PipelineBytesTotal.WithLabelValues(operation)
	}
}
