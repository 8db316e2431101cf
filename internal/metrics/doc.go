// Package metrics defines the Prometheus collectors exported by the
// gateway. All collectors are registered at init time via promauto and
// served from the dedicated metrics listener.
package metrics
