// Package metrics exposes Prometheus counters for tool invocations.
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
	toolInvocations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mcp_tool_invocations_total",
		Help: "Tool invocations by tool name and outcome.",
	}, []string{"tool", "success"})

	toolDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mcp_tool_duration_seconds",
		Help:    "Tool execution latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"tool"})
)

// ObserveInvocation records one tool call.
func ObserveInvocation(tool string, success bool, elapsed time.Duration) {
	toolInvocations.WithLabelValues(tool, strconv.FormatBool(success)).Inc()
	toolDuration.WithLabelValues(tool).Observe(elapsed.Seconds())
}

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
