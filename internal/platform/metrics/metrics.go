// Package metrics exposes run and tool counters for Prometheus scraping.
package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"reconforge/internal/core/ports"
)

// Compile-time interface check.
var _ ports.Notifier = (*Collector)(nil)

// Collector turns orchestrator events into Prometheus metrics.
// It owns a private registry so tests and multiple servers never collide.
type Collector struct {
	registry *prometheus.Registry

	toolRuns     *prometheus.CounterVec
	toolDuration *prometheus.HistogramVec
	runsTotal    prometheus.Counter
	runDuration  prometheus.Histogram
	toolsRunning prometheus.Gauge
}

// NewCollector creates the collector and registers every metric.
func NewCollector() (*Collector, error) {
	c := &Collector{registry: prometheus.NewRegistry()}

	c.toolRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reconforge_tool_runs_total",
			Help: "Tool executions by outcome",
		},
		[]string{"tool", "status", "kind"},
	)
	c.toolDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reconforge_tool_duration_seconds",
			Help:    "Tool execution time in seconds",
			Buckets: []float64{0.5, 1, 5, 15, 30, 60, 120, 300, 900, 3600},
		},
		[]string{"tool"},
	)
	c.runsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reconforge_runs_total",
		Help: "Completed runs",
	})
	c.runDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "reconforge_run_duration_seconds",
		Help:    "Wall-clock time of a whole run in seconds",
		Buckets: []float64{1, 10, 30, 60, 300, 900, 3600},
	})
	c.toolsRunning = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "reconforge_tools_running",
		Help: "Tools currently executing",
	})

	collectors := []prometheus.Collector{
		c.toolRuns,
		c.toolDuration,
		c.runsTotal,
		c.runDuration,
		c.toolsRunning,
	}
	for _, col := range collectors {
		if err := c.registry.Register(col); err != nil {
			return nil, fmt.Errorf("register metric: %w", err)
		}
	}
	return c, nil
}

// Notify implements ports.Notifier.
func (c *Collector) Notify(_ context.Context, event ports.Event) error {
	switch event.Type {
	case ports.EventToolStarted:
		c.toolsRunning.Inc()
	case ports.EventToolCompleted, ports.EventToolFailed:
		c.toolsRunning.Dec()
		data, ok := event.Data.(ports.ToolFinishedEvent)
		if !ok {
			return fmt.Errorf("unexpected %s data %T", event.Type, event.Data)
		}
		res := data.Result
		kind := ""
		if res.Failure != nil {
			kind = string(res.Failure.Kind)
		}
		c.toolRuns.WithLabelValues(string(res.Tool), string(res.Status), kind).Inc()
		c.toolDuration.WithLabelValues(string(res.Tool)).Observe(res.Duration.Seconds())
	case ports.EventRunCompleted:
		c.runsTotal.Inc()
		if data, ok := event.Data.(ports.RunCompletedEvent); ok {
			c.runDuration.Observe(data.Duration.Seconds())
		}
	}
	return nil
}

// Close implements ports.Notifier.
func (c *Collector) Close() error { return nil }

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the metrics in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}
