// Package metrics provides metrics collection for qldb-go, backed by
// prometheus/client_golang. Metrics are registered with a private
// registry so that embedding applications keep full control of the
// default Prometheus registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var defaultRegistry = prometheus.NewRegistry()

// DefaultLatencyBuckets are histogram buckets suitable for session
// acquisition latencies (seconds).
var DefaultLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// Counter is a monotonically increasing counter.
type Counter struct {
	c prometheus.Counter
}

// NewCounter creates and registers a new counter metric.
func NewCounter(name, help string) *Counter {
	c := prometheus.NewCounter(prometheus.CounterOpts{
		Name: name,
		Help: help,
	})
	defaultRegistry.MustRegister(c)
	return &Counter{c: c}
}

// Inc increments the counter by 1.
func (c *Counter) Inc() {
	c.c.Inc()
}

// Add adds the given value to the counter.
func (c *Counter) Add(v float64) {
	c.c.Add(v)
}

// Gauge is a metric that can go up and down.
type Gauge struct {
	g prometheus.Gauge
}

// NewGauge creates and registers a new gauge metric.
func NewGauge(name, help string) *Gauge {
	g := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: name,
		Help: help,
	})
	defaultRegistry.MustRegister(g)
	return &Gauge{g: g}
}

// Set sets the gauge to the given value.
func (g *Gauge) Set(v float64) {
	g.g.Set(v)
}

// Inc increments the gauge by 1.
func (g *Gauge) Inc() {
	g.g.Inc()
}

// Dec decrements the gauge by 1.
func (g *Gauge) Dec() {
	g.g.Dec()
}

// Histogram tracks the distribution of a value.
type Histogram struct {
	h prometheus.Histogram
}

// NewHistogram creates and registers a new histogram metric.
func NewHistogram(name, help string, buckets []float64) *Histogram {
	h := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    name,
		Help:    help,
		Buckets: buckets,
	})
	defaultRegistry.MustRegister(h)
	return &Histogram{h: h}
}

// Observe records a single observation.
func (h *Histogram) Observe(v float64) {
	h.h.Observe(v)
}

// Handler returns an http.Handler that exposes all registered metrics in
// Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(defaultRegistry, promhttp.HandlerOpts{})
}
