// Package metrics exposes report generation counters on a private
// Prometheus registry.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "insighted"

// Collector holds the service's metrics. A nil *Collector is valid and
// records nothing.
type Collector struct {
	registry *prometheus.Registry

	generated *prometheus.CounterVec
	failures  *prometheus.CounterVec
	fallbacks *prometheus.CounterVec
	render    prometheus.Histogram
	pages     prometheus.Histogram
}

// New creates a Collector with Go runtime and process collectors attached.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		generated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_generated_total",
			Help:      "Reports successfully generated, by kind.",
		}, []string{"kind"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_failures_total",
			Help:      "Report requests that produced no document, by error code.",
		}, []string{"code"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feedback_fallbacks_total",
			Help:      "Feedback sections replaced by templates, by reason.",
		}, []string{"reason"}),
		render: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_render_seconds",
			Help:      "Time spent composing and serializing a report.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}),
		pages: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_pages",
			Help:      "Pages per generated report.",
			Buckets:   []float64{1, 2, 3, 5, 8, 13, 21, 34},
		}),
	}
	c.registry.MustRegister(
		c.generated, c.failures, c.fallbacks, c.render, c.pages,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// ReportGenerated records a finished report.
func (c *Collector) ReportGenerated(kind string, pages int, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.generated.WithLabelValues(kind).Inc()
	c.pages.Observe(float64(pages))
	c.render.Observe(elapsed.Seconds())
}

// ReportFailed records a request that produced no document.
func (c *Collector) ReportFailed(code string) {
	if c == nil {
		return
	}
	c.failures.WithLabelValues(code).Inc()
}

// FeedbackFallback records a template fallback.
func (c *Collector) FeedbackFallback(reason string) {
	if c == nil {
		return
	}
	c.fallbacks.WithLabelValues(reason).Inc()
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
