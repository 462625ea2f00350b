package metrics

import (
	"fmt"
	"io"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/common/expfmt"
)

// ContentType is the media type of the text exposition format.
const ContentType = "text/plain; version=0.0.4; charset=utf-8"

var (
	requestLabels = []string{"method", "route", "status_code"}

	summaryObjectives = map[float64]float64{
		0.5:  0.05,
		0.9:  0.01,
		0.95: 0.005,
		0.99: 0.001,
	}
)

// Options controls the optional collectors registered next to the HTTP
// instruments. Prefix and Labels apply to the Go runtime and process
// collectors only.
type Options struct {
	// DefaultMetrics registers the Go runtime and process collectors
	DefaultMetrics bool
	// Prefix is prepended to the default metric names
	Prefix string
	// Labels are attached as constant labels to the default metrics
	Labels map[string]string
	// Version and Commit populate app_build_info when Version is set
	Version string
	Commit  string
}

// Collector owns the registry and the HTTP instruments.
type Collector struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.SummaryVec
	activeRequests  prometheus.Gauge
}

// NewCollector creates a collector backed by a fresh registry.
// It fails only when opts would register conflicting collectors.
func NewCollector(opts Options) (*Collector, error) {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total number of HTTP requests",
		}, requestLabels),
		requestDuration: prometheus.NewSummaryVec(prometheus.SummaryOpts{
			Name:       "http_request_duration_seconds",
			Help:       "Duration of HTTP requests in seconds",
			Objectives: summaryObjectives,
		}, requestLabels),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_active_requests",
			Help: "Number of active HTTP requests",
		}),
	}

	for _, col := range []prometheus.Collector{c.requestTotal, c.requestDuration, c.activeRequests} {
		if err := c.registry.Register(col); err != nil {
			return nil, fmt.Errorf("register http instrument: %w", err)
		}
	}

	if opts.Version != "" {
		buildInfo := prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "app_build_info",
			Help: "Build information of the running binary",
		}, []string{"version", "commit"})
		if err := c.registry.Register(buildInfo); err != nil {
			return nil, fmt.Errorf("register build info: %w", err)
		}
		buildInfo.WithLabelValues(opts.Version, opts.Commit).Set(1)
	}

	if opts.DefaultMetrics {
		var reg prometheus.Registerer = c.registry
		if len(opts.Labels) > 0 {
			reg = prometheus.WrapRegistererWith(prometheus.Labels(opts.Labels), reg)
		}
		if opts.Prefix != "" {
			reg = prometheus.WrapRegistererWithPrefix(opts.Prefix, reg)
		}
		if err := reg.Register(collectors.NewGoCollector()); err != nil {
			return nil, fmt.Errorf("register go collector: %w", err)
		}
		if err := reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
			return nil, fmt.Errorf("register process collector: %w", err)
		}
	}

	return c, nil
}

// ObserveRequest records one finished request. The status code is exported
// as its decimal string and seconds feeds the duration summary.
func (c *Collector) ObserveRequest(method, route string, status int, seconds float64) {
	code := strconv.Itoa(status)
	c.requestTotal.WithLabelValues(method, route, code).Inc()
	c.requestDuration.WithLabelValues(method, route, code).Observe(seconds)
}

// IncActive marks a request as in flight.
func (c *Collector) IncActive() { c.activeRequests.Inc() }

// DecActive marks an in-flight request as finished.
func (c *Collector) DecActive() { c.activeRequests.Dec() }

// ContentType returns the media type produced by Render.
func (c *Collector) ContentType() string { return ContentType }

// Gatherer exposes the underlying registry.
func (c *Collector) Gatherer() prometheus.Gatherer { return c.registry }

// Registerer lets callers add their own collectors to the same registry.
func (c *Collector) Registerer() prometheus.Registerer { return c.registry }

// Render writes every gathered metric family to w in the text exposition format.
func (c *Collector) Render(w io.Writer) error {
	families, err := c.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
