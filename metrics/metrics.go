// Public domain.

// Package metrics counts transit searches for prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcomes of a search, the values of the outcome label.
const (
	OutcomeExact     = "exact"     // value equal to the offset
	OutcomeFound     = "found"     // interpolated crossing
	OutcomeConverged = "converged" // step below floating point resolution
	OutcomeSoftStop  = "soft_stop" // target could not compute further
	OutcomeError     = "error"
)

// Collector holds the search metrics on a registry of its own.
type Collector struct {
	reg *prometheus.Registry

	Searches   *prometheus.CounterVec // outcome label
	Iterations prometheus.Histogram
	Duration   prometheus.Histogram
	Targets    *prometheus.CounterVec // kind label, targets constructed
	Samples    prometheus.Counter     // engine calls spent sampling speeds
}

// New creates a Collector.
func New() *Collector {
	reg := prometheus.NewRegistry()
	c := &Collector{
		reg: reg,
		Searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "transit_searches_total",
			Help: "Transit searches by outcome.",
		}, []string{"outcome"}),
		Iterations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "transit_iterations",
			Help:    "Loop iterations per transit search.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "transit_search_seconds",
			Help:    "Duration of transit searches.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 12),
		}),
		Targets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "transit_targets_total",
			Help: "Transit targets constructed, by kind.",
		}, []string{"kind"}),
		Samples: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "transit_speed_samples_total",
			Help: "Ephemeris evaluations spent estimating extreme speeds.",
		}),
	}
	reg.MustRegister(c.Searches, c.Iterations, c.Duration, c.Targets, c.Samples)
	return c
}

// Search records one finished search.  A nil Collector records nothing.
func (c *Collector) Search(outcome string, iterations int, d time.Duration) {
	if c == nil {
		return
	}
	c.Searches.WithLabelValues(outcome).Inc()
	c.Iterations.Observe(float64(iterations))
	c.Duration.Observe(d.Seconds())
}

// Target records construction of a target of the given kind and the
// number of speed samples it took.
func (c *Collector) Target(kind string, samples int) {
	if c == nil {
		return
	}
	c.Targets.WithLabelValues(kind).Inc()
	c.Samples.Add(float64(samples))
}

// Registry returns the registry holding the metrics.
func (c *Collector) Registry() *prometheus.Registry { return c.reg }

// Handler serves the metrics in the prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}
