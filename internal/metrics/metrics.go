// Package metrics records per-run Prometheus metrics for gitlocalstats.
// A CLI run is short-lived, so metrics are written to a textfile instead of being scraped.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"

	ResultCounted    = "counted"
	ResultOutOfRange = "out_of_range"

	LookupHit  = "hit"
	LookupMiss = "miss"
)

// Recorder owns a private registry and the collectors of one run.
// All methods are safe on a nil Recorder.
type Recorder struct {
	namespace string
	buckets   []float64
	registry  *prometheus.Registry

	repositories *prometheus.CounterVec
	records      *prometheus.CounterVec
	cacheLookups *prometheus.CounterVec
	extraction   prometheus.Histogram
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithNamespace overrides the metric name prefix.
func WithNamespace(namespace string) Option {
	return func(r *Recorder) {
		r.namespace = namespace
	}
}

// WithHistogramBuckets overrides the extraction duration buckets.
func WithHistogramBuckets(buckets []float64) Option {
	return func(r *Recorder) {
		r.buckets = buckets
	}
}

// NewRecorder creates a Recorder on a fresh registry.
func NewRecorder(opts ...Option) *Recorder {
	r := &Recorder{
		namespace: "gitlocalstats",
		buckets:   prometheus.DefBuckets,
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(r)
	}

	auto := promauto.With(r.registry)
	r.repositories = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Name:      "repositories_total",
		Help:      "Repositories processed, by outcome",
	}, []string{"status"})
	r.records = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Name:      "records_total",
		Help:      "Commit records read, by classification",
	}, []string{"result"})
	r.cacheLookups = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Name:      "cache_lookups_total",
		Help:      "Record cache lookups, by result",
	}, []string{"result"})
	r.extraction = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: r.namespace,
		Name:      "extraction_seconds",
		Help:      "Time spent reading one repository",
		Buckets:   r.buckets,
	})
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// ObserveRepository records the outcome of one repository.
func (r *Recorder) ObserveRepository(failed bool, elapsed time.Duration) {
	if r == nil {
		return
	}
	status := StatusOK
	if failed {
		status = StatusFailed
	}
	r.repositories.WithLabelValues(status).Inc()
	r.extraction.Observe(elapsed.Seconds())
}

// ObserveRecords records how many records were counted and dropped.
func (r *Recorder) ObserveRecords(counted, outOfRange int) {
	if r == nil {
		return
	}
	r.records.WithLabelValues(ResultCounted).Add(float64(counted))
	r.records.WithLabelValues(ResultOutOfRange).Add(float64(outOfRange))
}

// ObserveCacheLookup records a cache hit or miss.
func (r *Recorder) ObserveCacheLookup(hit bool) {
	if r == nil {
		return
	}
	result := LookupMiss
	if hit {
		result = LookupHit
	}
	r.cacheLookups.WithLabelValues(result).Inc()
}

// WriteTextfile writes all metrics in the Prometheus text format to path.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
