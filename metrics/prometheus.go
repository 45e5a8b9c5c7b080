// Package metrics provides a Prometheus implementation of
// filepartition.MetricsCollector.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bmiovino/filepartition"
)

// PrometheusCollector implements filepartition.MetricsCollector backed by Prometheus.
//
// Metrics are registered lazily on first use. Every operation counter carries
// a "result" label holding the status kind ("success", "validation",
// "not_found", "io").
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	writes            *prometheus.CounterVec
	partitionsWritten prometheus.Counter
	itemsWritten      prometheus.Counter
	writeLatency      prometheus.Histogram

	reads       *prometheus.CounterVec
	itemsRead   prometheus.Counter
	readLatency prometheus.Histogram

	scans             *prometheus.CounterVec
	partitionsScanned prometheus.Gauge
	scanLatency       prometheus.Histogram
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ filepartition.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer interface (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Prometheus metrics namespace (defaults to "filepartition" if empty)
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "filepartition"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.writes = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "write",
			Name:      "operations_total",
			Help:      "Total write operations by result.",
		}, []string{"result"})
		p.partitionsWritten = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "write",
			Name:      "partitions_total",
			Help:      "Total partition files written, including those of failed operations.",
		})
		p.itemsWritten = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "write",
			Name:      "items_total",
			Help:      "Total records written by successful operations.",
		})
		p.writeLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "write",
			Name:      "duration_seconds",
			Help:      "Duration of write operations in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14), // 1ms .. ~8s
		})

		p.reads = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "read",
			Name:      "operations_total",
			Help:      "Total partition reads by result.",
		}, []string{"result"})
		p.itemsRead = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "read",
			Name:      "items_total",
			Help:      "Total records returned by partition reads.",
		})
		p.readLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "read",
			Name:      "duration_seconds",
			Help:      "Duration of partition reads in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		})

		p.scans = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "scan",
			Name:      "operations_total",
			Help:      "Total directory scans by result.",
		}, []string{"result"})
		p.partitionsScanned = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "scan",
			Name:      "partitions",
			Help:      "Number of partitions found by the last successful scan.",
		})
		p.scanLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "scan",
			Name:      "duration_seconds",
			Help:      "Duration of directory scans in seconds.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		})

		p.reg.MustRegister(p.writes)
		p.reg.MustRegister(p.partitionsWritten)
		p.reg.MustRegister(p.itemsWritten)
		p.reg.MustRegister(p.writeLatency)
		p.reg.MustRegister(p.reads)
		p.reg.MustRegister(p.itemsRead)
		p.reg.MustRegister(p.readLatency)
		p.reg.MustRegister(p.scans)
		p.reg.MustRegister(p.partitionsScanned)
		p.reg.MustRegister(p.scanLatency)
	})
}

func result(err error) string {
	return filepartition.StatusOf(err).Kind.String()
}

// RecordWrite implements filepartition.MetricsCollector.
func (p *PrometheusCollector) RecordWrite(partitions, items int, duration time.Duration, err error) {
	p.ensureRegistered()
	p.writes.WithLabelValues(result(err)).Inc()
	p.partitionsWritten.Add(float64(partitions))
	if err == nil {
		p.itemsWritten.Add(float64(items))
	}
	p.writeLatency.Observe(duration.Seconds())
}

// RecordRead implements filepartition.MetricsCollector.
func (p *PrometheusCollector) RecordRead(items int, duration time.Duration, err error) {
	p.ensureRegistered()
	p.reads.WithLabelValues(result(err)).Inc()
	p.itemsRead.Add(float64(items))
	p.readLatency.Observe(duration.Seconds())
}

// RecordScan implements filepartition.MetricsCollector.
func (p *PrometheusCollector) RecordScan(partitions int, duration time.Duration, err error) {
	p.ensureRegistered()
	p.scans.WithLabelValues(result(err)).Inc()
	if err == nil {
		p.partitionsScanned.Set(float64(partitions))
	}
	p.scanLatency.Observe(duration.Seconds())
}
