package filepartition

import (
	"log/slog"
)

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	lister           Lister
	remover          Remover
	partitionSize    int
	readConcurrency  int
	cumulativeBounds bool
}

func defaultOptions() options {
	return options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		partitionSize:    DefaultPartitionSize,
		readConcurrency:  4,
	}
}

// Option configures a Partitioner.
type Option func(*options)

// WithLogger sets the structured logger.
//
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithLogLevel is a shorthand for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// If nil is passed, NoopMetricsCollector is used.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLister sets how partitions are rediscovered.
//
// By default the ReaderWriter is used when it implements Lister (as
// BlobReaderWriter does); otherwise the local file system is listed.
func WithLister(l Lister) Option {
	return func(o *options) {
		o.lister = l
	}
}

// WithRemover sets how Purge deletes partition files. The default follows
// the same rules as WithLister.
func WithRemover(r Remover) Option {
	return func(o *options) {
		o.remover = r
	}
}

// WithPartitionSize sets the number of records per partition used by Write.
// Values <= 0 are rejected by New.
func WithPartitionSize(size int) Option {
	return func(o *options) {
		o.partitionSize = size
	}
}

// WithReadConcurrency bounds the number of partitions ReadAll reads at once.
// Values <= 0 mean one at a time.
func WithReadConcurrency(n int) Option {
	return func(o *options) {
		o.readConcurrency = n
	}
}

// WithCumulativeBounds makes WriteSinglePartition widen the reported bounds to
// the union of every known partition. By default the bounds are replaced by
// the range of the partition just written.
func WithCumulativeBounds(enabled bool) Option {
	return func(o *options) {
		o.cumulativeBounds = enabled
	}
}
