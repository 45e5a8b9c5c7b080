package filepartition

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; the metrics
// package provides a Prometheus implementation.
type MetricsCollector interface {
	// RecordWrite is called after each write operation.
	// partitions is the number of files written, items the number of records
	// handed to the operation, duration the total time taken, err nil if successful.
	RecordWrite(partitions, items int, duration time.Duration, err error)

	// RecordRead is called after each partition read.
	// items is the number of records returned.
	RecordRead(items int, duration time.Duration, err error)

	// RecordScan is called after each directory scan.
	// partitions is the number of partitions found.
	RecordScan(partitions int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordWrite(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordRead(int, time.Duration, error)       {}
func (NoopMetricsCollector) RecordScan(int, time.Duration, error)       {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	WriteCount        atomic.Int64
	WriteErrors       atomic.Int64
	PartitionsTotal   atomic.Int64
	ItemsWrittenTotal atomic.Int64
	WriteTotalNanos   atomic.Int64
	ReadCount         atomic.Int64
	ReadErrors        atomic.Int64
	ItemsReadTotal    atomic.Int64
	ReadTotalNanos    atomic.Int64
	ScanCount         atomic.Int64
	ScanErrors        atomic.Int64
	ScannedTotal      atomic.Int64
}

// RecordWrite implements MetricsCollector.
func (b *BasicMetricsCollector) RecordWrite(partitions, items int, duration time.Duration, err error) {
	b.WriteCount.Add(1)
	b.WriteTotalNanos.Add(duration.Nanoseconds())
	b.PartitionsTotal.Add(int64(partitions))
	if err != nil {
		b.WriteErrors.Add(1)
		return
	}
	b.ItemsWrittenTotal.Add(int64(items))
}

// RecordRead implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRead(items int, duration time.Duration, err error) {
	b.ReadCount.Add(1)
	b.ReadTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ReadErrors.Add(1)
		return
	}
	b.ItemsReadTotal.Add(int64(items))
}

// RecordScan implements MetricsCollector.
func (b *BasicMetricsCollector) RecordScan(partitions int, _ time.Duration, err error) {
	b.ScanCount.Add(1)
	if err != nil {
		b.ScanErrors.Add(1)
		return
	}
	b.ScannedTotal.Add(int64(partitions))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		WriteCount:        b.WriteCount.Load(),
		WriteErrors:       b.WriteErrors.Load(),
		PartitionsWritten: b.PartitionsTotal.Load(),
		ItemsWritten:      b.ItemsWrittenTotal.Load(),
		WriteAvgNanos:     avg(b.WriteTotalNanos.Load(), b.WriteCount.Load()),
		ReadCount:         b.ReadCount.Load(),
		ReadErrors:        b.ReadErrors.Load(),
		ItemsRead:         b.ItemsReadTotal.Load(),
		ReadAvgNanos:      avg(b.ReadTotalNanos.Load(), b.ReadCount.Load()),
		ScanCount:         b.ScanCount.Load(),
		ScanErrors:        b.ScanErrors.Load(),
		PartitionsScanned: b.ScannedTotal.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	WriteCount        int64
	WriteErrors       int64
	PartitionsWritten int64
	ItemsWritten      int64
	WriteAvgNanos     int64
	ReadCount         int64
	ReadErrors        int64
	ItemsRead         int64
	ReadAvgNanos      int64
	ScanCount         int64
	ScanErrors        int64
	PartitionsScanned int64
}
