package filepartition

import "github.com/bmiovino/filepartition/internal/index"

// Record describes one partition: its inclusive index range and an ordinal
// Number. Number is reassigned on every write or scan and is never persisted.
type Record = index.Record

// ReadResult is the outcome of ReadPartition.
type ReadResult[T any] struct {
	// Data holds the partition's records in stored order.
	Data []T
	// Record is the partition that was read.
	Record Record
}
