package filepartition

import (
	"github.com/bmiovino/filepartition/filename"
)

// DefaultPartitionSize is the number of records per partition used by Write.
const DefaultPartitionSize = 100_000

// Boundary is an inclusive logical index range.
type Boundary = filename.Boundary

// Plan splits [0, length-1] into ceil(length/partitionSize) contiguous
// ranges. Every range holds partitionSize records except possibly the last.
// A zero length yields no ranges.
func Plan(length, partitionSize int) ([]Boundary, error) {
	if partitionSize <= 0 {
		return nil, validationError("partition size must be positive, got %d", partitionSize)
	}
	if length < 0 {
		return nil, validationError("length must not be negative, got %d", length)
	}

	n := length / partitionSize
	if length%partitionSize != 0 {
		n++
	}
	bounds := make([]Boundary, n)
	for i := range bounds {
		lo := i * partitionSize
		bounds[i] = Boundary{
			Min: lo,
			Max: lo + min(partitionSize, length-lo) - 1,
		}
	}
	return bounds, nil
}
