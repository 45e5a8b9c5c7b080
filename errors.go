package filepartition

import (
	"errors"
	"fmt"

	"github.com/bmiovino/filepartition/filename"
	"github.com/bmiovino/filepartition/internal/index"
)

var (
	// ErrValidation is returned for unusable arguments: non-positive partition
	// sizes, negative or inverted bounds, ambiguous partition file names.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when a partition number or partition set does not exist.
	ErrNotFound = errors.New("not found")

	// ErrIO is returned for failures of the underlying storage.
	ErrIO = errors.New("i/o failure")

	// ErrSerialization is returned when records cannot be encoded.
	ErrSerialization = errors.New("serialization failed")

	// ErrDeserialization is returned when a partition file cannot be decoded.
	ErrDeserialization = errors.New("deserialization failed")

	// ErrNoPartitionsFound is returned when a scan finds no partition file.
	// It matches ErrNotFound.
	ErrNoPartitionsFound = fmt.Errorf("%w: no partition files were found", ErrNotFound)
)

// IndexOutOfRangeError is returned by reads for a partition number outside
// [0, Count). It matches ErrNotFound.
type IndexOutOfRangeError struct {
	Index int
	Count int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("partition %d out of range [0, %d)", e.Index, e.Count)
}

// Is reports whether target is ErrNotFound.
func (e *IndexOutOfRangeError) Is(target error) bool { return target == ErrNotFound }

// IOError wraps a storage failure with the operation and path involved.
// It matches ErrIO; the original cause is available via errors.Unwrap.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Is reports whether target is ErrIO.
func (e *IOError) Is(target error) bool { return target == ErrIO }

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// translateError maps errors of the internal packages onto the public sentinels.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, index.ErrNoPartitions) {
		return fmt.Errorf("%w: %w", ErrNoPartitionsFound, err)
	}
	if errors.Is(err, filename.ErrAmbiguousFileName) ||
		errors.Is(err, filename.ErrInvalidBounds) ||
		errors.Is(err, filename.ErrInvalidLayout) {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return err
}
