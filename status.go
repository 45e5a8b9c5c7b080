package filepartition

import (
	"errors"
	"fmt"
)

// Kind classifies the outcome of an operation.
type Kind uint8

const (
	// KindSuccess means the operation completed.
	KindSuccess Kind = iota
	// KindValidation means an argument or file name was rejected.
	KindValidation
	// KindNotFound means no partitions exist or the partition number is out of range.
	KindNotFound
	// KindIO means the storage or the record format failed.
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindIO:
		return "io"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Status is the kind and message of an operation outcome, for callers that
// report results rather than handle errors.
type Status struct {
	Kind    Kind
	Message string
}

// OK reports whether the status is a success.
func (s Status) OK() bool { return s.Kind == KindSuccess }

func (s Status) String() string {
	if s.Message == "" {
		return s.Kind.String()
	}
	return s.Kind.String() + ": " + s.Message
}

// StatusOf classifies err. A nil error is a success; errors that are neither
// validation nor not-found failures are reported as I/O failures.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return Status{Kind: KindSuccess}
	case errors.Is(err, ErrValidation):
		return Status{Kind: KindValidation, Message: err.Error()}
	case errors.Is(err, ErrNotFound):
		return Status{Kind: KindNotFound, Message: err.Error()}
	default:
		return Status{Kind: KindIO, Message: err.Error()}
	}
}
