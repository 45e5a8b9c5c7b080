package format

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bmiovino/filepartition/codec"
)

var (
	// ErrUnknownFormat is returned by ByName for unrecognized names.
	ErrUnknownFormat = errors.New("unknown format")
	// ErrMissingSchema is returned when an Avro format is asked to encode without a schema.
	ErrMissingSchema = errors.New("avro schema required for encoding")
)

// Format serializes a slice of records into one partition payload and back.
// Implementations must be safe for concurrent use.
type Format[T any] interface {
	// Name returns the stable format name ("csv", "jsonl", "avro").
	Name() string
	// Encode writes items to w.
	Encode(w io.Writer, items []T) error
	// Decode reads every record from r.
	Decode(r io.Reader) ([]T, error)
}

// Options configures formats built by ByName.
type Options struct {
	// Comma is the CSV field delimiter. Default ','.
	Comma rune
	// Codec encodes JSON lines records. Default codec.Default.
	Codec codec.Codec
	// AvroSchema is the record schema used when writing Avro.
	AvroSchema string
	// AvroCodec is the OCF block codec ("null", "deflate", "snappy", "zstandard").
	AvroCodec string
}

// ByName returns the named format for T.
func ByName[T any](name string, opts Options) (Format[T], error) {
	switch strings.ToLower(name) {
	case "", "csv":
		return CSV[T]{Comma: opts.Comma}, nil
	case "jsonl", "ndjson", "json":
		return JSONLines[T]{Codec: opts.Codec}, nil
	case "avro":
		return Avro[T]{Schema: opts.AvroSchema, Codec: opts.AvroCodec}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Extension returns the conventional file extension for a format name.
func Extension(name string) string {
	switch strings.ToLower(name) {
	case "jsonl", "ndjson", "json":
		return "jsonl"
	case "avro":
		return "avro"
	default:
		return "csv"
	}
}
