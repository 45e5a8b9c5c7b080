package format

import (
	"fmt"
	"io"

	"github.com/hamba/avro/v2/ocf"
)

// Avro stores records in an Avro object container file, using `avro`
// struct tags. Schema is required for Encode; Decode reads the schema
// embedded in the file, so it also works for map[string]any.
type Avro[T any] struct {
	Schema string
	// Codec is the OCF block codec name. Default "null".
	Codec string
}

func (Avro[T]) Name() string { return "avro" }

// Encode writes a complete container file.
func (f Avro[T]) Encode(w io.Writer, items []T) error {
	if f.Schema == "" {
		return ErrMissingSchema
	}

	var opts []ocf.EncoderFunc
	if f.Codec != "" {
		opts = append(opts, ocf.WithCodec(ocf.CodecName(f.Codec)))
	}

	enc, err := ocf.NewEncoder(f.Schema, w, opts...)
	if err != nil {
		return fmt.Errorf("avro encoder: %w", err)
	}
	for i := range items {
		if err := enc.Encode(items[i]); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	return enc.Close()
}

// Decode reads every record of the container file.
func (f Avro[T]) Decode(r io.Reader) ([]T, error) {
	dec, err := ocf.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("avro decoder: %w", err)
	}

	out := []T{}
	for dec.HasNext() {
		var v T
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("record %d: %w", len(out), err)
		}
		out = append(out, v)
	}
	if err := dec.Error(); err != nil {
		return nil, err
	}
	return out, nil
}
