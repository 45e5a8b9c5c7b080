package format

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/bmiovino/filepartition/codec"
)

// JSONLines writes one JSON document per line.
// The zero value uses codec.Default.
type JSONLines[T any] struct {
	Codec codec.Codec
}

func (JSONLines[T]) Name() string { return "jsonl" }

func (f JSONLines[T]) codec() codec.Codec {
	if f.Codec == nil {
		return codec.Default
	}
	return f.Codec
}

// Encode writes each item followed by a newline.
func (f JSONLines[T]) Encode(w io.Writer, items []T) error {
	c := f.codec()
	bw := bufio.NewWriter(w)
	for i := range items {
		b, err := c.Marshal(items[i])
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		if _, err := bw.Write(b); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Decode reads one record per non-blank line.
func (f JSONLines[T]) Decode(r io.Reader) ([]T, error) {
	c := f.codec()
	br := bufio.NewReader(r)

	out := []T{}
	for line := 1; ; line++ {
		b, err := br.ReadBytes('\n')
		if len(bytes.TrimSpace(b)) > 0 {
			var v T
			if uerr := c.Unmarshal(b, &v); uerr != nil {
				return nil, fmt.Errorf("line %d: %w", line, uerr)
			}
			out = append(out, v)
		}
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
