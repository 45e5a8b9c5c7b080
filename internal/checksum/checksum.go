// Package checksum appends and verifies an xxh3 integrity footer on
// partition payloads.
//
// Footer layout (12 bytes, little endian):
//
//	[magic "FPX3" (4)] [xxh3-64 of payload (8)]
package checksum

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/zeebo/xxh3"
)

// FooterSize is the number of bytes Append adds.
const FooterSize = 12

var magic = [4]byte{'F', 'P', 'X', '3'}

var (
	// ErrMissingFooter is returned when data does not end with a checksum footer.
	ErrMissingFooter = errors.New("checksum footer missing")
	// ErrMismatch is returned when the payload does not hash to the recorded sum.
	ErrMismatch = errors.New("checksum mismatch")
)

// Sum returns the xxh3-64 hash of data.
func Sum(data []byte) uint64 {
	return xxh3.Hash(data)
}

// Append returns payload followed by its footer. payload may be reused.
func Append(payload []byte) []byte {
	sum := Sum(payload)
	out := append(payload, magic[:]...)
	return binary.LittleEndian.AppendUint64(out, sum)
}

// Verify checks the footer of data and returns the payload without it.
func Verify(data []byte) ([]byte, error) {
	if len(data) < FooterSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrMissingFooter, len(data))
	}
	split := len(data) - FooterSize
	payload, footer := data[:split], data[split:]

	if [4]byte(footer[:4]) != magic {
		return nil, ErrMissingFooter
	}
	want := binary.LittleEndian.Uint64(footer[4:])
	if got := Sum(payload); got != want {
		return nil, fmt.Errorf("%w: have %016x, want %016x", ErrMismatch, got, want)
	}
	return payload, nil
}
