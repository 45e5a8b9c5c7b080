package filepartition

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/bmiovino/filepartition/blobstore"
	"github.com/bmiovino/filepartition/compression"
	"github.com/bmiovino/filepartition/format"
	"github.com/bmiovino/filepartition/internal/checksum"
)

// ReaderWriter persists one partition's records at a path.
//
// Read failures should match ErrIO or ErrDeserialization and write failures
// ErrIO or ErrSerialization; anything else is reported as an I/O failure.
type ReaderWriter[T any] interface {
	Read(ctx context.Context, path string) ([]T, error)
	Write(ctx context.Context, items []T, path string) error
}

// Lister lists the stored names that start with prefix. It is how a
// Partitioner rediscovers partitions.
type Lister interface {
	List(ctx context.Context, prefix string) ([]string, error)
}

// Remover deletes a stored name. Deleting a missing name is not an error.
type Remover interface {
	Delete(ctx context.Context, name string) error
}

// BlobOption configures a BlobReaderWriter.
type BlobOption func(*blobOptions)

type blobOptions struct {
	compression compression.Type
	checksum    bool
}

// WithCompression compresses every partition payload.
func WithCompression(t compression.Type) BlobOption {
	return func(o *blobOptions) {
		o.compression = t
	}
}

// WithChecksum appends an xxh3 footer to every payload and verifies it on read.
func WithChecksum(enabled bool) BlobOption {
	return func(o *blobOptions) {
		o.checksum = enabled
	}
}

// BlobReaderWriter is the ReaderWriter over a blobstore.BlobStore.
// A payload is the format encoding, optionally compressed, optionally
// followed by a checksum footer.
//
// It also implements Lister and Remover, so a Partitioner built on it scans
// and purges the same store it writes to. Safe for concurrent use when the
// format and store are.
type BlobReaderWriter[T any] struct {
	store  blobstore.BlobStore
	format format.Format[T]
	opts   blobOptions
}

var (
	_ ReaderWriter[struct{}] = (*BlobReaderWriter[struct{}])(nil)
	_ Lister                 = (*BlobReaderWriter[struct{}])(nil)
	_ Remover                = (*BlobReaderWriter[struct{}])(nil)
)

// NewBlobReaderWriter creates a ReaderWriter storing partitions in store with f.
func NewBlobReaderWriter[T any](store blobstore.BlobStore, f format.Format[T], optFns ...BlobOption) *BlobReaderWriter[T] {
	var o blobOptions
	for _, fn := range optFns {
		fn(&o)
	}
	return &BlobReaderWriter[T]{store: store, format: f, opts: o}
}

// Store returns the underlying blob store.
func (rw *BlobReaderWriter[T]) Store() blobstore.BlobStore { return rw.store }

// Format returns the record format.
func (rw *BlobReaderWriter[T]) Format() format.Format[T] { return rw.format }

// Write encodes items and stores them at path, replacing any previous content.
func (rw *BlobReaderWriter[T]) Write(ctx context.Context, items []T, path string) error {
	var buf bytes.Buffer
	if err := rw.format.Encode(&buf, items); err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrSerialization, rw.format.Name(), path, err)
	}

	payload, err := compression.Compress(rw.opts.compression, buf.Bytes())
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSerialization, path, err)
	}
	if rw.opts.checksum {
		payload = checksum.Append(payload)
	}

	if err := rw.store.Put(ctx, path, payload); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// Read loads and decodes the partition stored at path.
func (rw *BlobReaderWriter[T]) Read(ctx context.Context, path string) ([]T, error) {
	payload, err := blobstore.ReadAll(ctx, rw.store, path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}

	if rw.opts.checksum {
		if payload, err = checksum.Verify(payload); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrDeserialization, path, err)
		}
	}

	raw, err := compression.Decompress(rw.opts.compression, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDeserialization, path, err)
	}

	items, err := rw.format.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrDeserialization, rw.format.Name(), path, err)
	}
	return items, nil
}

// List implements Lister.
func (rw *BlobReaderWriter[T]) List(ctx context.Context, prefix string) ([]string, error) {
	return rw.store.List(ctx, prefix)
}

// Delete implements Remover.
func (rw *BlobReaderWriter[T]) Delete(ctx context.Context, name string) error {
	if err := rw.store.Delete(ctx, name); err != nil && !errors.Is(err, blobstore.ErrNotFound) {
		return err
	}
	return nil
}
