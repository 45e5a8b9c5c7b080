package blobstore

import (
	"context"
	"io"

	"golang.org/x/time/rate"
)

// RateLimitedStore throttles the bytes read from and written to another store.
// A resuming batch job can use it to keep partition I/O from starving the
// foreground workload.
type RateLimitedStore struct {
	inner   BlobStore
	limiter *rate.Limiter
}

// NewRateLimitedStore wraps inner with a limit of bytesPerSec.
// If bytesPerSec <= 0 the store is not throttled.
func NewRateLimitedStore(inner BlobStore, bytesPerSec int) *RateLimitedStore {
	s := &RateLimitedStore{inner: inner}
	if bytesPerSec > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(bytesPerSec), bytesPerSec)
	}
	return s
}

// wait blocks until n bytes may pass, in burst-sized steps.
func (s *RateLimitedStore) wait(ctx context.Context, n int64) error {
	if s.limiter == nil || n <= 0 {
		return nil
	}
	burst := int64(s.limiter.Burst())
	for n > 0 {
		step := min(n, burst)
		if err := s.limiter.WaitN(ctx, int(step)); err != nil {
			return err
		}
		n -= step
	}
	return nil
}

func (s *RateLimitedStore) Open(ctx context.Context, name string) (Blob, error) {
	b, err := s.inner.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	return &rateLimitedBlob{Blob: b, store: s}, nil
}

func (s *RateLimitedStore) Create(ctx context.Context, name string) (WritableBlob, error) {
	w, err := s.inner.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	return &rateLimitedWritableBlob{WritableBlob: w, store: s, ctx: ctx}, nil
}

func (s *RateLimitedStore) Put(ctx context.Context, name string, data []byte) error {
	if err := s.wait(ctx, int64(len(data))); err != nil {
		return err
	}
	return s.inner.Put(ctx, name, data)
}

func (s *RateLimitedStore) Delete(ctx context.Context, name string) error {
	return s.inner.Delete(ctx, name)
}

func (s *RateLimitedStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

type rateLimitedBlob struct {
	Blob
	store *RateLimitedStore
}

func (b *rateLimitedBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if err := b.store.wait(ctx, int64(len(p))); err != nil {
		return 0, err
	}
	return b.Blob.ReadAt(ctx, p, off)
}

func (b *rateLimitedBlob) ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error) {
	n := min(length, b.Size()-off)
	if err := b.store.wait(ctx, n); err != nil {
		return nil, err
	}
	return b.Blob.ReadRange(ctx, off, length)
}

type rateLimitedWritableBlob struct {
	WritableBlob
	store *RateLimitedStore
	ctx   context.Context
}

func (w *rateLimitedWritableBlob) Write(p []byte) (int, error) {
	if err := w.store.wait(w.ctx, int64(len(p))); err != nil {
		return 0, err
	}
	return w.WritableBlob.Write(p)
}
