package blobstore

import (
	"context"

	"github.com/bmiovino/filepartition/internal/cache"
)

// CachingStore wraps a BlobStore and keeps recently read blobs in memory.
// Partition files are immutable once written, so a blob is cached whole on
// first Open and dropped whenever it is rewritten or deleted through the store.
type CachingStore struct {
	inner BlobStore
	cache *cache.LRU
}

// NewCachingStore creates a new CachingStore holding up to capacityBytes of
// blob data.
func NewCachingStore(inner BlobStore, capacityBytes int64) *CachingStore {
	return &CachingStore{
		inner: inner,
		cache: cache.NewLRU(capacityBytes),
	}
}

func (s *CachingStore) Open(ctx context.Context, name string) (Blob, error) {
	if data, ok := s.cache.Get(name); ok {
		return &memoryBlob{data: data}, nil
	}

	data, err := ReadAll(ctx, s.inner, name)
	if err != nil {
		return nil, err
	}
	s.cache.Set(name, data)
	return &memoryBlob{data: data}, nil
}

func (s *CachingStore) Create(ctx context.Context, name string) (WritableBlob, error) {
	s.cache.Remove(name)
	w, err := s.inner.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	return &invalidatingBlob{WritableBlob: w, cache: s.cache, name: name}, nil
}

func (s *CachingStore) Put(ctx context.Context, name string, data []byte) error {
	defer s.cache.Remove(name)
	return s.inner.Put(ctx, name, data)
}

func (s *CachingStore) Delete(ctx context.Context, name string) error {
	defer s.cache.Remove(name)
	return s.inner.Delete(ctx, name)
}

func (s *CachingStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

// Stats returns cache hit and miss counts.
func (s *CachingStore) Stats() (hits, misses int64) {
	return s.cache.Stats()
}

// invalidatingBlob drops the cache entry again once the new content is visible.
type invalidatingBlob struct {
	WritableBlob
	cache *cache.LRU
	name  string
}

func (b *invalidatingBlob) Close() error {
	defer b.cache.Remove(b.name)
	return b.WritableBlob.Close()
}
