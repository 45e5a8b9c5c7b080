// Package blobstore provides the storage abstraction partition files live in.
//
// A partition "directory" is a name prefix: listing the prefix is how the
// partition index is rebuilt, so every implementation must return complete,
// sorted listings.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem, memory-mapped reads, atomic rename on write
//   - MemoryStore: in-memory, for tests
//   - RateLimitedStore: wraps another store and throttles bytes moved
//   - s3.Store: Amazon S3 with ranged reads and multipart uploads
//   - minio.Store: MinIO and other S3-compatible servers
//
// # Custom Implementations
//
// Implement the BlobStore interface to support custom storage backends:
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)
//	    Create(ctx, name) (WritableBlob, error)
//	    Put(ctx, name, data) error
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
package blobstore
