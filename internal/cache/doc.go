// Package cache provides a byte-bounded LRU cache for immutable partition
// payloads, used by blobstore.CachingStore in front of remote stores.
package cache
