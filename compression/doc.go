// Package compression wraps partition payloads in LZ4 or Zstandard frames.
//
// Frames are the standard formats of the respective tools, so a partition
// written with Zstd can be inspected with `zstd -d` and an LZ4 one with `lz4 -d`.
package compression
