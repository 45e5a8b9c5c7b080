// Package format provides the record encodings a partition file can use.
//
//   - CSV: header row plus one line per record (gocsv struct tags). This is
//     the default.
//   - JSONLines: one JSON document per line through a codec.Codec.
//   - Avro: an Avro object container file (hamba/avro struct tags).
//
// Each Format encodes a whole partition at once; partitions are bounded in
// size, so formats work on in-memory slices.
package format
