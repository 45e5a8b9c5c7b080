// Package testutil provides testing utilities for filepartition.
//
// This package is intended for use in tests and benchmarks only.
// It provides a small record type understood by every format, seeded
// random data generation, and helpers for building partition payloads.
//
// # Records
//
//	rows := testutil.Rows(100)            // RowNumber 0..99, deterministic values
//	rng := testutil.NewRNG(4711)
//	rows = rng.Rows(100)                  // random NumberA/NumberB
//
// # Avro
//
//	f := format.Avro[testutil.Row]{Schema: testutil.RowAvroSchema}
package testutil
