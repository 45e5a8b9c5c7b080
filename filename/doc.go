// Package filename maps partition boundaries to file paths and back.
//
// A partition of logical indices [min, max] is stored at
//
//	<dir>/<base>_<min>_<max>.<ext>
//
// The path is the only place the boundaries are persisted, so Decode is what
// rebuilds a partition index after a restart. Decode is deliberately strict:
// files that merely share the directory are skipped, while names that look
// like partitions but cannot be parsed unambiguously are reported as errors.
package filename
