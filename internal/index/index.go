// Package index holds the in-memory partition index and the directory scan
// that rebuilds it from file names.
package index

import (
	"errors"
	"sort"

	"github.com/bmiovino/filepartition/filename"
)

// ErrNoPartitions is returned by Scan when no file decodes as a partition.
var ErrNoPartitions = errors.New("no partition files were found")

// Record describes one partition. Number is an ordinal derived from the pass
// that produced the record and is never persisted.
type Record struct {
	Number   int
	MinIndex int
	MaxIndex int
}

// Boundary returns the record's range.
func (r Record) Boundary() filename.Boundary {
	return filename.Boundary{Min: r.MinIndex, Max: r.MaxIndex}
}

// Len returns the number of items in the partition.
func (r Record) Len() int {
	return r.MaxIndex - r.MinIndex + 1
}

// Index maps partition numbers to records.
// It is not safe for concurrent use.
type Index struct {
	records     map[int]Record
	min, max    int
	initialized bool
}

// New returns an empty, uninitialized index.
func New() *Index {
	idx := &Index{}
	idx.Invalidate()
	return idx
}

// Replace swaps the whole index for records and marks it initialized.
// Records must already be numbered 0..len-1.
func (x *Index) Replace(records []Record, min, max int) {
	m := make(map[int]Record, len(records))
	for _, r := range records {
		m[r.Number] = r
	}
	x.records = m
	x.min = min
	x.max = max
	x.initialized = true
}

// Append adds r as the next partition number and returns the stored record.
// The index bounds become r's bounds.
func (x *Index) Append(r Record) Record {
	r.Number = len(x.records)
	x.records[r.Number] = r
	x.min = r.MinIndex
	x.max = r.MaxIndex
	x.initialized = true
	return r
}

// SetBounds overrides the whole-dataset bounds.
func (x *Index) SetBounds(min, max int) {
	x.min = min
	x.max = max
}

// Invalidate drops every record and marks the index uninitialized.
func (x *Index) Invalidate() {
	x.records = make(map[int]Record)
	x.min = 0
	x.max = -1
	x.initialized = false
}

// Get returns the record numbered n.
func (x *Index) Get(n int) (Record, bool) {
	r, ok := x.records[n]
	return r, ok
}

// Len returns the number of partitions.
func (x *Index) Len() int { return len(x.records) }

// Initialized reports whether the index was populated by a write or a scan.
func (x *Index) Initialized() bool { return x.initialized }

// Min returns the lower whole-dataset bound.
func (x *Index) Min() int { return x.min }

// Max returns the upper whole-dataset bound; -1 when nothing is known.
func (x *Index) Max() int { return x.max }

// Records returns the records ordered by number.
func (x *Index) Records() []Record {
	out := make([]Record, 0, len(x.records))
	for _, r := range x.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Number < out[j].Number
	})
	return out
}
