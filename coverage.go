package filepartition

import (
	"sort"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// Overlap is a pair of partitions whose ranges intersect.
type Overlap struct {
	A Record
	B Record
}

// Report summarizes what the known partitions cover.
type Report struct {
	// Partitions is the number of known partitions.
	Partitions int
	// Covered is the number of distinct indices held by at least one partition.
	Covered uint64
	// Gaps are the uncovered ranges between the lowest and highest covered index.
	Gaps []Boundary
	// Overlapping lists intersecting partitions in (MinIndex, MaxIndex) order.
	Overlapping []Overlap
}

// Complete reports whether the partitions cover one contiguous range without overlaps.
func (r Report) Complete() bool {
	return r.Partitions > 0 && len(r.Gaps) == 0 && len(r.Overlapping) == 0
}

// Coverage returns a bitmap of every index held by a known partition.
// It never triggers a scan.
func (p *Partitioner[T]) Coverage() *roaring64.Bitmap {
	bm := roaring64.New()
	for _, r := range p.index.Records() {
		bm.AddRange(uint64(r.MinIndex), uint64(r.MaxIndex)+1)
	}
	return bm
}

// Covers reports whether index i is held by a known partition.
func (p *Partitioner[T]) Covers(i int) bool {
	if i < 0 {
		return false
	}
	for _, r := range p.index.Records() {
		if i >= r.MinIndex && i <= r.MaxIndex {
			return true
		}
	}
	return false
}

// Inspect reports the coverage, gaps and overlaps of the known partitions.
// It never triggers a scan; call Rescan first to inspect what is stored.
func (p *Partitioner[T]) Inspect() Report {
	records := p.index.Records()
	report := Report{
		Partitions: len(records),
		Covered:    p.Coverage().GetCardinality(),
	}
	if len(records) == 0 {
		return report
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].MinIndex != records[j].MinIndex {
			return records[i].MinIndex < records[j].MinIndex
		}
		return records[i].MaxIndex < records[j].MaxIndex
	})

	reach := records[0]
	for _, r := range records[1:] {
		switch {
		case r.MinIndex <= reach.MaxIndex:
			report.Overlapping = append(report.Overlapping, Overlap{A: reach, B: r})
		case r.MinIndex > reach.MaxIndex+1:
			report.Gaps = append(report.Gaps, Boundary{Min: reach.MaxIndex + 1, Max: r.MinIndex - 1})
		}
		if r.MaxIndex > reach.MaxIndex {
			reach = r
		}
	}
	return report
}
