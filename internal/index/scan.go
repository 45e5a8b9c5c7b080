package index

import (
	"context"
	"fmt"
	"sort"

	"github.com/bmiovino/filepartition/filename"
)

// Lister lists stored names starting with prefix.
type Lister interface {
	List(ctx context.Context, prefix string) ([]string, error)
}

// Scan rebuilds partition records from the names under layout.Prefix().
//
// Names that are not partitions of the layout are ignored. The result is
// sorted by (MinIndex, MaxIndex) and numbered from zero in that order; ranges
// are accepted as found, without contiguity or overlap checks.
func Scan(ctx context.Context, lister Lister, layout filename.Layout) ([]Record, error) {
	names, err := lister.List(ctx, layout.Prefix())
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", layout.Prefix(), err)
	}

	records := make([]Record, 0, len(names))
	for _, name := range names {
		b, ok, err := layout.Decode(name)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		records = append(records, Record{MinIndex: b.Min, MaxIndex: b.Max})
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w in %q", ErrNoPartitions, layout.Prefix())
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].MinIndex != records[j].MinIndex {
			return records[i].MinIndex < records[j].MinIndex
		}
		return records[i].MaxIndex < records[j].MaxIndex
	})
	for i := range records {
		records[i].Number = i
	}

	return records, nil
}

// Load scans and replaces the index wholesale on success. A failed scan leaves
// the index untouched.
func (x *Index) Load(ctx context.Context, lister Lister, layout filename.Layout) error {
	records, err := Scan(ctx, lister, layout)
	if err != nil {
		return err
	}
	x.Replace(records, records[0].MinIndex, records[len(records)-1].MaxIndex)
	return nil
}
