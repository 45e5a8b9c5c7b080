package filepartition

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bmiovino/filepartition/blobstore"
	"github.com/bmiovino/filepartition/filename"
	"github.com/bmiovino/filepartition/internal/index"
)

// Partitioner splits datasets into partition files named after the index
// range they hold and reads them back by partition number.
//
// The file names are the only persisted state: a Partitioner that has not
// written anything rebuilds its index by listing the layout's prefix the
// first time a partition is read.
//
// A Partitioner is not safe for concurrent use.
type Partitioner[T any] struct {
	layout filename.Layout
	rw     ReaderWriter[T]
	index  *index.Index
	opts   options
	logger *Logger
}

// New creates a Partitioner storing partitions named after layout through rw.
func New[T any](layout filename.Layout, rw ReaderWriter[T], optFns ...Option) (*Partitioner[T], error) {
	if err := layout.Validate(); err != nil {
		return nil, translateError(err)
	}
	if rw == nil {
		return nil, validationError("reader writer must not be nil")
	}

	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}
	if o.partitionSize <= 0 {
		return nil, validationError("partition size must be positive, got %d", o.partitionSize)
	}

	var local *blobstore.LocalStore
	if o.lister == nil {
		if l, ok := rw.(Lister); ok {
			o.lister = l
		} else {
			local = blobstore.NewLocalStore("")
			o.lister = local
		}
	}
	if o.remover == nil {
		if r, ok := rw.(Remover); ok {
			o.remover = r
		} else if local != nil {
			o.remover = local
		} else {
			o.remover = blobstore.NewLocalStore("")
		}
	}

	return &Partitioner[T]{
		layout: layout,
		rw:     rw,
		index:  index.New(),
		opts:   o,
		logger: o.logger.WithLayout(layout),
	}, nil
}

// Layout returns the naming convention of the partition files.
func (p *Partitioner[T]) Layout() filename.Layout { return p.layout }

// Write splits data into partitions of the configured size.
func (p *Partitioner[T]) Write(ctx context.Context, data []T) error {
	return p.WritePartitions(ctx, data, p.opts.partitionSize)
}

// WritePartitions splits data into consecutive partitions of partitionSize
// records and writes one file per partition.
//
// On success the index describes exactly the partitions written, numbered
// from zero. On any failure the files written so far are left in place and
// the index is invalidated.
func (p *Partitioner[T]) WritePartitions(ctx context.Context, data []T, partitionSize int) (err error) {
	start := time.Now()
	written := 0
	defer func() {
		if err != nil {
			p.index.Invalidate()
		}
		p.opts.metricsCollector.RecordWrite(written, len(data), time.Since(start), err)
		p.logger.LogWrite(ctx, written, len(data), err)
	}()

	bounds, err := Plan(len(data), partitionSize)
	if err != nil {
		return err
	}

	records := make([]Record, 0, len(bounds))
	for i, b := range bounds {
		if err := ctx.Err(); err != nil {
			return err
		}

		path, err := p.layout.Encode(b)
		if err != nil {
			return translateError(err)
		}

		if err := p.rw.Write(ctx, data[b.Min:b.Max+1:b.Max+1], path); err != nil {
			return fmt.Errorf("write partition %d %s: %w", i, b, err)
		}

		written++
		records = append(records, Record{Number: i, MinIndex: b.Min, MaxIndex: b.Max})
	}

	p.index.Replace(records, 0, len(data)-1)
	return nil
}

// WriteSinglePartition writes data as one partition covering
// [indexOffset, indexOffset+len(data)-1] and appends it to the index.
//
// The reported bounds become the range just written unless cumulative bounds
// were enabled with WithCumulativeBounds. A failed write invalidates the index.
func (p *Partitioner[T]) WriteSinglePartition(ctx context.Context, data []T, indexOffset int) (err error) {
	start := time.Now()
	written := 0
	defer func() {
		p.opts.metricsCollector.RecordWrite(written, len(data), time.Since(start), err)
		p.logger.LogWrite(ctx, written, len(data), err)
	}()

	if len(data) == 0 {
		return validationError("single partition needs at least one record")
	}
	if indexOffset < 0 {
		return validationError("index offset must not be negative, got %d", indexOffset)
	}

	b := Boundary{Min: indexOffset, Max: indexOffset + len(data) - 1}
	if b.Max < b.Min {
		return validationError("index offset %d overflows with %d records", indexOffset, len(data))
	}

	path, err := p.layout.Encode(b)
	if err != nil {
		return translateError(err)
	}

	if err := p.rw.Write(ctx, data, path); err != nil {
		p.index.Invalidate()
		return fmt.Errorf("write partition %s: %w", b, err)
	}
	written = 1

	wasEmpty := p.index.Len() == 0
	prevMin, prevMax := p.index.Min(), p.index.Max()

	p.index.Append(Record{MinIndex: b.Min, MaxIndex: b.Max})
	if p.opts.cumulativeBounds && !wasEmpty {
		p.index.SetBounds(min(prevMin, b.Min), max(prevMax, b.Max))
	}
	return nil
}

// ReadPartition reads partition n. The index is rebuilt from the file names
// first when it is not initialized.
//
// A partition number outside [0, NumberOfPartitions()) fails with an
// *IndexOutOfRangeError before any storage access.
func (p *Partitioner[T]) ReadPartition(ctx context.Context, n int) (res *ReadResult[T], err error) {
	start := time.Now()
	defer func() {
		items := 0
		if res != nil {
			items = len(res.Data)
		}
		p.opts.metricsCollector.RecordRead(items, time.Since(start), err)
		p.logger.LogRead(ctx, n, items, err)
	}()

	if err := p.ensureIndex(ctx); err != nil {
		return nil, err
	}

	rec, ok := p.index.Get(n)
	if !ok {
		return nil, &IndexOutOfRangeError{Index: n, Count: p.index.Len()}
	}

	data, err := p.read(ctx, rec)
	if err != nil {
		return nil, err
	}
	return &ReadResult[T]{Data: data, Record: rec}, nil
}

func (p *Partitioner[T]) read(ctx context.Context, rec Record) ([]T, error) {
	path, err := p.layout.Encode(rec.Boundary())
	if err != nil {
		return nil, translateError(err)
	}
	data, err := p.rw.Read(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("read partition %d %s: %w", rec.Number, rec.Boundary(), err)
	}
	return data, nil
}

// ReadAll reads every partition and concatenates the records in partition
// number order. Up to WithReadConcurrency partitions are read at once.
func (p *Partitioner[T]) ReadAll(ctx context.Context) ([]T, error) {
	if err := p.ensureIndex(ctx); err != nil {
		return nil, err
	}

	records := p.index.Records()
	parts := make([][]T, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, p.opts.readConcurrency))
	for i, rec := range records {
		g.Go(func() error {
			start := time.Now()
			data, err := p.read(gctx, rec)
			p.opts.metricsCollector.RecordRead(len(data), time.Since(start), err)
			p.logger.LogRead(gctx, rec.Number, len(data), err)
			if err != nil {
				return err
			}
			parts[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, part := range parts {
		total += len(part)
	}
	out := make([]T, 0, total)
	for _, part := range parts {
		out = append(out, part...)
	}
	return out, nil
}

// PartitionFilePath returns the path of the partition holding [minIndex, maxIndex].
func (p *Partitioner[T]) PartitionFilePath(minIndex, maxIndex int) string {
	return p.layout.Path(minIndex, maxIndex)
}

// MinIndex returns the lower bound of the known index range.
// It never triggers a scan.
func (p *Partitioner[T]) MinIndex() int { return p.index.Min() }

// MaxIndex returns the upper bound of the known index range, -1 when nothing
// is known. It never triggers a scan.
func (p *Partitioner[T]) MaxIndex() int { return p.index.Max() }

// NumberOfPartitions returns the number of known partitions.
// It never triggers a scan.
func (p *Partitioner[T]) NumberOfPartitions() int { return p.index.Len() }

// Records returns the known partitions ordered by number.
func (p *Partitioner[T]) Records() []Record { return p.index.Records() }

// Initialized reports whether the index was populated by a write or a scan.
func (p *Partitioner[T]) Initialized() bool { return p.index.Initialized() }

// Empty reports whether the known index range holds no records.
func (p *Partitioner[T]) Empty() bool { return p.index.Max() < p.index.Min() }

// Invalidate drops the index; the next read rescans.
func (p *Partitioner[T]) Invalidate() { p.index.Invalidate() }

// Rescan rebuilds the index from the file names. On failure the index stays
// uninitialized.
func (p *Partitioner[T]) Rescan(ctx context.Context) error {
	p.index.Invalidate()
	return p.ensureIndex(ctx)
}

func (p *Partitioner[T]) ensureIndex(ctx context.Context) (err error) {
	if p.index.Initialized() {
		return nil
	}

	start := time.Now()
	defer func() {
		p.opts.metricsCollector.RecordScan(p.index.Len(), time.Since(start), err)
		p.logger.LogScan(ctx, p.layout.Prefix(), p.index.Len(), err)
	}()

	if err := p.index.Load(ctx, p.opts.lister, p.layout); err != nil {
		return p.scanError(err)
	}
	return nil
}

func (p *Partitioner[T]) scanError(err error) error {
	if errors.Is(err, index.ErrNoPartitions) ||
		errors.Is(err, filename.ErrAmbiguousFileName) ||
		errors.Is(err, filename.ErrInvalidBounds) {
		return translateError(err)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &IOError{Op: "list", Path: p.layout.Prefix(), Err: err}
}

// Purge deletes every file that decodes as a partition of the layout and
// invalidates the index. It returns the number of files removed.
//
// Files in subdirectories of the layout directory are never touched. Names
// that look like partitions but cannot be decoded (for example
// "rows_0_8.old.csv") are kept and logged; remove them by hand before the
// next scan.
func (p *Partitioner[T]) Purge(ctx context.Context) (removed int, err error) {
	defer func() {
		p.index.Invalidate()
		p.logger.LogPurge(ctx, removed, err)
	}()

	names, err := p.opts.lister.List(ctx, p.layout.Prefix())
	if err != nil {
		return 0, &IOError{Op: "list", Path: p.layout.Prefix(), Err: err}
	}

	for _, name := range names {
		_, ok, err := p.layout.Decode(name)
		if err != nil {
			p.logger.LogPurgeSkipped(ctx, name, err)
			continue
		}
		if !ok {
			continue
		}
		if err := p.opts.remover.Delete(ctx, name); err != nil {
			return removed, &IOError{Op: "delete", Path: name, Err: err}
		}
		removed++
	}
	return removed, nil
}
