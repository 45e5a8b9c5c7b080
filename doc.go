// Package filepartition splits in-memory datasets into bounded-size partition
// files and reads them back by partition number.
//
// Each partition file carries the inclusive index range it holds in its name:
//
//	<dir>/<base>_<min>_<max>.<ext>
//
// There is no manifest. A Partitioner that did not write the files itself
// rebuilds its index by listing the layout's prefix and parsing the names the
// first time a partition is read.
//
// # Quick Start
//
//	layout, _ := filename.NewLayout("./out", "orders", "csv")
//	store := blobstore.NewLocalStore("")
//	rw := filepartition.NewBlobReaderWriter[Order](store, format.CSV[Order]{})
//	p, _ := filepartition.New[Order](layout, rw)
//
//	_ = p.WritePartitions(ctx, orders, 10_000)
//	res, _ := p.ReadPartition(ctx, 0)
//	fmt.Println(res.Record.MinIndex, res.Record.MaxIndex, len(res.Data))
//
// A second process reads the same files without any shared state:
//
//	q, _ := filepartition.New[Order](layout, rw)
//	res, _ := q.ReadPartition(ctx, 3) // scans ./out/orders_* first
//
// # Storage
//
// Partitions are written through a ReaderWriter. BlobReaderWriter combines a
// blobstore.BlobStore (local disk, memory, S3, MinIO) with a record format
// (CSV, JSON lines, Avro), optional LZ4 or Zstandard compression and an
// optional xxh3 checksum footer. Any other ReaderWriter works as long as a
// Lister can see the names it writes.
//
// # Errors
//
// Errors match one of ErrValidation, ErrNotFound, ErrIO, ErrSerialization or
// ErrDeserialization with errors.Is. StatusOf turns an error into a Status
// for callers that report outcomes instead of handling errors.
//
// # Configuration
//
// Config describes a partition set in YAML and Open builds the store, format
// and Partitioner from it:
//
//	cfg, _ := filepartition.LoadConfig("partitions.yaml")
//	p, _ := filepartition.Open[Order](ctx, cfg)
package filepartition
