package filepartition_test

import (
	"context"
	"fmt"
	"log"

	"github.com/bmiovino/filepartition"
	"github.com/bmiovino/filepartition/blobstore"
	"github.com/bmiovino/filepartition/filename"
	"github.com/bmiovino/filepartition/format"
)

type Order struct {
	ID     int `csv:"id" json:"id"`
	Amount int `csv:"amount" json:"amount"`
}

func orders(n int) []Order {
	out := make([]Order, n)
	for i := range out {
		out[i] = Order{ID: i, Amount: i * 10}
	}
	return out
}

// ExamplePlan shows how a dataset is cut into partitions.
func ExamplePlan() {
	bounds, err := filepartition.Plan(10, 4)
	if err != nil {
		log.Fatal(err)
	}
	for _, b := range bounds {
		fmt.Println(b)
	}
	// Output:
	// [0,3]
	// [4,7]
	// [8,9]
}

// ExamplePartitioner_WritePartitions writes a dataset and reads one partition back.
func ExamplePartitioner_WritePartitions() {
	ctx := context.Background()

	layout, err := filename.NewLayout("out", "orders", "jsonl")
	if err != nil {
		log.Fatal(err)
	}
	store := blobstore.NewMemoryStore()
	rw := filepartition.NewBlobReaderWriter[Order](store, format.JSONLines[Order]{})

	p, err := filepartition.New[Order](layout, rw)
	if err != nil {
		log.Fatal(err)
	}
	if err := p.WritePartitions(ctx, orders(10), 4); err != nil {
		log.Fatal(err)
	}

	names, _ := store.List(ctx, "out/")
	for _, name := range names {
		fmt.Println(name)
	}

	res, err := p.ReadPartition(ctx, 2)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(res.Record.MinIndex, res.Record.MaxIndex, res.Data)
	// Output:
	// out/orders_0_3.jsonl
	// out/orders_4_7.jsonl
	// out/orders_8_9.jsonl
	// 8 9 [{8 80} {9 90}]
}

// ExamplePartitioner_ReadPartition reads partitions written by another instance.
func ExamplePartitioner_ReadPartition() {
	ctx := context.Background()
	layout, _ := filename.NewLayout("out", "orders", "csv")
	rw := filepartition.NewBlobReaderWriter[Order](blobstore.NewMemoryStore(), format.CSV[Order]{})

	writer, _ := filepartition.New[Order](layout, rw)
	if err := writer.WritePartitions(ctx, orders(7), 3); err != nil {
		log.Fatal(err)
	}

	reader, _ := filepartition.New[Order](layout, rw)
	fmt.Println("before:", reader.NumberOfPartitions())

	res, err := reader.ReadPartition(ctx, 1)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("after:", reader.NumberOfPartitions(), reader.MinIndex(), reader.MaxIndex())
	fmt.Println(res.Data)

	_, err = reader.ReadPartition(ctx, 3)
	fmt.Println(filepartition.StatusOf(err).Kind)
	// Output:
	// before: 0
	// after: 3 0 6
	// [{3 30} {4 40} {5 50}]
	// not_found
}

// ExampleParseConfig opens a partitioner from YAML configuration.
func ExampleParseConfig() {
	cfg, err := filepartition.ParseConfig([]byte(`
layout:
  dir: out
  base_name: orders
partition_size: 5
format: jsonl
compression: zstd
checksum: true
store:
  type: memory
`))
	if err != nil {
		log.Fatal(err)
	}

	p, err := filepartition.Open[Order](context.Background(), cfg)
	if err != nil {
		log.Fatal(err)
	}
	if err := p.Write(context.Background(), orders(12)); err != nil {
		log.Fatal(err)
	}
	fmt.Println(p.PartitionFilePath(10, 11), p.NumberOfPartitions())
	// Output: out/orders_10_11.jsonl 3
}
