package testutil

import (
	"math/rand"
	"strconv"
	"sync"
)

// Row is the record used throughout the tests. Field tags cover the CSV,
// JSON and Avro formats.
type Row struct {
	RowNumber int `csv:"row_number" json:"row_number" avro:"row_number"`
	NumberA   int `csv:"number_a" json:"number_a" avro:"number_a"`
	NumberB   int `csv:"number_b" json:"number_b" avro:"number_b"`
}

// RowAvroSchema is the Avro record schema for Row.
const RowAvroSchema = `{
  "type": "record",
  "name": "Row",
  "fields": [
    {"name": "row_number", "type": "long"},
    {"name": "number_a", "type": "long"},
    {"name": "number_b", "type": "long"}
  ]
}`

// maxNumber bounds NumberA and NumberB.
const maxNumber = 100_000

// Rows returns n rows with RowNumber 0..n-1 and values derived from it.
func Rows(n int) []Row {
	rows := make([]Row, n)
	for i := range rows {
		rows[i] = Row{
			RowNumber: i,
			NumberA:   (i * 7919) % maxNumber,
			NumberB:   (i * 104729) % maxNumber,
		}
	}
	return rows
}

// RowNumbers extracts the RowNumber of every row.
func RowNumbers(rows []Row) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.RowNumber
	}
	return out
}

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Rows returns n rows numbered 0..n-1 with random values in [0, 100000).
func (r *RNG) Rows(n int) []Row {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := make([]Row, n)
	for i := range rows {
		rows[i] = Row{
			RowNumber: i,
			NumberA:   r.rand.Intn(maxNumber),
			NumberB:   r.rand.Intn(maxNumber),
		}
	}
	return rows
}

// Maps converts rows to the string maps produced by schema-less CSV decoding.
func Maps(rows []Row) []map[string]string {
	out := make([]map[string]string, len(rows))
	for i, row := range rows {
		out[i] = map[string]string{
			"row_number": strconv.Itoa(row.RowNumber),
			"number_a":   strconv.Itoa(row.NumberA),
			"number_b":   strconv.Itoa(row.NumberB),
		}
	}
	return out
}
