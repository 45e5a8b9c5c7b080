package filepartition

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmiovino/filepartition/blobstore"
	"github.com/bmiovino/filepartition/testutil"
)

func TestParseConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := ParseConfig([]byte(`
layout:
  dir: ./out
  base_name: rows
`))
		require.NoError(t, err)

		assert.Equal(t, DefaultPartitionSize, cfg.PartitionSize)
		assert.Equal(t, "csv", cfg.Format)
		assert.Equal(t, "csv", cfg.Layout.Extension)
		assert.Equal(t, 4, cfg.ReadConcurrency)
		assert.Equal(t, StoreLocal, cfg.Store.Type)
	})

	t.Run("Full", func(t *testing.T) {
		cfg, err := ParseConfig([]byte(`
layout:
  dir: data
  base_name: rows
  extension: .avro
partition_size: 500
format: avro
avro_schema: '{"type":"record","name":"R","fields":[{"name":"a","type":"long"}]}'
avro_codec: snappy
compression: lz4
checksum: true
read_concurrency: 8
cumulative_bounds: true
cache_bytes: 1048576
rate_limit_bytes_per_sec: 10485760
store:
  type: minio
  endpoint: localhost:9000
  bucket: partitions
  prefix: runs/
log:
  level: debug
  format: json
`))
		require.NoError(t, err)

		assert.Equal(t, 500, cfg.PartitionSize)
		assert.Equal(t, "avro", cfg.Layout.Extension)
		assert.True(t, cfg.CumulativeBounds)
		assert.Equal(t, int64(1<<20), cfg.CacheBytes)
		assert.Equal(t, "partitions", cfg.Store.Bucket)
		assert.Len(t, cfg.BlobOptions(), 2)
		assert.Len(t, cfg.Options(), 4)
		assert.NotNil(t, cfg.Logger())
	})

	t.Run("Invalid", func(t *testing.T) {
		for name, doc := range map[string]string{
			"NoBaseName":     "layout: {dir: out}",
			"DottedBaseName": "layout: {base_name: a.b}",
			"NegativeSize":   "layout: {base_name: rows}\npartition_size: -1",
			"Format":         "layout: {base_name: rows}\nformat: parquet",
			"AvroNoSchema":   "layout: {base_name: rows}\nformat: avro",
			"Compression":    "layout: {base_name: rows}\ncompression: brotli",
			"Comma":          "layout: {base_name: rows}\ncsv_comma: ';;'",
			"Codec":          "layout: {base_name: rows}\ncodec: bson",
			"StoreType":      "layout: {base_name: rows}\nstore: {type: ftp}",
			"S3NoBucket":     "layout: {base_name: rows}\nstore: {type: s3}",
			"MinIONoHost":    "layout: {base_name: rows}\nstore: {type: minio, bucket: b}",
			"LogLevel":       "layout: {base_name: rows}\nlog: {level: loud}",
			"LogFormat":      "layout: {base_name: rows}\nlog: {level: info, format: xml}",
			"NegativeCache":  "layout: {base_name: rows}\ncache_bytes: -1",
		} {
			t.Run(name, func(t *testing.T) {
				_, err := ParseConfig([]byte(doc))
				assert.ErrorIs(t, err, ErrValidation)
			})
		}
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := ParseConfig([]byte("layout: [unterminated"))
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrValidation)
	})
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "row.avsc")
	require.NoError(t, os.WriteFile(schemaPath, []byte(testutil.RowAvroSchema), 0o644))

	cfgPath := filepath.Join(dir, "partitions.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
layout:
  dir: `+filepath.Join(dir, "parts")+`
  base_name: rows
partition_size: 7
format: avro
avro_schema_file: `+schemaPath+`
compression: zstd
checksum: true
`), 0o644))

	cfg, err := LoadConfig(cfgPath)
	require.NoError(t, err)

	fopts, err := cfg.FormatOptions()
	require.NoError(t, err)
	assert.Equal(t, testutil.RowAvroSchema, fopts.AvroSchema)

	ctx := context.Background()
	p, err := Open[Row](ctx, cfg)
	require.NoError(t, err)

	data := testutil.Rows(20)
	require.NoError(t, p.Write(ctx, data))
	assert.Equal(t, 3, p.NumberOfPartitions())
	assert.FileExists(t, filepath.Join(dir, "parts", "rows_14_19.avro"))

	reader, err := Open[Row](ctx, cfg)
	require.NoError(t, err)
	got, err := reader.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	t.Run("MissingFile", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(dir, "nope.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestBuildStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Memory", func(t *testing.T) {
		cfg := &Config{Store: StoreConfig{Type: StoreMemory}}
		store, err := cfg.BuildStore(ctx)
		require.NoError(t, err)
		assert.IsType(t, &blobstore.MemoryStore{}, store)
	})

	t.Run("Local", func(t *testing.T) {
		cfg := &Config{Store: StoreConfig{Type: StoreLocal, Root: t.TempDir()}}
		store, err := cfg.BuildStore(ctx)
		require.NoError(t, err)
		assert.IsType(t, &blobstore.LocalStore{}, store)
	})

	t.Run("Wrapped", func(t *testing.T) {
		cfg := &Config{
			Store:      StoreConfig{Type: StoreMemory},
			CacheBytes: 1024,
			RateLimit:  1 << 20,
		}
		store, err := cfg.BuildStore(ctx)
		require.NoError(t, err)
		assert.IsType(t, &blobstore.CachingStore{}, store)
	})

	t.Run("MinIO", func(t *testing.T) {
		cfg := &Config{Store: StoreConfig{
			Type:     StoreMinIO,
			Endpoint: "localhost:9000",
			Bucket:   "partitions",
		}}
		store, err := cfg.BuildStore(ctx)
		require.NoError(t, err)
		assert.NotNil(t, store)
	})

	t.Run("Unknown", func(t *testing.T) {
		cfg := &Config{Store: StoreConfig{Type: "tape"}}
		_, err := cfg.BuildStore(ctx)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestOpen_FormatError(t *testing.T) {
	cfg := &Config{
		Layout:        LayoutConfig{BaseName: "rows", Extension: "csv"},
		PartitionSize: 10,
		Format:        "parquet",
		Store:         StoreConfig{Type: StoreMemory},
	}
	_, err := Open[Row](context.Background(), cfg)
	assert.ErrorIs(t, err, ErrValidation)
}
