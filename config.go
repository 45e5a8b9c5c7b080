package filepartition

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"gopkg.in/yaml.v3"

	"github.com/bmiovino/filepartition/blobstore"
	minioblob "github.com/bmiovino/filepartition/blobstore/minio"
	s3blob "github.com/bmiovino/filepartition/blobstore/s3"
	"github.com/bmiovino/filepartition/codec"
	"github.com/bmiovino/filepartition/compression"
	"github.com/bmiovino/filepartition/filename"
	"github.com/bmiovino/filepartition/format"
)

// Store types accepted in StoreConfig.Type.
const (
	StoreLocal  = "local"
	StoreMemory = "memory"
	StoreS3     = "s3"
	StoreMinIO  = "minio"
)

// Config is the YAML description of one partition set and where it lives.
type Config struct {
	Layout           LayoutConfig `yaml:"layout"`
	PartitionSize    int          `yaml:"partition_size"`   // records per partition, default 100000
	Format           string       `yaml:"format"`           // "csv", "jsonl", "avro"
	CSVComma         string       `yaml:"csv_comma"`        // single character, default ","
	Codec            string       `yaml:"codec"`            // JSON lines codec: "go-json", "json"
	AvroSchema       string       `yaml:"avro_schema"`      // inline Avro record schema
	AvroSchemaFile   string       `yaml:"avro_schema_file"` // path to an Avro schema, used when avro_schema is empty
	AvroCodec        string       `yaml:"avro_codec"`       // "null", "deflate", "snappy", "zstandard"
	Compression      string       `yaml:"compression"`      // "none", "lz4", "zstd"
	Checksum         bool         `yaml:"checksum"`
	ReadConcurrency  int          `yaml:"read_concurrency"`
	CumulativeBounds bool         `yaml:"cumulative_bounds"`
	CacheBytes       int64        `yaml:"cache_bytes"`              // read cache capacity, 0 disables
	RateLimit        int          `yaml:"rate_limit_bytes_per_sec"` // 0 disables
	Store            StoreConfig  `yaml:"store"`
	Log              LogConfig    `yaml:"log"`
}

// LayoutConfig names the partition files.
type LayoutConfig struct {
	Dir       string `yaml:"dir"`
	BaseName  string `yaml:"base_name"`
	Extension string `yaml:"extension"` // defaults to the format's extension
}

// StoreConfig selects the blob store.
type StoreConfig struct {
	Type      string `yaml:"type"`     // "local", "memory", "s3", "minio"
	Root      string `yaml:"root"`     // local root directory
	Bucket    string `yaml:"bucket"`   // s3, minio
	Prefix    string `yaml:"prefix"`   // key prefix for s3, minio
	Region    string `yaml:"region"`   // s3, minio
	Endpoint  string `yaml:"endpoint"` // s3 compatible endpoint or minio host:port
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Secure    bool   `yaml:"secure"`
}

// LogConfig configures the structured logger.
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"; empty disables logging
	Format string `yaml:"format"` // "text", "json"
}

// LoadConfig loads configuration from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses YAML configuration, applies defaults and validates it.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyDefaults fills unset fields with their defaults.
func (c *Config) ApplyDefaults() {
	if c.PartitionSize == 0 {
		c.PartitionSize = DefaultPartitionSize
	}
	if c.Format == "" {
		c.Format = "csv"
	}
	if c.Layout.Extension == "" {
		c.Layout.Extension = format.Extension(c.Format)
	}
	if c.ReadConcurrency == 0 {
		c.ReadConcurrency = 4
	}
	if c.Store.Type == "" {
		c.Store.Type = StoreLocal
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if _, err := c.layout(); err != nil {
		return translateError(err)
	}
	if c.PartitionSize <= 0 {
		return validationError("partition_size must be positive, got %d", c.PartitionSize)
	}
	if _, err := compression.ParseType(c.Compression); err != nil {
		return validationError("compression: %v", err)
	}
	if _, err := c.comma(); err != nil {
		return err
	}
	if c.Codec != "" {
		if _, ok := codec.ByName(c.Codec); !ok {
			return validationError("unknown codec %q", c.Codec)
		}
	}
	switch strings.ToLower(c.Format) {
	case "csv", "jsonl", "ndjson", "json":
	case "avro":
		if c.AvroSchema == "" && c.AvroSchemaFile == "" {
			return validationError("avro format needs avro_schema or avro_schema_file")
		}
	default:
		return validationError("unknown format %q", c.Format)
	}
	if c.CacheBytes < 0 || c.RateLimit < 0 {
		return validationError("cache_bytes and rate_limit_bytes_per_sec must not be negative")
	}

	switch c.Store.Type {
	case StoreLocal, StoreMemory:
	case StoreS3:
		if c.Store.Bucket == "" {
			return validationError("s3 store needs a bucket")
		}
	case StoreMinIO:
		if c.Store.Bucket == "" || c.Store.Endpoint == "" {
			return validationError("minio store needs a bucket and an endpoint")
		}
	default:
		return validationError("unknown store type %q", c.Store.Type)
	}

	if c.Log.Level != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
			return validationError("log level: %v", err)
		}
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return validationError("unknown log format %q", c.Log.Format)
	}
	return nil
}

func (c *Config) layout() (filename.Layout, error) {
	return filename.NewLayout(c.Layout.Dir, c.Layout.BaseName, c.Layout.Extension)
}

func (c *Config) comma() (rune, error) {
	if c.CSVComma == "" {
		return ',', nil
	}
	r, size := utf8.DecodeRuneInString(c.CSVComma)
	if size != len(c.CSVComma) || r == utf8.RuneError {
		return 0, validationError("csv_comma must be a single character, got %q", c.CSVComma)
	}
	return r, nil
}

// FormatOptions returns the format settings, reading avro_schema_file if needed.
func (c *Config) FormatOptions() (format.Options, error) {
	comma, err := c.comma()
	if err != nil {
		return format.Options{}, err
	}
	opts := format.Options{
		Comma:      comma,
		AvroSchema: c.AvroSchema,
		AvroCodec:  c.AvroCodec,
	}
	if c.Codec != "" {
		opts.Codec, _ = codec.ByName(c.Codec)
	}
	if opts.AvroSchema == "" && c.AvroSchemaFile != "" {
		schema, err := os.ReadFile(c.AvroSchemaFile)
		if err != nil {
			return format.Options{}, fmt.Errorf("failed to read avro schema: %w", err)
		}
		opts.AvroSchema = string(schema)
	}
	return opts, nil
}

// BlobOptions returns the payload options of the partition files.
func (c *Config) BlobOptions() []BlobOption {
	t, _ := compression.ParseType(c.Compression)
	return []BlobOption{WithCompression(t), WithChecksum(c.Checksum)}
}

// Logger returns the logger described by the log section. An empty level
// disables logging.
func (c *Config) Logger() *Logger {
	if c.Log.Level == "" {
		return NoopLogger()
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		level = slog.LevelInfo
	}
	if c.Log.Format == "json" {
		return NewJSONLogger(level)
	}
	return NewTextLogger(level)
}

// BuildStore creates the configured blob store, wrapped in a rate limiter
// and a read cache when enabled.
func (c *Config) BuildStore(ctx context.Context) (blobstore.BlobStore, error) {
	var store blobstore.BlobStore

	switch c.Store.Type {
	case StoreLocal, "":
		store = blobstore.NewLocalStore(c.Store.Root)
	case StoreMemory:
		store = blobstore.NewMemoryStore()
	case StoreS3:
		opts := []s3blob.Option{s3blob.WithPrefix(c.Store.Prefix)}
		if c.Store.Region != "" {
			opts = append(opts, s3blob.WithRegion(c.Store.Region))
		}
		if c.Store.Endpoint != "" {
			opts = append(opts, s3blob.WithEndpoint(c.Store.Endpoint))
		}
		s, err := s3blob.New(ctx, c.Store.Bucket, opts...)
		if err != nil {
			return nil, err
		}
		store = s
	case StoreMinIO:
		client, err := minio.New(c.Store.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(c.Store.AccessKey, c.Store.SecretKey, ""),
			Secure: c.Store.Secure,
			Region: c.Store.Region,
		})
		if err != nil {
			return nil, fmt.Errorf("minio client: %w", err)
		}
		store = minioblob.NewStore(client, c.Store.Bucket, c.Store.Prefix)
	default:
		return nil, validationError("unknown store type %q", c.Store.Type)
	}

	if c.RateLimit > 0 {
		store = blobstore.NewRateLimitedStore(store, c.RateLimit)
	}
	if c.CacheBytes > 0 {
		store = blobstore.NewCachingStore(store, c.CacheBytes)
	}
	return store, nil
}

// Options returns the Partitioner options described by the configuration.
func (c *Config) Options() []Option {
	return []Option{
		WithLogger(c.Logger()),
		WithPartitionSize(c.PartitionSize),
		WithReadConcurrency(c.ReadConcurrency),
		WithCumulativeBounds(c.CumulativeBounds),
	}
}

// Open builds the store and format described by cfg and returns a Partitioner
// for T. Options passed here override the configured ones.
func Open[T any](ctx context.Context, cfg *Config, optFns ...Option) (*Partitioner[T], error) {
	fopts, err := cfg.FormatOptions()
	if err != nil {
		return nil, err
	}
	f, err := format.ByName[T](cfg.Format, fopts)
	if err != nil {
		return nil, validationError("%v", err)
	}
	return OpenWithFormat(ctx, cfg, f, optFns...)
}

// OpenWithFormat is Open with a caller supplied record format, for record
// types the named formats cannot handle.
func OpenWithFormat[T any](ctx context.Context, cfg *Config, f format.Format[T], optFns ...Option) (*Partitioner[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	layout, err := cfg.layout()
	if err != nil {
		return nil, translateError(err)
	}

	store, err := cfg.BuildStore(ctx)
	if err != nil {
		return nil, err
	}

	rw := NewBlobReaderWriter(store, f, cfg.BlobOptions()...)
	return New[T](layout, rw, append(cfg.Options(), optFns...)...)
}
