package filepartition

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmiovino/filepartition/blobstore"
	"github.com/bmiovino/filepartition/compression"
	"github.com/bmiovino/filepartition/format"
	"github.com/bmiovino/filepartition/internal/checksum"
	"github.com/bmiovino/filepartition/testutil"
)

func TestBlobReaderWriter(t *testing.T) {
	ctx := context.Background()
	rows := testutil.NewRNG(11).Rows(50)

	formats := []format.Format[Row]{
		format.CSV[Row]{},
		format.CSV[Row]{Comma: ';'},
		format.JSONLines[Row]{},
		format.Avro[Row]{Schema: testutil.RowAvroSchema, Codec: "deflate"},
	}
	compressions := []compression.Type{compression.None, compression.LZ4, compression.Zstd}

	for _, f := range formats {
		for _, c := range compressions {
			for _, sum := range []bool{false, true} {
				name := f.Name() + "/" + c.String()
				if sum {
					name += "/checksum"
				}
				t.Run(name, func(t *testing.T) {
					store := blobstore.NewMemoryStore()
					rw := NewBlobReaderWriter(store, f, WithCompression(c), WithChecksum(sum))

					require.NoError(t, rw.Write(ctx, rows, "p/rows_0_49.bin"))

					got, err := rw.Read(ctx, "p/rows_0_49.bin")
					require.NoError(t, err)
					assert.Equal(t, rows, got)

					raw, err := blobstore.ReadAll(ctx, store, "p/rows_0_49.bin")
					require.NoError(t, err)
					if sum {
						_, err := checksum.Verify(raw)
						assert.NoError(t, err)
					}
				})
			}
		}
	}
}

func TestBlobReaderWriter_Errors(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	t.Run("Missing", func(t *testing.T) {
		rw := NewBlobReaderWriter[Row](store, format.CSV[Row]{})

		_, err := rw.Read(ctx, "missing.csv")
		assert.ErrorIs(t, err, ErrIO)
		assert.ErrorIs(t, err, os.ErrNotExist)

		var ioErr *IOError
		require.ErrorAs(t, err, &ioErr)
		assert.Equal(t, "read", ioErr.Op)
		assert.Equal(t, "missing.csv", ioErr.Path)
	})

	t.Run("Undecodable", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "bad.jsonl", []byte("{not json\n")))

		rw := NewBlobReaderWriter[Row](store, format.JSONLines[Row]{})
		_, err := rw.Read(ctx, "bad.jsonl")
		assert.ErrorIs(t, err, ErrDeserialization)
	})

	t.Run("WrongCompression", func(t *testing.T) {
		plain := NewBlobReaderWriter[Row](store, format.CSV[Row]{})
		require.NoError(t, plain.Write(ctx, testutil.Rows(3), "plain.csv"))

		zstd := NewBlobReaderWriter[Row](store, format.CSV[Row]{}, WithCompression(compression.Zstd))
		_, err := zstd.Read(ctx, "plain.csv")
		assert.ErrorIs(t, err, ErrDeserialization)
	})

	t.Run("MissingChecksum", func(t *testing.T) {
		plain := NewBlobReaderWriter[Row](store, format.CSV[Row]{})
		require.NoError(t, plain.Write(ctx, testutil.Rows(3), "nosum.csv"))

		summed := NewBlobReaderWriter[Row](store, format.CSV[Row]{}, WithChecksum(true))
		_, err := summed.Read(ctx, "nosum.csv")
		assert.ErrorIs(t, err, ErrDeserialization)
	})

	t.Run("SerializationFailure", func(t *testing.T) {
		rw := NewBlobReaderWriter[Row](store, format.Avro[Row]{})
		err := rw.Write(ctx, testutil.Rows(3), "noschema.avro")
		assert.ErrorIs(t, err, ErrSerialization)
		assert.ErrorIs(t, err, format.ErrMissingSchema)
		assert.Equal(t, KindIO, StatusOf(err).Kind)
	})
}

func TestBlobReaderWriter_ListDelete(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	rw := NewBlobReaderWriter[Row](store, format.CSV[Row]{})

	require.NoError(t, rw.Write(ctx, testutil.Rows(2), "d/rows_0_1.csv"))
	require.NoError(t, rw.Write(ctx, testutil.Rows(2), "d/rows_2_3.csv"))
	require.NoError(t, rw.Write(ctx, testutil.Rows(2), "d/other_0_1.csv"))

	names, err := rw.List(ctx, "d/rows_")
	require.NoError(t, err)
	assert.Equal(t, []string{"d/rows_0_1.csv", "d/rows_2_3.csv"}, names)

	require.NoError(t, rw.Delete(ctx, "d/rows_0_1.csv"))
	require.NoError(t, rw.Delete(ctx, "d/rows_0_1.csv"))

	names, err = rw.List(ctx, "d/rows_")
	require.NoError(t, err)
	assert.Equal(t, []string{"d/rows_2_3.csv"}, names)

	assert.Same(t, store, rw.Store())
	assert.Equal(t, "csv", rw.Format().Name())
}
