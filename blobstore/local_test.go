package blobstore

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/bmiovino/filepartition/internal/fs"
	"github.com/stretchr/testify/require"
)

func TestLocalBlobStore_Lifecycle(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)

	ctx := context.Background()

	// 1. Create a blob
	blobName := "file_0_8.csv"
	data := []byte("row_number,number_a\n0,17\n1,42\n")

	w, err := store.Create(ctx, blobName)
	require.NoError(t, err)

	n, err := w.Write(data)
	require.NoError(t, err)
	require.Equal(t, len(data), n)

	// Not visible before Close
	_, err = os.Stat(filepath.Join(tmpDir, blobName))
	require.True(t, os.IsNotExist(err))

	require.NoError(t, w.Close())

	_, err = os.Stat(filepath.Join(tmpDir, blobName))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(tmpDir, blobName+tmpSuffix))
	require.True(t, os.IsNotExist(err))

	// 2. Open and ReadAt
	blob, err := store.Open(ctx, blobName)
	require.NoError(t, err)
	defer blob.Close()

	require.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, 10)
	n, err = blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	require.Equal(t, 10, n)
	require.Equal(t, "row_number", string(buf))

	// 3. ReadRange
	rangeReader, err := blob.ReadRange(ctx, 11, 8)
	require.NoError(t, err)
	defer rangeReader.Close()

	rangeContent, err := io.ReadAll(rangeReader)
	require.NoError(t, err)
	require.Equal(t, "number_a", string(rangeContent))

	// 4. List
	require.NoError(t, store.Put(ctx, "file_9_17.csv", []byte("x")))
	require.NoError(t, store.Put(ctx, "other_0_1.csv", []byte("y")))

	blobs, err := store.List(ctx, "file_")
	require.NoError(t, err)
	require.Equal(t, []string{"file_0_8.csv", "file_9_17.csv"}, blobs)

	all, err := store.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)

	// 5. Delete
	require.NoError(t, store.Delete(ctx, blobName))
	require.NoError(t, store.Delete(ctx, blobName), "deleting twice is not an error")

	blobsAfter, err := store.List(ctx, "file_")
	require.NoError(t, err)
	require.Equal(t, []string{"file_9_17.csv"}, blobsAfter)

	_, err = store.Open(ctx, blobName)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLocalBlobStore_AbsoluteNames(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore("")
	ctx := context.Background()

	dir := filepath.Join(tmpDir, "nested", "parts")
	name := filepath.Join(dir, "file_0_4.csv")
	require.NoError(t, store.Put(ctx, name, []byte("01234")))

	// Subdirectories are not listed
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "file_sub"), 0o755))

	names, err := store.List(ctx, filepath.Join(dir, "file_"))
	require.NoError(t, err)
	require.Equal(t, []string{name}, names)

	got, err := ReadAll(ctx, store, name)
	require.NoError(t, err)
	require.Equal(t, "01234", string(got))

	missing, err := store.List(ctx, filepath.Join(tmpDir, "absent", "file_"))
	require.NoError(t, err)
	require.Empty(t, missing)
}

func TestLocalBlobStore_ReadRange_Boundaries(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)
	ctx := context.Background()

	blobName := "boundary.bin"
	data := []byte("0123456789")
	require.NoError(t, store.Put(ctx, blobName, data))

	blob, err := store.Open(ctx, blobName)
	require.NoError(t, err)
	defer blob.Close()

	// Case 1: Read full range
	r, err := blob.ReadRange(ctx, 0, 10)
	require.NoError(t, err)
	content, _ := io.ReadAll(r)
	r.Close()
	require.True(t, bytes.Equal(data, content))

	// Case 2: Read past end
	r, err = blob.ReadRange(ctx, 8, 5)
	require.NoError(t, err)
	content, err = io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, "89", string(content))
	r.Close()

	// Case 3: Offset past EOF
	_, err = blob.ReadRange(ctx, 20, 5)
	require.ErrorIs(t, err, io.EOF)
}

func TestLocalBlobStore_EmptyBlob(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "empty.bin", nil))

	got, err := ReadAll(ctx, store, "empty.bin")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestLocalBlobStore_FailedPutLeavesNothing(t *testing.T) {
	tmpDir := t.TempDir()
	ffs := fs.NewFaultyFS(nil)
	ffs.AddRule("file_9_17", fs.Fault{FailOnRename: true, FailAfterBytes: -1})

	store := NewLocalStore(tmpDir, WithFileSystem(ffs))
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "file_0_8.csv", []byte("ok")))

	err := store.Put(ctx, "file_9_17.csv", []byte("lost"))
	require.ErrorIs(t, err, fs.ErrInjected)

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	require.Equal(t, []string{"file_0_8.csv"}, names)
}

func TestLocalBlobStore_FaultyReadFallback(t *testing.T) {
	tmpDir := t.TempDir()
	ffs := fs.NewFaultyFS(nil)
	ffs.AddRule("wrapped", fs.Fault{FailAfterBytes: -1})

	store := NewLocalStore(tmpDir, WithFileSystem(ffs))
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "wrapped.bin", []byte("not mapped")))

	got, err := ReadAll(ctx, store, "wrapped.bin")
	require.NoError(t, err)
	require.Equal(t, "not mapped", string(got))
}
