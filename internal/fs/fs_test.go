package fs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFS(t *testing.T) {
	tmp := t.TempDir()
	lfs := LocalFS{}

	dir := filepath.Join(tmp, "parts")
	require.NoError(t, lfs.MkdirAll(dir, 0o755))

	fpath := filepath.Join(dir, "file_0_8.csv.tmp")
	f, err := lfs.OpenFile(fpath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	require.NoError(t, err)

	_, err = f.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, f.Sync())

	info, err := f.Stat()
	require.NoError(t, err)
	assert.Equal(t, int64(5), info.Size())
	require.NoError(t, f.Close())

	final := filepath.Join(dir, "file_0_8.csv")
	require.NoError(t, lfs.Rename(fpath, final))

	entries, err := lfs.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "file_0_8.csv", entries[0].Name())

	require.NoError(t, lfs.Remove(final))
	_, err = lfs.Stat(final)
	assert.True(t, os.IsNotExist(err))
}

func TestFaultyFS(t *testing.T) {
	tmp := t.TempDir()

	t.Run("FailOnOpen", func(t *testing.T) {
		ffs := NewFaultyFS(nil)
		ffs.AddRule("file_9_17", Fault{FailOnOpen: true, FailAfterBytes: -1})

		_, err := ffs.OpenFile(filepath.Join(tmp, "file_9_17.csv"), os.O_CREATE|os.O_WRONLY, 0o644)
		assert.ErrorIs(t, err, ErrInjected)
		assert.Equal(t, 1, ffs.Opens("file_9_17"))

		f, err := ffs.OpenFile(filepath.Join(tmp, "file_0_8.csv"), os.O_CREATE|os.O_WRONLY, 0o644)
		require.NoError(t, err)
		require.NoError(t, f.Close())
	})

	t.Run("FailAfterBytes", func(t *testing.T) {
		boom := errors.New("disk full")
		ffs := NewFaultyFS(nil)
		ffs.AddRule("limited", Fault{FailAfterBytes: 4, Err: boom})

		f, err := ffs.OpenFile(filepath.Join(tmp, "limited.bin"), os.O_CREATE|os.O_WRONLY, 0o644)
		require.NoError(t, err)
		defer f.Close()

		_, err = f.Write([]byte("abc"))
		require.NoError(t, err)
		_, err = f.Write([]byte("de"))
		assert.ErrorIs(t, err, boom)
	})

	t.Run("FailOnSyncAndRename", func(t *testing.T) {
		ffs := NewFaultyFS(nil)
		ffs.AddRule("synced", Fault{FailOnSync: true, FailOnRename: true, FailAfterBytes: -1})

		p := filepath.Join(tmp, "synced.bin")
		f, err := ffs.OpenFile(p, os.O_CREATE|os.O_WRONLY, 0o644)
		require.NoError(t, err)
		assert.ErrorIs(t, f.Sync(), ErrInjected)
		require.NoError(t, f.Close())

		assert.ErrorIs(t, ffs.Rename(p, p+".final"), ErrInjected)
	})
}
