package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmiovino/filepartition"
	"github.com/bmiovino/filepartition/format"
	"github.com/bmiovino/filepartition/testutil"
)

func TestCommands(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	input := filepath.Join(dir, "input.csv")
	f, err := os.Create(input)
	require.NoError(t, err)
	require.NoError(t, format.CSV[testutil.Row]{}.Encode(f, testutil.Rows(23)))
	require.NoError(t, f.Close())

	cfg, err := loadConfig("", filepath.Join(dir, "parts"), "rows", "", "csv")
	require.NoError(t, err)
	cfg.PartitionSize = 10

	exec := func(args ...string) string {
		t.Helper()
		var out bytes.Buffer
		require.NoError(t, run(ctx, cfg, args, &out))
		return out.String()
	}

	assert.Equal(t, "wrote 23 records in 3 partitions\n", exec("split", input))
	assert.FileExists(t, filepath.Join(dir, "parts", "rows_20_22.csv"))

	ls := exec("ls")
	assert.Contains(t, ls, "rows_10_19.csv")
	assert.Contains(t, ls, "3 partitions, 23 indices covered [0, 22]")

	assert.Equal(t, filepath.Join(dir, "parts", "rows_5_9.csv")+"\n", exec("path", "5", "9"))

	lines := strings.Split(strings.TrimSpace(exec("cat", "2")), "\n")
	require.Len(t, lines, 3)
	assert.JSONEq(t, `{"row_number":"20","number_a":"58380","number_b":"94580"}`, lines[0])

	assert.Equal(t, "removed 3 partitions\n", exec("rm"))

	var out bytes.Buffer
	err = run(ctx, cfg, []string{"cat", "0"}, &out)
	assert.ErrorIs(t, err, filepartition.ErrNoPartitionsFound)
}

func TestCommands_JSONLines(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	input := filepath.Join(dir, "input.jsonl")
	require.NoError(t, os.WriteFile(input, []byte("{\"id\":1}\n{\"id\":2}\n{\"id\":3}\n"), 0o644))

	cfg, err := loadConfig("", dir, "ids", "", "jsonl")
	require.NoError(t, err)
	cfg.PartitionSize = 2

	var out bytes.Buffer
	require.NoError(t, run(ctx, cfg, []string{"split", input}, &out))
	assert.FileExists(t, filepath.Join(dir, "ids_2_2.jsonl"))

	out.Reset()
	require.NoError(t, run(ctx, cfg, []string{"cat", "1"}, &out))
	assert.JSONEq(t, `{"id":3}`, strings.TrimSpace(out.String()))
}

func TestCommands_Errors(t *testing.T) {
	ctx := context.Background()
	cfg, err := loadConfig("", t.TempDir(), "rows", "", "csv")
	require.NoError(t, err)

	var out bytes.Buffer
	assert.Error(t, run(ctx, cfg, []string{"path", "1"}, &out))
	assert.Error(t, run(ctx, cfg, []string{"cat", "x"}, &out))
	assert.Error(t, run(ctx, cfg, []string{"explode"}, &out))

	_, err = loadConfig("", ".", "", "", "csv")
	assert.ErrorIs(t, err, filepartition.ErrValidation)
}

func TestReport(t *testing.T) {
	ctx := context.Background()

	_, err := loadConfig("", ".", "", "", "csv")
	require.Error(t, err)
	var stderr bytes.Buffer
	assert.Equal(t, 2, report(&stderr, err))
	assert.Contains(t, stderr.String(), "partctl: ")

	cfg, err := loadConfig("", t.TempDir(), "rows", "", "csv")
	require.NoError(t, err)
	err = run(ctx, cfg, []string{"cat", "0"}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Equal(t, 3, report(&bytes.Buffer{}, err))

	assert.Equal(t, 1, report(&bytes.Buffer{}, errors.New("disk on fire")))
}
