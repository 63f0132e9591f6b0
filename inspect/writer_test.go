package inspect_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/storex"
	"github.com/comalice/storex/inspect"
	"github.com/comalice/storex/internal/logging"
)

func TestWriters_RoundTrip(t *testing.T) {
	_, store := mountCounter(t)
	snap := inspect.TakeSnapshot("counter", *store)

	tests := []struct {
		name string
		new  func(dir string) (inspect.Writer, error)
		file string
	}{
		{
			name: "json",
			new:  func(dir string) (inspect.Writer, error) { return inspect.NewJSONWriter(dir) },
			file: "counter.json",
		},
		{
			name: "yaml",
			new:  func(dir string) (inspect.Writer, error) { return inspect.NewYAMLWriter(dir) },
			file: "counter.yaml",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "dumps")
			w, err := tt.new(dir)
			require.NoError(t, err)

			require.NoError(t, w.Write(context.Background(), snap))
			assert.FileExists(t, filepath.Join(dir, tt.file))

			loaded, err := w.Load(context.Background(), "counter")
			require.NoError(t, err)
			assert.Equal(t, "counter", loaded.Name)
			assert.True(t, snap.Timestamp.Equal(loaded.Timestamp))
			require.Len(t, loaded.Modules, 2)
			assert.Equal(t, []string{"increment"}, loaded.Modules[0].Actions)
			assert.Equal(t, inspect.RootName, loaded.Modules[1].Parent)
			assert.EqualValues(t, 10, loaded.Modules[1].State)

			fromFile, err := inspect.LoadFile(filepath.Join(dir, tt.file))
			require.NoError(t, err)
			assert.Equal(t, loaded, fromFile)
		})
	}
}

func TestWriters_InvalidName(t *testing.T) {
	w, err := inspect.NewJSONWriter(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"", ".", "..", "a/b", "../escape"} {
		err := w.Write(context.Background(), inspect.Snapshot{Name: name})
		assert.Error(t, err, "name %q", name)
		_, err = w.Load(context.Background(), name)
		assert.Error(t, err, "name %q", name)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := inspect.LoadFile(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	txt := filepath.Join(dir, "dump.txt")
	require.NoError(t, os.WriteFile(txt, []byte("{}"), 0o644))
	_, err = inspect.LoadFile(txt)
	assert.ErrorContains(t, err, "unsupported snapshot format")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o644))
	_, err = inspect.LoadFile(bad)
	assert.ErrorContains(t, err, "json unmarshal")
}

func TestWriteHook(t *testing.T) {
	dir := t.TempDir()
	w, err := inspect.NewYAMLWriter(dir)
	require.NoError(t, err)

	mountCounter(t, storex.WithOnBuilt(inspect.WriteHook(w, "counter", nil)))

	snap, err := w.Load(context.Background(), "counter")
	require.NoError(t, err)
	// The root reports last, so the dump holds the whole store.
	assert.Len(t, snap.Modules, 2)
}

func TestWriteHook_LogsFailures(t *testing.T) {
	w, err := inspect.NewJSONWriter(t.TempDir())
	require.NoError(t, err)

	var buf bytes.Buffer
	hook := inspect.WriteHook(w, "", logging.NewWithWriter(&buf, slog.LevelWarn))
	hook(storex.NewStore())
	assert.Contains(t, buf.String(), "snapshot dump failed")
}
