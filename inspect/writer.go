package inspect

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/comalice/storex"
)

// Writer dumps snapshots for offline inspection and reads them back.
type Writer interface {
	Write(ctx context.Context, snap Snapshot) error
	Load(ctx context.Context, name string) (Snapshot, error)
}

// JSONWriter dumps snapshots to <dir>/<name>.json.
type JSONWriter struct {
	dir string
}

// NewJSONWriter creates a JSONWriter, ensuring the directory exists.
func NewJSONWriter(dir string) (*JSONWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &JSONWriter{dir: dir}, nil
}

func (w *JSONWriter) Write(ctx context.Context, snap Snapshot) error {
	fn, err := dumpPath(w.dir, snap.Name, ".json")
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}
	return nil
}

func (w *JSONWriter) Load(ctx context.Context, name string) (Snapshot, error) {
	fn, err := dumpPath(w.dir, name, ".json")
	if err != nil {
		return Snapshot{}, err
	}
	return LoadFile(fn)
}

// YAMLWriter dumps snapshots to <dir>/<name>.yaml.
type YAMLWriter struct {
	dir string
}

// NewYAMLWriter creates a YAMLWriter, ensuring the directory exists.
func NewYAMLWriter(dir string) (*YAMLWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &YAMLWriter{dir: dir}, nil
}

func (w *YAMLWriter) Write(ctx context.Context, snap Snapshot) error {
	fn, err := dumpPath(w.dir, snap.Name, ".yaml")
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}
	return nil
}

func (w *YAMLWriter) Load(ctx context.Context, name string) (Snapshot, error) {
	fn, err := dumpPath(w.dir, name, ".yaml")
	if err != nil {
		return Snapshot{}, err
	}
	return LoadFile(fn)
}

// LoadFile reads a dumped snapshot, picking the format from the extension
// (.json, .yaml or .yml).
func LoadFile(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Snapshot{}, fmt.Errorf("snapshot %s: %w", path, os.ErrNotExist)
		}
		return Snapshot{}, fmt.Errorf("read %s: %w", path, err)
	}

	var snap Snapshot
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &snap); err != nil {
			return Snapshot{}, fmt.Errorf("json unmarshal: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &snap); err != nil {
			return Snapshot{}, fmt.Errorf("yaml unmarshal: %w", err)
		}
	default:
		return Snapshot{}, fmt.Errorf("unsupported snapshot format %q", ext)
	}
	return snap, nil
}

// WriteHook returns an on-built hook that dumps every built store under name.
// Write errors are logged, not returned.
func WriteHook(w Writer, name string, logger *slog.Logger) func(*storex.Store) {
	return func(store *storex.Store) {
		if err := w.Write(context.Background(), TakeSnapshot(name, store)); err != nil && logger != nil {
			logger.Warn("snapshot dump failed", "name", name, "error", err)
		}
	}
}

func dumpPath(dir, name, ext string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid snapshot name %q", name)
	}
	return filepath.Join(dir, name+ext), nil
}
