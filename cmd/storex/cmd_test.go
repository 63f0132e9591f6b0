package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/comalice/storex"
	"github.com/comalice/storex/inspect"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDemo_YAML(t *testing.T) {
	out, err := run(t, "demo")
	require.NoError(t, err)

	var snap inspect.Snapshot
	require.NoError(t, yaml.Unmarshal([]byte(out), &snap))
	assert.Equal(t, "todo", snap.Name)
	require.Len(t, snap.Modules, 3)
	assert.Equal(t, []string{"add", "clearDone", "toggle"}, snap.Modules[0].Actions)
	assert.Equal(t, "filter", snap.Modules[1].Namespace)
	assert.Equal(t, inspect.RootName, snap.Modules[1].Parent)
}

func TestDemo_Formats(t *testing.T) {
	out, err := run(t, "demo", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "todo"`)

	out, err = run(t, "demo", "-f", "dot")
	require.NoError(t, err)
	assert.Contains(t, out, `"root" -> "filter";`)

	out, err = run(t, "demo", "-f", "mermaid", "--state")
	require.NoError(t, err)
	assert.Contains(t, out, "m_root --> m_stats")
	assert.Contains(t, out, "state:")

	_, err = run(t, "demo", "-f", "xml")
	assert.ErrorContains(t, err, `unknown format "xml"`)
}

func TestDemo_Metrics(t *testing.T) {
	out, err := run(t, "demo", "--metrics", "-f", "dot")
	require.NoError(t, err)
	// One initial render plus one per script step.
	assert.Contains(t, out, `storex_builds_total{store="todo"} 7`)
	assert.Contains(t, out, `storex_state_replacements_total{cell="root"} 4`)
	assert.Contains(t, out, `storex_modules{store="todo"} 3`)
}

func TestDemo_DumpThenGraph(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, "demo", "--dump", dir)
	require.NoError(t, err)

	file := filepath.Join(dir, "todo.yaml")
	require.FileExists(t, file)

	out, err := run(t, "graph", file, "--format", "dot")
	require.NoError(t, err)
	assert.Contains(t, out, "digraph Store {")
	assert.Contains(t, out, `"root" -> "stats";`)

	out, err = run(t, "graph", file)
	require.NoError(t, err)
	assert.Contains(t, out, "graph LR")
}

func TestGraph_Errors(t *testing.T) {
	_, err := run(t, "graph")
	assert.Error(t, err)

	_, err = run(t, "graph", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = run(t, "graph", "x.yaml", "--format", "yaml")
	assert.ErrorContains(t, err, `unknown format "yaml"`)
}

func TestRoot_InvalidLogLevel(t *testing.T) {
	_, err := run(t, "--log-level", "loud", "demo")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "storex version "+storex.Version+"\n", out)
}
