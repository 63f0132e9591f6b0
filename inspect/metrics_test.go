package inspect_test

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/storex"
	"github.com/comalice/storex/inspect"
)

func TestMetrics_Hook(t *testing.T) {
	m := inspect.NewMetrics("")
	mountCounter(t, storex.WithOnBuilt(m.Hook("app")))

	expected := `
# HELP storex_builds_total Total number of successful store factory invocations
# TYPE storex_builds_total counter
storex_builds_total{store="app"} 2
# HELP storex_modules Number of modules in the most recently built store
# TYPE storex_modules gauge
storex_modules{store="app"} 2
`
	err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected),
		"storex_builds_total", "storex_modules")
	assert.NoError(t, err)
}

func TestMetrics_Instrument(t *testing.T) {
	m := inspect.NewMetrics("demo")
	mount, store := mountCounter(t)

	stop := m.Instrument(mount.Host())
	require.NoError(t, mount.Act(func() error {
		if err := (*store).Root().Dispatch(storex.NewAction("INC", nil)); err != nil {
			return err
		}
		child, _ := (*store).Module("child")
		return child.Dispatch(storex.NewAction("ADD", 5))
	}))

	expected := `
# HELP demo_state_replacements_total Total number of state cell replacements
# TYPE demo_state_replacements_total counter
demo_state_replacements_total{cell="child"} 1
demo_state_replacements_total{cell="root"} 1
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected),
		"demo_state_replacements_total"))

	stop()
	require.NoError(t, mount.Act(func() error {
		return (*store).Root().Dispatch(storex.NewAction("INC", nil))
	}))
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected),
		"demo_state_replacements_total"))
}
