package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/comalice/storex"
	"github.com/comalice/storex/inspect"
	"github.com/comalice/storex/internal/todo"
)

const demoName = "todo"

func newDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the sample todo store and print its snapshot",
		Long: `Builds the todo store, adds a few items, searches them by tag and
refreshes the stats, then prints the final store.`,
		Args: cobra.NoArgs,
		RunE: runDemo,
	}
	cmd.Flags().StringP("format", "f", "yaml", "Output format (yaml, json, dot, mermaid)")
	cmd.Flags().String("dump", "", "Directory to dump a YAML snapshot into after every build")
	cmd.Flags().Bool("metrics", false, "Print Prometheus metrics after the run")
	cmd.Flags().Bool("state", false, "Include state in dot and mermaid labels")
	return cmd
}

func runDemo(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	dump, _ := cmd.Flags().GetString("dump")
	withMetrics, _ := cmd.Flags().GetBool("metrics")
	showState, _ := cmd.Flags().GetBool("state")

	if !validFormat(format, "yaml", "json", "dot", "mermaid") {
		return fmt.Errorf("unknown format %q", format)
	}

	logger, err := loggerFor(cmd)
	if err != nil {
		return err
	}

	metrics := inspect.NewMetrics("")
	hooks := []func(*storex.Store){metrics.Hook(demoName)}
	if dump != "" {
		w, err := inspect.NewYAMLWriter(dump)
		if err != nil {
			return err
		}
		hooks = append(hooks, inspect.WriteHook(w, demoName, logger))
	}

	session, err := todo.Open(logger, chain(hooks...))
	if err != nil {
		return err
	}
	defer session.Close()
	stop := metrics.Instrument(session.Host())
	defer stop()

	if err := todo.Script(session); err != nil {
		return err
	}
	logger.Info("demo finished", "renders", session.Host().Renders())

	out := cmd.OutOrStdout()
	snap := inspect.TakeSnapshot(demoName, session.Store())
	if err := printSnapshot(out, snap, format, showState); err != nil {
		return err
	}
	if withMetrics {
		return printMetrics(out, metrics)
	}
	return nil
}

// chain runs hooks in order.
func chain(hooks ...func(*storex.Store)) func(*storex.Store) {
	return func(s *storex.Store) {
		for _, h := range hooks {
			h(s)
		}
	}
}

func printSnapshot(w io.Writer, snap inspect.Snapshot, format string, showState bool) error {
	v := &inspect.Visualizer{ShowState: showState}
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	case "dot":
		_, err := io.WriteString(w, v.ExportDOT(snap))
		return err
	case "mermaid":
		_, err := io.WriteString(w, v.ExportMermaid(snap))
		return err
	}
	return fmt.Errorf("unknown format %q", format)
}

func printMetrics(w io.Writer, m *inspect.Metrics) error {
	families, err := m.Registry().Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

func validFormat(format string, allowed ...string) bool {
	for _, a := range allowed {
		if format == a {
			return true
		}
	}
	return false
}
