package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comalice/storex/inspect"
)

func newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph <file>",
		Short: "Render a dumped snapshot as a graph",
		Long:  `Loads a snapshot dumped as YAML or JSON (picked by extension) and prints its module tree as Graphviz DOT or Mermaid.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			showState, _ := cmd.Flags().GetBool("state")
			if !validFormat(format, "dot", "mermaid") {
				return fmt.Errorf("unknown format %q", format)
			}

			snap, err := inspect.LoadFile(args[0])
			if err != nil {
				return err
			}
			return printSnapshot(cmd.OutOrStdout(), snap, format, showState)
		},
	}
	cmd.Flags().StringP("format", "f", "mermaid", "Output format (dot, mermaid)")
	cmd.Flags().Bool("state", false, "Include state in node labels")
	return cmd
}
