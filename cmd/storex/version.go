package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comalice/storex"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of storex",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "storex version %s\n", storex.Version)
		},
	}
}
