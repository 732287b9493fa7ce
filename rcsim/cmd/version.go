package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the version of rcsim. It can be overwritten at link time.
var Version = "v0.1.0"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of rcsim.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "rcsim %s\n", Version)
		},
	}
}
