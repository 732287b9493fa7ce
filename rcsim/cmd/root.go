// Package cmd provides the command-line interface of rcsim.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rcsim",
		Short: "rcsim simulates the charging of a capacitor in an RC circuit.",
		Long: `rcsim simulates a capacitor charged by a constant current ` +
			`source and by a constant voltage source through a resistor, ` +
			`and reports the voltage and the current over time.`,
		SilenceUsage: true,
	}

	root.AddCommand(newRunCmd(), newVersionCmd())

	return root
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Registered exit handlers run before the process exits.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
