package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/sarchlab/rcsim/simulation"
	"github.com/spf13/cobra"
)

// OutputDirEnv names the environment variable that sets the default output
// directory.
const OutputDirEnv = "RCSIM_OUTPUT_DIR"

type runOptions struct {
	outputDir   string
	noConsole   bool
	chart       bool
	record      bool
	recordFile  string
	parallel    bool
	strict      bool
	monitor     bool
	monitorPort int
	openBrowser bool
	verbose     bool
}

func newRunCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate both circuit modes and report the results.",
		Long: `run simulates the capacitor with a constant current source and ` +
			`with a constant voltage source, prints sampled results, and ` +
			`writes them to constant_current_results.csv and ` +
			`constant_voltage_results.csv.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := loadEnv()
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("output-dir") {
				if dir := os.Getenv(OutputDirEnv); dir != "" {
					opts.outputDir = dir
				}
			}

			return opts.run(cmd)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.outputDir, "output-dir", ".",
		"Directory the CSV files and charts are written into. "+
			"Defaults to $"+OutputDirEnv+" if set.")
	f.BoolVar(&opts.noConsole, "no-console", false,
		"Do not print the results.")
	f.BoolVar(&opts.chart, "chart", false,
		"Also draw the results as PNG charts.")
	f.BoolVar(&opts.record, "record", false,
		"Record results and traces into a SQLite database.")
	f.StringVar(&opts.recordFile, "record-file", "",
		"Name of the database, without the .sqlite3 extension.")
	f.BoolVar(&opts.parallel, "parallel", false,
		"Simulate the two modes concurrently.")
	f.BoolVar(&opts.strict, "strict", false,
		"Reject degenerate circuit parameters.")
	f.BoolVar(&opts.monitor, "monitor", false,
		"Serve the progress of the simulation over HTTP.")
	f.IntVar(&opts.monitorPort, "monitor-port", 0,
		"Port of the monitoring server. A random port is used if not set.")
	f.BoolVar(&opts.openBrowser, "open-browser", false,
		"Open the monitoring page in the default browser.")
	f.BoolVar(&opts.verbose, "verbose", false,
		"Log when each mode starts and ends.")

	return cmd
}

func loadEnv() error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	return nil
}

func (o *runOptions) checkFlags() error {
	if o.recordFile != "" && !o.record {
		return errors.New("--record-file requires --record")
	}

	if !o.monitor && (o.monitorPort != 0 || o.openBrowser) {
		return errors.New("--monitor-port and --open-browser require --monitor")
	}

	return nil
}

func (o *runOptions) builder(cmd *cobra.Command) simulation.Builder {
	b := simulation.MakeBuilder().
		WithOutputDir(o.outputDir).
		WithStdout(cmd.OutOrStdout()).
		WithStderr(cmd.ErrOrStderr())

	if o.noConsole {
		b = b.WithoutConsole()
	}

	if o.chart {
		b = b.WithChart()
	}

	if o.record {
		b = b.WithRecording(o.recordFile)
	}

	if o.parallel {
		b = b.WithParallelSimulation()
	}

	if o.strict {
		b = b.WithStrictValidation()
	}

	if o.monitor {
		b = b.WithMonitoring().WithMonitorPort(o.monitorPort)
	}

	if o.verbose {
		b = b.WithVerbose()
	}

	return b
}

func (o *runOptions) run(cmd *cobra.Command) error {
	err := o.checkFlags()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	s := o.builder(cmd).Build()
	defer s.Terminate()

	err = s.Run(ctx)
	if err != nil {
		return err
	}

	if o.monitor {
		o.waitForInterrupt(ctx, cmd, s)
	}

	return nil
}

func (o *runOptions) waitForInterrupt(
	ctx context.Context,
	cmd *cobra.Command,
	s *simulation.Simulation,
) {
	if o.openBrowser {
		err := s.GetMonitor().OpenInBrowser()
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Cannot open browser: %v\n", err)
		}
	}

	fmt.Fprintln(cmd.ErrOrStderr(),
		"Simulation finished. Monitoring server is still running, "+
			"press Ctrl+C to exit.")

	<-ctx.Done()
}
