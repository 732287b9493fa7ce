package simulation

import (
	"io"
	"log"
	"os"

	"github.com/rs/xid"
	"github.com/sarchlab/rcsim/circuit"
	"github.com/sarchlab/rcsim/datarecording"
	"github.com/sarchlab/rcsim/monitoring"
	"github.com/sarchlab/rcsim/report"
	"github.com/sarchlab/rcsim/tracing"
)

// Builder can be used to build a simulation.
type Builder struct {
	params           circuit.Params
	outputDir        string
	consoleOn        bool
	chartOn          bool
	recordOn         bool
	recordFile       string
	parallel         bool
	strict           bool
	monitorOn        bool
	monitorPort      int
	verbose          bool
	stdout, stderr   io.Writer
	extraScreenSinks []report.Sink
	extraFileSinks   []report.Sink
}

// MakeBuilder creates a new builder. By default, the reference circuit is
// simulated sequentially, the results are printed to the standard output, and
// CSV files are written into the working directory.
func MakeBuilder() Builder {
	return Builder{
		params:    circuit.DefaultParams(),
		outputDir: ".",
		consoleOn: true,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
	}
}

// WithParams replaces the circuit parameters.
func (b Builder) WithParams(p circuit.Params) Builder {
	b.params = p
	return b
}

// WithOutputDir sets the directory that the result files are written into.
func (b Builder) WithOutputDir(dir string) Builder {
	b.outputDir = dir
	return b
}

// WithoutConsole stops the results from being printed.
func (b Builder) WithoutConsole() Builder {
	b.consoleOn = false
	return b
}

// WithChart also draws the results as PNG charts.
func (b Builder) WithChart() Builder {
	b.chartOn = true
	return b
}

// WithRecording stores the results and the traces in a SQLite database. An
// empty file name lets the recorder pick a unique one.
func (b Builder) WithRecording(file string) Builder {
	b.recordOn = true
	b.recordFile = file
	return b
}

// WithParallelSimulation runs the modes concurrently.
func (b Builder) WithParallelSimulation() Builder {
	b.parallel = true
	return b
}

// WithStrictValidation rejects degenerate circuit parameters before
// simulating.
func (b Builder) WithStrictValidation() Builder {
	b.strict = true
	return b
}

// WithMonitoring serves the progress of the simulation over HTTP.
func (b Builder) WithMonitoring() Builder {
	b.monitorOn = true
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

// WithVerbose logs when each mode starts and ends.
func (b Builder) WithVerbose() Builder {
	b.verbose = true
	return b
}

// WithStdout sets where tables and notices are printed.
func (b Builder) WithStdout(w io.Writer) Builder {
	b.stdout = w
	return b
}

// WithStderr sets where errors and logs are printed.
func (b Builder) WithStderr(w io.Writer) Builder {
	b.stderr = w
	return b
}

// WithConsoleSink adds a sink that receives the tables together with the
// console.
func (b Builder) WithConsoleSink(s report.Sink) Builder {
	b.extraScreenSinks = append(b.extraScreenSinks, s)
	return b
}

// WithFileSink adds a sink that receives the tables together with the result
// files.
func (b Builder) WithFileSink(s report.Sink) Builder {
	b.extraFileSinks = append(b.extraFileSinks, s)
	return b
}

func (b Builder) parametersMustBeValid() {
	if !b.monitorOn && b.monitorPort != 0 {
		panic("monitor port cannot be set when monitoring is disabled")
	}

	if b.stdout == nil || b.stderr == nil {
		panic("stdout and stderr must be set")
	}

	if b.outputDir == "" {
		panic("output directory must not be empty")
	}
}

// Build builds the simulation.
func (b Builder) Build() *Simulation {
	b.parametersMustBeValid()

	s := &Simulation{
		id:       xid.New().String(),
		params:   b.params,
		parallel: b.parallel,
		strict:   b.strict,
		verbose:  b.verbose,
		logger:   log.New(b.stderr, "", 0),
		buffers:  make(map[circuit.Mode]*circuit.Buffer),
	}

	b.buildScreenPhase(s)
	b.buildFilePhase(s)

	if b.monitorOn {
		s.monitor = monitoring.NewMonitor()
		if b.monitorPort > 0 {
			s.monitor.WithPortNumber(b.monitorPort)
		}
	}

	return s
}

func (b Builder) buildScreenPhase(s *Simulation) {
	if b.consoleOn {
		s.screenSinks = append(s.screenSinks, report.NewConsoleSink(b.stdout))
	}

	s.screenSinks = append(s.screenSinks, b.extraScreenSinks...)
}

func (b Builder) buildFilePhase(s *Simulation) {
	s.fileSinks = append(s.fileSinks, report.NewCSVSink(b.outputDir, b.stdout))

	if b.chartOn {
		s.fileSinks = append(s.fileSinks, report.NewChartSink(b.outputDir))
	}

	if b.recordOn {
		s.dataRecorder = datarecording.NewDataRecorder(b.recordFile)
		s.tracer = tracing.NewDBTracer(s.dataRecorder)
		s.fileSinks = append(s.fileSinks,
			report.NewRecorderSink(s.dataRecorder))
	}

	s.fileSinks = append(s.fileSinks, b.extraFileSinks...)
}
