// Package simulation puts the circuit buffers, the recurrences, and the
// reporting sinks together into one run.
package simulation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/sarchlab/rcsim/circuit"
	"github.com/sarchlab/rcsim/datarecording"
	"github.com/sarchlab/rcsim/monitoring"
	"github.com/sarchlab/rcsim/report"
	"github.com/sarchlab/rcsim/sim"
	"github.com/sarchlab/rcsim/tracing"
)

// A Simulation runs every circuit mode once and reports the results.
type Simulation struct {
	id       string
	params   circuit.Params
	parallel bool
	strict   bool
	verbose  bool
	logger   *log.Logger

	buffers map[circuit.Mode]*circuit.Buffer

	screenSinks []report.Sink
	fileSinks   []report.Sink

	dataRecorder datarecording.DataRecorder
	tracer       *tracing.DBTracer
	monitor      *monitoring.Monitor
}

// ID returns the unique ID of the simulation.
func (s *Simulation) ID() string {
	return s.id
}

// Params returns the circuit parameters of the simulation.
func (s *Simulation) Params() circuit.Params {
	return s.params
}

// Buffer returns the buffer that a mode has filled. It returns nil before Run.
func (s *Simulation) Buffer(m circuit.Mode) *circuit.Buffer {
	return s.buffers[m]
}

// GetDataRecorder returns the data recorder used in the simulation. It is nil
// if recording is off.
func (s *Simulation) GetDataRecorder() datarecording.DataRecorder {
	return s.dataRecorder
}

// GetMonitor returns the monitor used in the simulation. It is nil if
// monitoring is off.
func (s *Simulation) GetMonitor() *monitoring.Monitor {
	return s.monitor
}

// GetTracer returns the tracer used in the simulation. It is nil if recording
// is off.
func (s *Simulation) GetTracer() *tracing.DBTracer {
	return s.tracer
}

// Run simulates all modes and renders the results. Failing to open an output
// file is logged and does not stop the run. The context is checked between
// phases only.
func (s *Simulation) Run(ctx context.Context) error {
	if s.strict {
		err := s.params.Validate()
		if err != nil {
			return err
		}
	}

	err := s.allocateBuffers()
	if err != nil {
		return err
	}

	if s.monitor != nil {
		_, err = s.monitor.StartServer()
		if err != nil {
			return fmt.Errorf("starting monitor: %w", err)
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	s.simulate()

	for _, phase := range [][]report.Sink{s.screenSinks, s.fileSinks} {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.render(phase)
	}

	if s.dataRecorder != nil {
		s.dataRecorder.Flush()
	}

	return nil
}

func (s *Simulation) allocateBuffers() error {
	for _, m := range circuit.Modes {
		b, err := circuit.NewBuffer(
			sim.BuildName(m.String(), "Buffer"),
			s.params.StepCount,
			s.params.DT,
			s.params.Capacitance,
		)
		if err != nil {
			return fmt.Errorf("%s: %w", m.Label(), err)
		}

		s.attachHooks(b)
		s.buffers[m] = b
	}

	return nil
}

func (s *Simulation) attachHooks(b *circuit.Buffer) {
	if s.tracer != nil {
		tracing.CollectTrace(b, s.tracer)
	}

	if s.monitor != nil {
		s.monitor.RegisterBuffer(b)
	}

	if s.verbose {
		b.AcceptHook(sim.NewPositionLogger(s.logger,
			circuit.HookPosSimulationStart,
			circuit.HookPosSimulationEnd,
		))
	}
}

func (s *Simulation) simulate() {
	if !s.parallel {
		for _, m := range circuit.Modes {
			s.simulateMode(m)
		}

		return
	}

	var wg sync.WaitGroup
	for _, m := range circuit.Modes {
		wg.Add(1)
		go func(m circuit.Mode) {
			defer wg.Done()
			s.simulateMode(m)
		}(m)
	}
	wg.Wait()
}

func (s *Simulation) simulateMode(m circuit.Mode) {
	b := s.buffers[m]
	taskID := sim.GetIDGenerator().Generate()

	tracing.StartTask(taskID, s.id, b, "simulation", m.String(),
		sim.VTimeInSec(b.Time[0]))

	m.Simulate(b, s.params)

	tracing.EndTask(taskID, b, b.CurrentTime())
}

func (s *Simulation) render(sinks []report.Sink) {
	for _, m := range circuit.Modes {
		t := report.NewTable(m.Label(), m.ResultName(), s.buffers[m])

		for _, sink := range sinks {
			s.logSinkError(sink.Write(t))
		}
	}
}

func (s *Simulation) logSinkError(err error) {
	if err == nil {
		return
	}

	var openErr *report.OpenError
	if errors.As(err, &openErr) {
		s.logger.Print(openErr.Error())
		return
	}

	s.logger.Print(err)
}

// Terminate flushes and closes the data recorder.
func (s *Simulation) Terminate() {
	if s.dataRecorder != nil {
		s.dataRecorder.Close()
	}
}
