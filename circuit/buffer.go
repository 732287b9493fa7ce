package circuit

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"
	"github.com/sarchlab/rcsim/sim"
)

// A list of hook positions that a Buffer triggers while it is being filled.
var (
	// HookPosSimulationStart is triggered before the first step. The item is
	// the Mode of the run and the detail is the simulated start time.
	HookPosSimulationStart = &sim.HookPos{Name: "SimulationStart"}

	// HookPosStep is triggered after every computed step. The item is the
	// step index.
	HookPosStep = &sim.HookPos{Name: "Step"}

	// HookPosSimulationEnd is triggered after the last step. The item is the
	// Mode of the run and the detail is the simulated end time.
	HookPosSimulationEnd = &sim.HookPos{Name: "SimulationEnd"}
)

// A Buffer is the time series of a capacitor. Time, Voltage, and Current all
// have StepCount elements. Time[i] is always i*DT.
type Buffer struct {
	sim.HookableBase

	name        string
	dt          float64
	capacitance float64

	Time    []float64
	Voltage []float64
	Current []float64
}

// NewBuffer allocates a buffer with stepCount steps of length dt for a
// capacitor of the given capacitance. Voltage and current start at zero.
func NewBuffer(
	name string,
	stepCount int,
	dt float64,
	capacitance float64,
) (*Buffer, error) {
	sim.NameMustBeValid(name)

	if stepCount < 1 {
		return nil, fmt.Errorf("%w: %d steps", ErrAllocation, stepCount)
	}

	b := &Buffer{
		name:        name,
		dt:          dt,
		capacitance: capacitance,
		Time:        make([]float64, stepCount),
		Voltage:     make([]float64, stepCount),
		Current:     make([]float64, stepCount),
	}

	steps := make([]float64, stepCount)
	for i := range steps {
		steps[i] = float64(i)
	}
	vecmath.ScaleBlock(b.Time, steps, dt)

	return b, nil
}

// Name returns the name of the buffer.
func (b *Buffer) Name() string {
	return b.name
}

// StepCount returns the number of steps held by the buffer.
func (b *Buffer) StepCount() int {
	return len(b.Time)
}

// DT returns the timestep.
func (b *Buffer) DT() float64 {
	return b.dt
}

// Capacitance returns the capacitance the buffer was created for.
func (b *Buffer) Capacitance() float64 {
	return b.capacitance
}

// At returns the time, voltage, and current of step i.
func (b *Buffer) At(i int) (time, voltage, current float64) {
	return b.Time[i], b.Voltage[i], b.Current[i]
}

// Reset sets all voltages and currents back to zero. The time axis is kept.
func (b *Buffer) Reset() {
	clear(b.Voltage)
	clear(b.Current)
}

// CurrentTime returns the time of the last step of the buffer.
func (b *Buffer) CurrentTime() sim.VTimeInSec {
	return sim.VTimeInSec(b.Time[len(b.Time)-1])
}

func (b *Buffer) invoke(pos *sim.HookPos, item, detail interface{}) {
	if b.NumHooks() == 0 {
		return
	}

	b.InvokeHook(sim.HookCtx{
		Domain: b,
		Pos:    pos,
		Item:   item,
		Detail: detail,
	})
}
