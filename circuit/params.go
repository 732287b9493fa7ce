package circuit

import (
	"fmt"
	"math"
)

// Params are the fixed inputs of a run.
type Params struct {
	StepCount     int
	DT            float64 // s
	Capacitance   float64 // F
	Resistance    float64 // Ohm, constant voltage mode only
	SourceCurrent float64 // A, constant current mode only
	SourceVoltage float64 // V, constant voltage mode only
}

// DefaultParams returns the parameters of the reference circuit: a 100 pF
// capacitor, a 1 kOhm resistor, a 10 mA current source, and a 10 V voltage
// source, simulated for 50000 steps of 0.1 ns.
func DefaultParams() Params {
	return Params{
		StepCount:     50000,
		DT:            1e-10,
		Capacitance:   100e-12,
		Resistance:    1000.0,
		SourceCurrent: 1e-2,
		SourceVoltage: 10.0,
	}
}

// TimeConstant returns R*C.
func (p Params) TimeConstant() float64 {
	return p.Resistance * p.Capacitance
}

// Validate reports parameters that make the recurrences degenerate. The
// simulation functions never call it; it is opt-in.
func (p Params) Validate() error {
	if p.StepCount < 1 {
		return fmt.Errorf("%w: step count %d", ErrParameterBounds, p.StepCount)
	}

	checks := []struct {
		name     string
		value    float64
		positive bool
	}{
		{"timestep", p.DT, true},
		{"capacitance", p.Capacitance, true},
		{"resistance", p.Resistance, true},
		{"source current", p.SourceCurrent, false},
		{"source voltage", p.SourceVoltage, false},
	}

	for _, c := range checks {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) {
			return fmt.Errorf("%w: %s is %v", ErrParameterBounds, c.name, c.value)
		}

		if c.positive && c.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v",
				ErrParameterBounds, c.name, c.value)
		}
	}

	return nil
}
