package circuit

import "fmt"

// Mode selects how the capacitor is driven.
type Mode int

// The supported excitation modes.
const (
	ModeConstantCurrent Mode = iota
	ModeConstantVoltage
)

// Modes lists all modes in reporting order.
var Modes = []Mode{ModeConstantCurrent, ModeConstantVoltage}

// String returns a short name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeConstantCurrent:
		return "ConstantCurrent"
	case ModeConstantVoltage:
		return "ConstantVoltage"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Label is the human readable title of the results of a mode.
func (m Mode) Label() string {
	switch m {
	case ModeConstantCurrent:
		return "Constant Current Source"
	case ModeConstantVoltage:
		return "Constant Voltage Source"
	default:
		panic(fmt.Sprintf("unknown mode %d", int(m)))
	}
}

// ResultName is the base name of the files and tables the results of a mode
// are stored in.
func (m Mode) ResultName() string {
	switch m {
	case ModeConstantCurrent:
		return "constant_current_results"
	case ModeConstantVoltage:
		return "constant_voltage_results"
	default:
		panic(fmt.Sprintf("unknown mode %d", int(m)))
	}
}

// Simulate fills b according to the mode, using the source values of p.
func (m Mode) Simulate(b *Buffer, p Params) {
	switch m {
	case ModeConstantCurrent:
		SimulateConstantCurrent(b, p.SourceCurrent)
	case ModeConstantVoltage:
		SimulateConstantVoltage(b, p.Resistance, p.SourceVoltage)
	default:
		panic(fmt.Sprintf("unknown mode %d", int(m)))
	}
}
