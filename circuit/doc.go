// Package circuit simulates a single capacitor driven either by an ideal
// current source or by an ideal voltage source through a series resistor.
//
// A [Buffer] holds the time, voltage, and current sequences of one run. It is
// allocated once with a fixed number of steps and filled in a single forward
// pass by exactly one of the recurrences:
//
//   - [SimulateConstantCurrent] integrates dV/dt = I/C.
//   - [SimulateConstantVoltage] integrates dI/dt = -I/(RC) and derives the
//     capacitor voltage from Kirchhoff's voltage law.
//
// Both recurrences use explicit forward Euler steps of the buffer's fixed
// timestep. Parameters are not validated unless the caller asks for it with
// [Params.Validate]; a zero capacitance or resistance turns into Inf or NaN
// values in the buffer.
package circuit
