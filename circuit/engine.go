package circuit

import "github.com/sarchlab/rcsim/sim"

// SimulateConstantCurrent charges the capacitor of b with an ideal current
// source. For every step t >= 1 the voltage grows by current*dt/C and the
// current is the source current. Current[0] keeps its initial value of 0.
func SimulateConstantCurrent(b *Buffer, current float64) {
	b.invoke(HookPosSimulationStart, ModeConstantCurrent,
		sim.VTimeInSec(b.Time[0]))

	dt, c := b.dt, b.capacitance
	for t := 1; t < len(b.Time); t++ {
		b.Voltage[t] = b.Voltage[t-1] + current*dt/c
		b.Current[t] = current

		b.invoke(HookPosStep, t, nil)
	}

	b.invoke(HookPosSimulationEnd, ModeConstantCurrent, b.CurrentTime())
}

// SimulateConstantVoltage charges the capacitor of b from an ideal voltage
// source through a series resistor. The capacitor starts discharged, so the
// initial current is sourceVoltage/resistance. The current decays with the
// time constant resistance*C, and the capacitor voltage is whatever the
// resistor does not drop.
func SimulateConstantVoltage(b *Buffer, resistance, sourceVoltage float64) {
	b.invoke(HookPosSimulationStart, ModeConstantVoltage,
		sim.VTimeInSec(b.Time[0]))

	dt, c := b.dt, b.capacitance
	b.Current[0] = sourceVoltage / resistance
	for t := 1; t < len(b.Time); t++ {
		b.Current[t] = b.Current[t-1] - (b.Current[t-1]/(resistance*c))*dt
		b.Voltage[t] = sourceVoltage - b.Current[t]*resistance

		b.invoke(HookPosStep, t, nil)
	}

	b.invoke(HookPosSimulationEnd, ModeConstantVoltage, b.CurrentTime())
}
