package sim

// VTimeInSec defines the time in the simulated space in the unit of second.
type VTimeInSec float64
