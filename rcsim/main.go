// Command rcsim simulates a capacitor charged by a constant current source and
// by a constant voltage source through a resistor.
package main

import "github.com/sarchlab/rcsim/rcsim/cmd"

func main() {
	cmd.Execute()
}
