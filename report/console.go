package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ConsoleSink prints tables in a human readable form.
type ConsoleSink struct {
	w io.Writer
}

// NewConsoleSink creates a ConsoleSink that prints to w.
func NewConsoleSink(w io.Writer) *ConsoleSink {
	return &ConsoleSink{w: w}
}

// Write prints the label, the header, and all rows of the table.
func (s *ConsoleSink) Write(t Table) error {
	bw := bufio.NewWriter(s.w)

	fmt.Fprintf(bw, "%s Results:\n", t.Label)
	fmt.Fprintln(bw, "Time (s), Voltage (V), Current (A)")

	for _, r := range t.Rows {
		fmt.Fprintln(bw, strings.Join(r.fields(), ", "))
	}

	return bw.Flush()
}
