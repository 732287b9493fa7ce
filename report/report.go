// Package report samples filled time series and renders them as text tables,
// CSV files, charts, or database rows.
package report

import (
	"math"
	"strconv"
)

const (
	// SampleStride is the number of steps between two reported rows.
	SampleStride = 200

	// Precision is the number of digits after the decimal point.
	Precision = 8
)

// TimeSeries is a sequence of (time, voltage, current) samples.
type TimeSeries interface {
	StepCount() int
	At(i int) (time, voltage, current float64)
}

// A Row is one reported sample.
type Row struct {
	Step    int
	Time    float64
	Voltage float64
	Current float64
}

// A Table is a titled list of rows. Label is shown to humans; Name is used
// for file and table names.
type Table struct {
	Label string
	Name  string
	Rows  []Row
}

// Sample picks the rows at steps 0, stride, 2*stride, ... that exist in the
// series.
func Sample(series TimeSeries, stride int) []Row {
	if stride < 1 {
		panic("stride must be positive")
	}

	n := series.StepCount()
	rows := make([]Row, 0, (n+stride-1)/stride)

	for i := 0; i < n; i += stride {
		t, v, c := series.At(i)
		rows = append(rows, Row{Step: i, Time: t, Voltage: v, Current: c})
	}

	return rows
}

// NewTable samples a series with the default stride.
func NewTable(label, name string, series TimeSeries) Table {
	return Table{
		Label: label,
		Name:  name,
		Rows:  Sample(series, SampleStride),
	}
}

// FormatValue formats a value in fixed-point notation with Precision digits.
// Non-finite values are written as inf, -inf, and nan.
func FormatValue(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	return strconv.FormatFloat(v, 'f', Precision, 64)
}

func (r Row) fields() []string {
	return []string{
		FormatValue(r.Time),
		FormatValue(r.Voltage),
		FormatValue(r.Current),
	}
}
