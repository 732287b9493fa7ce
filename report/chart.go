package report

import (
	"fmt"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

type chartQuantity struct {
	suffix string
	label  string
	value  func(r Row) float64
}

var chartQuantities = []chartQuantity{
	{"voltage", "Voltage (V)", func(r Row) float64 { return r.Voltage }},
	{"current", "Current (A)", func(r Row) float64 { return r.Current }},
}

// ChartSink draws the voltage and the current of a table over time into
// <dir>/<name>_voltage.png and <dir>/<name>_current.png.
type ChartSink struct {
	dir           string
	width, height vg.Length
}

// NewChartSink creates a ChartSink that writes into dir.
func NewChartSink(dir string) *ChartSink {
	return &ChartSink{
		dir:    dir,
		width:  8 * vg.Inch,
		height: 4 * vg.Inch,
	}
}

// Paths returns the files a table with the given name is drawn into.
func (s *ChartSink) Paths(name string) []string {
	paths := make([]string, 0, len(chartQuantities))
	for _, q := range chartQuantities {
		paths = append(paths, s.path(name, q))
	}

	return paths
}

func (s *ChartSink) path(name string, q chartQuantity) string {
	return filepath.Join(s.dir, name+"_"+q.suffix+".png")
}

// Write draws one chart per quantity.
func (s *ChartSink) Write(t Table) error {
	for _, q := range chartQuantities {
		err := s.draw(t, q)
		if err != nil {
			return err
		}
	}

	return nil
}

func (s *ChartSink) draw(t Table, q chartQuantity) error {
	p := plot.New()
	p.Title.Text = t.Label
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = q.label

	xys := make(plotter.XYs, len(t.Rows))
	for i, r := range t.Rows {
		xys[i].X = r.Time
		xys[i].Y = q.value(r)
	}

	line, err := plotter.NewLine(xys)
	if err != nil {
		return fmt.Errorf("charting %s of %s: %w", q.suffix, t.Name, err)
	}

	p.Add(plotter.NewGrid(), line)

	path := s.path(t.Name, q)
	err = p.Save(s.width, s.height, path)
	if err != nil {
		return &OpenError{Path: path, Err: err}
	}

	return nil
}
