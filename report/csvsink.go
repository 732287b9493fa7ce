package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var csvHeader = []string{"Time (s)", "Voltage (V)", "Current (A)"}

// CSVSink writes every table into <dir>/<name>.csv.
type CSVSink struct {
	dir     string
	notices io.Writer
}

// NewCSVSink creates a CSVSink. A notice is written to notices after every
// saved file.
func NewCSVSink(dir string, notices io.Writer) *CSVSink {
	return &CSVSink{
		dir:     dir,
		notices: notices,
	}
}

// Path returns the file a table with the given name is written to.
func (s *CSVSink) Path(name string) string {
	return filepath.Join(s.dir, name+".csv")
}

// Write creates or truncates the file of the table and fills it.
func (s *CSVSink) Write(t Table) error {
	path := s.Path(t.Name)

	file, err := os.Create(path)
	if err != nil {
		return &OpenError{Path: path, Err: err}
	}

	err = writeCSV(file, t)
	closeErr := file.Close()
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if closeErr != nil {
		return fmt.Errorf("closing %s: %w", path, closeErr)
	}

	fmt.Fprintf(s.notices, "Results saved to %s\n", path)

	return nil
}

func writeCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)

	err := cw.Write(csvHeader)
	if err != nil {
		return err
	}

	for _, r := range t.Rows {
		err = cw.Write(r.fields())
		if err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}
