package report

import (
	"sync"

	"github.com/sarchlab/rcsim/datarecording"
)

// RecorderSink stores the rows of every table in a table of a data recorder
// that has the same name.
type RecorderSink struct {
	lock     sync.Mutex
	recorder datarecording.DataRecorder
	created  map[string]bool
}

// NewRecorderSink creates a RecorderSink on top of a data recorder.
func NewRecorderSink(recorder datarecording.DataRecorder) *RecorderSink {
	return &RecorderSink{
		recorder: recorder,
		created:  make(map[string]bool),
	}
}

// Write inserts all rows of the table. The rows are buffered by the recorder
// until it is flushed.
func (s *RecorderSink) Write(t Table) error {
	s.lock.Lock()
	if !s.created[t.Name] {
		s.recorder.CreateTable(t.Name, Row{})
		s.created[t.Name] = true
	}
	s.lock.Unlock()

	for _, r := range t.Rows {
		s.recorder.InsertData(t.Name, r)
	}

	return nil
}
