package tracing

import (
	"sync"

	"github.com/sarchlab/rcsim/datarecording"
)

// TraceTableName is the table the DBTracer writes completed tasks into.
const TraceTableName = "trace"

type taskTableEntry struct {
	ID        string
	ParentID  string
	Kind      string
	What      string
	Location  string
	StartTime float64
	EndTime   float64
}

// DBTracer is a tracer that stores completed tasks into a data recorder.
type DBTracer struct {
	mu      sync.Mutex
	backend datarecording.DataRecorder
	filter  TaskFilter

	tracingTasks map[string]Task
}

// NewDBTracer creates a DBTracer and the trace table in the backend.
func NewDBTracer(backend datarecording.DataRecorder) *DBTracer {
	t := &DBTracer{
		backend:      backend,
		filter:       func(Task) bool { return true },
		tracingTasks: make(map[string]Task),
	}

	backend.CreateTable(TraceTableName, taskTableEntry{})

	return t
}

// WithFilter only keeps the tasks that the filter accepts.
func (t *DBTracer) WithFilter(filter TaskFilter) *DBTracer {
	t.filter = filter
	return t
}

// StartTask marks the start of a task.
func (t *DBTracer) StartTask(task Task) {
	t.startingTaskMustBeValid(task)

	if !t.filter(task) {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.tracingTasks[task.ID] = task
}

func (t *DBTracer) startingTaskMustBeValid(task Task) {
	if task.ID == "" {
		panic("task ID must be set")
	}

	if task.Kind == "" {
		panic("task kind must be set")
	}

	if task.What == "" {
		panic("task what must be set")
	}

	if task.Location == "" {
		panic("task location must be set")
	}
}

// EndTask marks the end of a task and writes the task to the backend.
func (t *DBTracer) EndTask(task Task) {
	t.mu.Lock()

	originalTask, ok := t.tracingTasks[task.ID]
	if !ok {
		t.mu.Unlock()
		return
	}

	delete(t.tracingTasks, task.ID)
	t.mu.Unlock()

	originalTask.EndTime = task.EndTime

	t.backend.InsertData(TraceTableName, taskTableEntry{
		ID:        originalTask.ID,
		ParentID:  originalTask.ParentID,
		Kind:      originalTask.Kind,
		What:      originalTask.What,
		Location:  originalTask.Location,
		StartTime: float64(originalTask.StartTime),
		EndTime:   float64(originalTask.EndTime),
	})
}

// InflightTasks returns the number of tasks that started but did not end.
func (t *DBTracer) InflightTasks() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.tracingTasks)
}
