package sched

import "fmt"

const (
	MinPriority = 0
	MaxPriority = 10

	// all tasks of a batch arrive together
	arrivalTime int64 = 0
)

// TaskID uniquely identifies a task within one scheduler.
type TaskID uint64

// Task represents one schedulable task unit.
type Task struct {
	ID         TaskID
	Name       string
	Priority   int   // 0 - 10, where 10 is serviced first by the priority policy
	Burst      int64 // CPU time the task needs in total, never modified
	Remaining  int64 // CPU time still owed to the task
	FirstStart int64 // tick of the first dispatch, valid only when Started
	Started    bool
	Completion int64 // tick at which the last unit ran, valid only when Done
}

// NewTask validates the scheduling metadata and returns a task with its
// whole burst remaining.
func NewTask(id TaskID, name string, priority int, burst int64) (*Task, error) {
	if priority < MinPriority || priority > MaxPriority {
		return nil, fmt.Errorf("task %q: %w: %d not in [%d, %d]", name, ErrInvalidPriority, priority, MinPriority, MaxPriority)
	}
	if burst <= 0 {
		return nil, fmt.Errorf("task %q: %w: got %d", name, ErrNonPositiveBurst, burst)
	}

	return &Task{
		ID:        id,
		Name:      name,
		Priority:  priority,
		Burst:     burst,
		Remaining: burst,
	}, nil
}

// Done reports whether the task has received its whole burst.
func (t *Task) Done() bool { return t.Remaining == 0 }

// Turnaround is the time from arrival to completion.
func (t *Task) Turnaround() int64 { return t.Completion - arrivalTime }

// Wait is the time the task spent ready but not running.
func (t *Task) Wait() int64 { return t.Turnaround() - t.Burst }

// Response is the time from arrival to the first dispatch.
func (t *Task) Response() int64 { return t.FirstStart - arrivalTime }

// String is used by the trace and log output.
func (t *Task) String() string {
	return fmt.Sprintf("[%s] [%d] [%d]", t.Name, t.Priority, t.Remaining)
}
