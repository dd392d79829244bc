// internal/sched/schedulerEvent.go

package sched

// StatusKind represents the type of scheduler event
type StatusKind int

const (
	StatusEnqueue StatusKind = iota
	StatusDispatch
	StatusPreempt
	StatusFinish
)

// StatusEvent is emitted on every enqueue, dispatch, preemption and completion.
type StatusEvent struct {
	Tick      int64 // virtual time at which the event happened
	Kind      StatusKind
	TaskID    TaskID
	Name      string
	Priority  int
	Slice     int64 // length of the slice for dispatch, preempt and finish events
	Remaining int64 // burst still owed after the event
}

func (sk StatusKind) String() string {
	switch sk {
	case StatusEnqueue:
		return "Enqueued"
	case StatusDispatch:
		return "Dispatch"
	case StatusPreempt:
		return "Preempt"
	case StatusFinish:
		return "Finish"
	default:
		return "Unknown"
	}
}
