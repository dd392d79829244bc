package sched

import (
	"fmt"
	"io"
)

// Processor executes a dispatched slice of a task. It has no say in
// scheduling decisions; the scheduler owns the clock and the bookkeeping.
type Processor interface {
	Run(t *Task, slice int64)
}

// TraceProcessor prints one line per dispatched slice.
type TraceProcessor struct {
	w io.Writer
}

// NewTraceProcessor returns a processor writing its trace to w.
func NewTraceProcessor(w io.Writer) *TraceProcessor {
	return &TraceProcessor{w: w}
}

func (p *TraceProcessor) Run(t *Task, slice int64) {
	fmt.Fprintf(p.w, "Running task = %s for %d units.\n", t, slice)
}

// discardProcessor is used when tracing is disabled.
type discardProcessor struct{}

func (discardProcessor) Run(*Task, int64) {}
