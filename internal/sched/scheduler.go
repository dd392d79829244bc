// internal/sched/scheduler.go

package sched

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"schedsim/internal/metrics"
)

// Slice is one dispatch of a task on the processor.
type Slice struct {
	TaskID TaskID
	Name   string
	Start  int64
	Length int64
}

// Result describes a finished batch.
type Result struct {
	Stats    Stats
	Slices   []Slice // every dispatch, in execution order
	Order    []*Task // tasks in completion order
	Makespan int64   // tick at which the last task finished
}

// Scheduler replays a batch of tasks under one policy on a single virtual
// processor. Each instance owns its queues, clock and totals; build a new
// one for every simulation run.
type Scheduler struct {
	// Scheduler-related
	policy   Policy
	quantum  int64           // maximum slice under the round-robin policies
	collapse bool            // sole survivor of a shared priority level runs to completion
	nextID   TaskID          // last assigned task ID
	ready    *TaskQueue      // ready queue for fcfs and rr
	levels   *PriorityLevels // per-priority ready queues for priority_rr
	clock    *TickClock
	stats    Stats
	slices   []Slice
	order    []*Task
	proc     Processor
	out      io.Writer // statistics report

	// logging-related
	runID     string
	logger    *zap.Logger
	metrics   *metrics.Registry
	csvFile   *os.File
	csvWriter *csv.Writer
}

// Option customizes a Scheduler.
type Option func(*Scheduler)

// WithProcessor replaces the processor that receives each slice.
func WithProcessor(p Processor) Option {
	return func(s *Scheduler) { s.proc = p }
}

// WithOutput redirects the statistics report, stdout by default.
func WithOutput(w io.Writer) Option {
	return func(s *Scheduler) { s.out = w }
}

// WithLogger sets the event logger, a no-op logger by default.
func WithLogger(l *zap.Logger) Option {
	return func(s *Scheduler) { s.logger = l }
}

// WithMetrics records run metrics into m instead of a private registry.
func WithMetrics(m *metrics.Registry) Option {
	return func(s *Scheduler) { s.metrics = m }
}

// New creates a new Scheduler instance with the given configuration.
func New(cfg Config, opts ...Option) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	policy, _ := ParsePolicy(cfg.Policy)

	s := &Scheduler{
		policy:   policy,
		quantum:  cfg.Quantum,
		collapse: cfg.CollapseLastSlice,
		ready:    NewTaskQueue(),
		levels:   NewPriorityLevels(),
		clock:    NewTickClock(),
		proc:     discardProcessor{},
		out:      os.Stdout,
		runID:    uuid.NewString(),
		logger:   zap.NewNop(),
	}
	if cfg.Trace {
		s.proc = NewTraceProcessor(os.Stdout)
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = metrics.NewRegistry(prometheus.NewRegistry())
	}
	s.logger = s.logger.With(zap.String("run", s.runID), zap.String("policy", string(policy)))
	return s, nil
}

// Policy returns the policy this scheduler was built for.
func (s *Scheduler) Policy() Policy { return s.policy }

// RunID identifies this simulation run in logs and CSV output.
func (s *Scheduler) RunID() string { return s.runID }

// EnableCSVLogging opens the given file path for CSV logging of events.
// Must be called before Schedule().
func (s *Scheduler) EnableCSVLogging(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)

	// write header
	if err := w.Write([]string{"run", "tick", "event", "task_id", "name", "priority", "slice", "remaining"}); err != nil {
		f.Close()
		return err
	}
	s.csvFile = f
	s.csvWriter = w
	return nil
}

// Close flushes and closes the CSV log, if any.
func (s *Scheduler) Close() error {
	if s.csvFile == nil {
		return nil
	}
	s.csvWriter.Flush()
	err := s.csvWriter.Error()
	if cerr := s.csvFile.Close(); err == nil {
		err = cerr
	}
	s.csvFile, s.csvWriter = nil, nil
	return err
}

// Add creates a task with the next sequential ID and enqueues it.
func (s *Scheduler) Add(name string, priority int, burst int64) (*Task, error) {
	t, err := NewTask(s.nextID+1, name, priority, burst)
	if err != nil {
		return nil, err
	}
	s.nextID = t.ID

	if s.policy == PolicyPriorityRR {
		s.levels.Queue(t.Priority).PushBack(t)
	} else {
		s.ready.PushBack(t)
	}
	s.metrics.TasksAdded.WithLabelValues(string(s.policy)).Inc()

	s.emit(StatusEvent{
		Tick:      s.clock.Count(),
		Kind:      StatusEnqueue,
		TaskID:    t.ID,
		Name:      t.Name,
		Priority:  t.Priority,
		Remaining: t.Remaining,
	})
	return t, nil
}

// Pending returns the number of tasks added but not yet scheduled.
func (s *Scheduler) Pending() int {
	return s.ready.Len() + s.levels.Len()
}

// Schedule runs every pending task to completion under the configured
// policy and writes the average waiting, turnaround and response times.
func (s *Scheduler) Schedule() (Result, error) {
	if s.Pending() == 0 {
		s.logger.Warn("schedule called with an empty batch")
		return Result{}, ErrEmptyBatch
	}
	s.logger.Info("scheduling batch", zap.Int("tasks", s.Pending()), zap.Int64("quantum", s.quantum))

	switch s.policy {
	case PolicyFCFS:
		s.scheduleFCFS()
	case PolicyRoundRobin:
		s.scheduleRoundRobin(s.ready, false)
	case PolicyPriorityRR:
		s.schedulePriorityRR()
	}

	res := Result{
		Stats:    s.stats,
		Slices:   s.slices,
		Order:    s.order,
		Makespan: s.clock.Count(),
	}
	// every batch arrives at tick 0
	s.stats, s.slices, s.order = Stats{}, nil, nil
	s.clock = NewTickClock()

	if s.csvWriter != nil {
		s.csvWriter.Flush()
		if err := s.csvWriter.Error(); err != nil {
			return res, fmt.Errorf("write csv log: %w", err)
		}
	}

	s.logger.Info("batch complete",
		zap.Int64("completed", res.Stats.Completed),
		zap.Int64("makespan", res.Makespan),
		zap.Int("slices", len(res.Slices)))
	return res, res.Stats.Report(s.out)
}

// dispatch hands t to the processor for at most slice ticks and does the
// timing bookkeeping. A finished task is recorded in the totals.
func (s *Scheduler) dispatch(t *Task, slice int64) {
	slice = min(slice, t.Remaining)
	start := s.clock.Count()
	if !t.Started {
		t.Started = true
		t.FirstStart = start
	}

	s.emit(StatusEvent{
		Tick:      start,
		Kind:      StatusDispatch,
		TaskID:    t.ID,
		Name:      t.Name,
		Priority:  t.Priority,
		Slice:     slice,
		Remaining: t.Remaining,
	})
	s.proc.Run(t, slice)

	t.Remaining -= slice
	end := s.clock.Advance(slice)
	s.slices = append(s.slices, Slice{TaskID: t.ID, Name: t.Name, Start: start, Length: slice})

	kind := StatusPreempt
	if t.Done() {
		kind = StatusFinish
		t.Completion = end
		s.stats.record(t)
		s.order = append(s.order, t)
	}
	s.emit(StatusEvent{
		Tick:      end,
		Kind:      kind,
		TaskID:    t.ID,
		Name:      t.Name,
		Priority:  t.Priority,
		Slice:     slice,
		Remaining: t.Remaining,
	})
}

// emit delivers ev to the logger, the metrics registry and the CSV log.
func (s *Scheduler) emit(ev StatusEvent) {
	s.logger.Debug(ev.Kind.String(),
		zap.Int64("tick", ev.Tick),
		zap.Uint64("task", uint64(ev.TaskID)),
		zap.String("name", ev.Name),
		zap.Int64("slice", ev.Slice),
		zap.Int64("remaining", ev.Remaining))

	s.observe(ev)

	if s.csvWriter != nil {
		rec := []string{
			s.runID,
			strconv.FormatInt(ev.Tick, 10),
			ev.Kind.String(),
			strconv.FormatUint(uint64(ev.TaskID), 10),
			ev.Name,
			strconv.Itoa(ev.Priority),
			strconv.FormatInt(ev.Slice, 10),
			strconv.FormatInt(ev.Remaining, 10),
		}
		// write errors are sticky and surface on Flush
		_ = s.csvWriter.Write(rec)
	}
}

func (s *Scheduler) observe(ev StatusEvent) {
	policy := string(s.policy)
	switch ev.Kind {
	case StatusDispatch:
		s.metrics.Dispatches.WithLabelValues(policy).Inc()
		s.metrics.SliceLength.WithLabelValues(policy).Observe(float64(ev.Slice))
	case StatusPreempt:
		s.metrics.Preemptions.WithLabelValues(policy).Inc()
		s.metrics.BusyTicks.WithLabelValues(policy).Add(float64(ev.Slice))
	case StatusFinish:
		s.metrics.BusyTicks.WithLabelValues(policy).Add(float64(ev.Slice))
		s.metrics.TasksCompleted.WithLabelValues(policy).Inc()
		t := s.order[len(s.order)-1]
		s.metrics.WaitTime.WithLabelValues(policy).Observe(float64(t.Wait()))
		s.metrics.TurnaroundTime.WithLabelValues(policy).Observe(float64(t.Turnaround()))
		s.metrics.ResponseTime.WithLabelValues(policy).Observe(float64(t.Response()))
	}
}
