// Package metrics provides Prometheus instrumentation for simulation runs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// tick-denominated histograms; simulated time has no unit
var tickBuckets = prometheus.ExponentialBuckets(1, 2, 10)

// Registry holds all metric instances for the scheduler.
type Registry struct {
	TasksAdded     *prometheus.CounterVec
	TasksCompleted *prometheus.CounterVec
	Dispatches     *prometheus.CounterVec
	Preemptions    *prometheus.CounterVec
	BusyTicks      *prometheus.CounterVec
	SliceLength    *prometheus.HistogramVec
	WaitTime       *prometheus.HistogramVec
	TurnaroundTime *prometheus.HistogramVec
	ResponseTime   *prometheus.HistogramVec
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	counter := func(name, help string) *prometheus.CounterVec {
		return factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "schedsim",
				Subsystem: "scheduler",
				Name:      name,
				Help:      help,
			},
			[]string{"policy"},
		)
	}
	histogram := func(name, help string) *prometheus.HistogramVec {
		return factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "schedsim",
				Subsystem: "scheduler",
				Name:      name,
				Help:      help,
				Buckets:   tickBuckets,
			},
			[]string{"policy"},
		)
	}

	return &Registry{
		TasksAdded:     counter("tasks_added_total", "Total number of tasks enqueued"),
		TasksCompleted: counter("tasks_completed_total", "Total number of tasks run to completion"),
		Dispatches:     counter("dispatches_total", "Total number of slices handed to the processor"),
		Preemptions:    counter("preemptions_total", "Total number of slices that ended with burst left"),
		BusyTicks:      counter("busy_ticks_total", "Total simulated ticks the processor spent running tasks"),
		SliceLength:    histogram("slice_ticks", "Length of dispatched slices"),
		WaitTime:       histogram("wait_ticks", "Per-task waiting time"),
		TurnaroundTime: histogram("turnaround_ticks", "Per-task turnaround time"),
		ResponseTime:   histogram("response_ticks", "Per-task response time"),
	}
}
