package sched

import (
	"fmt"
	"io"
)

// Stats accumulates per-task timings as tasks finish.
type Stats struct {
	TotalWait       int64
	TotalTurnaround int64
	TotalResponse   int64
	Completed       int64
}

// Averages holds the per-task means of a finished batch.
type Averages struct {
	Wait       float64
	Turnaround float64
	Response   float64
}

// record adds a finished task to the totals.
func (s *Stats) record(t *Task) {
	s.TotalWait += t.Wait()
	s.TotalTurnaround += t.Turnaround()
	s.TotalResponse += t.Response()
	s.Completed++
}

// Averages divides the totals by the number of completed tasks.
func (s Stats) Averages() (Averages, error) {
	if s.Completed == 0 {
		return Averages{}, ErrEmptyBatch
	}
	n := float64(s.Completed)
	return Averages{
		Wait:       float64(s.TotalWait) / n,
		Turnaround: float64(s.TotalTurnaround) / n,
		Response:   float64(s.TotalResponse) / n,
	}, nil
}

// Report writes the three averages to w.
func (s Stats) Report(w io.Writer) error {
	avg, err := s.Averages()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "\nAverage waiting time = %.2f\nAverage turnaround time = %.2f\nAverage response time = %.2f\n",
		avg.Wait, avg.Turnaround, avg.Response)
	return err
}
