package sched

import "go.uber.org/zap"

// schedulePriorityRR drains the priority levels from MaxPriority down.
// A task alone on its level runs to completion; tasks sharing a level are
// round-robined among themselves until the level is empty. A lower level
// is never looked at while a higher one still holds work.
func (s *Scheduler) schedulePriorityRR() {
	s.levels.Each(func(level int, q *TaskQueue) {
		s.logger.Debug("servicing priority level",
			zap.Int("level", level),
			zap.Int("tasks", q.Len()),
			zap.Int64("tick", s.clock.Count()))

		if q.Len() == 1 {
			t, _ := q.PopFront()
			s.dispatch(t, t.Remaining)
			return
		}
		s.scheduleRoundRobin(q, s.collapse)
	})
}
