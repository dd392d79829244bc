package sched

// scheduleRoundRobin drains q, giving the task at the head at most one
// quantum and requeueing it at the tail while it has burst left.
//
// With collapse set, a task left alone in q gets its whole remaining burst
// in one slice since there is nothing left to share the processor with.
func (s *Scheduler) scheduleRoundRobin(q *TaskQueue, collapse bool) {
	for {
		t, ok := q.PopFront()
		if !ok {
			return
		}

		slice := min(t.Remaining, s.quantum)
		if collapse && q.Empty() {
			slice = t.Remaining
		}
		s.dispatch(t, slice)

		if !t.Done() {
			q.PushBack(t)
		}
	}
}
