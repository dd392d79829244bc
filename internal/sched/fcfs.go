package sched

// scheduleFCFS runs each task to completion in arrival order.
func (s *Scheduler) scheduleFCFS() {
	for {
		t, ok := s.ready.PopFront()
		if !ok {
			return
		}
		s.dispatch(t, t.Remaining)
	}
}
