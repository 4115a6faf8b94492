package sim

// Timer is a frame-scheduled callback owned by a session. Callbacks run on
// the session goroutine during Step, before the marker advances.
type Timer struct {
	due     int
	every   int
	fn      func(s *Session)
	stopped bool
}

// Stop cancels the timer. Stopping twice is harmless.
func (t *Timer) Stop() { t.stopped = true }

func (t *Timer) Stopped() bool { return t.stopped }

// After schedules fn once, n frames from now. n < 1 fires on the next frame.
func (s *Session) After(n int, fn func(s *Session)) *Timer {
	return s.schedule(n, 0, fn)
}

// Every schedules fn on every n-th frame from now until stopped or torn down.
func (s *Session) Every(n int, fn func(s *Session)) *Timer {
	if n < 1 {
		n = 1
	}
	return s.schedule(n, n, fn)
}

func (s *Session) schedule(n, every int, fn func(s *Session)) *Timer {
	if n < 1 {
		n = 1
	}
	t := &Timer{due: s.frame + n, every: every, fn: fn}
	if !s.alive || fn == nil {
		t.stopped = true
		return t
	}
	s.timers = append(s.timers, t)
	return t
}

func (s *Session) fireTimers() {
	if len(s.timers) == 0 {
		return
	}
	due := make([]*Timer, 0, len(s.timers))
	keep := s.timers[:0]
	for _, t := range s.timers {
		if t.stopped {
			continue
		}
		if t.due <= s.frame {
			due = append(due, t)
		}
		if t.every > 0 || t.due > s.frame {
			keep = append(keep, t)
		}
	}
	s.timers = keep

	for _, t := range due {
		// A callback may tear the session down or stop a sibling.
		if !s.alive || t.stopped {
			continue
		}
		if t.every > 0 {
			t.due = s.frame + t.every
		} else {
			t.stopped = true
		}
		t.fn(s)
	}
}
