package xsm

import "time"

// Scheduler is the timer service states use for timeouts. Fire callbacks are
// expected on the thread running the frame loop.
type Scheduler interface {
	// Schedule arms a one-shot timer calling fire after d
	Schedule(name string, d time.Duration, fire func()) Timer
}

// Timer is a handle on a scheduled timer
type Timer interface {
	// Stop cancels the timer and reports whether it was still pending
	Stop() bool
}

// AddTimer starts a one-shot timer owned by the state, replacing any timer
// with the same name. When it fires the timer is dropped and OnTimeout runs.
// Owned timers are cancelled when the state exits. Returns nil when the
// machine has no scheduler.
func (s *State[E]) AddTimer(name string, d time.Duration) Timer {
	s.RemoveTimer(name)
	if s.machine == nil || s.machine.scheduler == nil {
		return nil
	}

	var t Timer
	t = s.machine.scheduler.Schedule(name, d, func() {
		s.onTimerTimeout(name, t)
	})
	s.timers[name] = t
	return t
}

// RemoveTimer cancels the named timer if the state owns one
func (s *State[E]) RemoveTimer(name string) {
	if t, ok := s.timers[name]; ok {
		t.Stop()
		delete(s.timers, name)
	}
}

// HasTimer reports whether the named timer is pending
func (s *State[E]) HasTimer(name string) bool {
	_, ok := s.timers[name]
	return ok
}

func (s *State[E]) cancelTimers() {
	for name, t := range s.timers {
		t.Stop()
		delete(s.timers, name)
	}
}

func (s *State[E]) onTimerTimeout(name string, t Timer) {
	// a replaced or cancelled timer may still be delivered by the service
	if current, ok := s.timers[name]; !ok || current != t {
		return
	}
	delete(s.timers, name)
	s.behavior.OnTimeout(s, name)
}
