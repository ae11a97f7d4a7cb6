package timer

import (
	"sync"
	"time"

	"github.com/anggasct/xsm"
)

// Realtime arms wall clock timers. Expired callbacks are queued and run by
// Drain, which the frame loop calls once per frame, so state hooks never run
// on a timer goroutine.
type Realtime struct {
	mu    sync.Mutex
	fired []func()
}

var _ xsm.Scheduler = (*Realtime)(nil)

// NewRealtime creates a wall clock scheduler
func NewRealtime() *Realtime {
	return &Realtime{}
}

// realtimeHandle wraps a time.Timer
type realtimeHandle struct {
	timer *time.Timer
}

// Stop cancels the timer and reports whether it was still pending
func (h *realtimeHandle) Stop() bool {
	return h.timer.Stop()
}

// Schedule arms a one-shot timer whose callback is queued for Drain after d
func (r *Realtime) Schedule(name string, d time.Duration, fire func()) xsm.Timer {
	h := &realtimeHandle{}
	h.timer = time.AfterFunc(d, func() {
		r.mu.Lock()
		r.fired = append(r.fired, fire)
		r.mu.Unlock()
	})
	return h
}

// Drain runs the callbacks of every expired timer in expiry order and
// returns how many ran
func (r *Realtime) Drain() int {
	r.mu.Lock()
	fired := r.fired
	r.fired = nil
	r.mu.Unlock()

	for _, fire := range fired {
		if fire != nil {
			fire()
		}
	}
	return len(fired)
}
