package timer

import (
	"container/heap"
	"time"

	"github.com/anggasct/xsm"
)

// Handle is a timer armed on a Scheduler
type Handle struct {
	Name     string
	Deadline time.Duration

	seq     uint64
	index   int
	fire    func()
	owner   *Scheduler
	stopped bool
}

// Stop cancels the timer and reports whether it was still pending
func (h *Handle) Stop() bool {
	if h.stopped {
		return false
	}
	h.stopped = true
	if h.index >= 0 && h.owner != nil {
		heap.Remove(&h.owner.queue, h.index)
	}
	return true
}

// Scheduler is a virtual clock. Timers fire from Advance, in deadline order,
// ties in the order they were scheduled.
type Scheduler struct {
	now   time.Duration
	seq   uint64
	queue timerQueue
}

var _ xsm.Scheduler = (*Scheduler)(nil)

// New creates a scheduler at time zero
func New() *Scheduler {
	return &Scheduler{}
}

// Schedule arms a one-shot timer firing d after the current virtual time
func (s *Scheduler) Schedule(name string, d time.Duration, fire func()) xsm.Timer {
	if d < 0 {
		d = 0
	}
	s.seq++
	h := &Handle{
		Name:     name,
		Deadline: s.now + d,
		seq:      s.seq,
		fire:     fire,
		owner:    s,
	}
	heap.Push(&s.queue, h)
	return h
}

// Advance moves the clock forward by d and fires every timer that expired,
// returning how many fired. Timers armed by a callback fire in the same call
// when their deadline is already reached.
func (s *Scheduler) Advance(d time.Duration) int {
	if d > 0 {
		s.now += d
	}
	fired := 0
	for len(s.queue) > 0 && s.queue[0].Deadline <= s.now {
		h := heap.Pop(&s.queue).(*Handle)
		h.stopped = true
		if h.fire != nil {
			h.fire()
		}
		fired++
	}
	return fired
}

// Now returns the virtual time
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Pending returns the number of armed timers
func (s *Scheduler) Pending() int {
	return len(s.queue)
}

// Next returns the deadline of the earliest armed timer
func (s *Scheduler) Next() (time.Duration, bool) {
	if len(s.queue) == 0 {
		return 0, false
	}
	return s.queue[0].Deadline, true
}

type timerQueue []*Handle

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].Deadline == q[j].Deadline {
		return q[i].seq < q[j].seq
	}
	return q[i].Deadline < q[j].Deadline
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	h := x.(*Handle)
	h.index = len(*q)
	*q = append(*q, h)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	h := old[n-1]
	old[n-1] = nil
	h.index = -1
	*q = old[:n-1]
	return h
}
