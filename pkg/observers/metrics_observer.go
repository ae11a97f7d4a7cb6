package observers

import (
	"sync"
	"time"

	"github.com/anggasct/xsm"
)

// MetricsObserver collects metrics about state machine execution
type MetricsObserver struct {
	xsm.BaseObserver
	stateVisits      map[string]int
	stateUpdates     map[string]int
	stateTimeSpent   map[string]time.Duration
	transitionCounts map[string]int
	pendingApplied   int
	pendingDropped   int
	errorCount       int
	lastStateEntry   map[string]time.Time
	now              func() time.Time
	mutex            sync.RWMutex
}

// NewMetricsObserver creates a new metrics observer
func NewMetricsObserver() *MetricsObserver {
	return NewMetricsObserverWithClock(time.Now)
}

// NewMetricsObserverWithClock creates a metrics observer measuring time in
// state with the given clock
func NewMetricsObserverWithClock(now func() time.Time) *MetricsObserver {
	o := &MetricsObserver{now: now}
	o.reset()
	return o
}

// OnStateEntered records state entry metrics
func (o *MetricsObserver) OnStateEntered(state xsm.Node) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	key := state.Key()
	o.stateVisits[key]++
	o.lastStateEntry[key] = o.now()
}

// OnStateExited records state exit metrics
func (o *MetricsObserver) OnStateExited(state xsm.Node) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	key := state.Key()
	if entryTime, ok := o.lastStateEntry[key]; ok {
		o.stateTimeSpent[key] += o.now().Sub(entryTime)
		delete(o.lastStateEntry, key)
	}
}

// OnStateUpdated counts per-frame updates
func (o *MetricsObserver) OnStateUpdated(state xsm.Node) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.stateUpdates[state.Key()]++
}

// OnStateChanged records transition metrics
func (o *MetricsObserver) OnStateChanged(from xsm.Node, to string) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.transitionCounts[from.Key()+"->"+to]++
}

// OnPendingApplied counts applied and dropped queued requests
func (o *MetricsObserver) OnPendingApplied(state xsm.Node) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if state == nil {
		o.pendingDropped++
		return
	}
	o.pendingApplied++
}

// OnError records error metrics
func (o *MetricsObserver) OnError(err error) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.errorCount++
}

// GetStateVisitCounts returns the number of times each state was entered
func (o *MetricsObserver) GetStateVisitCounts() map[string]int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return copyCounts(o.stateVisits)
}

// GetStateUpdateCounts returns the number of frames each state was updated in
func (o *MetricsObserver) GetStateUpdateCounts() map[string]int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return copyCounts(o.stateUpdates)
}

// GetStateTimeSpent returns the time spent in each state. States still
// active count up to now.
func (o *MetricsObserver) GetStateTimeSpent() map[string]time.Duration {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	result := make(map[string]time.Duration, len(o.stateTimeSpent))
	for state, duration := range o.stateTimeSpent {
		result[state] = duration
	}
	now := o.now()
	for state, entered := range o.lastStateEntry {
		result[state] += now.Sub(entered)
	}
	return result
}

// GetTransitionCounts returns the number of times each "requester->target" transition occurred
func (o *MetricsObserver) GetTransitionCounts() map[string]int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return copyCounts(o.transitionCounts)
}

// GetPendingCounts returns how many queued requests were applied and dropped
func (o *MetricsObserver) GetPendingCounts() (applied, dropped int) {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return o.pendingApplied, o.pendingDropped
}

// GetErrorCount returns the number of errors
func (o *MetricsObserver) GetErrorCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	return o.errorCount
}

// Reset resets all metrics
func (o *MetricsObserver) Reset() {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.reset()
}

func (o *MetricsObserver) reset() {
	o.stateVisits = make(map[string]int)
	o.stateUpdates = make(map[string]int)
	o.stateTimeSpent = make(map[string]time.Duration)
	o.transitionCounts = make(map[string]int)
	o.pendingApplied = 0
	o.pendingDropped = 0
	o.errorCount = 0
	o.lastStateEntry = make(map[string]time.Time)
}

func copyCounts(in map[string]int) map[string]int {
	result := make(map[string]int, len(in))
	for k, v := range in {
		result[k] = v
	}
	return result
}
