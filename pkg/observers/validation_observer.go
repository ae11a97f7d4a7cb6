package observers

import (
	"fmt"
	"sort"
	"sync"

	"github.com/anggasct/xsm"
)

// ValidationObserver validates state machine behavior against expectations
type ValidationObserver struct {
	xsm.BaseObserver
	expectedStates     map[string]bool
	visitedStates      map[string]bool
	allowedTransitions map[string]map[string]bool
	violations         []string
	mutex              sync.RWMutex
}

// NewValidationObserver creates a new validation observer
func NewValidationObserver() *ValidationObserver {
	return &ValidationObserver{
		expectedStates:     make(map[string]bool),
		visitedStates:      make(map[string]bool),
		allowedTransitions: make(map[string]map[string]bool),
		violations:         make([]string, 0),
	}
}

// AddExpectedState adds a state that should be entered at least once
func (o *ValidationObserver) AddExpectedState(stateName string) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.expectedStates[stateName] = true
}

// AddAllowedTransition allows from to request a transition to to. A requester
// without any allowed transition is not checked.
func (o *ValidationObserver) AddAllowedTransition(from, to string) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if _, exists := o.allowedTransitions[from]; !exists {
		o.allowedTransitions[from] = make(map[string]bool)
	}

	o.allowedTransitions[from][to] = true
}

// OnStateEntered marks the state visited and checks that it is no longer transient
func (o *ValidationObserver) OnStateEntered(state xsm.Node) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.visitedStates[state.Key()] = true
	if state.Status() != xsm.StatusActive {
		o.violations = append(o.violations, fmt.Sprintf(
			"state '%s' entered with status %s", state.Key(), state.Status()))
	}
}

// OnStateExited checks that the exited state is inactive
func (o *ValidationObserver) OnStateExited(state xsm.Node) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if state.Status() != xsm.StatusInactive {
		o.violations = append(o.violations, fmt.Sprintf(
			"state '%s' exited with status %s", state.Key(), state.Status()))
	}
}

// OnStateChanged validates transitions
func (o *ValidationObserver) OnStateChanged(from xsm.Node, to string) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	fromName := from.Key()
	if allowed, exists := o.allowedTransitions[fromName]; exists {
		if !allowed[to] {
			o.violations = append(o.violations, fmt.Sprintf(
				"Invalid transition from '%s' to '%s'", fromName, to))
		}
	}
}

// OnError records observer failures as violations
func (o *ValidationObserver) OnError(err error) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.violations = append(o.violations, fmt.Sprintf("Error occurred: %v", err))
}

// GetViolations returns all validation violations
func (o *ValidationObserver) GetViolations() []string {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	result := make([]string, len(o.violations))
	copy(result, o.violations)
	return result
}

// GetUnvisitedStates returns states that were expected but not visited, sorted
func (o *ValidationObserver) GetUnvisitedStates() []string {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	var unvisited []string
	for state := range o.expectedStates {
		if !o.visitedStates[state] {
			unvisited = append(unvisited, state)
		}
	}
	sort.Strings(unvisited)
	return unvisited
}

// HasViolations returns whether any violations occurred
func (o *ValidationObserver) HasViolations() bool {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return len(o.violations) > 0
}

// Reset resets the validation state
func (o *ValidationObserver) Reset() {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.visitedStates = make(map[string]bool)
	o.violations = make([]string, 0)
}
