package xsm

import "fmt"

// Node is the read-only view of a state handed to observers.
type Node interface {
	// Name is the node name, unique among its siblings
	Name() string
	// Key is the name the node is registered under in the state map
	Key() string
	// Path is the slash separated chain of names from the root
	Path() string
	Status() Status
	IsDisabled() bool
	HasRegions() bool
}

// Observer represents an entity that observes the state tree
type Observer interface {
	// Required methods

	// OnStateEntered is called after a state is entered
	OnStateEntered(state Node)

	// OnStateChanged is called on the requesting state after a transition it requested completed
	OnStateChanged(from Node, to string)
}

// ExtendedObserver provides additional optional observation methods
type ExtendedObserver interface {
	Observer

	// OnStateExited is called after a state is exited
	OnStateExited(state Node)

	// OnStateUpdated is called after an active state ran its update hook
	OnStateUpdated(state Node)

	// OnSubStateEntered is called on the parent of an entered state
	OnSubStateEntered(parent Node, child Node)

	// OnSubStateExited is called on the parent of an exited state
	OnSubStateExited(parent Node, child Node)

	// OnSubStateChanged is called on the parent of a transition target
	OnSubStateChanged(parent Node, from Node, to Node)

	// OnDisabled is called when a state gets disabled
	OnDisabled(state Node)

	// OnEnabled is called when a state gets enabled
	OnEnabled(state Node)

	// OnPendingAdded is called when a transition request is queued for the next frame
	OnPendingAdded(target string)

	// OnPendingApplied is called for every drained request; state is nil when it was dropped
	OnPendingApplied(state Node)

	// OnActiveStatesChanged is called with a copy of the active state registry after it changed
	OnActiveStatesChanged(active map[string]Node)

	// OnError is called when an observer panicked or a state was moved to a
	// status its current one cannot lead to
	OnError(err error)
}

// BaseObserver provides a default implementation with no-op methods
type BaseObserver struct{}

// OnStateEntered implements the required Observer method
func (o *BaseObserver) OnStateEntered(state Node) {}

// OnStateChanged implements the required Observer method
func (o *BaseObserver) OnStateChanged(from Node, to string) {}

// OnStateExited implements the optional ExtendedObserver method
func (o *BaseObserver) OnStateExited(state Node) {}

// OnStateUpdated implements the optional ExtendedObserver method
func (o *BaseObserver) OnStateUpdated(state Node) {}

// OnSubStateEntered implements the optional ExtendedObserver method
func (o *BaseObserver) OnSubStateEntered(parent Node, child Node) {}

// OnSubStateExited implements the optional ExtendedObserver method
func (o *BaseObserver) OnSubStateExited(parent Node, child Node) {}

// OnSubStateChanged implements the optional ExtendedObserver method
func (o *BaseObserver) OnSubStateChanged(parent Node, from Node, to Node) {}

// OnDisabled implements the optional ExtendedObserver method
func (o *BaseObserver) OnDisabled(state Node) {}

// OnEnabled implements the optional ExtendedObserver method
func (o *BaseObserver) OnEnabled(state Node) {}

// OnPendingAdded implements the optional ExtendedObserver method
func (o *BaseObserver) OnPendingAdded(target string) {}

// OnPendingApplied implements the optional ExtendedObserver method
func (o *BaseObserver) OnPendingApplied(state Node) {}

// OnActiveStatesChanged implements the optional ExtendedObserver method
func (o *BaseObserver) OnActiveStatesChanged(active map[string]Node) {}

// OnError implements the optional ExtendedObserver method
func (o *BaseObserver) OnError(err error) {}

// ObserverManager manages a collection of observers
type ObserverManager struct {
	observers []Observer
}

// NewObserverManager creates a new observer manager
func NewObserverManager() *ObserverManager {
	return &ObserverManager{
		observers: make([]Observer, 0),
	}
}

// AddObserver adds an observer to the manager
func (om *ObserverManager) AddObserver(observer Observer) {
	om.observers = append(om.observers, observer)
}

// RemoveObserver removes an observer from the manager
func (om *ObserverManager) RemoveObserver(observer Observer) {
	for i, obs := range om.observers {
		if obs == observer {
			om.observers = append(om.observers[:i], om.observers[i+1:]...)
			break
		}
	}
}

// Len returns the number of registered observers
func (om *ObserverManager) Len() int {
	return len(om.observers)
}

// NotifyStateEntered notifies all observers of state entry
func (om *ObserverManager) NotifyStateEntered(state Node) {
	om.each("OnStateEntered", func(o Observer) { o.OnStateEntered(state) })
}

// NotifyStateChanged notifies all observers of a completed transition
func (om *ObserverManager) NotifyStateChanged(from Node, to string) {
	om.each("OnStateChanged", func(o Observer) { o.OnStateChanged(from, to) })
}

// NotifyStateExited notifies all observers of state exit
func (om *ObserverManager) NotifyStateExited(state Node) {
	om.eachExtended("OnStateExited", func(o ExtendedObserver) { o.OnStateExited(state) })
}

// NotifyStateUpdated notifies all observers of a state update
func (om *ObserverManager) NotifyStateUpdated(state Node) {
	om.eachExtended("OnStateUpdated", func(o ExtendedObserver) { o.OnStateUpdated(state) })
}

// NotifySubStateEntered notifies all observers that a child of parent was entered
func (om *ObserverManager) NotifySubStateEntered(parent Node, child Node) {
	om.eachExtended("OnSubStateEntered", func(o ExtendedObserver) { o.OnSubStateEntered(parent, child) })
}

// NotifySubStateExited notifies all observers that a child of parent was exited
func (om *ObserverManager) NotifySubStateExited(parent Node, child Node) {
	om.eachExtended("OnSubStateExited", func(o ExtendedObserver) { o.OnSubStateExited(parent, child) })
}

// NotifySubStateChanged notifies all observers that a child of parent became a transition target
func (om *ObserverManager) NotifySubStateChanged(parent Node, from Node, to Node) {
	om.eachExtended("OnSubStateChanged", func(o ExtendedObserver) { o.OnSubStateChanged(parent, from, to) })
}

// NotifyDisabled notifies all observers that a state was disabled
func (om *ObserverManager) NotifyDisabled(state Node) {
	om.eachExtended("OnDisabled", func(o ExtendedObserver) { o.OnDisabled(state) })
}

// NotifyEnabled notifies all observers that a state was enabled
func (om *ObserverManager) NotifyEnabled(state Node) {
	om.eachExtended("OnEnabled", func(o ExtendedObserver) { o.OnEnabled(state) })
}

// NotifyPendingAdded notifies all observers of a queued transition request
func (om *ObserverManager) NotifyPendingAdded(target string) {
	om.eachExtended("OnPendingAdded", func(o ExtendedObserver) { o.OnPendingAdded(target) })
}

// NotifyPendingApplied notifies all observers of a drained transition request
func (om *ObserverManager) NotifyPendingApplied(state Node) {
	om.eachExtended("OnPendingApplied", func(o ExtendedObserver) { o.OnPendingApplied(state) })
}

// NotifyActiveStatesChanged notifies all observers of a registry change
func (om *ObserverManager) NotifyActiveStatesChanged(active map[string]Node) {
	om.eachExtended("OnActiveStatesChanged", func(o ExtendedObserver) { o.OnActiveStatesChanged(active) })
}

// NotifyError notifies all observers of an engine error
func (om *ObserverManager) NotifyError(err error) {
	om.eachExtended("OnError", func(o ExtendedObserver) { o.OnError(err) })
}

func (om *ObserverManager) each(method string, fn func(Observer)) {
	observers := make([]Observer, len(om.observers))
	copy(observers, om.observers)

	for _, observer := range observers {
		om.call(observer, method, func() { fn(observer) })
	}
}

func (om *ObserverManager) eachExtended(method string, fn func(ExtendedObserver)) {
	observers := make([]Observer, len(om.observers))
	copy(observers, om.observers)

	for _, observer := range observers {
		if extObs, ok := observer.(ExtendedObserver); ok {
			om.call(observer, method, func() { fn(extObs) })
		}
	}
}

// call runs fn and turns a panic into an OnError notification for the same observer
func (om *ObserverManager) call(observer Observer, method string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			if extObs, ok := observer.(ExtendedObserver); ok {
				func() {
					defer func() { recover() }()
					extObs.OnError(fmt.Errorf("observer panic in %s: %v", method, r))
				}()
			}
		}
	}()
	fn()
}
