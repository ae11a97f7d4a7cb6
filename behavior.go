package xsm

import "time"

// Behavior is the set of lifecycle hooks a state can override.
// Every hook receives the state it runs for, which is how behavior code
// reaches the entity, requests transitions, plays animations and starts timers.
type Behavior[E any] interface {
	OnEnter(s *State[E], args Args)
	AfterEnter(s *State[E], args Args)
	OnUpdate(s *State[E], delta time.Duration)
	AfterUpdate(s *State[E], delta time.Duration)
	BeforeExit(s *State[E], args Args)
	OnExit(s *State[E], args Args)
	OnTimeout(s *State[E], name string)
}

// BaseBehavior provides no-op hooks. Embed it and override what you need.
type BaseBehavior[E any] struct{}

func (BaseBehavior[E]) OnEnter(*State[E], Args)              {}
func (BaseBehavior[E]) AfterEnter(*State[E], Args)           {}
func (BaseBehavior[E]) OnUpdate(*State[E], time.Duration)    {}
func (BaseBehavior[E]) AfterUpdate(*State[E], time.Duration) {}
func (BaseBehavior[E]) BeforeExit(*State[E], Args)           {}
func (BaseBehavior[E]) OnExit(*State[E], Args)               {}
func (BaseBehavior[E]) OnTimeout(*State[E], string)          {}

// HookFunc is a lifecycle hook taking a payload
type HookFunc[E any] func(s *State[E], args Args)

// UpdateFunc is a per-frame hook
type UpdateFunc[E any] func(s *State[E], delta time.Duration)

// TimeoutFunc is called when a timer owned by the state fires
type TimeoutFunc[E any] func(s *State[E], name string)

// Hooks is a Behavior assembled from optional functions. Nil fields are no-ops.
type Hooks[E any] struct {
	OnEnterFunc     HookFunc[E]
	AfterEnterFunc  HookFunc[E]
	OnUpdateFunc    UpdateFunc[E]
	AfterUpdateFunc UpdateFunc[E]
	BeforeExitFunc  HookFunc[E]
	OnExitFunc      HookFunc[E]
	OnTimeoutFunc   TimeoutFunc[E]
}

func (h Hooks[E]) OnEnter(s *State[E], args Args) {
	if h.OnEnterFunc != nil {
		h.OnEnterFunc(s, args)
	}
}

func (h Hooks[E]) AfterEnter(s *State[E], args Args) {
	if h.AfterEnterFunc != nil {
		h.AfterEnterFunc(s, args)
	}
}

func (h Hooks[E]) OnUpdate(s *State[E], delta time.Duration) {
	if h.OnUpdateFunc != nil {
		h.OnUpdateFunc(s, delta)
	}
}

func (h Hooks[E]) AfterUpdate(s *State[E], delta time.Duration) {
	if h.AfterUpdateFunc != nil {
		h.AfterUpdateFunc(s, delta)
	}
}

func (h Hooks[E]) BeforeExit(s *State[E], args Args) {
	if h.BeforeExitFunc != nil {
		h.BeforeExitFunc(s, args)
	}
}

func (h Hooks[E]) OnExit(s *State[E], args Args) {
	if h.OnExitFunc != nil {
		h.OnExitFunc(s, args)
	}
}

func (h Hooks[E]) OnTimeout(s *State[E], name string) {
	if h.OnTimeoutFunc != nil {
		h.OnTimeoutFunc(s, name)
	}
}
