package xsm

import (
	"strings"
)

// State is a node of the state tree. A State is created detached, wired into
// a tree with AddChild and handed to NewMachine through the root.
//
// Parent, machine, target and last-state references are navigation handles;
// ownership of the nodes stays with whoever built the tree.
type State[E any] struct {
	name       string
	key        string
	status     Status
	hasRegions bool
	disabled   bool
	debug      bool
	depth      int

	parent   *State[E]
	children []*State[E]

	machine  *Machine[E]
	target   *E
	animator Animator
	last     *State[E]
	done     bool

	behavior Behavior[E]
	timers   map[string]Timer
}

// StateOption configures a State at construction time
type StateOption func(*stateConfig)

type stateConfig struct {
	hasRegions bool
	disabled   bool
	debug      bool
	animator   Animator
}

// WithRegions lets every child of the state be active at the same time
func WithRegions() StateOption {
	return func(c *stateConfig) { c.hasRegions = true }
}

// Disabled creates the state disabled
func Disabled() StateOption {
	return func(c *stateConfig) { c.disabled = true }
}

// Debug enables transition tracing for transitions requested by this state
func Debug() StateOption {
	return func(c *stateConfig) { c.debug = true }
}

// WithStateAnimator gives the state its own animator instead of the inherited one
func WithStateAnimator(a Animator) StateOption {
	return func(c *stateConfig) { c.animator = a }
}

// NewState creates a detached state. A nil behavior gets no-op hooks.
func NewState[E any](name string, behavior Behavior[E], opts ...StateOption) *State[E] {
	cfg := stateConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if behavior == nil {
		behavior = BaseBehavior[E]{}
	}
	return &State[E]{
		name:       name,
		hasRegions: cfg.hasRegions,
		disabled:   cfg.disabled,
		debug:      cfg.debug,
		animator:   cfg.animator,
		behavior:   behavior,
		children:   make([]*State[E], 0),
		timers:     make(map[string]Timer),
	}
}

// AddChild appends children in order and returns the receiver for chaining.
// A child attached elsewhere is moved. The tree must be complete before Machine.Init.
func (s *State[E]) AddChild(children ...*State[E]) *State[E] {
	for _, c := range children {
		if c == nil || c == s {
			continue
		}
		if c.parent != nil {
			c.parent.removeChild(c)
		}
		c.parent = s
		s.children = append(s.children, c)
	}
	return s
}

func (s *State[E]) removeChild(c *State[E]) {
	for i, child := range s.children {
		if child == c {
			s.children = append(s.children[:i], s.children[i+1:]...)
			return
		}
	}
}

// Name returns the state name
func (s *State[E]) Name() string {
	return s.name
}

// Key returns the name the state is registered under, qualified as
// "Parent/Name" when the bare name is shared by several states
func (s *State[E]) Key() string {
	if s.key == "" {
		return s.name
	}
	return s.key
}

// Path returns the names from the root down to this state joined by "/"
func (s *State[E]) Path() string {
	names := make([]string, 0, s.depth+1)
	for n := s; n != nil; n = n.parent {
		names = append(names, n.name)
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, "/")
}

// Status returns the lifecycle status
func (s *State[E]) Status() Status {
	return s.status
}

// IsDisabled reports whether the state refuses to be entered
func (s *State[E]) IsDisabled() bool {
	return s.disabled
}

// HasRegions reports whether all children may be active together
func (s *State[E]) HasRegions() bool {
	return s.hasRegions
}

// Parent returns the parent state, nil for the root
func (s *State[E]) Parent() *State[E] {
	return s.parent
}

// Children returns the child states in tree order
func (s *State[E]) Children() []*State[E] {
	out := make([]*State[E], len(s.children))
	copy(out, s.children)
	return out
}

// Machine returns the machine the state belongs to, nil before initialization
func (s *State[E]) Machine() *Machine[E] {
	return s.machine
}

// Behavior returns the lifecycle hooks of the state
func (s *State[E]) Behavior() Behavior[E] {
	return s.behavior
}

// Target returns the controlled entity. A state without its own target uses
// the nearest ancestor's.
func (s *State[E]) Target() *E {
	for n := s; n != nil; n = n.parent {
		if n.target != nil {
			return n.target
		}
	}
	if s.machine != nil {
		return s.machine.target
	}
	return nil
}

// SetTarget overrides the controlled entity for this state
func (s *State[E]) SetTarget(target *E) {
	s.target = target
}

// Animator returns the animator used by the animation helpers
func (s *State[E]) Animator() Animator {
	for n := s; n != nil; n = n.parent {
		if n.animator != nil {
			return n.animator
		}
	}
	if s.machine != nil {
		return s.machine.animator
	}
	return nil
}

// SetAnimator overrides the animator for this state
func (s *State[E]) SetAnimator(a Animator) {
	s.animator = a
}

// LastState returns the state that requested the transition into this state
func (s *State[E]) LastState() *State[E] {
	return s.last
}

// IsRoot reports whether the state is the root of its machine
func (s *State[E]) IsRoot() bool {
	return s.machine != nil && s.machine.root == s
}

// IsAtomic reports whether the state has no children
func (s *State[E]) IsAtomic() bool {
	return len(s.children) == 0
}

// DoneThisFrame reports whether a transition already committed in this
// state's branch during the current frame
func (s *State[E]) DoneThisFrame() bool {
	return s.done
}

// HasParent reports whether ancestor is above this state in the tree
func (s *State[E]) HasParent(ancestor *State[E]) bool {
	if ancestor == nil {
		return false
	}
	for n := s.parent; n != nil; n = n.parent {
		if n == ancestor {
			return true
		}
	}
	return false
}

// ChangeState requests a transition to the named state. See ChangeStateWith.
func (s *State[E]) ChangeState(target string) *State[E] {
	return s.ChangeStateWith(target, TransitionArgs{})
}

// ChangeStateWith requests a transition to the named state, handing each
// payload of args to the matching lifecycle hook.
//
// Inside the machine's update pass the transition is applied right away and
// the entered target is returned. Outside of it, or while another transition
// is being applied, the request is queued for the start of the next frame and
// nil is returned. Impossible requests are dropped and return nil.
//
// A request made from an enter or exit hook never nests inside the transition
// that runs the hook. Every transition runs to completion before another one
// starts, so such a request waits for the next frame even though it was made
// during the update pass.
func (s *State[E]) ChangeStateWith(target string, args TransitionArgs) *State[E] {
	m := s.machine
	if m == nil {
		return nil
	}
	if !m.inUpdate || m.transitioning {
		m.enqueue(s, target, args)
		return nil
	}
	return m.apply(s, target, args)
}

// ChangeStateIf transitions to target only while the guard state is active
func (s *State[E]) ChangeStateIf(target string, guard string) *State[E] {
	g := s.State(guard)
	if g == nil || g.status != StatusActive {
		return nil
	}
	return s.ChangeState(target)
}

// State resolves a name the way transitions do, relative to this state
func (s *State[E]) State(name string) *State[E] {
	if s.machine == nil {
		if name == s.name {
			return s
		}
		return nil
	}
	return s.machine.resolve(name, s)
}

// IsActive reports whether the named state, resolved relative to this state, is active
func (s *State[E]) IsActive(name string) bool {
	n := s.State(name)
	return n != nil && n.status == StatusActive
}

// WasActive reports whether the named state was active in the given history frame
func (s *State[E]) WasActive(name string, historyID int) bool {
	if s.machine == nil {
		return false
	}
	return s.machine.WasActive(name, historyID)
}

// ActiveStates returns the machine-wide active state registry
func (s *State[E]) ActiveStates() map[string]*State[E] {
	if s.machine == nil {
		return map[string]*State[E]{}
	}
	return s.machine.ActiveStates()
}

// ActiveSubState returns the active child of an exclusive state, or the
// first active child of a region state
func (s *State[E]) ActiveSubState() *State[E] {
	for _, c := range s.children {
		if c.status == StatusActive {
			return c
		}
	}
	return nil
}

// ActiveSubStates returns the active children of a region state, or the
// single active child of an exclusive one
func (s *State[E]) ActiveSubStates() []*State[E] {
	if s.hasRegions {
		var active []*State[E]
		for _, c := range s.children {
			if c.status == StatusActive {
				active = append(active, c)
			}
		}
		return active
	}
	if c := s.ActiveSubState(); c != nil {
		return []*State[E]{c}
	}
	return nil
}

// SetDisabled disables or enables the state and its whole subtree.
// Disabling does not exit an active state; it stops its updates and blocks new entries.
func (s *State[E]) SetDisabled(disabled bool) {
	s.disabled = disabled
	if s.machine != nil {
		if disabled {
			s.machine.observers.NotifyDisabled(s)
		} else {
			s.machine.observers.NotifyEnabled(s)
		}
	}
	for _, c := range s.children {
		c.SetDisabled(disabled)
	}
}

// setStatus moves s to next. A change the status model forbids is still
// applied and reported to the observers.
func (s *State[E]) setStatus(next Status) {
	if s.status != next && !s.status.CanTransitionTo(next) && s.machine != nil {
		s.machine.observers.NotifyError(NewInvalidStatusError(s.Path(), s.status, next))
	}
	s.status = next
}

// ResetChildrenStatus forces every descendant back to Inactive without running hooks
func (s *State[E]) ResetChildrenStatus() {
	for _, c := range s.children {
		c.status = StatusInactive
		c.ResetChildrenStatus()
	}
}

func (s *State[E]) setDone(done bool) {
	s.done = done
	for _, c := range s.children {
		c.setDone(done)
	}
}

// lineage returns the chain of states from the root down to s
func (s *State[E]) lineage() []*State[E] {
	chain := make([]*State[E], s.depth+1)
	for n := s; n != nil; n = n.parent {
		if n.depth < len(chain) {
			chain[n.depth] = n
		}
	}
	return chain
}

func (s *State[E]) onLineage(lineage []*State[E]) bool {
	return s.depth < len(lineage) && lineage[s.depth] == s
}
