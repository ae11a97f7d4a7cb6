package xsm

// apply runs one transition requested by requester. It is only called while
// the machine is inside its update pass and no other transition is running.
func (m *Machine[E]) apply(requester *State[E], target string, args TransitionArgs) *State[E] {
	if requester == nil {
		requester = m.root
	}
	if requester.done {
		return nil
	}
	if target == "" || target == requester.name {
		return nil
	}

	next := m.resolve(target, requester)
	if next == nil || next.disabled || next.status != StatusInactive {
		return nil
	}

	pivot := next.commonRoot()
	lineage := next.lineage()
	if m.strict && !pivot.enterable(lineage) {
		m.trace(requester, "refused state", target)
		return nil
	}

	m.trace(requester, "changing state", target)

	m.transitioning = true
	defer func() { m.transitioning = false }()

	pivot.markExiting()
	pivot.exitChildren(args.BeforeExit, args.OnExit)

	pivot.markEntering(lineage)
	pivot.enterChildren(args.OnEnter, args.AfterEnter)
	pivot.clearEntering()

	next.last = requester

	// one transition per branch per frame
	pivot.setDone(true)

	m.observers.NotifyStateChanged(requester, target)
	if !requester.IsRoot() && next.parent != nil {
		m.observers.NotifySubStateChanged(next.parent, requester, next)
	}

	m.trace(requester, "changed state", target)
	return next
}

// commonRoot walks up from the target to the first active state, or the root.
// Nothing above it changes.
func (s *State[E]) commonRoot() *State[E] {
	n := s
	for n.status != StatusActive && n.parent != nil {
		n = n.parent
	}
	return n
}

// markExiting flags the active chain below s. An exclusive state has at most
// one non-inactive child; a region state has all of them.
func (s *State[E]) markExiting() {
	for _, c := range s.children {
		if c.status == StatusInactive {
			continue
		}
		c.setStatus(StatusExiting)
		c.markExiting()
	}
}

// exitChildren exits every marked descendant, deepest first
func (s *State[E]) exitChildren(beforeExit, onExit Args) {
	for _, c := range s.children {
		if c.status != StatusExiting {
			continue
		}
		c.behavior.BeforeExit(c, beforeExit)
		c.exitChildren(beforeExit, onExit)
		c.exit(onExit)
	}
}

func (s *State[E]) exit(args Args) {
	s.cancelTimers()
	s.behavior.OnExit(s, args)
	s.setStatus(StatusInactive)
	m := s.machine
	m.removeActive(s)
	m.observers.NotifyStateExited(s)
	if s.parent != nil {
		m.observers.NotifySubStateExited(s.parent, s)
	}
}

// markEntering flags the states to enter below s: the target's ancestors
// first, then the first child of every level under the target. A region
// state gets one representative child the same way unless the machine
// enters every region.
func (s *State[E]) markEntering(lineage []*State[E]) {
	for _, c := range s.entrySet(lineage) {
		c.setStatus(StatusEntering)
		c.markEntering(lineage)
	}
}

// entrySet returns the children of s a transition towards lineage enters
func (s *State[E]) entrySet(lineage []*State[E]) []*State[E] {
	if len(s.children) == 0 {
		return nil
	}
	if s.hasRegions && s.machine != nil && s.machine.allRegions {
		return s.children
	}
	if s.onLineage(lineage) && s.depth+1 < len(lineage) {
		return []*State[E]{lineage[s.depth+1]}
	}
	return s.children[:1]
}

// enterable reports whether every state a transition towards lineage would
// enter below s is enabled
func (s *State[E]) enterable(lineage []*State[E]) bool {
	for _, c := range s.entrySet(lineage) {
		if c.disabled || !c.enterable(lineage) {
			return false
		}
	}
	return true
}

// enterChildren enters every marked descendant, parents first. A parent's
// AfterEnter runs once its children finished entering.
func (s *State[E]) enterChildren(onEnter, afterEnter Args) {
	if s.disabled {
		return
	}
	for _, c := range s.children {
		if c.status != StatusEntering {
			continue
		}
		if !c.enter(onEnter) {
			continue
		}
		c.enterChildren(onEnter, afterEnter)
		c.behavior.AfterEnter(c, afterEnter)
	}
}

// enter activates s. A disabled state refuses and reports false.
func (s *State[E]) enter(args Args) bool {
	if s.disabled {
		return false
	}
	s.setStatus(StatusActive)
	m := s.machine
	m.addActive(s)
	s.behavior.OnEnter(s, args)
	m.observers.NotifyStateEntered(s)
	if s.parent != nil {
		m.observers.NotifySubStateEntered(s.parent, s)
	}
	return true
}

// clearEntering drops marks left behind when entry stopped at a disabled state.
// Exits already performed are not rolled back.
func (s *State[E]) clearEntering() {
	for _, c := range s.children {
		if c.status == StatusEntering {
			c.setStatus(StatusInactive)
		}
		c.clearEntering()
	}
}
