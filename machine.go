package xsm

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/anggasct/xsm/pkg/log"
)

// Machine drives one state tree: it owns the state map, the active state
// registry, the pending transition queue and the active-state history.
// Machines are independent of each other and are not safe for concurrent use;
// every call is expected from the single thread running the frame loop.
type Machine[E any] struct {
	id        uuid.UUID
	root      *State[E]
	target    *E
	animator  Animator
	scheduler Scheduler

	states     map[string]*State[E]
	duplicates map[string]int
	active     map[string]*State[E]
	pending    []Request[E]
	history    *History[E]

	observers *ObserverManager
	logger    log.Logger
	syncMode  SyncMode
	debug     bool
	strict    bool

	allRegions    bool
	initialized   bool
	inUpdate      bool
	transitioning bool
	frame         uint64
}

// NewMachine creates a machine for the tree under root acting on target.
// The machine does nothing until Init is called.
func NewMachine[E any](root *State[E], target *E, opts ...Option) *Machine[E] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	m := &Machine[E]{
		id:         uuid.New(),
		root:       root,
		target:     target,
		animator:   cfg.animator,
		scheduler:  cfg.scheduler,
		states:     make(map[string]*State[E]),
		duplicates: make(map[string]int),
		active:     make(map[string]*State[E]),
		pending:    make([]Request[E], 0),
		history:    NewHistory[E](cfg.historySize),
		observers:  NewObserverManager(),
		logger:     cfg.logger,
		syncMode:   cfg.syncMode,
		debug:      cfg.debug,
		strict:     cfg.strict,
		allRegions: cfg.allRegions,
	}
	for _, o := range cfg.observers {
		m.observers.AddObserver(o)
	}
	if root != nil {
		root.machine = m
	}
	return m
}

// Init builds the state map and enters the default branch: the first child
// of every exclusive state and every child of a region state.
func (m *Machine[E]) Init() error {
	if m.initialized {
		return NewMachineError(ErrCodeAlreadyInitialized, "Init", "machine is already initialized")
	}
	if err := validateTree(m.root); err != nil {
		return err
	}
	if err := m.buildStateMap(); err != nil {
		return err
	}

	root := m.root
	if root.target == nil {
		root.target = m.target
	}
	if root.animator == nil {
		root.animator = m.animator
	}

	m.initialized = true
	m.logger.Debug("init state tree",
		log.String("machine", m.id.String()),
		log.String("root", root.name),
		log.Int("states", len(m.states)),
	)

	root.setStatus(StatusActive)
	root.behavior.OnEnter(root, NoArgs)
	m.initChildren(root, true)
	root.behavior.AfterEnter(root, NoArgs)
	return nil
}

// initChildren resets the subtree under s, hands down the inherited target
// and animator, and enters the default branch when firstBranch is set
func (m *Machine[E]) initChildren(s *State[E], firstBranch bool) {
	for i, c := range s.children {
		c.status = StatusInactive
		if c.target == nil {
			c.target = s.target
		}
		if c.animator == nil {
			c.animator = s.animator
		}
		if firstBranch && (s.hasRegions || i == 0) && c.enter(NoArgs) {
			c.last = m.root
			m.initChildren(c, true)
			c.behavior.AfterEnter(c, NoArgs)
			continue
		}
		m.initChildren(c, false)
	}
}

// Update runs one frame: clears the per-branch transition locks, records the
// active states into history, applies queued transitions in order and then
// updates the active subtree.
func (m *Machine[E]) Update(delta time.Duration) {
	if !m.initialized || m.root.disabled || m.root.status != StatusActive {
		return
	}
	m.frame++

	m.root.setDone(false)
	m.history.Push(m.snapshot())

	for len(m.pending) > 0 {
		req := m.pending[0]
		m.pending[0] = Request[E]{}
		m.pending = m.pending[1:]

		requester := m.requester(req)
		m.inUpdate = true
		next := m.apply(requester, req.Target, req.Args)
		m.inUpdate = false

		if next != nil {
			m.observers.NotifyPendingApplied(next)
		} else {
			m.trace(requester, "dropped pending state", req.Target, log.String("request", req.ID.String()))
			m.observers.NotifyPendingApplied(nil)
		}
	}

	m.inUpdate = true
	m.root.updateActive(delta)
	m.inUpdate = false
}

// Process drives the machine from the host's idle tick
func (m *Machine[E]) Process(delta time.Duration) {
	if m.syncMode == SyncIdle {
		m.Update(delta)
	}
}

// PhysicsProcess drives the machine from the host's physics tick
func (m *Machine[E]) PhysicsProcess(delta time.Duration) {
	if m.syncMode == SyncPhysics {
		m.Update(delta)
	}
}

// updateActive updates s, then every active child whose branch did not
// transition this frame, then runs AfterUpdate once the subtree is done
func (s *State[E]) updateActive(delta time.Duration) {
	if s.disabled {
		return
	}
	if s.status == StatusActive {
		s.behavior.OnUpdate(s, delta)
		s.machine.observers.NotifyStateUpdated(s)
	}
	for _, c := range s.children {
		if c.status == StatusActive && !c.done {
			c.updateActive(delta)
		}
	}
	s.behavior.AfterUpdate(s, delta)
}

// Stop exits the whole active tree, deepest states first, cancels timers and
// clears the queue, registry and history. The machine can be initialized again.
func (m *Machine[E]) Stop() error {
	if !m.initialized {
		return NewMachineNotInitializedError("Stop")
	}

	m.transitioning = true
	root := m.root
	root.setStatus(StatusExiting)
	root.markExiting()
	root.behavior.BeforeExit(root, NoArgs)
	root.exitChildren(NoArgs, NoArgs)
	root.cancelTimers()
	root.behavior.OnExit(root, NoArgs)
	root.setStatus(StatusInactive)
	root.ResetChildrenStatus()
	root.setDone(false)
	m.transitioning = false

	m.pending = m.pending[:0]
	m.history.Clear()
	m.active = make(map[string]*State[E])
	m.initialized = false

	m.logger.Debug("stopped state tree", log.String("machine", m.id.String()))
	return nil
}

// ChangeState requests a transition on behalf of the root
func (m *Machine[E]) ChangeState(target string) *State[E] {
	return m.root.ChangeState(target)
}

// ChangeStateWith requests a transition on behalf of the root with payloads
func (m *Machine[E]) ChangeStateWith(target string, args TransitionArgs) *State[E] {
	return m.root.ChangeStateWith(target, args)
}

// enqueue queues a request for the next frame
func (m *Machine[E]) enqueue(requester *State[E], target string, args TransitionArgs) {
	req := NewRequest(requester, target, args, m.frame)
	m.pending = append(m.pending, req)
	m.trace(requester, "pending state", target, log.String("request", req.ID.String()))
	m.observers.NotifyPendingAdded(target)
}

func (m *Machine[E]) requester(req Request[E]) *State[E] {
	if req.Requester == nil || req.Requester.machine != m {
		return m.root
	}
	return req.Requester
}

func (m *Machine[E]) addActive(s *State[E]) {
	m.active[s.Key()] = s
	m.notifyActiveChanged()
}

func (m *Machine[E]) removeActive(s *State[E]) {
	delete(m.active, s.Key())
	m.notifyActiveChanged()
}

func (m *Machine[E]) notifyActiveChanged() {
	if m.observers.Len() == 0 {
		return
	}
	view := make(map[string]Node, len(m.active))
	for k, v := range m.active {
		view[k] = v
	}
	m.observers.NotifyActiveStatesChanged(view)
}

func (m *Machine[E]) snapshot() Snapshot[E] {
	snap := make(Snapshot[E], len(m.active))
	for k, v := range m.active {
		snap[k] = v
	}
	return snap
}

func (m *Machine[E]) trace(requester *State[E], msg string, target string, extra ...log.Field) {
	if !m.debug && (requester == nil || !requester.debug) {
		return
	}
	from := ""
	if requester != nil {
		from = requester.Path()
	}
	fields := []log.Field{
		log.String("machine", m.id.String()),
		log.Uint64("frame", m.frame),
		log.String("from", from),
		log.String("to", target),
	}
	m.logger.Debug(msg, append(fields, extra...)...)
}

// ID returns the machine identifier used in logs
func (m *Machine[E]) ID() uuid.UUID {
	return m.id
}

// Root returns the root state
func (m *Machine[E]) Root() *State[E] {
	return m.root
}

// Target returns the controlled entity
func (m *Machine[E]) Target() *E {
	return m.target
}

// IsInitialized reports whether Init succeeded and Stop was not called since
func (m *Machine[E]) IsInitialized() bool {
	return m.initialized
}

// InUpdate reports whether the machine is inside its update pass
func (m *Machine[E]) InUpdate() bool {
	return m.inUpdate
}

// Frame returns the number of frames run since creation
func (m *Machine[E]) Frame() uint64 {
	return m.frame
}

// State resolves a name from the root
func (m *Machine[E]) State(name string) *State[E] {
	return m.resolve(name, m.root)
}

// IsActive reports whether name is a key of the active state registry.
// Duplicated names must be given in their "Parent/Name" form.
func (m *Machine[E]) IsActive(name string) bool {
	_, ok := m.active[name]
	return ok
}

// ActiveStates returns a copy of the active state registry. The root is not included.
func (m *Machine[E]) ActiveStates() map[string]*State[E] {
	out := make(map[string]*State[E], len(m.active))
	for k, v := range m.active {
		out[k] = v
	}
	return out
}

// ActiveStateNames returns the keys of the active state registry, sorted
func (m *Machine[E]) ActiveStateNames() []string {
	names := make([]string, 0, len(m.active))
	for name := range m.active {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PreviousActiveStates returns the active states recorded historyID frames ago
func (m *Machine[E]) PreviousActiveStates(historyID int) Snapshot[E] {
	return m.history.At(historyID)
}

// WasActive reports whether name was active in the given history frame
func (m *Machine[E]) WasActive(name string, historyID int) bool {
	return m.history.At(historyID).Has(name)
}

// History returns the history ring
func (m *Machine[E]) History() *History[E] {
	return m.history
}

// SetHistorySize changes the history capacity
func (m *Machine[E]) SetHistorySize(n int) {
	m.history.Resize(n)
}

// SetDebug toggles transition tracing
func (m *Machine[E]) SetDebug(debug bool) {
	m.debug = debug
}

// SyncMode returns the configured sync mode
func (m *Machine[E]) SyncMode() SyncMode {
	return m.syncMode
}

// Pending returns a copy of the queued transition requests
func (m *Machine[E]) Pending() []Request[E] {
	out := make([]Request[E], len(m.pending))
	copy(out, m.pending)
	return out
}

// AddObserver adds an observer
func (m *Machine[E]) AddObserver(o Observer) {
	m.observers.AddObserver(o)
}

// RemoveObserver removes an observer
func (m *Machine[E]) RemoveObserver(o Observer) {
	m.observers.RemoveObserver(o)
}
