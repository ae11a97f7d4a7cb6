package xsm

import (
	"sync"
	"time"
)

// TestObserver is a recording observer for tests. Every notification is kept
// in its own list and in Sequence, in arrival order.
type TestObserver struct {
	mutex          sync.RWMutex
	Sequence       []string
	Entered        []string
	Exited         []string
	Updated        []string
	Changed        []ChangeEvent
	SubEntered     []SubStateEvent
	SubExited      []SubStateEvent
	SubChanged     []SubStateEvent
	Disabled       []string
	Enabled        []string
	PendingAdded   []string
	PendingApplied []string
	ActiveChanges  []map[string]Node
	Errors         []error
}

// ChangeEvent records a changed notification
type ChangeEvent struct {
	From string
	To   string
}

// SubStateEvent records a sub-state notification on Parent
type SubStateEvent struct {
	Parent string
	From   string
	Child  string
}

// NewTestObserver creates a new test observer
func NewTestObserver() *TestObserver {
	return &TestObserver{}
}

func (o *TestObserver) record(entry string) {
	o.Sequence = append(o.Sequence, entry)
}

// Observer interface implementations
func (o *TestObserver) OnStateEntered(state Node) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Entered = append(o.Entered, state.Key())
	o.record("entered:" + state.Key())
}

func (o *TestObserver) OnStateChanged(from Node, to string) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Changed = append(o.Changed, ChangeEvent{From: from.Key(), To: to})
	o.record("changed:" + from.Key() + "->" + to)
}

// ExtendedObserver interface implementations
func (o *TestObserver) OnStateExited(state Node) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Exited = append(o.Exited, state.Key())
	o.record("exited:" + state.Key())
}

func (o *TestObserver) OnStateUpdated(state Node) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Updated = append(o.Updated, state.Key())
	o.record("updated:" + state.Key())
}

func (o *TestObserver) OnSubStateEntered(parent Node, child Node) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.SubEntered = append(o.SubEntered, SubStateEvent{Parent: parent.Key(), Child: child.Key()})
}

func (o *TestObserver) OnSubStateExited(parent Node, child Node) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.SubExited = append(o.SubExited, SubStateEvent{Parent: parent.Key(), Child: child.Key()})
}

func (o *TestObserver) OnSubStateChanged(parent Node, from Node, to Node) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.SubChanged = append(o.SubChanged, SubStateEvent{Parent: parent.Key(), From: from.Key(), Child: to.Key()})
}

func (o *TestObserver) OnDisabled(state Node) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Disabled = append(o.Disabled, state.Key())
}

func (o *TestObserver) OnEnabled(state Node) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Enabled = append(o.Enabled, state.Key())
}

func (o *TestObserver) OnPendingAdded(target string) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.PendingAdded = append(o.PendingAdded, target)
	o.record("pending:" + target)
}

func (o *TestObserver) OnPendingApplied(state Node) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	key := ""
	if state != nil {
		key = state.Key()
	}
	o.PendingApplied = append(o.PendingApplied, key)
	o.record("applied:" + key)
}

func (o *TestObserver) OnActiveStatesChanged(active map[string]Node) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.ActiveChanges = append(o.ActiveChanges, active)
}

func (o *TestObserver) OnError(err error) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Errors = append(o.Errors, err)
}

// Reset clears every recorded notification
func (o *TestObserver) Reset() {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Sequence = nil
	o.Entered = nil
	o.Exited = nil
	o.Updated = nil
	o.Changed = nil
	o.SubEntered = nil
	o.SubExited = nil
	o.SubChanged = nil
	o.Disabled = nil
	o.Enabled = nil
	o.PendingAdded = nil
	o.PendingApplied = nil
	o.ActiveChanges = nil
	o.Errors = nil
}

// SequenceOf returns the recorded sequence entries starting with prefix
func (o *TestObserver) SequenceOf(prefix string) []string {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	var out []string
	for _, entry := range o.Sequence {
		if len(entry) >= len(prefix) && entry[:len(prefix)] == prefix {
			out = append(out, entry)
		}
	}
	return out
}

// TestEntity is the entity used by the fixture trees
type TestEntity struct {
	Name  string
	Speed float64
}

// HookRecorder is a Behavior appending "<hook>:<state key>" for every call
// into a shared log, so tests can assert cross-state ordering.
type HookRecorder[E any] struct {
	Log *[]string
	// Args collects the payloads seen by each hook, keyed "<hook>:<state key>"
	Args map[string]Args
}

// NewHookRecorder creates a recorder writing to log
func NewHookRecorder[E any](log *[]string) *HookRecorder[E] {
	return &HookRecorder[E]{Log: log, Args: make(map[string]Args)}
}

func (r *HookRecorder[E]) add(hook string, s *State[E], args Args) {
	entry := hook + ":" + s.Key()
	*r.Log = append(*r.Log, entry)
	if !args.IsEmpty() {
		r.Args[entry] = args
	}
}

func (r *HookRecorder[E]) OnEnter(s *State[E], args Args)    { r.add("enter", s, args) }
func (r *HookRecorder[E]) AfterEnter(s *State[E], args Args) { r.add("afterEnter", s, args) }
func (r *HookRecorder[E]) OnUpdate(s *State[E], _ time.Duration) {
	r.add("update", s, NoArgs)
}
func (r *HookRecorder[E]) AfterUpdate(s *State[E], _ time.Duration) {
	r.add("afterUpdate", s, NoArgs)
}
func (r *HookRecorder[E]) BeforeExit(s *State[E], args Args) { r.add("beforeExit", s, args) }
func (r *HookRecorder[E]) OnExit(s *State[E], args Args)     { r.add("exit", s, args) }
func (r *HookRecorder[E]) OnTimeout(s *State[E], name string) {
	*r.Log = append(*r.Log, "timeout:"+s.Key()+":"+name)
}

// CreateSimpleTree builds Root -> {A -> {A1, A2}, B}. A1 is the default leaf.
func CreateSimpleTree(b Behavior[TestEntity]) *Builder[TestEntity] {
	return NewBuilder[TestEntity]("Root", b).
		State("A", b).
		State("A/A1", b).
		State("A/A2", b).
		State("B", b)
}

// CreateRegionTree builds Root -> {Exclusive -> {E1, E2}, Parallel(regions) -> {P1 -> {P1a, P1b}, P2}}
// with the root itself in region mode so both branches are active.
func CreateRegionTree(b Behavior[TestEntity]) *Builder[TestEntity] {
	return NewBuilder[TestEntity]("Root", b, WithRegions()).
		State("Exclusive", b).
		State("Exclusive/E1", b).
		State("Exclusive/E2", b).
		State("Parallel", b, WithRegions()).
		State("Parallel/P1", b).
		State("Parallel/P1/P1a", b).
		State("Parallel/P1/P1b", b).
		State("Parallel/P2", b)
}

// CreateDuplicateTree builds Root -> {BranchA -> {Idle, Run}, BranchB -> {Idle, Jump}, BranchC -> {Other}}
func CreateDuplicateTree(b Behavior[TestEntity]) *Builder[TestEntity] {
	return NewBuilder[TestEntity]("Root", b).
		State("BranchA", b).
		State("BranchA/Idle", b).
		State("BranchA/Run", b).
		State("BranchB", b).
		State("BranchB/Idle", b).
		State("BranchB/Jump", b).
		State("BranchC", b).
		State("BranchC/Other", b)
}
