package xsm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition_EndToEndFromLeaf(t *testing.T) {
	observer := NewTestObserver()
	m, behavior, events := newTestMachine(t, CreateSimpleTree, WithObserver(observer))

	var next, second *State[TestEntity]
	behavior.updates["A1"] = func(s *State[TestEntity]) {
		next = s.ChangeState("B")
		second = s.ChangeState("A2")
	}

	require.True(t, m.IsActive("A"))
	require.True(t, m.IsActive("A1"))
	observer.Reset()
	clearEvents(events)

	m.Update(tick)

	require.NotNil(t, next)
	assert.Equal(t, m.State("B"), next)
	assert.Nil(t, second, "second transition in the same branch must be dropped")

	assert.Equal(t, []string{
		"update:Root",
		"update:A",
		"update:A1",
		"beforeExit:A",
		"beforeExit:A1",
		"exit:A1",
		"exit:A",
		"enter:B",
		"afterEnter:B",
		"afterUpdate:A1",
		"afterUpdate:A",
		"afterUpdate:Root",
	}, *events)

	assert.Equal(t, []string{"B"}, m.ActiveStateNames())
	assert.Equal(t, StatusActive, m.State("B").Status())
	assert.Equal(t, StatusInactive, m.State("A").Status())
	assert.Equal(t, StatusInactive, m.State("A1").Status())
	assert.Equal(t, m.State("A1"), m.State("B").LastState())

	assert.Equal(t, []ChangeEvent{{From: "A1", To: "B"}}, observer.Changed)
	assert.Equal(t, []SubStateEvent{{Parent: "Root", From: "A1", Child: "B"}}, observer.SubChanged)
	assert.Equal(t, []string{"A1", "A"}, observer.Exited)
	assert.Equal(t, []string{"B"}, observer.Entered)
	assertNoTransientStatus(t, m.Root())
}

func TestTransition_SelfAndEmptyAreNoOps(t *testing.T) {
	m, behavior, events := newTestMachine(t, CreateSimpleTree)

	var self, empty *State[TestEntity]
	behavior.updates["A1"] = func(s *State[TestEntity]) {
		self = s.ChangeState("A1")
		empty = s.ChangeState("")
	}
	clearEvents(events)

	m.Update(tick)

	assert.Nil(t, self)
	assert.Nil(t, empty)
	assert.Equal(t, StatusActive, m.State("A1").Status())
	assert.Equal(t, []string{"A", "A1"}, m.ActiveStateNames())
	assert.NotContains(t, *events, "exit:A1")
	assert.False(t, m.State("A1").DoneThisFrame())
}

func TestTransition_UnknownActiveOrDisabledTargets(t *testing.T) {
	m, behavior, _ := newTestMachine(t, CreateSimpleTree)
	m.State("B").SetDisabled(true)

	results := map[string]*State[TestEntity]{}
	behavior.updates["A1"] = func(s *State[TestEntity]) {
		for _, target := range []string{"Nope", "A", "B"} {
			results[target] = s.ChangeState(target)
		}
	}

	m.Update(tick)

	assert.Len(t, results, 3)
	for target, next := range results {
		assert.Nil(t, next, "transition to %s should be dropped", target)
	}
	assert.Equal(t, []string{"A", "A1"}, m.ActiveStateNames())
}

func TestTransition_OncePerBranchPerFrame(t *testing.T) {
	m, behavior, _ := newTestMachine(t, CreateSimpleTree)

	var first, second *State[TestEntity]
	behavior.updates["A1"] = func(s *State[TestEntity]) {
		first = s.ChangeState("A2")
		second = s.ChangeState("B")
	}

	m.Update(tick)

	require.NotNil(t, first)
	assert.Nil(t, second)
	assert.Equal(t, []string{"A", "A2"}, m.ActiveStateNames())
	assert.True(t, m.State("A").DoneThisFrame())
	assert.True(t, m.State("A2").DoneThisFrame())
	assert.False(t, m.Root().DoneThisFrame(), "the lock only covers the pivot branch")

	// the lock is cleared at the next frame
	var third *State[TestEntity]
	behavior.updates["A2"] = func(s *State[TestEntity]) {
		third = s.ChangeState("B")
	}
	delete(behavior.updates, "A1")

	m.Update(tick)

	require.NotNil(t, third)
	assert.Equal(t, []string{"B"}, m.ActiveStateNames())
}

func TestTransition_SiblingSwapKeepsParent(t *testing.T) {
	m, behavior, events := newTestMachine(t, CreateSimpleTree)
	behavior.updates["A1"] = func(s *State[TestEntity]) {
		s.ChangeState("A2")
	}
	clearEvents(events)

	m.Update(tick)

	assert.Equal(t, []string{"A", "A2"}, m.ActiveStateNames())
	assert.NotContains(t, *events, "exit:A")
	assert.NotContains(t, *events, "enter:A")
	assert.Contains(t, *events, "exit:A1")
	assert.Contains(t, *events, "enter:A2")
	assert.Equal(t, m.State("A1"), m.State("A2").LastState())
}

func TestTransition_ExclusiveAndRegionParents(t *testing.T) {
	m, _, _ := newTestMachine(t, CreateRegionTree)

	assert.Equal(t, []string{"E1", "Exclusive", "P1", "P1a", "P2", "Parallel"}, m.ActiveStateNames())
	assertExclusive(t, m.Root())

	m.ChangeState("E2")
	m.ChangeState("P1b")
	m.Update(tick)

	// both regions moved in the same frame, each under its own pivot
	assert.Equal(t, []string{"E2", "Exclusive", "P1", "P1b", "P2", "Parallel"}, m.ActiveStateNames())
	assert.Equal(t, []*State[TestEntity]{m.State("P1"), m.State("P2")}, m.State("Parallel").ActiveSubStates())
	assert.Equal(t, []*State[TestEntity]{m.State("E2")}, m.State("Exclusive").ActiveSubStates())
	assertExclusive(t, m.Root())
	assertNoTransientStatus(t, m.Root())
}

func buildCombatTree(b Behavior[TestEntity]) *Builder[TestEntity] {
	return NewBuilder[TestEntity]("Root", b).
		State("Idle", b).
		State("Combat", b, WithRegions()).
		State("Combat/Legs", b).
		State("Combat/Legs/Stand", b).
		State("Combat/Legs/Run", b).
		State("Combat/Arms", b).
		State("Combat/Arms/Aim", b).
		State("Combat/Arms/Shoot", b)
}

func TestTransition_EnterRegionBranchEntersOneRegion(t *testing.T) {
	m, _, _ := newTestMachine(t, buildCombatTree)
	assert.Equal(t, []string{"Idle"}, m.ActiveStateNames())

	m.ChangeState("Combat")
	m.Update(tick)

	// default entry takes the first region only
	assert.Equal(t, []string{"Combat", "Legs", "Stand"}, m.ActiveStateNames())
	assert.Equal(t, []*State[TestEntity]{m.State("Legs")}, m.State("Combat").ActiveSubStates())
	assertNoTransientStatus(t, m.Root())

	m.ChangeState("Idle")
	m.Update(tick)
	assert.Equal(t, []string{"Idle"}, m.ActiveStateNames())

	// an explicit target picks the region on its path
	m.ChangeState("Shoot")
	m.Update(tick)
	assert.Equal(t, []string{"Arms", "Combat", "Shoot"}, m.ActiveStateNames())
	assertNoTransientStatus(t, m.Root())

	// the pivot is Combat, so every active region below it is exited first
	m.ChangeState("Run")
	m.Update(tick)
	assert.Equal(t, []string{"Combat", "Legs", "Run"}, m.ActiveStateNames())

	m.ChangeState("Idle")
	m.Update(tick)
	assert.Equal(t, []string{"Idle"}, m.ActiveStateNames())
	assertNoTransientStatus(t, m.Root())
}

func TestTransition_RegionEntryOptionEntersEveryRegion(t *testing.T) {
	m, _, _ := newTestMachine(t, buildCombatTree, WithRegionEntry(true))

	m.ChangeState("Shoot")
	m.Update(tick)

	// the explicit path is followed in its region, the sibling region gets its default
	assert.Equal(t, []string{"Arms", "Combat", "Legs", "Shoot", "Stand"}, m.ActiveStateNames())
	assertNoTransientStatus(t, m.Root())

	m.ChangeState("Idle")
	m.Update(tick)

	assert.Equal(t, []string{"Idle"}, m.ActiveStateNames())
	assertNoTransientStatus(t, m.Root())
}

func TestTransition_DeepTargetUsesLeafBiasedEntry(t *testing.T) {
	build := func(b Behavior[TestEntity]) *Builder[TestEntity] {
		return NewBuilder[TestEntity]("Root", b).
			State("Ground", b).
			State("Air", b).
			State("Air/Rise", b).
			State("Air/Rise/Fast", b).
			State("Air/Rise/Slow", b).
			State("Air/Fall", b)
	}
	m, _, events := newTestMachine(t, build)
	clearEvents(events)

	m.ChangeState("Air")
	m.Update(tick)

	assert.Equal(t, []string{"Air", "Fast", "Rise"}, m.ActiveStateNames())
	assert.Subset(t, *events, []string{"enter:Air", "enter:Rise", "enter:Fast"})

	clearEvents(events)
	m.ChangeState("Fall")
	m.Update(tick)

	assert.Equal(t, []string{"Air", "Fall"}, m.ActiveStateNames())
	assert.Equal(t, []string{"beforeExit:Rise", "beforeExit:Fast", "exit:Fast", "exit:Rise", "enter:Fall", "afterEnter:Fall"}, (*events)[:6])
}

func TestTransition_EnterOrderAndAfterEnter(t *testing.T) {
	build := func(b Behavior[TestEntity]) *Builder[TestEntity] {
		return NewBuilder[TestEntity]("Root", b).
			State("Ground", b).
			State("Air", b).
			State("Air/Rise", b).
			State("Air/Rise/Fast", b)
	}
	m, _, events := newTestMachine(t, build)
	clearEvents(events)

	m.ChangeState("Air")
	m.Update(tick)

	assert.Equal(t, []string{
		"beforeExit:Ground",
		"exit:Ground",
		"enter:Air",
		"enter:Rise",
		"enter:Fast",
		"afterEnter:Fast",
		"afterEnter:Rise",
		"afterEnter:Air",
	}, (*events)[:8])
}

func TestTransition_ArgsReachTheirHooks(t *testing.T) {
	m, behavior, _ := newTestMachine(t, CreateSimpleTree)

	m.ChangeStateWith("B", TransitionArgs{
		OnEnter:    NewArgs(42),
		AfterEnter: NewArgs("landed"),
		BeforeExit: NewArgs(1.5),
		OnExit:     NewArgs(true),
	})
	m.Update(tick)

	enter, ok := ArgsAs[int](behavior.Args["enter:B"])
	require.True(t, ok)
	assert.Equal(t, 42, enter)

	after, ok := ArgsAs[string](behavior.Args["afterEnter:B"])
	require.True(t, ok)
	assert.Equal(t, "landed", after)

	before, ok := ArgsAs[float64](behavior.Args["beforeExit:A1"])
	require.True(t, ok)
	assert.Equal(t, 1.5, before)

	exit, ok := ArgsAs[bool](behavior.Args["exit:A"])
	require.True(t, ok)
	assert.True(t, exit)

	_, ok = ArgsAs[string](behavior.Args["enter:B"])
	assert.False(t, ok, "payload of another type is not returned")
}

func TestTransition_EnterArgsHelper(t *testing.T) {
	args := EnterArgs(TestEntity{Name: "boost"})

	v, ok := ArgsAs[TestEntity](args.OnEnter)
	assert.True(t, ok)
	assert.Equal(t, "boost", v.Name)
	assert.True(t, args.AfterEnter.IsEmpty())
	assert.True(t, args.BeforeExit.IsEmpty())
	assert.True(t, args.OnExit.IsEmpty())
	assert.True(t, NoArgs.IsEmpty())
}

func twoBranchTree(b Behavior[TestEntity]) *Builder[TestEntity] {
	return NewBuilder[TestEntity]("Root", b).
		State("A", b).
		State("A/A1", b).
		State("B", b).
		State("B/B1", b).
		State("B/B2", b)
}

func TestTransition_DisabledEntryIsNotRolledBack(t *testing.T) {
	m, _, _ := newTestMachine(t, twoBranchTree)
	m.State("B1").SetDisabled(true)

	m.ChangeState("B")
	m.Update(tick)

	// A was exited, entry stopped at the disabled default child
	assert.Equal(t, []string{"B"}, m.ActiveStateNames())
	assert.Equal(t, StatusInactive, m.State("B1").Status())
	assert.Equal(t, StatusInactive, m.State("A").Status())
	assertNoTransientStatus(t, m.Root())
}

func TestTransition_StrictEntryRefusesBeforeExiting(t *testing.T) {
	logger := &captureLogger{}
	m, _, events := newTestMachine(t, twoBranchTree, WithStrictEntry(true), WithDebug(true), WithLogger(logger))
	m.State("B1").SetDisabled(true)
	clearEvents(events)

	m.ChangeState("B")
	m.Update(tick)

	assert.Equal(t, []string{"A", "A1"}, m.ActiveStateNames())
	assert.NotContains(t, *events, "exit:A1")
	assert.Contains(t, logger.messages(), "refused state")
	assertNoTransientStatus(t, m.Root())

	// an explicit enabled path is still allowed
	m.ChangeState("B2")
	m.Update(tick)

	assert.Equal(t, []string{"B", "B2"}, m.ActiveStateNames())
}

func TestTransition_DisabledSubtreeSkipsUpdates(t *testing.T) {
	m, _, events := newTestMachine(t, CreateSimpleTree)
	m.State("A").SetDisabled(true)
	clearEvents(events)

	m.Update(tick)

	assert.Equal(t, []string{"update:Root", "afterUpdate:Root"}, *events)
	assert.True(t, m.IsActive("A"), "disabling does not exit")

	m.State("A").SetDisabled(false)
	clearEvents(events)
	m.Update(tick)

	assert.Contains(t, *events, "update:A1")
}

func TestTransition_ChangeStateIf(t *testing.T) {
	m, _, _ := newTestMachine(t, CreateSimpleTree)
	root := m.Root()

	assert.Nil(t, root.ChangeStateIf("B", "A2"))
	assert.Nil(t, root.ChangeStateIf("B", "Missing"))
	assert.Empty(t, m.Pending())

	root.ChangeStateIf("B", "A1")
	require.Len(t, m.Pending(), 1)

	m.Update(tick)

	assert.True(t, m.IsActive("B"))
}

func TestTransition_DebugTrace(t *testing.T) {
	logger := &captureLogger{}
	m, behavior, _ := newTestMachine(t, CreateSimpleTree, WithLogger(logger))

	m.ChangeState("B")
	m.Update(tick)
	assert.NotContains(t, logger.messages(), "changing state", "tracing is off by default")

	m.SetDebug(true)
	behavior.updates["B"] = func(s *State[TestEntity]) { s.ChangeState("A") }
	m.Update(tick)

	assert.Subset(t, logger.messages(), []string{"changing state", "changed state"})
	last := logger.records[len(logger.records)-1]
	assert.Equal(t, "changed state", last.msg)
	assert.Equal(t, "Root/B", last.fields["from"])
	assert.Equal(t, "A", last.fields["to"])
	assert.Equal(t, m.ID().String(), last.fields["machine"])
}

func TestTransition_DebugTraceNamesQueuedRequests(t *testing.T) {
	logger := &captureLogger{}
	m, _, _ := newTestMachine(t, CreateSimpleTree, WithLogger(logger), WithDebug(true))

	m.ChangeState("B")
	m.ChangeState("Missing")
	pending := m.Pending()
	require.Len(t, pending, 2)
	m.Update(tick)

	var queued, dropped []any
	for _, r := range logger.records {
		switch r.msg {
		case "pending state":
			queued = append(queued, r.fields["request"])
		case "dropped pending state":
			dropped = append(dropped, r.fields["request"])
		}
	}
	assert.Equal(t, []any{pending[0].ID.String(), pending[1].ID.String()}, queued)
	assert.Equal(t, []any{pending[1].ID.String()}, dropped)
}

func TestTransition_PerStateDebug(t *testing.T) {
	logger := &captureLogger{}
	build := func(b Behavior[TestEntity]) *Builder[TestEntity] {
		return NewBuilder[TestEntity]("Root", b).
			State("A", b, Debug()).
			State("B", b)
	}
	m, behavior, _ := newTestMachine(t, build, WithLogger(logger))

	behavior.updates["A"] = func(s *State[TestEntity]) { s.ChangeState("B") }
	m.Update(tick)
	assert.Contains(t, logger.messages(), "changed state")

	logger.records = nil
	behavior.updates["B"] = func(s *State[TestEntity]) { s.ChangeState("A") }
	m.Update(tick)
	assert.Empty(t, logger.messages())
}
