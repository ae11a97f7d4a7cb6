// Package xsm provides a hierarchical state machine that drives the per-frame
// behavior of a single entity, such as a game character.
//
// A machine owns a tree of states. Exclusive states keep at most one active
// child; states created WithRegions keep all of their children active at
// once. Behavior code lives in lifecycle hooks (OnEnter, AfterEnter,
// OnUpdate, AfterUpdate, BeforeExit, OnExit, OnTimeout) and moves the machine
// by asking for another state by name:
//
//	type Idle struct{ xsm.BaseBehavior[Player] }
//
//	func (Idle) OnUpdate(s *xsm.State[Player], delta time.Duration) {
//	    if s.Target().Speed > walkMargin {
//	        s.ChangeState("Walk")
//	    }
//	}
//
// Transitions requested inside the update pass apply immediately; requests
// made from anywhere else are queued and applied at the start of the next
// frame, in order. A branch accepts one transition per frame.
//
// Names are resolved through a flat map built at Init. When two states share
// a name both are registered as "Parent/Name" and a bare lookup prefers the
// requester's own children, then its siblings.
package xsm
