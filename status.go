package xsm

// Status is the lifecycle status of a state node.
type Status int

const (
	// StatusInactive means the state is not part of the active configuration
	StatusInactive Status = iota
	// StatusEntering marks a state chosen to be entered by the transition being applied
	StatusEntering
	// StatusActive means the state is part of the active configuration
	StatusActive
	// StatusExiting marks a state chosen to be exited by the transition being applied
	StatusExiting
)

// String returns the status name
func (s Status) String() string {
	switch s {
	case StatusInactive:
		return "Inactive"
	case StatusEntering:
		return "Entering"
	case StatusActive:
		return "Active"
	case StatusExiting:
		return "Exiting"
	default:
		return "Unknown"
	}
}

// IsTransient reports whether the status only exists while a transition is being applied
func (s Status) IsTransient() bool {
	return s == StatusEntering || s == StatusExiting
}

// CanTransitionTo reports whether moving from s to next is a legal status change.
//
// Inactive may go straight to Active when the default branch is entered during
// initialization, and Entering falls back to Inactive when entry is aborted by
// a disabled state.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusInactive:
		return next == StatusEntering || next == StatusActive
	case StatusEntering:
		return next == StatusActive || next == StatusInactive
	case StatusActive:
		return next == StatusExiting
	case StatusExiting:
		return next == StatusInactive
	default:
		return false
	}
}
