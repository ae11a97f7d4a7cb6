package xsm

import (
	"github.com/google/uuid"
)

// Request is a transition queued for the start of the next frame
type Request[E any] struct {
	// ID identifies the request in logs and observers
	ID uuid.UUID
	// Target is the requested state name, resolved when the request is applied
	Target string
	// Args are handed to the lifecycle hooks of the transition
	Args TransitionArgs
	// Requester is the state that asked; nil means the root
	Requester *State[E]
	// Frame is the machine frame counter at the time of the request
	Frame uint64
}

// NewRequest creates a new request with a fresh ID
func NewRequest[E any](requester *State[E], target string, args TransitionArgs, frame uint64) Request[E] {
	return Request[E]{
		ID:        uuid.New(),
		Target:    target,
		Args:      args,
		Requester: requester,
		Frame:     frame,
	}
}
