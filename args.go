package xsm

// Args is the payload a caller hands to one lifecycle hook of a transition.
// The engine never inspects it; hooks read it back with ArgsAs.
type Args struct {
	value any
	set   bool
}

// NoArgs is the empty payload
var NoArgs = Args{}

// NewArgs wraps a caller-defined value
func NewArgs[T any](value T) Args {
	return Args{value: value, set: true}
}

// IsEmpty reports whether no payload was supplied
func (a Args) IsEmpty() bool {
	return !a.set
}

// ArgsAs returns the payload as T, or false if it is empty or of another type
func ArgsAs[T any](a Args) (T, bool) {
	var zero T
	if !a.set {
		return zero, false
	}
	v, ok := a.value.(T)
	if !ok {
		return zero, false
	}
	return v, true
}

// TransitionArgs carries one payload per lifecycle hook invoked by a transition.
type TransitionArgs struct {
	OnEnter    Args
	AfterEnter Args
	BeforeExit Args
	OnExit     Args
}

// EnterArgs builds TransitionArgs carrying only an on-enter payload, the common case
func EnterArgs[T any](value T) TransitionArgs {
	return TransitionArgs{OnEnter: NewArgs(value)}
}
