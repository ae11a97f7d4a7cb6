package xsm

import (
	"github.com/anggasct/xsm/pkg/log"
)

// SyncMode selects which host tick drives the machine
type SyncMode int

const (
	// SyncIdle drives the machine from Process
	SyncIdle SyncMode = iota
	// SyncPhysics drives the machine from PhysicsProcess
	SyncPhysics
)

// String returns the sync mode name
func (m SyncMode) String() string {
	switch m {
	case SyncIdle:
		return "idle"
	case SyncPhysics:
		return "physics"
	default:
		return "unknown"
	}
}

// ParseSyncMode parses "idle" or "physics"
func ParseSyncMode(s string) (SyncMode, error) {
	switch s {
	case "", "idle":
		return SyncIdle, nil
	case "physics":
		return SyncPhysics, nil
	default:
		return SyncIdle, NewConfigurationError("sync mode", "unknown sync mode '"+s+"'")
	}
}

// Option configures a Machine
type Option func(*config)

type config struct {
	animator    Animator
	scheduler   Scheduler
	historySize int
	syncMode    SyncMode
	debug       bool
	strict      bool
	allRegions  bool
	logger      log.Logger
	observers   []Observer
}

func defaultConfig() config {
	return config{
		historySize: DefaultHistorySize,
		syncMode:    SyncIdle,
		logger:      log.NewNoopLogger(),
	}
}

// WithAnimator sets the animator inherited by every state without its own
func WithAnimator(a Animator) Option {
	return func(c *config) { c.animator = a }
}

// WithScheduler sets the timer service used by State.AddTimer
func WithScheduler(s Scheduler) Option {
	return func(c *config) { c.scheduler = s }
}

// WithHistorySize sets how many frames of active-state history are kept
func WithHistorySize(n int) Option {
	return func(c *config) { c.historySize = n }
}

// WithSyncMode sets which host tick drives the machine
func WithSyncMode(mode SyncMode) Option {
	return func(c *config) { c.syncMode = mode }
}

// WithDebug traces every transition through the logger
func WithDebug(debug bool) Option {
	return func(c *config) { c.debug = debug }
}

// WithStrictEntry refuses a transition whose enter path crosses a disabled
// state before anything is exited
func WithStrictEntry(strict bool) Option {
	return func(c *config) { c.strict = strict }
}

// WithRegionEntry makes a transition into a region state enter every region
// instead of only the one on the target's path (or the first one)
func WithRegionEntry(all bool) Option {
	return func(c *config) { c.allRegions = all }
}

// WithLogger sets the logger
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithObserver registers an observer before initialization
func WithObserver(o Observer) Option {
	return func(c *config) { c.observers = append(c.observers, o) }
}
