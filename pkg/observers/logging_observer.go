// Package observers provides observers for monitoring state machine events
package observers

import (
	"sort"

	"github.com/anggasct/xsm"
	"github.com/anggasct/xsm/pkg/log"
)

// LoggingObserver writes state machine notifications to a structured logger
type LoggingObserver struct {
	xsm.BaseObserver
	logger  log.Logger
	name    string
	updates bool
}

// LoggingOption configures a LoggingObserver
type LoggingOption func(*LoggingObserver)

// WithUpdates also logs every per-frame update notification
func WithUpdates() LoggingOption {
	return func(o *LoggingObserver) { o.updates = true }
}

// NewLoggingObserver creates a new logging observer. name is attached to
// every record to tell machines apart.
func NewLoggingObserver(logger log.Logger, name string, opts ...LoggingOption) *LoggingObserver {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	o := &LoggingObserver{logger: logger, name: name}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *LoggingObserver) fields(fields ...log.Field) []log.Field {
	return append([]log.Field{log.String("machine", o.name)}, fields...)
}

// OnStateEntered logs state entry
func (o *LoggingObserver) OnStateEntered(state xsm.Node) {
	o.logger.Debug("entered state", o.fields(log.String("state", state.Path()))...)
}

// OnStateExited logs state exit
func (o *LoggingObserver) OnStateExited(state xsm.Node) {
	o.logger.Debug("exited state", o.fields(log.String("state", state.Path()))...)
}

// OnStateChanged logs completed transitions
func (o *LoggingObserver) OnStateChanged(from xsm.Node, to string) {
	o.logger.Info("state changed", o.fields(
		log.String("from", from.Key()),
		log.String("to", to),
	)...)
}

// OnStateUpdated logs updates when enabled with WithUpdates
func (o *LoggingObserver) OnStateUpdated(state xsm.Node) {
	if o.updates {
		o.logger.Debug("updated state", o.fields(log.String("state", state.Path()))...)
	}
}

// OnDisabled logs a state being disabled
func (o *LoggingObserver) OnDisabled(state xsm.Node) {
	o.logger.Info("state disabled", o.fields(log.String("state", state.Path()))...)
}

// OnEnabled logs a state being enabled
func (o *LoggingObserver) OnEnabled(state xsm.Node) {
	o.logger.Info("state enabled", o.fields(log.String("state", state.Path()))...)
}

// OnPendingAdded logs a queued request
func (o *LoggingObserver) OnPendingAdded(target string) {
	o.logger.Debug("transition queued", o.fields(log.String("to", target))...)
}

// OnPendingApplied logs the outcome of a drained request
func (o *LoggingObserver) OnPendingApplied(state xsm.Node) {
	if state == nil {
		o.logger.Warn("queued transition dropped", o.fields()...)
		return
	}
	o.logger.Debug("queued transition applied", o.fields(log.String("state", state.Key()))...)
}

// OnActiveStatesChanged logs the active state names
func (o *LoggingObserver) OnActiveStatesChanged(active map[string]xsm.Node) {
	if !o.updates {
		return
	}
	names := make([]string, 0, len(active))
	for name := range active {
		names = append(names, name)
	}
	sort.Strings(names)
	o.logger.Debug("active states", o.fields(log.Strings("active", names))...)
}

// OnError logs errors
func (o *LoggingObserver) OnError(err error) {
	o.logger.Error("observer error", o.fields(log.Err(err))...)
}
