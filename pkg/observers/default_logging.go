package observers

import "github.com/anggasct/xsm/pkg/log"

// NewDefaultLoggingObserver creates a logging observer named "StateMachine"
func NewDefaultLoggingObserver(logger log.Logger) *LoggingObserver {
	return NewLoggingObserver(logger, "StateMachine")
}
