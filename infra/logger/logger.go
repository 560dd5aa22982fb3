package logger

import corelogger "github.com/kilianp07/confsched/core/logger"

// Logger mirrors the core logger interface.
type Logger = corelogger.Logger

// New returns a Logger for the given component writing to stderr. The
// output format follows APP_ENV and the level follows SetLevel.
func New(component string) Logger {
	return NewZerologLogger(component)
}
