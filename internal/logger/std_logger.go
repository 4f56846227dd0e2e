package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// StdLogger :
// Default logger implementation, writing structured, leveled log lines
// to stdout through zerolog. Each instance is tagged with the hosting
// process's instance id and address so that log lines from several
// concurrently running daemons can be told apart.
type StdLogger struct {
	z zerolog.Logger
}

// NewStdLogger creates a logger tagged with the given instance metadata.
func NewStdLogger(instanceID string, address string) *StdLogger {
	z := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().
		Timestamp().
		Str("instance", instanceID).
		Str("addr", address).
		Logger()

	return &StdLogger{z: z}
}

// Trace logs a single message at the given severity, tagged with the
// module that produced it.
func (l *StdLogger) Trace(level Severity, module string, message string) {
	l.z.WithLevel(level.zLevel()).Str("module", module).Msg(message)
}

// Release is a no-op for the console backend; kept so that Logger
// implementations backed by buffered or remote sinks can flush on exit.
func (l *StdLogger) Release() {}
