package logger

import "github.com/rs/zerolog"

// Severity :
// Describes the level associated to a log message. Mirrors the set
// of levels a zerolog backend understands so that callers never need
// to import zerolog directly.
type Severity int

const (
	Verbose Severity = iota
	Debug
	Info
	Warning
	Error
	Fatal
	Panic
)

// zLevel converts a Severity into its zerolog equivalent.
func (s Severity) zLevel() zerolog.Level {
	switch s {
	case Verbose:
		return zerolog.TraceLevel
	case Debug:
		return zerolog.DebugLevel
	case Info:
		return zerolog.InfoLevel
	case Warning:
		return zerolog.WarnLevel
	case Error:
		return zerolog.ErrorLevel
	case Fatal:
		return zerolog.FatalLevel
	case Panic:
		return zerolog.PanicLevel
	default:
		return zerolog.InfoLevel
	}
}

func (s Severity) String() string {
	switch s {
	case Verbose:
		return "verbose"
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Fatal:
		return "fatal"
	case Panic:
		return "panic"
	default:
		return "unknown"
	}
}
