// Package ports defines the interfaces between the sink consumer core
// and its collaborators.
package ports

// LogLevel represents the severity level of a log message.
type LogLevel int

const (
	// LevelDebug is for detailed debugging information.
	// Enabling it can slow the consumer down.
	LevelDebug LogLevel = iota
	// LevelVerbose is for per-frame processing details.
	LevelVerbose
	// LevelPerf is for throughput and latency measurements.
	LevelPerf
	// LevelInfo is for informational messages.
	LevelInfo
	// LevelWarn is for warning messages.
	// Used for recoverable problems that don't stop processing.
	LevelWarn
	// LevelError is for error messages.
	LevelError
	// LevelQuiet suppresses all log output.
	LevelQuiet
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelVerbose:
		return "verbose"
	case LevelPerf:
		return "perf"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelQuiet:
		return "quiet"
	default:
		return "unknown"
	}
}

// ParseLogLevel parses a string into a LogLevel.
func ParseLogLevel(s string) LogLevel {
	switch s {
	case "debug":
		return LevelDebug
	case "verbose":
		return LevelVerbose
	case "perf":
		return LevelPerf
	case "info":
		return LevelInfo
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	case "quiet":
		return LevelQuiet
	default:
		return LevelInfo
	}
}

// Logger abstracts logging operations with multi-language support.
type Logger interface {
	// Debug logs a debug message with optional format arguments.
	// The msg parameter is the message key that can be translated.
	Debug(msg string, args ...interface{})

	// Verbose logs a per-frame detail message.
	Verbose(msg string, args ...interface{})

	// Perf logs a throughput or latency measurement.
	Perf(msg string, args ...interface{})

	// Info logs an informational message with optional format arguments.
	Info(msg string, args ...interface{})

	// Warn logs a warning message. Warn messages indicate recoverable
	// problems.
	Warn(msg string, args ...interface{})

	// Error logs an error message. Error messages indicate unrecoverable
	// problems.
	Error(msg string, args ...interface{})

	// WithComponent returns a new Logger that prefixes messages with the
	// component name.
	WithComponent(component string) Logger
}
