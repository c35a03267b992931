// Package logger provides logging implementations.
package logger

import (
	"fmt"
	"os"

	"github.com/ideamans/go-l10n"
	"github.com/mattn/go-isatty"

	"github.com/user/sinkdump/pkg/ports"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGray   = "\033[90m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorCyan   = "\033[36m"
)

// ColorMode controls whether log output is colored.
type ColorMode int

const (
	// ColorAuto enables colors when stderr is a terminal.
	ColorAuto ColorMode = iota
	// ColorAlways forces colors on.
	ColorAlways
	// ColorNever disables colors.
	ColorNever
)

// ConsoleLogger logs messages to stderr with color support. Everything
// goes to stderr so that a raw frame dump on stdout stays intact.
type ConsoleLogger struct {
	level     ports.LogLevel
	component string
	color     bool
}

// NewConsole creates a new console logger with the specified level.
func NewConsole(level ports.LogLevel, mode ColorMode) *ConsoleLogger {
	color := false
	switch mode {
	case ColorAlways:
		color = true
	case ColorNever:
		color = false
	default:
		color = isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	}
	return &ConsoleLogger{
		level: level,
		color: color,
	}
}

// Debug logs a debug message.
func (l *ConsoleLogger) Debug(msg string, args ...interface{}) {
	if l.level > ports.LevelDebug {
		return
	}
	l.log(ports.LevelDebug, msg, args...)
}

// Verbose logs a per-frame detail message.
func (l *ConsoleLogger) Verbose(msg string, args ...interface{}) {
	if l.level > ports.LevelVerbose {
		return
	}
	l.log(ports.LevelVerbose, msg, args...)
}

// Perf logs a throughput or latency measurement.
func (l *ConsoleLogger) Perf(msg string, args ...interface{}) {
	if l.level > ports.LevelPerf {
		return
	}
	l.log(ports.LevelPerf, msg, args...)
}

// Info logs an informational message.
func (l *ConsoleLogger) Info(msg string, args ...interface{}) {
	if l.level > ports.LevelInfo {
		return
	}
	l.log(ports.LevelInfo, msg, args...)
}

// Warn logs a warning message.
func (l *ConsoleLogger) Warn(msg string, args ...interface{}) {
	if l.level > ports.LevelWarn {
		return
	}
	l.log(ports.LevelWarn, msg, args...)
}

// Error logs an error message.
func (l *ConsoleLogger) Error(msg string, args ...interface{}) {
	if l.level > ports.LevelError {
		return
	}
	l.log(ports.LevelError, msg, args...)
}

// WithComponent returns a logger that prefixes messages with the
// component name.
func (l *ConsoleLogger) WithComponent(component string) ports.Logger {
	clone := *l
	clone.component = component
	return &clone
}

// log outputs a log message with appropriate formatting.
func (l *ConsoleLogger) log(level ports.LogLevel, msg string, args ...interface{}) {
	// Translate message using go-l10n
	translated := l10n.F(msg, args...)

	var output string
	if l.component != "" {
		if l.color {
			output = fmt.Sprintf("%s[%s]%s %s", colorCyan, l.component, colorReset, translated)
		} else {
			output = fmt.Sprintf("[%s] %s", l.component, translated)
		}
	} else {
		output = translated
	}

	if l.color {
		switch level {
		case ports.LevelDebug, ports.LevelVerbose:
			output = colorGray + output + colorReset
		case ports.LevelPerf:
			output = colorGreen + output + colorReset
		case ports.LevelWarn:
			output = colorYellow + output + colorReset
		case ports.LevelError:
			output = colorRed + output + colorReset
		}
	}

	fmt.Fprintln(os.Stderr, output)
}

var _ ports.Logger = (*ConsoleLogger)(nil)
