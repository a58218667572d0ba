// Package patchlog provides the leveled log sink for patch runs.
//
// Verbosity runs from Silent (nothing) up to Debug. Sinks are append-only
// collaborators; the engine never reads back what it logged except through
// the run report.
package patchlog

import "fmt"

type Level int

const (
	Silent Level = iota
	Error
	Warning
	Info
	Verbose
	Debug
)

func (l Level) String() string {
	switch l {
	case Silent:
		return "silent"
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	case Verbose:
		return "verbose"
	case Debug:
		return "debug"
	default:
		return "<unknown level>"
	}
}

// ParseLevel maps the 0-4 LogLevel setting of the authoring format onto a
// Level: 0 silent, 1 errors, 2 +warnings, 3 +info (default), 4 everything.
func ParseLevel(n int) (Level, error) {
	switch n {
	case 0:
		return Silent, nil
	case 1:
		return Error, nil
	case 2:
		return Warning, nil
	case 3:
		return Info, nil
	case 4:
		return Debug, nil
	default:
		return 0, fmt.Errorf("log level %d out of range [0,4]", n)
	}
}

// Sink receives leveled messages.
type Sink interface {
	Emit(level Level, msg string)
}

// Logger filters messages by verbosity before handing them to a Sink and
// adds the usual formatting helpers.
type Logger struct {
	Max  Level
	Sink Sink
}

func New(max Level, sink Sink) *Logger {
	return &Logger{Max: max, Sink: sink}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return &Logger{Max: Silent, Sink: discard{}}
}

type discard struct{}

func (discard) Emit(Level, string) {}

func (lg *Logger) Emit(level Level, msg string) {
	if level == Silent || level > lg.Max {
		return
	}
	lg.Sink.Emit(level, msg)
}

func (lg *Logger) Errorf(format string, args ...any) {
	lg.Emit(Error, fmt.Sprintf(format, args...))
}

func (lg *Logger) Warnf(format string, args ...any) {
	lg.Emit(Warning, fmt.Sprintf(format, args...))
}

func (lg *Logger) Infof(format string, args ...any) {
	lg.Emit(Info, fmt.Sprintf(format, args...))
}

func (lg *Logger) Verbosef(format string, args ...any) {
	lg.Emit(Verbose, fmt.Sprintf(format, args...))
}

func (lg *Logger) Debugf(format string, args ...any) {
	lg.Emit(Debug, fmt.Sprintf(format, args...))
}

// Recorder is a Sink that keeps every message, for tests and for building
// the final report text.
type Recorder struct {
	Messages []Message
}

type Message struct {
	Level Level
	Text  string
}

func (r *Recorder) Emit(level Level, msg string) {
	r.Messages = append(r.Messages, Message{Level: level, Text: msg})
}
