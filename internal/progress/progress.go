// Package progress implements the out-of-scope "colored terminal output"
// sink the core calls with build events, matching banksean-sand's
// usermsg.go UserMessenger split between a real terminal implementation and
// a null one.
package progress

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Sink receives human-readable progress lines from the Orchestrator and
// WorkerPool. Implementations must be safe for concurrent use, since
// WorkerPool workers report compile progress from multiple goroutines.
type Sink interface {
	Info(msg string)
	Compiling(index, total int, relativePath string)
	Warn(msg string)
}

type terminalSink struct {
	w io.Writer
}

// NewTerminalSink returns a Sink that writes ANSI-colored lines to w.
func NewTerminalSink(w io.Writer) Sink {
	return &terminalSink{w: w}
}

func (s *terminalSink) Info(msg string) {
	fmt.Fprintln(s.w, msg)
}

func (s *terminalSink) Compiling(index, total int, relativePath string) {
	label := color.New(color.FgCyan).Sprint("Compiling")
	fmt.Fprintf(s.w, "%s [%d/%d] %s\n", label, index, total, relativePath)
}

func (s *terminalSink) Warn(msg string) {
	label := color.New(color.FgYellow).Sprint("warning:")
	fmt.Fprintf(s.w, "%s %s\n", label, msg)
}

type nullSink struct{}

// NewNullSink returns a Sink that discards everything, for non-interactive
// or quiet invocations.
func NewNullSink() Sink {
	return &nullSink{}
}

func (nullSink) Info(string)               {}
func (nullSink) Compiling(int, int, string) {}
func (nullSink) Warn(string)                {}
