// Package builderr defines the tagged error sum the build driver returns from its
// core operations: Io, Parse, Config, Compile, Link, Cancelled, and Multiple.
package builderr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Io wraps a filesystem or process-spawn failure, with the offending path or
// command folded into the message.
type Io struct {
	Msg string
	Err error
}

func (e *Io) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("io error: %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("io error: %s", e.Msg)
}

func (e *Io) Unwrap() error { return e.Err }

func NewIo(msg string, err error) error {
	return &Io{Msg: msg, Err: err}
}

// Parse reports a malformed configuration value or dependency manifest.
// Line is 0 when the error has no associated line number.
type Parse struct {
	Msg  string
	Line int
}

func (e *Parse) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error: line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("parse error: %s", e.Msg)
}

func NewParse(msg string) error {
	return &Parse{Msg: msg}
}

func NewParseLine(line int, msg string) error {
	return &Parse{Msg: msg, Line: line}
}

// Config reports a missing or unreadable configuration file, or a missing
// required field.
type Config struct {
	Msg string
	Err error
}

func (e *Config) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config error: %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("config error: %s", e.Msg)
}

func (e *Config) Unwrap() error { return e.Err }

func NewConfig(msg string, err error) error {
	return &Config{Msg: msg, Err: err}
}

// Compile is captured per translation unit that failed to compile.
type Compile struct {
	Source   string
	Stderr   string
	ExitCode *int
}

func (e *Compile) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "compile error in %s", e.Source)
	if e.ExitCode != nil {
		fmt.Fprintf(&b, " (exit %d)", *e.ExitCode)
	}
	if strings.TrimSpace(e.Stderr) != "" {
		fmt.Fprintf(&b, "\n%s", e.Stderr)
	}
	return b.String()
}

func NewCompile(source, stderr string, exitCode *int) error {
	return &Compile{Source: source, Stderr: stderr, ExitCode: exitCode}
}

// Link is captured from a failed linker invocation.
type Link struct {
	Stderr   string
	ExitCode *int
}

func (e *Link) Error() string {
	var b strings.Builder
	b.WriteString("link error")
	if e.ExitCode != nil {
		fmt.Fprintf(&b, " (exit %d)", *e.ExitCode)
	}
	if strings.TrimSpace(e.Stderr) != "" {
		fmt.Fprintf(&b, "\n%s", e.Stderr)
	}
	return b.String()
}

func NewLink(stderr string, exitCode *int) error {
	return &Link{Stderr: stderr, ExitCode: exitCode}
}

// Cancelled is returned when the user interrupted the build before natural
// completion and no real error was captured first.
type Cancelled struct{}

func (e *Cancelled) Error() string { return "build cancelled by user" }

func NewCancelled() error { return &Cancelled{} }

// IsCancelled reports whether err is (or wraps) a Cancelled error.
func IsCancelled(err error) bool {
	var c *Cancelled
	return errors.As(err, &c)
}

// Multiple aggregates several errors collected under the aggregate-errors
// policy. It wraps hashicorp/go-multierror with a custom ErrorFormat that
// renders the errors as a numbered list ("  [1] ...", "  [2] ...") under an
// "N error(s) occurred:" header.
func NewMultiple(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	merr := &multierror.Error{
		Errors: errs,
		ErrorFormat: func(es []error) string {
			var b strings.Builder
			fmt.Fprintf(&b, "%d error(s) occurred:\n", len(es))
			for i, e := range es {
				fmt.Fprintf(&b, "  [%d] %s\n", i+1, e)
			}
			return b.String()
		},
	}
	return merr
}
