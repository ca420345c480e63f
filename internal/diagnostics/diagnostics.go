// Package diagnostics implements the ErrorContainer collaborator: a
// structured, append-only collection of conversion diagnostics with optional
// source locations.
package diagnostics

import (
	"fmt"
	"strings"
	"sync"
)

// Code enumerates the diagnostic kinds the conversion pipeline can raise.
type Code string

const (
	FormatNotSupported Code = "FormatNotSupported"
	BadParameter        Code = "BadParameter"
	InvalidPath         Code = "InvalidPath"
	ParseError          Code = "ParseError"
	DuplicateSymbol     Code = "DuplicateSymbol"
	UnsupportedChange   Code = "UnsupportedChange"
	EditorStateError    Code = "EditorStateError"
	ValidationWarning   Code = "ValidationWarning"
	GenericWarning      Code = "GenericWarning"
	InternalError       Code = "InternalError"
)

// Severity distinguishes fatal diagnostics (abort the current transform)
// from informational ones (processing continues).
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// fatalCodes are the Code values that are always fatal regardless of how
// they were constructed, matching §7 of the conversion specification.
var fatalCodes = map[Code]bool{
	FormatNotSupported: true,
	BadParameter:        true,
	InvalidPath:         true,
	ParseError:          true,
	DuplicateSymbol:     true,
	UnsupportedChange:   true,
	EditorStateError:    true,
	InternalError:       true,
}

// SourceSpan locates a diagnostic within a source-tree file.
type SourceSpan struct {
	File      string
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

func (s *SourceSpan) String() string {
	if s == nil {
		return ""
	}
	if s.StartLine == 0 {
		return s.File
	}
	if s.EndLine != 0 && (s.EndLine != s.StartLine || s.EndCol != s.StartCol) {
		return fmt.Sprintf("%s:%d:%d-%d:%d", s.File, s.StartLine, s.StartCol, s.EndLine, s.EndCol)
	}
	return fmt.Sprintf("%s:%d:%d", s.File, s.StartLine, s.StartCol)
}

// Diagnostic is a single structured record. It satisfies error.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Span     *SourceSpan
	Cause    error
}

func (d *Diagnostic) Error() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("[%s]", d.Code))
	if d.Span != nil {
		parts = append(parts, d.Span.String())
	}
	parts = append(parts, d.Message)
	msg := strings.Join(parts, " ")
	if d.Cause != nil {
		msg += ": " + d.Cause.Error()
	}
	return msg
}

func (d *Diagnostic) Unwrap() error { return d.Cause }

func (d *Diagnostic) Is(target error) bool {
	t, ok := target.(*Diagnostic)
	if !ok {
		return false
	}
	return d.Code == t.Code
}

// IsFatal reports whether this diagnostic aborts the transform that raised
// it. ValidationWarning and GenericWarning are the only non-fatal codes.
func (d *Diagnostic) IsFatal() bool {
	return fatalCodes[d.Code]
}

// New constructs an error-severity diagnostic for the given code. Whether it
// is fatal follows from the code alone (see IsFatal).
func New(code Code, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{Severity: SeverityError, Code: code, Message: fmt.Sprintf(format, args...)}
}

// Newf is an alias of New kept for call sites that read better with an "f"
// suffix when the format string is long.
func Newf(code Code, format string, args ...interface{}) *Diagnostic { return New(code, format, args...) }

// Warning constructs a non-fatal diagnostic.
func Warning(code Code, format string, args ...interface{}) *Diagnostic {
	d := New(code, format, args...)
	d.Severity = SeverityWarning
	return d
}

// WithSpan attaches a source location and returns the receiver for chaining.
func (d *Diagnostic) WithSpan(span SourceSpan) *Diagnostic {
	d.Span = &span
	return d
}

// WithCause attaches an underlying error and returns the receiver.
func (d *Diagnostic) WithCause(err error) *Diagnostic {
	d.Cause = err
	return d
}

// Container is the single mutable diagnostics sink threaded through a
// conversion pipeline. It is append-only; every method holds an internal
// mutex, so individual calls may come from several goroutines.
type Container struct {
	mu    sync.Mutex
	items []*Diagnostic
}

// New Container.
func NewContainer() *Container {
	return &Container{}
}

// Add appends a diagnostic. A nil diagnostic is ignored.
func (c *Container) Add(d *Diagnostic) {
	if d == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, d)
}

// Addf is a convenience for Add(New(code, format, args...)).
func (c *Container) Addf(code Code, format string, args ...interface{}) {
	c.Add(New(code, format, args...))
}

// Warnf is a convenience for Add(Warning(code, format, args...)).
func (c *Container) Warnf(code Code, format string, args ...interface{}) {
	c.Add(Warning(code, format, args...))
}

// All returns a snapshot of every diagnostic recorded so far.
func (c *Container) All() []*Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Diagnostic, len(c.items))
	copy(out, c.items)
	return out
}

// HasFatal reports whether any recorded diagnostic is fatal.
func (c *Container) HasFatal() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, d := range c.items {
		if d.IsFatal() {
			return true
		}
	}
	return false
}

// HasAny reports whether any diagnostic at all was recorded.
func (c *Container) HasAny() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items) > 0
}

// ByFile groups diagnostics whose span references the given file.
func (c *Container) ByFile(file string) []*Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []*Diagnostic
	for _, d := range c.items {
		if d.Span != nil && d.Span.File == file {
			out = append(out, d)
		}
	}
	return out
}

// ByCode groups diagnostics by code.
func (c *Container) ByCode(code Code) []*Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []*Diagnostic
	for _, d := range c.items {
		if d.Code == code {
			out = append(out, d)
		}
	}
	return out
}

// Summary renders a human-readable multi-line report, one diagnostic per
// line, errors before warnings.
func (c *Container) Summary() string {
	items := c.All()
	var errs, warns []*Diagnostic
	for _, d := range items {
		if d.IsFatal() {
			errs = append(errs, d)
		} else {
			warns = append(warns, d)
		}
	}
	var b strings.Builder
	for _, d := range errs {
		fmt.Fprintf(&b, "error: %s\n", d.Error())
	}
	for _, d := range warns {
		fmt.Fprintf(&b, "warning: %s\n", d.Error())
	}
	return b.String()
}

// AsInternal wraps a recovered panic or unexpected error as an InternalError
// diagnostic, matching §7's "wraps the underlying cause" requirement.
func AsInternal(cause error) *Diagnostic {
	return New(InternalError, "unexpected failure during transform").WithCause(cause)
}
