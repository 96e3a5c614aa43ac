// Package diag is the append-only sink for non-fatal, spanned diagnostics.
// The parser and lexer only write to it; nothing reads it back during a
// parse. Fatal errors travel the error-return path instead and never pass
// through here.
package diag

import (
	"fmt"

	"github.com/invpt/radi/lang/lexer"
)

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	SeverityHint
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

type Diagnostic struct {
	Severity Severity
	Span     lexer.Span
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s at %s", d.Severity, d.Message, d.Span)
}

// Stream collects diagnostics in report order.
type Stream struct {
	diags []Diagnostic
}

func NewStream() *Stream {
	return &Stream{}
}

func (s *Stream) Report(d Diagnostic) {
	s.diags = append(s.diags, d)
}

func (s *Stream) Warnf(span lexer.Span, format string, args ...any) {
	s.Report(Diagnostic{Severity: SeverityWarning, Span: span, Message: fmt.Sprintf(format, args...)})
}

// All returns the collected diagnostics in the order they were reported.
func (s *Stream) All() []Diagnostic {
	return s.diags
}

func (s *Stream) Len() int {
	return len(s.diags)
}
