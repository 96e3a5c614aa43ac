package diag

import (
	"testing"

	"github.com/invpt/radi/lang/lexer"
)

func TestStreamPreservesOrder(t *testing.T) {
	s := NewStream()
	s.Report(Diagnostic{Severity: SeverityError, Span: lexer.Span{Start: 0, End: 1}, Message: "first"})
	s.Warnf(lexer.Span{Start: 2, End: 3}, "second %d", 2)
	s.Report(Diagnostic{Severity: SeverityHint, Span: lexer.Span{Start: 4, End: 5}, Message: "third"})

	if s.Len() != 3 {
		t.Fatalf("got %d diagnostics, want 3", s.Len())
	}
	all := s.All()
	if all[0].Message != "first" || all[1].Message != "second 2" || all[2].Message != "third" {
		t.Errorf("order not preserved: %v", all)
	}
	if all[1].Severity != SeverityWarning {
		t.Errorf("Warnf should report a warning, got %v", all[1].Severity)
	}
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{Severity: SeverityWarning, Span: lexer.Span{Start: 4, End: 9}, Message: "odd spacing"}
	if got, want := d.String(), "warning: odd spacing at 4..9"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSeverityString(t *testing.T) {
	tests := []struct {
		sev  Severity
		want string
	}{
		{SeverityError, "error"},
		{SeverityWarning, "warning"},
		{SeverityInfo, "info"},
		{SeverityHint, "hint"},
		{Severity(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.sev.String(); got != tt.want {
			t.Errorf("%d: got %q, want %q", tt.sev, got, tt.want)
		}
	}
}
