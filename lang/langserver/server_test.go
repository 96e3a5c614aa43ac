package langserver

import (
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/invpt/radi/lang/diag"
	"github.com/invpt/radi/lang/lexer"
)

func TestLineIndex(t *testing.T) {
	ix := newLineIndex("def a = 1;\ndef b = 2;\n")

	tests := []struct {
		offset    int
		line      uint32
		character uint32
	}{
		{0, 0, 0},
		{4, 0, 4},
		{10, 0, 10},
		{11, 1, 0},
		{15, 1, 4},
		{22, 2, 0},
		{-1, 0, 0},
	}
	for _, tt := range tests {
		pos := ix.toPosition(tt.offset)
		if pos.Line != protocol.UInteger(tt.line) || pos.Character != protocol.UInteger(tt.character) {
			t.Errorf("offset %d: got %d:%d, want %d:%d",
				tt.offset, pos.Line, pos.Character, tt.line, tt.character)
		}
	}
}

func TestLineIndexUTF16Characters(t *testing.T) {
	// "é" is 2 bytes but 1 UTF-16 unit; "𝕏" is 4 bytes but 2 units.
	ix := newLineIndex("aéb\n𝕏c")

	tests := []struct {
		offset    int
		line      uint32
		character uint32
	}{
		{0, 0, 0},
		{1, 0, 1},
		{3, 0, 2},
		{4, 0, 3},
		{5, 1, 0},
		{9, 1, 2},
		{10, 1, 3},
		{99, 1, 3},
	}
	for _, tt := range tests {
		pos := ix.toPosition(tt.offset)
		if pos.Line != protocol.UInteger(tt.line) || pos.Character != protocol.UInteger(tt.character) {
			t.Errorf("offset %d: got %d:%d, want %d:%d",
				tt.offset, pos.Line, pos.Character, tt.line, tt.character)
		}
	}
}

func TestLineIndexRange(t *testing.T) {
	ix := newLineIndex("ab\ncd")
	r := ix.toRange(lexer.Span{Start: 1, End: 4})
	if r.Start.Line != 0 || r.Start.Character != 1 {
		t.Errorf("start: got %d:%d", r.Start.Line, r.Start.Character)
	}
	if r.End.Line != 1 || r.End.Character != 1 {
		t.Errorf("end: got %d:%d", r.End.Line, r.End.Character)
	}
}

func TestSeverityMapping(t *testing.T) {
	tests := []struct {
		in   diag.Severity
		want protocol.DiagnosticSeverity
	}{
		{diag.SeverityError, protocol.DiagnosticSeverityError},
		{diag.SeverityWarning, protocol.DiagnosticSeverityWarning},
		{diag.SeverityInfo, protocol.DiagnosticSeverityInformation},
		{diag.SeverityHint, protocol.DiagnosticSeverityHint},
	}
	for _, tt := range tests {
		if got := toProtocolSeverity(tt.in); got != tt.want {
			t.Errorf("%v: got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestURIToPath(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"file:///home/user/app.radi", "/home/user/app.radi"},
		{"/already/a/path.radi", "/already/a/path.radi"},
	}
	for _, tt := range tests {
		got, err := uriToPath(tt.uri)
		if err != nil {
			t.Fatalf("%s: %v", tt.uri, err)
		}
		if got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.uri, got, tt.want)
		}
	}
}
