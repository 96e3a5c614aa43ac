package lexer

import (
	"errors"
	"strings"
	"testing"

	"github.com/invpt/radi/lang/intern"
	"github.com/invpt/radi/lang/source"
)

func lexAll(t *testing.T, input string) []Token {
	t.Helper()
	tokens := New(source.New(strings.NewReader(input)), intern.NewStore())
	var out []Token
	for {
		tok, err := tokens.Next()
		if err != nil {
			t.Fatalf("lex %q: %v", input, err)
		}
		if tok == nil {
			return out
		}
		out = append(out, *tok)
	}
}

func TestTokenKinds(t *testing.T) {
	tests := []struct {
		input    string
		expected []TokenKind
	}{
		{"", nil},
		{"   \t\n  ", nil},
		{"def", []TokenKind{TokenDef}},
		{"set val", []TokenKind{TokenSet, TokenVal}},
		{"definitely", []TokenKind{TokenName}},
		{"_x x1 __", []TokenKind{TokenName, TokenName, TokenName}},
		{"123", []TokenKind{TokenInteger}},
		{"3.14", []TokenKind{TokenFloat}},
		{`"hello"`, []TokenKind{TokenString}},
		{"{ } ( )", []TokenKind{TokenLBrace, TokenRBrace, TokenLParen, TokenRParen}},
		{"+ - * / %", []TokenKind{TokenPlus, TokenMinus, TokenStar, TokenSlash, TokenPercent}},
		{"== != < <= > >=", []TokenKind{TokenEQ, TokenNE, TokenLT, TokenLE, TokenGT, TokenGE}},
		{"&& || & |", []TokenKind{TokenAnd, TokenOr, TokenAmp, TokenPipe}},
		{"! ^ = , ;", []TokenKind{TokenBang, TokenCaret, TokenAssign, TokenComma, TokenSemicolon}},
		{": ::", []TokenKind{TokenColon, TokenColonColon}},
		{". .{", []TokenKind{TokenDot, TokenDotLBrace}},

		// Maximal munch: the long form wins without separating whitespace.
		{"::x", []TokenKind{TokenColonColon, TokenName}},
		{".{x", []TokenKind{TokenDotLBrace, TokenName}},
		{"a&&b", []TokenKind{TokenName, TokenAnd, TokenName}},
		{"a||b", []TokenKind{TokenName, TokenOr, TokenName}},
		{"a==b", []TokenKind{TokenName, TokenEQ, TokenName}},
		{"a!=b", []TokenKind{TokenName, TokenNE, TokenName}},
		{"a>=b", []TokenKind{TokenName, TokenGE, TokenName}},
		{"a<=b", []TokenKind{TokenName, TokenLE, TokenName}},

		// A dot after an integer only starts a fraction when a digit
		// follows.
		{"1.x", []TokenKind{TokenInteger, TokenDot, TokenName}},
		{"1.{", []TokenKind{TokenInteger, TokenDotLBrace}},
		{"1.", []TokenKind{TokenInteger, TokenDot}},
		{"1.2.x", []TokenKind{TokenFloat, TokenDot, TokenName}},

		{"def point = 1, 2;", []TokenKind{
			TokenDef, TokenName, TokenAssign,
			TokenInteger, TokenComma, TokenInteger, TokenSemicolon,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks := lexAll(t, tt.input)
			var got []TokenKind
			for _, tok := range toks {
				got = append(got, tok.Kind)
			}
			if len(got) != len(tt.expected) {
				t.Fatalf("got %d tokens %v, want %d %v", len(got), got, len(tt.expected), tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("token %d: got %v, want %v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestTokenSpans(t *testing.T) {
	toks := lexAll(t, "def abc = 12;")
	want := []Span{
		{Start: 0, End: 3},
		{Start: 4, End: 7},
		{Start: 8, End: 9},
		{Start: 10, End: 12},
		{Start: 12, End: 13},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, tok := range toks {
		if tok.Span != want[i] {
			t.Errorf("token %d (%s): got span %s, want %s", i, tok, tok.Span, want[i])
		}
	}
}

func TestSplitNumberDotSpans(t *testing.T) {
	toks := lexAll(t, "12.x")
	want := []Span{
		{Start: 0, End: 2},
		{Start: 2, End: 3},
		{Start: 3, End: 4},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, tok := range toks {
		if tok.Span != want[i] {
			t.Errorf("token %d (%s): got span %s, want %s", i, tok, tok.Span, want[i])
		}
	}
}

func TestTokenPayloads(t *testing.T) {
	t.Run("integer", func(t *testing.T) {
		toks := lexAll(t, "9007199254740993")
		if len(toks) != 1 || toks[0].Kind != TokenInteger {
			t.Fatalf("got %v", toks)
		}
		if toks[0].Int != 9007199254740993 {
			t.Errorf("got %d, want 9007199254740993", toks[0].Int)
		}
	})

	t.Run("float", func(t *testing.T) {
		toks := lexAll(t, "3.25")
		if len(toks) != 1 || toks[0].Kind != TokenFloat {
			t.Fatalf("got %v", toks)
		}
		if toks[0].Float != 3.25 {
			t.Errorf("got %v, want 3.25", toks[0].Float)
		}
	})

	t.Run("string escapes", func(t *testing.T) {
		toks := lexAll(t, `"a\nb\tc\r\"\\"`)
		if len(toks) != 1 || toks[0].Kind != TokenString {
			t.Fatalf("got %v", toks)
		}
		if got := toks[0].Text.Text(); got != "a\nb\tc\r\"\\" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("name", func(t *testing.T) {
		toks := lexAll(t, "width")
		if len(toks) != 1 || toks[0].Kind != TokenName {
			t.Fatalf("got %v", toks)
		}
		if got := toks[0].Text.Text(); got != "width" {
			t.Errorf("got %q, want %q", got, "width")
		}
	})
}

func TestInternIdentity(t *testing.T) {
	toks := lexAll(t, "width height width")
	if len(toks) != 3 {
		t.Fatalf("got %d tokens, want 3", len(toks))
	}
	if toks[0].Text != toks[2].Text {
		t.Errorf("same name lexed twice should intern to the same symbol")
	}
	if toks[0].Text == toks[1].Text {
		t.Errorf("different names should not share a symbol")
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		input string
		msg   string
	}{
		{`"abc`, "unterminated string literal"},
		{`"a\q"`, "unknown escape sequence"},
		{"@", "unexpected character"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := New(source.New(strings.NewReader(tt.input)), intern.NewStore())
			var lastErr error
			for {
				tok, err := tokens.Next()
				if err != nil {
					lastErr = err
					break
				}
				if tok == nil {
					break
				}
			}
			if lastErr == nil {
				t.Fatalf("expected an error")
			}
			var lexErr *Error
			if !errors.As(lastErr, &lexErr) {
				t.Fatalf("got %T, want *Error", lastErr)
			}
			if !strings.Contains(lexErr.Msg, tt.msg) {
				t.Errorf("got %q, want substring %q", lexErr.Msg, tt.msg)
			}
			if lexErr.Span == nil {
				t.Errorf("error should carry a span")
			}
		})
	}
}

func TestEscapeErrorSpan(t *testing.T) {
	tests := []struct {
		input string
		want  Span
	}{
		{`"a\q"`, Span{Start: 2, End: 4}},
		// The escape character may be multi-byte; the span still starts
		// at the backslash.
		{`"a\é"`, Span{Start: 2, End: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := New(source.New(strings.NewReader(tt.input)), intern.NewStore())
			_, err := tokens.Next()
			if err == nil {
				t.Fatal("expected an error")
			}
			var lexErr *Error
			if !errors.As(err, &lexErr) {
				t.Fatalf("got %T, want *Error", err)
			}
			if lexErr.Span == nil || *lexErr.Span != tt.want {
				t.Errorf("got span %v, want %s", lexErr.Span, tt.want)
			}
		})
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	tokens := New(source.New(strings.NewReader("a b")), intern.NewStore())
	p1, err := tokens.Peek()
	if err != nil || p1 == nil {
		t.Fatalf("peek: %v %v", p1, err)
	}
	p2, err := tokens.Peek()
	if err != nil || p2 != p1 {
		t.Fatalf("second peek should return the same token")
	}
	n, err := tokens.Next()
	if err != nil || n != p1 {
		t.Fatalf("next should consume the peeked token")
	}
	n2, err := tokens.Next()
	if err != nil || n2 == nil || n2.Text.Text() != "b" {
		t.Fatalf("got %v, want name b", n2)
	}
	end, err := tokens.Next()
	if err != nil || end != nil {
		t.Fatalf("got %v %v at end of input, want nil", end, err)
	}
}
