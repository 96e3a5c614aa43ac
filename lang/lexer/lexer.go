// Package lexer turns a character source into a stream of spanned tokens.
// The stream is lazy: tokens are produced on demand through Peek and Next,
// so reading the source and lexing it are interleaved. Lexing is
// maximal-munch, so multi-character operators such as "::", ".{", "&&" and
// "||" are always produced as single tokens.
package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/invpt/radi/lang/intern"
	"github.com/invpt/radi/lang/source"
)

// Error is a lexical error at a given span. Span is nil when the error has
// no usable location, such as an I/O failure.
type Error struct {
	Span *Span
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("lex: %v", e.Err)
	}
	if e.Span != nil {
		return fmt.Sprintf("lex: %s at %s", e.Msg, e.Span)
	}
	return fmt.Sprintf("lex: %s", e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Tokens is a fallible, peekable token stream. Peek and Next return a nil
// token once the input is exhausted.
type Tokens struct {
	src    *source.Reader
	store  *intern.Store
	peeked *Token
	// pending holds a token that was fully recognized while scanning its
	// predecessor, such as the dot after "1.x".
	pending *Token
	done    bool
}

func New(src *source.Reader, store *intern.Store) *Tokens {
	return &Tokens{src: src, store: store}
}

// Peek returns the next token without consuming it, or nil at end of input.
func (t *Tokens) Peek() (*Token, error) {
	if t.peeked == nil && !t.done {
		tok, err := t.scan()
		if err != nil {
			return nil, err
		}
		if tok == nil {
			t.done = true
			return nil, nil
		}
		t.peeked = tok
	}
	return t.peeked, nil
}

// Next consumes and returns the next token, or nil at end of input.
func (t *Tokens) Next() (*Token, error) {
	tok, err := t.Peek()
	if err != nil || tok == nil {
		return tok, err
	}
	t.peeked = nil
	return tok, nil
}

func (t *Tokens) scan() (*Token, error) {
	if t.pending != nil {
		tok := t.pending
		t.pending = nil
		return tok, nil
	}

	if err := t.skipWhitespace(); err != nil {
		return nil, err
	}

	start := t.src.Offset()
	ch, ok, err := t.src.Peek()
	if err != nil {
		return nil, &Error{Err: err}
	}
	if !ok {
		return nil, nil
	}

	switch {
	case isNameStart(ch):
		return t.scanName(start)
	case isDigit(ch):
		return t.scanNumber(start)
	case ch == '"':
		return t.scanString(start)
	default:
		return t.scanOperator(start)
	}
}

func (t *Tokens) skipWhitespace() error {
	for {
		ch, ok, err := t.src.Peek()
		if err != nil {
			return &Error{Err: err}
		}
		if !ok || !unicode.IsSpace(ch) {
			return nil
		}
		if _, _, err := t.src.Next(); err != nil {
			return &Error{Err: err}
		}
	}
}

func (t *Tokens) scanName(start int) (*Token, error) {
	var sb strings.Builder
	for {
		ch, ok, err := t.src.Peek()
		if err != nil {
			return nil, &Error{Err: err}
		}
		if !ok || !isNameContinue(ch) {
			break
		}
		sb.WriteRune(ch)
		if _, _, err := t.src.Next(); err != nil {
			return nil, &Error{Err: err}
		}
	}

	span := Span{Start: start, End: t.src.Offset()}
	text := sb.String()
	kind := LookupKeyword(text)
	tok := &Token{Kind: kind, Span: span}
	if kind == TokenName {
		tok.Text = t.store.Intern(text)
	}
	return tok, nil
}

func (t *Tokens) scanNumber(start int) (*Token, error) {
	var sb strings.Builder
	isFloat := false

	digits := func() error {
		for {
			ch, ok, err := t.src.Peek()
			if err != nil {
				return &Error{Err: err}
			}
			if !ok || !isDigit(ch) {
				return nil
			}
			sb.WriteRune(ch)
			if _, _, err := t.src.Next(); err != nil {
				return &Error{Err: err}
			}
		}
	}

	if err := digits(); err != nil {
		return nil, err
	}

	// A dot only belongs to the number when a digit follows; "1.x" is the
	// integer 1 followed by a field access.
	ch, ok, err := t.src.Peek()
	if err != nil {
		return nil, &Error{Err: err}
	}
	if ok && ch == '.' {
		if _, _, err := t.src.Next(); err != nil {
			return nil, &Error{Err: err}
		}
		next, nextOK, err := t.src.Peek()
		if err != nil {
			return nil, &Error{Err: err}
		}
		if nextOK && isDigit(next) {
			isFloat = true
			sb.WriteByte('.')
			if err := digits(); err != nil {
				return nil, err
			}
		} else {
			// The dot was not ours; emit the integer now and replay the
			// dot as its own token on the next scan.
			span := Span{Start: start, End: t.src.Offset() - 1}
			value, err := strconv.ParseInt(sb.String(), 10, 64)
			if err != nil {
				return nil, &Error{Span: &span, Msg: "integer literal out of range"}
			}
			dotSpan := Span{Start: t.src.Offset() - 1, End: t.src.Offset()}
			dot, err2 := t.scanAfterNumberDot(dotSpan, nextOK, next)
			if err2 != nil {
				return nil, err2
			}
			t.pending = dot
			return &Token{Kind: TokenInteger, Span: span, Int: value}, nil
		}
	}

	span := Span{Start: start, End: t.src.Offset()}
	if isFloat {
		value, err := strconv.ParseFloat(sb.String(), 64)
		if err != nil {
			return nil, &Error{Span: &span, Msg: "malformed float literal"}
		}
		return &Token{Kind: TokenFloat, Span: span, Float: value}, nil
	}
	value, err := strconv.ParseInt(sb.String(), 10, 64)
	if err != nil {
		return nil, &Error{Span: &span, Msg: "integer literal out of range"}
	}
	return &Token{Kind: TokenInteger, Span: span, Int: value}, nil
}

// scanAfterNumberDot resolves a dot that followed an integer literal but
// did not start a fraction: either ".{" or a plain ".".
func (t *Tokens) scanAfterNumberDot(dotSpan Span, nextOK bool, next rune) (*Token, error) {
	if nextOK && next == '{' {
		if _, _, err := t.src.Next(); err != nil {
			return nil, &Error{Err: err}
		}
		return &Token{Kind: TokenDotLBrace, Span: Span{Start: dotSpan.Start, End: t.src.Offset()}}, nil
	}
	return &Token{Kind: TokenDot, Span: dotSpan}, nil
}

func (t *Tokens) scanString(start int) (*Token, error) {
	if _, _, err := t.src.Next(); err != nil {
		return nil, &Error{Err: err}
	}

	var sb strings.Builder
	for {
		ch, ok, err := t.src.Next()
		if err != nil {
			return nil, &Error{Err: err}
		}
		if !ok {
			span := Span{Start: start, End: t.src.Offset()}
			return nil, &Error{Span: &span, Msg: "unterminated string literal"}
		}
		if ch == '"' {
			break
		}
		if ch == '\\' {
			escStart := t.src.Offset() - 1
			esc, escOK, err := t.src.Next()
			if err != nil {
				return nil, &Error{Err: err}
			}
			if !escOK {
				span := Span{Start: start, End: t.src.Offset()}
				return nil, &Error{Span: &span, Msg: "unterminated string literal"}
			}
			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '\\', '"':
				sb.WriteRune(esc)
			default:
				span := Span{Start: escStart, End: t.src.Offset()}
				return nil, &Error{Span: &span, Msg: fmt.Sprintf("unknown escape sequence \\%c", esc)}
			}
			continue
		}
		sb.WriteRune(ch)
	}

	span := Span{Start: start, End: t.src.Offset()}
	return &Token{Kind: TokenString, Span: span, Text: t.store.Intern(sb.String())}, nil
}

func (t *Tokens) scanOperator(start int) (*Token, error) {
	ch, _, err := t.src.Next()
	if err != nil {
		return nil, &Error{Err: err}
	}

	// Single-character tokens with no longer form.
	switch ch {
	case '{':
		return t.emit(TokenLBrace, start)
	case '}':
		return t.emit(TokenRBrace, start)
	case '(':
		return t.emit(TokenLParen, start)
	case ')':
		return t.emit(TokenRParen, start)
	case ',':
		return t.emit(TokenComma, start)
	case ';':
		return t.emit(TokenSemicolon, start)
	case '^':
		return t.emit(TokenCaret, start)
	case '+':
		return t.emit(TokenPlus, start)
	case '-':
		return t.emit(TokenMinus, start)
	case '*':
		return t.emit(TokenStar, start)
	case '/':
		return t.emit(TokenSlash, start)
	case '%':
		return t.emit(TokenPercent, start)
	}

	// Two-character forms win over their one-character prefix.
	two := func(second rune, long, short TokenKind) (*Token, error) {
		next, ok, err := t.src.Peek()
		if err != nil {
			return nil, &Error{Err: err}
		}
		if ok && next == second {
			if _, _, err := t.src.Next(); err != nil {
				return nil, &Error{Err: err}
			}
			return t.emit(long, start)
		}
		return t.emit(short, start)
	}

	switch ch {
	case '.':
		return two('{', TokenDotLBrace, TokenDot)
	case ':':
		return two(':', TokenColonColon, TokenColon)
	case '|':
		return two('|', TokenOr, TokenPipe)
	case '&':
		return two('&', TokenAnd, TokenAmp)
	case '=':
		return two('=', TokenEQ, TokenAssign)
	case '!':
		return two('=', TokenNE, TokenBang)
	case '>':
		return two('=', TokenGE, TokenGT)
	case '<':
		return two('=', TokenLE, TokenLT)
	}

	span := Span{Start: start, End: t.src.Offset()}
	return nil, &Error{Span: &span, Msg: fmt.Sprintf("unexpected character %q", ch)}
}

func (t *Tokens) emit(kind TokenKind, start int) (*Token, error) {
	return &Token{Kind: kind, Span: Span{Start: start, End: t.src.Offset()}}, nil
}

func isNameStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isNameContinue(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
