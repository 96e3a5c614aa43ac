package lexer

import (
	"fmt"

	"github.com/invpt/radi/lang/intern"
)

// Span is a half-open byte-offset interval [Start, End) into the source.
type Span struct {
	Start int
	End   int
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

type TokenKind int

const (
	TokenInvalid TokenKind = iota

	// Keywords
	TokenDef
	TokenSet
	TokenVal

	// Literals
	TokenFloat
	TokenInteger
	TokenString
	TokenName

	// Punctuation and operators
	TokenLBrace
	TokenRBrace
	TokenLParen
	TokenRParen
	TokenDot
	TokenDotLBrace
	TokenComma
	TokenSemicolon
	TokenColon
	TokenColonColon
	TokenPipe
	TokenOr
	TokenAmp
	TokenAnd
	TokenBang
	TokenCaret
	TokenAssign
	TokenEQ
	TokenNE
	TokenGT
	TokenGE
	TokenLT
	TokenLE
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenPercent
)

var tokenKindNames = map[TokenKind]string{
	TokenInvalid:    "Invalid",
	TokenDef:        "def",
	TokenSet:        "set",
	TokenVal:        "val",
	TokenFloat:      "Float",
	TokenInteger:    "Integer",
	TokenString:     "String",
	TokenName:       "Name",
	TokenLBrace:     "{",
	TokenRBrace:     "}",
	TokenLParen:     "(",
	TokenRParen:     ")",
	TokenDot:        ".",
	TokenDotLBrace:  ".{",
	TokenComma:      ",",
	TokenSemicolon:  ";",
	TokenColon:      ":",
	TokenColonColon: "::",
	TokenPipe:       "|",
	TokenOr:         "||",
	TokenAmp:        "&",
	TokenAnd:        "&&",
	TokenBang:       "!",
	TokenCaret:      "^",
	TokenAssign:     "=",
	TokenEQ:         "==",
	TokenNE:         "!=",
	TokenGT:         ">",
	TokenGE:         ">=",
	TokenLT:         "<",
	TokenLE:         "<=",
	TokenPlus:       "+",
	TokenMinus:      "-",
	TokenStar:       "*",
	TokenSlash:      "/",
	TokenPercent:    "%",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Token is one lexical unit. Name and String tokens carry their interned
// text; Integer and Float tokens carry their numeric value.
type Token struct {
	Kind  TokenKind
	Span  Span
	Text  intern.Symbol
	Int   int64
	Float float64
}

func (t Token) String() string {
	switch t.Kind {
	case TokenName:
		return fmt.Sprintf("name %q", t.Text.Text())
	case TokenString:
		return fmt.Sprintf("string %q", t.Text.Text())
	case TokenInteger:
		return fmt.Sprintf("integer %d", t.Int)
	case TokenFloat:
		return fmt.Sprintf("float %v", t.Float)
	default:
		return fmt.Sprintf("%q", t.Kind.String())
	}
}

var keywords = map[string]TokenKind{
	"def": TokenDef,
	"set": TokenSet,
	"val": TokenVal,
}

func LookupKeyword(name string) TokenKind {
	if kind, ok := keywords[name]; ok {
		return kind
	}
	return TokenName
}
