package parser

import (
	"github.com/invpt/radi/lang/intern"
	"github.com/invpt/radi/lang/lexer"
)

// A pred inspects a single token and either extracts a value from it or
// reports that it does not apply. Preds are pure; the parser's cursor
// primitives decide whether a matching token is consumed.
type pred[T any] func(tok *lexer.Token) (T, bool)

// tokenOf matches any of the given kinds and yields the token itself.
func tokenOf(kinds ...lexer.TokenKind) pred[lexer.Token] {
	return func(tok *lexer.Token) (lexer.Token, bool) {
		for _, kind := range kinds {
			if tok.Kind == kind {
				return *tok, true
			}
		}
		return lexer.Token{}, false
	}
}

// anyKind matches any of the given kinds, discarding span and payload. Used
// for pure lookahead branching.
func anyKind(kinds ...lexer.TokenKind) pred[struct{}] {
	return func(tok *lexer.Token) (struct{}, bool) {
		for _, kind := range kinds {
			if tok.Kind == kind {
				return struct{}{}, true
			}
		}
		return struct{}{}, false
	}
}

// mapToken matches one kind and computes a value from the token, typically
// from its span or payload.
func mapToken[T any](kind lexer.TokenKind, f func(tok *lexer.Token) T) pred[T] {
	return func(tok *lexer.Token) (T, bool) {
		if tok.Kind != kind {
			var zero T
			return zero, false
		}
		return f(tok), true
	}
}

// oneOf combines alternatives; the first matching pred wins.
func oneOf[T any](alts ...pred[T]) pred[T] {
	return func(tok *lexer.Token) (T, bool) {
		for _, alt := range alts {
			if v, ok := alt(tok); ok {
				return v, true
			}
		}
		var zero T
		return zero, false
	}
}

// never matches no token. It is the end predicate of the top-level object
// body, which only ends at stream exhaustion.
func never[T any]() pred[T] {
	return func(tok *lexer.Token) (T, bool) {
		var zero T
		return zero, false
	}
}

func binOpToken(kind lexer.TokenKind, op BinOp) pred[BinOp] {
	return mapToken(kind, func(*lexer.Token) BinOp { return op })
}

// Operator tables for the precedence ladder, tightest binding last.
var (
	logicalOps = oneOf(
		binOpToken(lexer.TokenAnd, BinOpAnd),
		binOpToken(lexer.TokenOr, BinOpOr),
	)
	equalOps = oneOf(
		binOpToken(lexer.TokenEQ, BinOpEqual),
		binOpToken(lexer.TokenNE, BinOpNotEqual),
	)
	cmpOps = oneOf(
		binOpToken(lexer.TokenGT, BinOpGt),
		binOpToken(lexer.TokenGE, BinOpGtEq),
		binOpToken(lexer.TokenLT, BinOpLt),
		binOpToken(lexer.TokenLE, BinOpLtEq),
	)
	termOps = oneOf(
		binOpToken(lexer.TokenPlus, BinOpAdd),
		binOpToken(lexer.TokenMinus, BinOpSub),
	)
	factorOps = oneOf(
		binOpToken(lexer.TokenStar, BinOpMul),
		binOpToken(lexer.TokenSlash, BinOpDiv),
		binOpToken(lexer.TokenPercent, BinOpMod),
	)
)

// prefixOp carries a prefix operator together with its marker token's span.
type prefixOp struct {
	op   UnOp
	span lexer.Span
}

func prefixOpToken(kind lexer.TokenKind, op UnOp) pred[prefixOp] {
	return mapToken(kind, func(tok *lexer.Token) prefixOp {
		return prefixOp{op: op, span: tok.Span}
	})
}

var prefixOps = oneOf(
	prefixOpToken(lexer.TokenBang, UnOpNot),
	prefixOpToken(lexer.TokenSet, UnOpSet),
	prefixOpToken(lexer.TokenVal, UnOpVal),
	prefixOpToken(lexer.TokenCaret, UnOpRef),
)

// nameTok carries an interned name together with its span.
type nameTok struct {
	name intern.Symbol
	span lexer.Span
}

var namePred = mapToken(lexer.TokenName, func(tok *lexer.Token) nameTok {
	return nameTok{name: tok.Text, span: tok.Span}
})

// atomPred recognizes the literal and identifier atoms.
var atomPred = oneOf(
	mapToken(lexer.TokenFloat, func(tok *lexer.Token) Expr {
		return &Literal{Kind: LitFloat, Float: tok.Float, span: tok.Span}
	}),
	mapToken(lexer.TokenInteger, func(tok *lexer.Token) Expr {
		return &Literal{Kind: LitInteger, Int: tok.Int, span: tok.Span}
	}),
	mapToken(lexer.TokenString, func(tok *lexer.Token) Expr {
		return &Literal{Kind: LitString, Str: tok.Text, span: tok.Span}
	}),
	mapToken(lexer.TokenName, func(tok *lexer.Token) Expr {
		return &Ident{Name: tok.Text, span: tok.Span}
	}),
)
