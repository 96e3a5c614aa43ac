// Package parser implements the recursive-descent parser for radi source
// text. It consumes the fallible, peekable token stream produced by the
// lexer and builds a fully spanned syntax tree in one pass, bottom-up. The
// parser is fail-fast: the first structural error aborts the whole parse
// and no partial tree is returned.
package parser

import (
	"fmt"
	"strings"

	"github.com/invpt/radi/lang/diag"
	"github.com/invpt/radi/lang/lexer"
)

// DefaultMaxDepth bounds expression nesting. Recursive descent mirrors
// source nesting directly, so without a bound a pathological input could
// exhaust the call stack.
const DefaultMaxDepth = 512

// ParseError is the single structured error a failed parse surfaces.
// Exactly one of the cases holds: Err wraps a lexical error, Msg describes
// an internal condition such as the depth limit, or Token/Span record the
// unexpected token (both nil when the stream ended where a token was
// required).
type ParseError struct {
	File  string
	Span  *lexer.Span
	Token *lexer.Token
	Msg   string
	Err   error
}

func (e *ParseError) Error() string {
	var sb strings.Builder
	if e.File != "" {
		sb.WriteString(e.File)
		sb.WriteString(": ")
	}
	switch {
	case e.Err != nil:
		fmt.Fprintf(&sb, "%v", e.Err)
	case e.Msg != "":
		sb.WriteString(e.Msg)
		if e.Span != nil {
			fmt.Fprintf(&sb, " at %s", e.Span)
		}
	case e.Token != nil:
		fmt.Fprintf(&sb, "unexpected %s at %s", e.Token, e.Token.Span)
	default:
		sb.WriteString("unexpected end of input")
	}
	return sb.String()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type Option func(*Parser)

// WithFile records the file name used in error messages.
func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

// WithMaxDepth overrides the expression nesting limit.
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxDepth = n
		}
	}
}

type Parser struct {
	tokens   *lexer.Tokens
	diags    *diag.Stream
	file     string
	maxDepth int
	depth    int
}

// Parse consumes the whole token stream and returns the implicit top-level
// object. diags receives non-fatal diagnostics; the grammar itself never
// continues past a structural problem, so a non-nil error always means no
// tree.
func Parse(tokens *lexer.Tokens, diags *diag.Stream, opts ...Option) (Expr, error) {
	p := newParser(tokens, diags, opts...)
	return p.parse()
}

// ParseExpr parses a single expression and requires the stream to be
// exhausted afterwards. It exists for tools that evaluate fragments rather
// than whole programs.
func ParseExpr(tokens *lexer.Tokens, diags *diag.Stream, opts ...Option) (Expr, error) {
	p := newParser(tokens, diags, opts...)
	e, err := p.expr()
	if err != nil {
		return nil, err
	}
	tok, err := p.tokens.Peek()
	if err != nil {
		return nil, p.wrapLex(err)
	}
	if tok != nil {
		return nil, p.unexpectedToken(tok)
	}
	return e, nil
}

func newParser(tokens *lexer.Tokens, diags *diag.Stream, opts ...Option) *Parser {
	p := &Parser{
		tokens:   tokens,
		diags:    diags,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Parser) parse() (Expr, error) {
	definitions, err := p.objectBody(never[struct{}]())
	if err != nil {
		return nil, err
	}

	if len(definitions) > 0 {
		span := lexer.Span{
			Start: definitions[0].Span.Start,
			End:   definitions[len(definitions)-1].Span.End,
		}
		return &Object{Definitions: definitions, span: span}, nil
	}
	return &Object{span: lexer.Span{Start: 0, End: 0}}, nil
}

// objectBody parses "def" items until endPred matches or, for the
// top-level body, the stream ends.
func (p *Parser) objectBody(endPred pred[struct{}]) ([]Def, error) {
	var defs []Def
	for {
		tok, err := p.tokens.Peek()
		if err != nil {
			return nil, p.wrapLex(err)
		}
		if tok == nil {
			return defs, nil
		}
		if _, ok := endPred(tok); ok {
			return defs, nil
		}
		def, err := p.def()
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
}

func (p *Parser) def() (Def, error) {
	defTok, err := require(p, tokenOf(lexer.TokenDef))
	if err != nil {
		return Def{}, err
	}
	name, err := require(p, namePred)
	if err != nil {
		return Def{}, err
	}
	// "def a = 1;" and "def a 1;" are the same definition; the "=" is
	// optional surface sugar and never required before a block value.
	if _, _, err := eat(p, anyKind(lexer.TokenAssign)); err != nil {
		return Def{}, err
	}
	value, needsSemi, err := p.defBlock()
	if err != nil {
		return Def{}, err
	}

	end := value.Span().End
	if needsSemi {
		semi, err := require(p, tokenOf(lexer.TokenSemicolon))
		if err != nil {
			return Def{}, err
		}
		end = semi.Span.End
	}

	return Def{
		Name:  name.name,
		Value: value,
		Span:  lexer.Span{Start: defTok.Span.Start, End: end},
	}, nil
}

// defBlock parses a definition's value and reports whether the definition
// still needs a terminating ";". Brace and object values terminate
// themselves.
func (p *Parser) defBlock() (Expr, bool, error) {
	if open, ok, err := eat(p, tokenOf(lexer.TokenLBrace)); err != nil {
		return nil, false, err
	} else if ok {
		scope, err := p.scope(open.Span.Start, tokenOf(lexer.TokenRBrace))
		if err != nil {
			return nil, false, err
		}
		return scope, false, nil
	}

	if open, ok, err := eat(p, tokenOf(lexer.TokenDotLBrace)); err != nil {
		return nil, false, err
	} else if ok {
		object, err := p.objectLiteral(open.Span.Start)
		if err != nil {
			return nil, false, err
		}
		return object, false, nil
	}

	return p.defExpr()
}

// objectLiteral parses the body and closing brace of ".{ ... }", the
// opening token having been consumed already.
func (p *Parser) objectLiteral(start int) (Expr, error) {
	defs, err := p.objectBody(anyKind(lexer.TokenRBrace))
	if err != nil {
		return nil, err
	}
	close, err := require(p, tokenOf(lexer.TokenRBrace))
	if err != nil {
		return nil, err
	}
	return &Object{
		Definitions: defs,
		span:        lexer.Span{Start: start, End: close.Span.End},
	}, nil
}

func (p *Parser) block() (Expr, error) {
	if open, ok, err := eat(p, tokenOf(lexer.TokenLBrace)); err != nil {
		return nil, err
	} else if ok {
		return p.scope(open.Span.Start, tokenOf(lexer.TokenRBrace))
	}
	if open, ok, err := eat(p, tokenOf(lexer.TokenDotLBrace)); err != nil {
		return nil, err
	} else if ok {
		return p.objectLiteral(open.Span.Start)
	}
	return p.expr()
}

// scope parses a statement sequence up to the token matched by endPred.
// An immediately closed scope is the empty tuple. A single expression with
// no ";" is returned unwrapped, which is how a parenthesized expression
// differs from a one-statement sequence. A trailing ";" before the end
// token appends the Empty sentinel, recording that the scope's value is
// unit.
func (p *Parser) scope(start int, endPred pred[lexer.Token]) (Expr, error) {
	if close, ok, err := eat(p, endPred); err != nil {
		return nil, err
	} else if ok {
		return &Tuple{span: lexer.Span{Start: start, End: close.Span.End}}, nil
	}

	var body []Item
	startsWithDef, err := hasPeek(p, anyKind(lexer.TokenDef))
	if err != nil {
		return nil, err
	}
	if !startsWithDef {
		first, err := p.tuple()
		if err != nil {
			return nil, err
		}
		if _, ok, err := eat(p, endPred); err != nil {
			return nil, err
		} else if ok {
			return first, nil
		}
		body = append(body, Item{Kind: ItemExpr, Expr: first})
		if _, err := require(p, tokenOf(lexer.TokenSemicolon)); err != nil {
			return nil, err
		}
	}

	semi := true
	for {
		tok, err := p.tokens.Peek()
		if err != nil {
			return nil, p.wrapLex(err)
		}
		if tok == nil {
			break
		}
		if _, ok := endPred(tok); ok {
			break
		}
		if tok.Kind == lexer.TokenDef {
			def, err := p.def()
			if err != nil {
				return nil, err
			}
			body = append(body, Item{Kind: ItemDef, Def: def})
			continue
		}

		expr, err := p.tuple()
		if err != nil {
			return nil, err
		}
		body = append(body, Item{Kind: ItemExpr, Expr: expr})
		if _, ok, err := eat(p, anyKind(lexer.TokenSemicolon)); err != nil {
			return nil, err
		} else if !ok {
			semi = false
			break
		}
		semi = true
	}
	if semi {
		body = append(body, Item{Kind: ItemEmpty})
	}

	close, err := require(p, endPred)
	if err != nil {
		return nil, err
	}
	return &Scope{
		Body: body,
		span: lexer.Span{Start: start, End: close.Span.End},
	}, nil
}

// tuple parses one or more comma-separated block expressions. A single
// expression passes through unwrapped; there is no singleton-tuple syntax.
func (p *Parser) tuple() (Expr, error) {
	first, err := p.block()
	if err != nil {
		return nil, err
	}

	hasComma, err := hasPeek(p, anyKind(lexer.TokenComma))
	if err != nil {
		return nil, err
	}
	if !hasComma {
		return first, nil
	}

	items := []Expr{first}
	for {
		if _, ok, err := eat(p, anyKind(lexer.TokenComma)); err != nil {
			return nil, err
		} else if !ok {
			break
		}
		item, err := p.block()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return &Tuple{
		Exprs: items,
		span: lexer.Span{
			Start: items[0].Span().Start,
			End:   items[len(items)-1].Span().End,
		},
	}, nil
}

// defExpr parses an expression as a definition's value and reports whether
// a terminating ";" is still required. A directly-following "{...}" or
// ".{...}" block turns the parsed expression into the parameter pattern of
// a lambda with that block as its body, and a "::" type assertion may
// follow either way.
func (p *Parser) defExpr() (Expr, bool, error) {
	a, err := p.logical()
	if err != nil {
		return nil, false, err
	}
	needsSemi := true

	if open, ok, err := eat(p, tokenOf(lexer.TokenLBrace)); err != nil {
		return nil, false, err
	} else if ok {
		body, err := p.scope(open.Span.Start, tokenOf(lexer.TokenRBrace))
		if err != nil {
			return nil, false, err
		}
		a = &Lambda{
			Arg:  a,
			Body: body,
			span: lexer.Span{Start: a.Span().Start, End: body.Span().End},
		}
		needsSemi = false
	} else if open, ok, err := eat(p, tokenOf(lexer.TokenDotLBrace)); err != nil {
		return nil, false, err
	} else if ok {
		body, err := p.objectLiteral(open.Span.Start)
		if err != nil {
			return nil, false, err
		}
		a = &Lambda{
			Arg:  a,
			Body: body,
			span: lexer.Span{Start: a.Span().Start, End: body.Span().End},
		}
		needsSemi = false
	}

	if _, ok, err := eat(p, anyKind(lexer.TokenColonColon)); err != nil {
		return nil, false, err
	} else if ok {
		b, err := p.logical()
		if err != nil {
			return nil, false, err
		}
		a = &TypeAssertion{
			Value: a,
			Type:  b,
			span:  lexer.Span{Start: a.Span().Start, End: b.Span().End},
		}
		needsSemi = true
	}

	return a, needsSemi, nil
}

// expr is the general expression entry point. It follows the same
// lambda-sugar and type-assertion rules as defExpr.
func (p *Parser) expr() (Expr, error) {
	e, _, err := p.defExpr()
	return e, err
}

func (p *Parser) logical() (Expr, error) {
	return p.binOp((*Parser).equal, logicalOps)
}

func (p *Parser) equal() (Expr, error) {
	return p.binOp((*Parser).cmp, equalOps)
}

func (p *Parser) cmp() (Expr, error) {
	return p.binOp((*Parser).terms, cmpOps)
}

func (p *Parser) terms() (Expr, error) {
	return p.binOp((*Parser).factors, termOps)
}

func (p *Parser) factors() (Expr, error) {
	return p.binOp((*Parser).prefix, factorOps)
}

// binOp is the uniform left-associative binary layer: one operand at the
// tighter level, then repeated operator+operand, left-folding the result.
func (p *Parser) binOp(next func(*Parser) (Expr, error), ops pred[BinOp]) (Expr, error) {
	a, err := next(p)
	if err != nil {
		return nil, err
	}

	for {
		op, ok, err := eat(p, ops)
		if err != nil {
			return nil, err
		}
		if !ok {
			return a, nil
		}
		b, err := next(p)
		if err != nil {
			return nil, err
		}
		a = &Binary{
			Op:   op,
			LHS:  a,
			RHS:  b,
			span: lexer.Span{Start: a.Span().Start, End: b.Span().End},
		}
	}
}

func (p *Parser) prefix() (Expr, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	op, ok, err := eat(p, prefixOps)
	if err != nil {
		return nil, err
	}
	if !ok {
		return p.suffix()
	}

	arg, err := p.prefix()
	if err != nil {
		return nil, err
	}
	return &Unary{
		Op:   op.op,
		Arg:  arg,
		span: lexer.Span{Start: op.span.Start, End: arg.Span().End},
	}, nil
}

// suffix parses an atom followed by any number of postfix forms: "^"
// dereference, ".name" field access, or another atom as a juxtaposed
// application argument. Applications left-associate.
func (p *Parser) suffix() (Expr, error) {
	a, ok, err := p.maybeAtom(true)
	if err != nil {
		return nil, err
	}
	if !ok {
		tok, err := p.tokens.Peek()
		if err != nil {
			return nil, p.wrapLex(err)
		}
		return nil, p.unexpectedToken(tok)
	}

	for {
		if caret, ok, err := eat(p, tokenOf(lexer.TokenCaret)); err != nil {
			return nil, err
		} else if ok {
			a = &Unary{
				Op:   UnOpDeref,
				Arg:  a,
				span: lexer.Span{Start: a.Span().Start, End: caret.Span.End},
			}
			continue
		}

		if _, ok, err := eat(p, anyKind(lexer.TokenDot)); err != nil {
			return nil, err
		} else if ok {
			prop, err := require(p, namePred)
			if err != nil {
				return nil, err
			}
			a = &Access{
				Expr: a,
				Prop: prop.name,
				span: lexer.Span{Start: a.Span().Start, End: prop.span.End},
			}
			continue
		}

		// A "|" after an expression belongs to an enclosing variant
		// literal, never to a juxtaposed application argument, so that
		// "|Ok: 1 |Err: 2" stays two sibling items.
		arg, ok, err := p.maybeAtom(false)
		if err != nil {
			return nil, err
		}
		if !ok {
			return a, nil
		}
		a = &Apply{
			Fn:   a,
			Arg:  arg,
			span: lexer.Span{Start: a.Span().Start, End: arg.Span().End},
		}
	}
}

// maybeAtom parses one atom or reports absence; callers decide whether
// absence is fatal. Variant literals are only atoms in leading position,
// controlled by allowVariant.
func (p *Parser) maybeAtom(allowVariant bool) (Expr, bool, error) {
	if err := p.enter(); err != nil {
		return nil, false, err
	}
	defer p.leave()

	if open, ok, err := eat(p, tokenOf(lexer.TokenLParen)); err != nil {
		return nil, false, err
	} else if ok {
		scope, err := p.scope(open.Span.Start, tokenOf(lexer.TokenRParen))
		if err != nil {
			return nil, false, err
		}
		return scope, true, nil
	}

	isVariant, err := hasPeek(p, anyKind(lexer.TokenPipe))
	if err != nil {
		return nil, false, err
	}
	if isVariant {
		if !allowVariant {
			return nil, false, nil
		}
		variant, err := p.variant()
		if err != nil {
			return nil, false, err
		}
		return variant, true, nil
	}

	atom, ok, err := eat(p, atomPred)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	return atom, true, nil
}

// variant parses "|Tag" and "|Tag: expr" items. The caller's lookahead
// guarantees at least one "|"; the guard below turns a violated
// precondition into an error instead of an unchecked assumption.
func (p *Parser) variant() (Expr, error) {
	var items []VariantItem
	for {
		pipe, ok, err := eat(p, tokenOf(lexer.TokenPipe))
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		name, err := require(p, namePred)
		if err != nil {
			return nil, err
		}

		end := name.span.End
		var value Expr
		if _, ok, err := eat(p, anyKind(lexer.TokenColon)); err != nil {
			return nil, err
		} else if ok {
			value, err = p.expr()
			if err != nil {
				return nil, err
			}
			end = value.Span().End
		}

		items = append(items, VariantItem{
			Name:  name.name,
			Value: value,
			Span:  lexer.Span{Start: pipe.Span.Start, End: end},
		})
	}

	if len(items) == 0 {
		return nil, &ParseError{File: p.file, Msg: "variant literal requires at least one '|' item"}
	}
	return &Variant{
		Items: items,
		span: lexer.Span{
			Start: items[0].Span.Start,
			End:   items[len(items)-1].Span.End,
		},
	}, nil
}

func (p *Parser) enter() error {
	p.depth++
	if p.depth > p.maxDepth {
		return &ParseError{
			File: p.file,
			Msg:  fmt.Sprintf("expression nesting exceeds depth limit %d", p.maxDepth),
		}
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

func (p *Parser) wrapLex(err error) error {
	pe := &ParseError{File: p.file, Err: err}
	if lexErr, ok := err.(*lexer.Error); ok {
		pe.Span = lexErr.Span
	}
	return pe
}

// unexpectedToken records the actually peeked token; tok may be nil when
// the stream ended.
func (p *Parser) unexpectedToken(tok *lexer.Token) error {
	pe := &ParseError{File: p.file, Token: tok}
	if tok != nil {
		span := tok.Span
		pe.Span = &span
	}
	return pe
}

// hasPeek reports whether a token exists and matches pr. Never consumes.
func hasPeek[T any](p *Parser, pr pred[T]) (bool, error) {
	tok, err := p.tokens.Peek()
	if err != nil {
		return false, p.wrapLex(err)
	}
	if tok == nil {
		return false, nil
	}
	_, ok := pr(tok)
	return ok, nil
}

// eat consumes and extracts from the peeked token if it matches pr. Never
// consumes on a non-match.
func eat[T any](p *Parser, pr pred[T]) (T, bool, error) {
	var zero T
	tok, err := p.tokens.Peek()
	if err != nil {
		return zero, false, p.wrapLex(err)
	}
	if tok == nil {
		return zero, false, nil
	}
	v, ok := pr(tok)
	if !ok {
		return zero, false, nil
	}
	if _, err := p.tokens.Next(); err != nil {
		return zero, false, p.wrapLex(err)
	}
	return v, true, nil
}

// require is eat with a non-match or stream exhaustion promoted to a hard
// parse error.
func require[T any](p *Parser, pr pred[T]) (T, error) {
	v, ok, err := maybeRequire(p, pr)
	if err != nil {
		var zero T
		return zero, err
	}
	if !ok {
		var zero T
		return zero, p.unexpectedToken(nil)
	}
	return v, nil
}

// maybeRequire is require except that stream exhaustion yields absence
// rather than an error. Used only where end of input is itself a legal
// terminator.
func maybeRequire[T any](p *Parser, pr pred[T]) (T, bool, error) {
	var zero T
	tok, err := p.tokens.Peek()
	if err != nil {
		return zero, false, p.wrapLex(err)
	}
	if tok == nil {
		return zero, false, nil
	}
	v, ok := pr(tok)
	if !ok {
		return zero, false, p.unexpectedToken(tok)
	}
	if _, err := p.tokens.Next(); err != nil {
		return zero, false, p.wrapLex(err)
	}
	return v, true, nil
}
