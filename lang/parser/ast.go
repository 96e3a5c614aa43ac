package parser

import (
	"github.com/invpt/radi/lang/intern"
	"github.com/invpt/radi/lang/lexer"
)

// Expr is one node of the syntax tree. Every node carries the byte span of
// the source text it was parsed from. The tree is a strict ownership tree:
// each parent exclusively owns its children and nothing is shared.
type Expr interface {
	Span() lexer.Span
	exprNode()
}

var (
	_ Expr = (*Object)(nil)
	_ Expr = (*Scope)(nil)
	_ Expr = (*Lambda)(nil)
	_ Expr = (*SqLambda)(nil)
	_ Expr = (*Binary)(nil)
	_ Expr = (*Unary)(nil)
	_ Expr = (*Access)(nil)
	_ Expr = (*Case)(nil)
	_ Expr = (*Tuple)(nil)
	_ Expr = (*Apply)(nil)
	_ Expr = (*TypeAssertion)(nil)
	_ Expr = (*Variant)(nil)
	_ Expr = (*Ident)(nil)
	_ Expr = (*Literal)(nil)
)

// Def is one named binding, inside an object or a scope.
type Def struct {
	Name  intern.Symbol
	Value Expr
	Span  lexer.Span
}

// VariantItem is one "|Tag" or "|Tag: value" alternative of a variant
// literal.
type VariantItem struct {
	Name  intern.Symbol
	Value Expr // nil when the item carries no value
	Span  lexer.Span
}

type ItemKind int

const (
	// ItemExpr is a sequenced expression statement.
	ItemExpr ItemKind = iota
	// ItemDef is a definition statement.
	ItemDef
	// ItemEmpty marks that the scope's last statement was terminated with
	// ";" rather than yielded, so the scope's value is unit.
	ItemEmpty
)

// Item is one element of a Scope body.
type Item struct {
	Kind ItemKind
	Expr Expr
	Def  Def
}

// Object is an unordered bag of named bindings. Insertion order is kept for
// determinism only.
type Object struct {
	Definitions []Def
	span        lexer.Span
}

// Scope is a sequential block, optionally ending in a tail value.
type Scope struct {
	Body []Item
	span lexer.Span
}

// Lambda pairs a parameter pattern with a block or object body.
type Lambda struct {
	Arg  Expr
	Body Expr
	span lexer.Span
}

// SqLambda is a reserved node kind. No concrete syntax produces it yet.
type SqLambda struct {
	Arg  Expr
	Expr Expr
	span lexer.Span
}

type Binary struct {
	Op   BinOp
	LHS  Expr
	RHS  Expr
	span lexer.Span
}

type Unary struct {
	Op   UnOp
	Arg  Expr
	span lexer.Span
}

// Access is a field projection, "expr.name".
type Access struct {
	Expr Expr
	Prop intern.Symbol
	span lexer.Span
}

// Case is a reserved conditional node kind. No concrete syntax produces it
// yet.
type Case struct {
	Cond    Expr
	OnTrue  Expr
	OnFalse Expr
	span    lexer.Span
}

// Tuple holds two or more comma-joined expressions, or zero for the unit
// value. Single expressions are never wrapped.
type Tuple struct {
	Exprs []Expr
	span  lexer.Span
}

// Apply is function application by juxtaposition, "f x".
type Apply struct {
	Fn   Expr
	Arg  Expr
	span lexer.Span
}

// TypeAssertion is "value :: type".
type TypeAssertion struct {
	Value Expr
	Type  Expr
	span  lexer.Span
}

// Variant is a non-empty list of tagged alternatives.
type Variant struct {
	Items []VariantItem
	span  lexer.Span
}

type Ident struct {
	Name intern.Symbol
	span lexer.Span
}

type LitKind int

const (
	LitFloat LitKind = iota
	LitInteger
	LitString
)

type Literal struct {
	Kind  LitKind
	Float float64
	Int   int64
	Str   intern.Symbol
	span  lexer.Span
}

func (e *Object) Span() lexer.Span        { return e.span }
func (e *Scope) Span() lexer.Span         { return e.span }
func (e *Lambda) Span() lexer.Span        { return e.span }
func (e *SqLambda) Span() lexer.Span      { return e.span }
func (e *Binary) Span() lexer.Span        { return e.span }
func (e *Unary) Span() lexer.Span         { return e.span }
func (e *Access) Span() lexer.Span        { return e.span }
func (e *Case) Span() lexer.Span          { return e.span }
func (e *Tuple) Span() lexer.Span         { return e.span }
func (e *Apply) Span() lexer.Span         { return e.span }
func (e *TypeAssertion) Span() lexer.Span { return e.span }
func (e *Variant) Span() lexer.Span       { return e.span }
func (e *Ident) Span() lexer.Span         { return e.span }
func (e *Literal) Span() lexer.Span       { return e.span }

func (*Object) exprNode()        {}
func (*Scope) exprNode()         {}
func (*Lambda) exprNode()        {}
func (*SqLambda) exprNode()      {}
func (*Binary) exprNode()        {}
func (*Unary) exprNode()         {}
func (*Access) exprNode()        {}
func (*Case) exprNode()          {}
func (*Tuple) exprNode()         {}
func (*Apply) exprNode()         {}
func (*TypeAssertion) exprNode() {}
func (*Variant) exprNode()       {}
func (*Ident) exprNode()         {}
func (*Literal) exprNode()       {}

type BinOp int

const (
	BinOpAdd BinOp = iota
	BinOpSub
	BinOpMul
	BinOpDiv
	BinOpMod
	BinOpGt
	BinOpGtEq
	BinOpLt
	BinOpLtEq
	BinOpEqual
	BinOpNotEqual
	BinOpAnd
	BinOpOr
)

var binOpNames = map[BinOp]string{
	BinOpAdd:      "+",
	BinOpSub:      "-",
	BinOpMul:      "*",
	BinOpDiv:      "/",
	BinOpMod:      "%",
	BinOpGt:       ">",
	BinOpGtEq:     ">=",
	BinOpLt:       "<",
	BinOpLtEq:     "<=",
	BinOpEqual:    "==",
	BinOpNotEqual: "!=",
	BinOpAnd:      "&&",
	BinOpOr:       "||",
}

func (op BinOp) String() string {
	if name, ok := binOpNames[op]; ok {
		return name
	}
	return "unknown"
}

type UnOp int

const (
	UnOpNot UnOp = iota
	UnOpSet
	UnOpVal
	UnOpRef
	UnOpDeref
)

var unOpNames = map[UnOp]string{
	UnOpNot:   "!",
	UnOpSet:   "set",
	UnOpVal:   "val",
	UnOpRef:   "^",
	UnOpDeref: "^ (deref)",
}

func (op UnOp) String() string {
	if name, ok := unOpNames[op]; ok {
		return name
	}
	return "unknown"
}
