// Package format renders parsed radi trees for tooling: a JSON encoding
// with kinds and spans, and an indented debug dump. Neither is a source
// round-trip; both are diagnostics output.
package format

import (
	"encoding/json"
	"io"

	"github.com/invpt/radi/lang/parser"
)

type ASTJSONEncoder struct {
	w io.Writer
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(expr parser.Expr) error {
	text, err := e.MarshalText(expr)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *ASTJSONEncoder) MarshalText(expr parser.Expr) ([]byte, error) {
	return json.MarshalIndent(exprToJSON(expr), "", "  ")
}

type astJSONNode struct {
	Kind     string         `json:"kind"`
	Span     *astJSONSpan   `json:"span,omitempty"`
	Name     string         `json:"name,omitempty"`
	Op       string         `json:"op,omitempty"`
	Value    any            `json:"value,omitempty"`
	Children []*astJSONNode `json:"children,omitempty"`
}

type astJSONSpan struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func spanToJSON(e parser.Expr) *astJSONSpan {
	span := e.Span()
	return &astJSONSpan{Start: span.Start, End: span.End}
}

func exprToJSON(e parser.Expr) *astJSONNode {
	if e == nil {
		return nil
	}
	jn := &astJSONNode{Kind: KindName(e), Span: spanToJSON(e)}

	switch n := e.(type) {
	case *parser.Object:
		for i := range n.Definitions {
			jn.Children = append(jn.Children, defToJSON(&n.Definitions[i]))
		}
	case *parser.Scope:
		for i := range n.Body {
			jn.Children = append(jn.Children, itemToJSON(&n.Body[i]))
		}
	case *parser.Lambda:
		jn.Children = append(jn.Children, exprToJSON(n.Arg), exprToJSON(n.Body))
	case *parser.SqLambda:
		jn.Children = append(jn.Children, exprToJSON(n.Arg), exprToJSON(n.Expr))
	case *parser.Binary:
		jn.Op = n.Op.String()
		jn.Children = append(jn.Children, exprToJSON(n.LHS), exprToJSON(n.RHS))
	case *parser.Unary:
		jn.Op = n.Op.String()
		jn.Children = append(jn.Children, exprToJSON(n.Arg))
	case *parser.Access:
		jn.Name = n.Prop.Text()
		jn.Children = append(jn.Children, exprToJSON(n.Expr))
	case *parser.Case:
		jn.Children = append(jn.Children, exprToJSON(n.Cond), exprToJSON(n.OnTrue), exprToJSON(n.OnFalse))
	case *parser.Tuple:
		for _, expr := range n.Exprs {
			jn.Children = append(jn.Children, exprToJSON(expr))
		}
	case *parser.Apply:
		jn.Children = append(jn.Children, exprToJSON(n.Fn), exprToJSON(n.Arg))
	case *parser.TypeAssertion:
		jn.Children = append(jn.Children, exprToJSON(n.Value), exprToJSON(n.Type))
	case *parser.Variant:
		for i := range n.Items {
			jn.Children = append(jn.Children, variantItemToJSON(&n.Items[i]))
		}
	case *parser.Ident:
		jn.Name = n.Name.Text()
	case *parser.Literal:
		switch n.Kind {
		case parser.LitFloat:
			jn.Value = n.Float
		case parser.LitInteger:
			jn.Value = n.Int
		case parser.LitString:
			jn.Value = n.Str.Text()
		}
	}
	return jn
}

func defToJSON(def *parser.Def) *astJSONNode {
	return &astJSONNode{
		Kind:     "Def",
		Span:     &astJSONSpan{Start: def.Span.Start, End: def.Span.End},
		Name:     def.Name.Text(),
		Children: []*astJSONNode{exprToJSON(def.Value)},
	}
}

func itemToJSON(item *parser.Item) *astJSONNode {
	switch item.Kind {
	case parser.ItemExpr:
		return exprToJSON(item.Expr)
	case parser.ItemDef:
		return defToJSON(&item.Def)
	default:
		return &astJSONNode{Kind: "Empty"}
	}
}

func variantItemToJSON(item *parser.VariantItem) *astJSONNode {
	jn := &astJSONNode{
		Kind: "VariantItem",
		Span: &astJSONSpan{Start: item.Span.Start, End: item.Span.End},
		Name: item.Name.Text(),
	}
	if item.Value != nil {
		jn.Children = append(jn.Children, exprToJSON(item.Value))
	}
	return jn
}
