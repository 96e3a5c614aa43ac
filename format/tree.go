package format

import (
	"fmt"
	"strings"

	"github.com/invpt/radi/lang/parser"
)

// KindName returns the node-kind label used by both the JSON encoding and
// the debug dump.
func KindName(e parser.Expr) string {
	switch e.(type) {
	case *parser.Object:
		return "Object"
	case *parser.Scope:
		return "Scope"
	case *parser.Lambda:
		return "Lambda"
	case *parser.SqLambda:
		return "SqLambda"
	case *parser.Binary:
		return "BinOp"
	case *parser.Unary:
		return "UnOp"
	case *parser.Access:
		return "Access"
	case *parser.Case:
		return "Case"
	case *parser.Tuple:
		return "Tuple"
	case *parser.Apply:
		return "Apply"
	case *parser.TypeAssertion:
		return "TypeAssertion"
	case *parser.Variant:
		return "Variant"
	case *parser.Ident:
		return "Ident"
	case *parser.Literal:
		return "Literal"
	default:
		return "Unknown"
	}
}

// Tree renders an indented one-node-per-line dump of the tree.
func Tree(expr parser.Expr) string {
	return tree(expr, false)
}

// TreeWithSpans is Tree with every node's byte span appended.
func TreeWithSpans(expr parser.Expr) string {
	return tree(expr, true)
}

func tree(expr parser.Expr, spans bool) string {
	var sb strings.Builder
	writeExpr(&sb, expr, 0, spans)
	return sb.String()
}

func indent(sb *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		sb.WriteString("  ")
	}
}

func writeLine(sb *strings.Builder, depth int, label string, spanStr string) {
	indent(sb, depth)
	sb.WriteString(label)
	if spanStr != "" {
		sb.WriteString(" [" + spanStr + "]")
	}
	sb.WriteByte('\n')
}

func writeExpr(sb *strings.Builder, e parser.Expr, depth int, spans bool) {
	if e == nil {
		return
	}
	label := KindName(e)
	switch n := e.(type) {
	case *parser.Binary:
		label += " " + n.Op.String()
	case *parser.Unary:
		label += " " + n.Op.String()
	case *parser.Access:
		label += " ." + n.Prop.Text()
	case *parser.Ident:
		label += " " + n.Name.Text()
	case *parser.Literal:
		switch n.Kind {
		case parser.LitFloat:
			label += fmt.Sprintf(" %v", n.Float)
		case parser.LitInteger:
			label += fmt.Sprintf(" %d", n.Int)
		case parser.LitString:
			label += fmt.Sprintf(" %q", n.Str.Text())
		}
	}
	spanStr := ""
	if spans {
		spanStr = e.Span().String()
	}
	writeLine(sb, depth, label, spanStr)

	switch n := e.(type) {
	case *parser.Object:
		for i := range n.Definitions {
			writeDef(sb, &n.Definitions[i], depth+1, spans)
		}
	case *parser.Scope:
		for i := range n.Body {
			item := &n.Body[i]
			switch item.Kind {
			case parser.ItemExpr:
				writeExpr(sb, item.Expr, depth+1, spans)
			case parser.ItemDef:
				writeDef(sb, &item.Def, depth+1, spans)
			case parser.ItemEmpty:
				writeLine(sb, depth+1, "Empty", "")
			}
		}
	case *parser.Lambda:
		writeExpr(sb, n.Arg, depth+1, spans)
		writeExpr(sb, n.Body, depth+1, spans)
	case *parser.SqLambda:
		writeExpr(sb, n.Arg, depth+1, spans)
		writeExpr(sb, n.Expr, depth+1, spans)
	case *parser.Binary:
		writeExpr(sb, n.LHS, depth+1, spans)
		writeExpr(sb, n.RHS, depth+1, spans)
	case *parser.Unary:
		writeExpr(sb, n.Arg, depth+1, spans)
	case *parser.Access:
		writeExpr(sb, n.Expr, depth+1, spans)
	case *parser.Case:
		writeExpr(sb, n.Cond, depth+1, spans)
		writeExpr(sb, n.OnTrue, depth+1, spans)
		writeExpr(sb, n.OnFalse, depth+1, spans)
	case *parser.Tuple:
		for _, expr := range n.Exprs {
			writeExpr(sb, expr, depth+1, spans)
		}
	case *parser.Apply:
		writeExpr(sb, n.Fn, depth+1, spans)
		writeExpr(sb, n.Arg, depth+1, spans)
	case *parser.TypeAssertion:
		writeExpr(sb, n.Value, depth+1, spans)
		writeExpr(sb, n.Type, depth+1, spans)
	case *parser.Variant:
		for i := range n.Items {
			item := &n.Items[i]
			indent(sb, depth+1)
			sb.WriteString("VariantItem " + item.Name.Text())
			if spans {
				sb.WriteString(" [" + item.Span.String() + "]")
			}
			sb.WriteByte('\n')
			if item.Value != nil {
				writeExpr(sb, item.Value, depth+2, spans)
			}
		}
	}
}

func writeDef(sb *strings.Builder, def *parser.Def, depth int, spans bool) {
	indent(sb, depth)
	sb.WriteString("Def " + def.Name.Text())
	if spans {
		sb.WriteString(" [" + def.Span.String() + "]")
	}
	sb.WriteByte('\n')
	writeExpr(sb, def.Value, depth+1, spans)
}
