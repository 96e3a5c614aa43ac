package parser

import "unsafe"

// scopeItemOverhead is the fixed bookkeeping cost charged for every item of
// a scope body, whether it is an expression, a definition, or the Empty
// sentinel.
const scopeItemOverhead = 8

// ASTSize estimates the in-memory footprint of a subtree in bytes. Every
// node contributes the size of its own record plus its owned children;
// interned text contributes its byte length. The result is diagnostic
// output only, it has no bearing on parsing.
func ASTSize(e Expr) int {
	if e == nil {
		return 0
	}
	switch n := e.(type) {
	case *Object:
		size := int(unsafe.Sizeof(*n))
		for i := range n.Definitions {
			size += defSize(&n.Definitions[i])
		}
		return size
	case *Scope:
		size := int(unsafe.Sizeof(*n))
		for i := range n.Body {
			item := &n.Body[i]
			switch item.Kind {
			case ItemExpr:
				size += ASTSize(item.Expr) + scopeItemOverhead
			case ItemDef:
				size += defSize(&item.Def) + scopeItemOverhead
			case ItemEmpty:
				size += scopeItemOverhead
			}
		}
		return size
	case *Lambda:
		return int(unsafe.Sizeof(*n)) + ASTSize(n.Arg) + ASTSize(n.Body)
	case *SqLambda:
		return int(unsafe.Sizeof(*n)) + ASTSize(n.Arg) + ASTSize(n.Expr)
	case *Binary:
		return int(unsafe.Sizeof(*n)) + ASTSize(n.LHS) + ASTSize(n.RHS)
	case *Unary:
		return int(unsafe.Sizeof(*n)) + ASTSize(n.Arg)
	case *Access:
		return int(unsafe.Sizeof(*n)) + ASTSize(n.Expr) + n.Prop.Len()
	case *Case:
		return int(unsafe.Sizeof(*n)) + ASTSize(n.Cond) + ASTSize(n.OnTrue) + ASTSize(n.OnFalse)
	case *Tuple:
		size := int(unsafe.Sizeof(*n))
		for _, expr := range n.Exprs {
			size += ASTSize(expr)
		}
		return size
	case *Apply:
		return int(unsafe.Sizeof(*n)) + ASTSize(n.Fn) + ASTSize(n.Arg)
	case *TypeAssertion:
		return int(unsafe.Sizeof(*n)) + ASTSize(n.Value) + ASTSize(n.Type)
	case *Variant:
		size := int(unsafe.Sizeof(*n))
		for i := range n.Items {
			size += variantItemSize(&n.Items[i])
		}
		return size
	case *Ident:
		return int(unsafe.Sizeof(*n)) + n.Name.Len()
	case *Literal:
		size := int(unsafe.Sizeof(*n))
		if n.Kind == LitString {
			size += n.Str.Len()
		}
		return size
	default:
		return 0
	}
}

func defSize(def *Def) int {
	return int(unsafe.Sizeof(*def)) + def.Name.Len() + ASTSize(def.Value)
}

func variantItemSize(item *VariantItem) int {
	return int(unsafe.Sizeof(*item)) + ASTSize(item.Value)
}
