package parser

import (
	"testing"
	"unsafe"
)

func TestASTSizeNil(t *testing.T) {
	if got := ASTSize(nil); got != 0 {
		t.Errorf("got %d, want 0", got)
	}
}

func TestASTSizeDeterministic(t *testing.T) {
	input := "def f x { x + 1; f x; }"
	a := ASTSize(parseProgram(t, input))
	b := ASTSize(parseProgram(t, input))
	if a != b {
		t.Errorf("same input produced sizes %d and %d", a, b)
	}
	if a <= 0 {
		t.Errorf("got %d, want positive size", a)
	}
}

func TestASTSizeGrowsWithTree(t *testing.T) {
	small := ASTSize(parseProgram(t, "def a = 1;"))
	large := ASTSize(parseProgram(t, "def a = 1; def b = a + a * a; def c = (a; b; a + b;);"))
	if large <= small {
		t.Errorf("larger tree reported %d, smaller %d", large, small)
	}
}

func TestASTSizeCountsInternedText(t *testing.T) {
	short := ASTSize(parseFragment(t, `"ab"`))
	long := ASTSize(parseFragment(t, `"abcdefgh"`))
	if long-short != 6 {
		t.Errorf("string growth of 6 bytes changed size by %d", long-short)
	}

	shortName := ASTSize(parseFragment(t, "ab"))
	longName := ASTSize(parseFragment(t, "abcdefgh"))
	if longName-shortName != 6 {
		t.Errorf("name growth of 6 bytes changed size by %d", longName-shortName)
	}
}

func TestASTSizeChargesScopeItems(t *testing.T) {
	// The trailing ";" adds only the Empty sentinel's bookkeeping.
	plain := ASTSize(parseFragment(t, "(a; b)"))
	trailing := ASTSize(parseFragment(t, "(a; b;)"))
	if trailing-plain != scopeItemOverhead {
		t.Errorf("empty item changed size by %d, want %d", trailing-plain, scopeItemOverhead)
	}
}

func TestASTSizeLeaf(t *testing.T) {
	e := parseFragment(t, "42")
	lit := e.(*Literal)
	if got, want := ASTSize(e), int(unsafe.Sizeof(*lit)); got != want {
		t.Errorf("got %d, want %d", got, want)
	}
}
