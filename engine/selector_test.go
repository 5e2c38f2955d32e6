package engine_test

import (
	"testing"

	"csscompare/engine"
	"csscompare/syntax"
)

func canon(t *testing.T, selectorText string) string {
	t.Helper()
	sheet, err := syntax.NewParser(nil).Parse([]byte(selectorText + " { color: red; }"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	rule := sheet.Children[0].Rule
	if len(rule.Members) != 1 {
		t.Fatalf("expected 1 member, got %d", len(rule.Members))
	}
	return engine.Canonicalize(rule.Members[0])
}

func TestCanonicalize_DedupesAndSortsWithinSequence(t *testing.T) {
	a := canon(t, ".b.a.b")
	b := canon(t, ".a.b")
	if a != b {
		t.Errorf("canonicalize(.b.a.b) = %q, canonicalize(.a.b) = %q, want equal", a, b)
	}
}

func TestCanonicalize_OrderAcrossBuckets(t *testing.T) {
	a := canon(t, ".foo#bar")
	b := canon(t, "#bar.foo")
	if a != b {
		t.Errorf("id/class order should not matter: %q != %q", a, b)
	}
}

func TestCanonicalize_Idempotent(t *testing.T) {
	once := canon(t, ".b.a#x")
	sheet, err := syntax.NewParser(nil).Parse([]byte(once + " { color: red; }"))
	if err != nil {
		t.Fatalf("reparse canonical form: %v", err)
	}
	twice := engine.Canonicalize(sheet.Children[0].Rule.Members[0])
	if once != twice {
		t.Errorf("canonicalize is not idempotent: %q != %q", once, twice)
	}
}

func TestCanonicalize_PreservesCombinators(t *testing.T) {
	a := canon(t, "div > .child")
	b := canon(t, "div .child")
	if a == b {
		t.Error("expected combinator to distinguish descendant from child selector")
	}
}

func TestSelector_Equal_StrictKeySet(t *testing.T) {
	a := evalSheet(t, `a { color: red; }`)
	b := evalSheet(t, `a { color: red; background: blue; }`)
	if a.Selectors["a"].Equal(b.Selectors["a"]) {
		t.Error("expected a selector with an extra property to be unequal (strict key-set equality)")
	}
}
