package engine_test

import "testing"

func TestPage_DirectDeclarationsGoToAllMargin(t *testing.T) {
	m := evalSheet(t, `@page { margin: 1in; }`)
	ps, ok := m.Pages[""]
	if !ok {
		t.Fatal("expected page selector with empty text")
	}
	box, ok := ps.MarginBoxes["@all"]
	if !ok {
		t.Fatal("expected synthetic @all margin box")
	}
	v := box.Properties["margin"].Bindings["all"]
	if v.Literal != "1in" {
		t.Errorf("margin = %q, want 1in", v.Literal)
	}
}

func TestPage_NamedMarginBox(t *testing.T) {
	m := evalSheet(t, `@page { @top-left-corner { content: "x"; } }`)
	ps := m.Pages[""]
	box, ok := ps.MarginBoxes["top-left-corner"]
	if !ok {
		t.Fatalf("expected margin box 'top-left-corner', have %v", keysOf(ps.MarginBoxes))
	}
	v := box.Properties["content"].Bindings["all"]
	if v.Literal != `"x"` {
		t.Errorf("content = %q", v.Literal)
	}
}

func TestPage_SizeDropsUnderLayoutCondition(t *testing.T) {
	m := evalSheet(t, `@media (orientation: landscape) {
		@page { size: landscape; }
	}`)
	ps := m.Pages[""]
	box := ps.MarginBoxes["@all"]
	if _, ok := box.Properties["size"]; ok {
		t.Error("expected size binding to be dropped entirely under a layout-term condition")
	}
}

func TestPage_CommaSplitSelectors(t *testing.T) {
	m := evalSheet(t, `@page :first, :left { margin: 2in; }`)
	if _, ok := m.Pages[":first"]; !ok {
		t.Error("expected page selector ':first'")
	}
	if _, ok := m.Pages[":left"]; !ok {
		t.Error("expected page selector ':left'")
	}
}
