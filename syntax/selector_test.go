package syntax_test

import (
	"testing"

	"csscompare/syntax"
)

func TestParseComplexSelector_Simple(t *testing.T) {
	cs := syntax.ParseComplexSelector("div.x#id")
	if len(cs.Sequences) != 1 {
		t.Fatalf("got %d sequences, want 1", len(cs.Sequences))
	}
	members := cs.Sequences[0].Members
	if len(members) != 3 {
		t.Fatalf("got %d members, want 3: %+v", len(members), members)
	}
	if members[0].Kind != syntax.Element || members[0].Text != "div" {
		t.Errorf("member 0 = %+v", members[0])
	}
	if members[1].Kind != syntax.Class || members[1].Text != ".x" {
		t.Errorf("member 1 = %+v", members[1])
	}
	if members[2].Kind != syntax.Id || members[2].Text != "#id" {
		t.Errorf("member 2 = %+v", members[2])
	}
}

func TestParseComplexSelector_Descendant(t *testing.T) {
	cs := syntax.ParseComplexSelector(".a .b")
	if len(cs.Sequences) != 2 {
		t.Fatalf("got %d sequences, want 2", len(cs.Sequences))
	}
	if len(cs.Combinators) != 1 || cs.Combinators[0] != " " {
		t.Errorf("combinators = %+v", cs.Combinators)
	}
}

func TestParseComplexSelector_Child(t *testing.T) {
	cs := syntax.ParseComplexSelector("ul > li")
	if len(cs.Combinators) != 1 || cs.Combinators[0] != ">" {
		t.Errorf("combinators = %+v", cs.Combinators)
	}
}

func TestParseComplexSelector_AttributeGlue(t *testing.T) {
	cs := syntax.ParseComplexSelector(`a[href]`)
	members := cs.Sequences[0].Members
	if len(members) != 1 {
		t.Fatalf("got %d members, want 1 (attribute glued): %+v", len(members), members)
	}
	if members[0].Kind != syntax.Element || len(members[0].Attributes) != 1 {
		t.Errorf("member = %+v", members[0])
	}
}

func TestParseComplexSelector_BareAttribute(t *testing.T) {
	cs := syntax.ParseComplexSelector(`[disabled]`)
	members := cs.Sequences[0].Members
	if len(members) != 1 || members[0].Kind != syntax.Attribute {
		t.Errorf("members = %+v", members)
	}
}

func TestParseComplexSelector_PseudoFunctional(t *testing.T) {
	cs := syntax.ParseComplexSelector(`li:nth-child(2n+1)`)
	members := cs.Sequences[0].Members
	if len(members) != 2 || members[1].Kind != syntax.Pseudo {
		t.Fatalf("members = %+v", members)
	}
	if members[1].Text != ":nth-child(2n+1)" {
		t.Errorf("pseudo text = %q", members[1].Text)
	}
}

func TestParseComplexSelector_NotCommaNotSplit(t *testing.T) {
	cs := syntax.ParseComplexSelector(`:not(.a, .b)`)
	if len(cs.Sequences) != 1 {
		t.Fatalf("got %d sequences, want 1 (comma inside :not() must not split)", len(cs.Sequences))
	}
}
