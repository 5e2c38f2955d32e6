package engine

import (
	"sort"
	"strings"

	"csscompare/syntax"
	"csscompare/value"
)

// Selector is the `{ canonical_name, properties }` entity of spec §3.
// Identity is by CanonicalName (§4.2).
type Selector struct {
	CanonicalName string
	Properties    map[string]*Property
}

func newSelector(canonicalName string) *Selector {
	return &Selector{CanonicalName: canonicalName, Properties: make(map[string]*Property)}
}

// AddProperty merges a single (name, value, condition) binding into the
// selector, creating the Property entry on first use.
func (s *Selector) AddProperty(name string, v value.Value, condition string) {
	p, ok := s.Properties[name]
	if !ok {
		p = newProperty(name)
		s.Properties[name] = p
	}
	p.Merge(condition, v)
}

// Clone returns a deep copy sharing no state with s.
func (s *Selector) Clone() *Selector {
	out := newSelector(s.CanonicalName)
	for name, p := range s.Properties {
		out.Properties[name] = p.Clone()
	}
	return out
}

// Equal compares two selectors structurally (spec §4.9): same property
// names, pairwise equal Property values. CanonicalName is the map key
// the caller already matched on, so it is not re-checked here.
func (s *Selector) Equal(other *Selector) bool {
	if s == nil || other == nil {
		return s == other
	}
	return equalMaps(s.Properties, other.Properties, (*Property).Equal)
}

// Canonicalize implements spec §4.2's Selector Canonicalizer: bucketize
// simple-selector-sequence members by type in fixed order, dedup+sort
// within each bucket, and keep each combinator between sequences, written
// as a single space for a descendant combinator and as " > ", " + " or
// " ~ " otherwise.
//
// Grounded on the teacher's parseSimpleSelector/parseDescendantSelector
// (css/parser.go), which recognized only element/class/pseudo-element and
// rejected combinators/attributes outright; this generalizes that
// approach to the full bucketized-canonicalization algorithm spec.md's
// equivalence semantics require.
func Canonicalize(cs syntax.ComplexSelector) string {
	var b strings.Builder
	for i, seq := range cs.Sequences {
		if i > 0 && i-1 < len(cs.Combinators) {
			comb := cs.Combinators[i-1]
			if comb == " " {
				b.WriteString(" ")
			} else {
				b.WriteString(" ")
				b.WriteString(comb)
				b.WriteString(" ")
			}
		}
		b.WriteString(canonicalizeSequence(seq))
	}
	return b.String()
}

// bucketOrder fixes the canonicalization order: Universal → Element → Id
// → Class → Placeholder → Pseudo, with standalone (un-glued) Attribute
// selectors trailing last — spec.md's bucket list stops at Pseudo since
// attribute sub-selectors are normally glued onto a preceding member
// (§4.2 step 2); a bare `[attr]` with nothing to glue to still needs a
// bucket of its own, so it gets one after Pseudo rather than silently
// dropped.
var bucketOrder = []syntax.SimpleMemberKind{
	syntax.Universal, syntax.Element, syntax.Id, syntax.Class, syntax.Placeholder, syntax.Pseudo, syntax.Attribute,
}

func canonicalizeSequence(seq syntax.SimpleSequence) string {
	buckets := make(map[syntax.SimpleMemberKind][]string, len(bucketOrder))
	for _, m := range seq.Members {
		buckets[m.Kind] = append(buckets[m.Kind], memberToken(m))
	}

	var b strings.Builder
	for _, kind := range bucketOrder {
		toks := buckets[kind]
		if len(toks) == 0 {
			continue
		}
		toks = dedupeSorted(toks)
		for _, t := range toks {
			b.WriteString(t)
		}
	}
	return b.String()
}

// memberToken renders a simple member together with any Attribute
// sub-selectors glued onto it (§4.2 step 2), in source order.
func memberToken(m syntax.SimpleMember) string {
	if len(m.Attributes) == 0 {
		return m.Text
	}
	var b strings.Builder
	b.WriteString(m.Text)
	for _, a := range m.Attributes {
		b.WriteString(a)
	}
	return b.String()
}

// dedupeSorted sorts ss lexicographically and removes adjacent
// duplicates (§4.2 step 3: "deduplicates tokens and sorts
// lexicographically").
func dedupeSorted(ss []string) []string {
	sorted := append([]string(nil), ss...)
	sort.Strings(sorted)
	out := sorted[:0]
	for i, s := range sorted {
		if i == 0 || s != sorted[i-1] {
			out = append(out, s)
		}
	}
	return out
}
