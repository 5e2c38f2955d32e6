package engine

import "csscompare/value"

// Property is the `{ name, bindings }` entity of spec §3. Bindings maps a
// condition string (the literal "all" bucket included) to the single
// Value active under that condition.
type Property struct {
	Name     string
	Bindings map[string]value.Value
}

func newProperty(name string) *Property {
	return &Property{Name: name, Bindings: make(map[string]value.Value)}
}

// Merge applies the cascade-within-a-sheet rules of spec §4.3, in the
// stated order:
//
//  1. no binding for condition and no important "all" binding → store.
//  2. an important "all" binding exists and condition != "all": store the
//     incoming value if it too is important, else the important "all"
//     value wins and is cloned into condition.
//  3. a binding for condition exists: replace iff new.important or the
//     existing one is not important (equal-priority replaces, so later
//     writes win).
func (p *Property) Merge(condition string, v value.Value) {
	existing, hasExisting := p.Bindings[condition]
	allVal, hasAll := p.Bindings["all"]
	allImportant := hasAll && allVal.Important

	switch {
	case !hasExisting && !allImportant:
		p.Bindings[condition] = v
	case allImportant && condition != "all":
		if v.Important {
			p.Bindings[condition] = v
		} else {
			p.Bindings[condition] = allVal.Clone()
		}
	case hasExisting:
		if v.Important || !existing.Important {
			p.Bindings[condition] = v
		}
	default:
		p.Bindings[condition] = v
	}
}

// Clone returns a deep copy sharing no state with p.
func (p *Property) Clone() *Property {
	out := newProperty(p.Name)
	for k, v := range p.Bindings {
		out.Bindings[k] = v.Clone()
	}
	return out
}

// Equal implements spec §4.9's "equality of hashes" utility specialized
// to Property: same condition keys, and BindingsEqual (content +
// importance) per key.
func (p *Property) Equal(other *Property) bool {
	if p == nil || other == nil {
		return p == other
	}
	return equalMaps(p.Bindings, other.Bindings, value.BindingsEqual)
}

// equalMaps is the shared "base-level hash equality" utility design note
// §9 calls for: same keys as sets, pairwise equal values under eq.
func equalMaps[K comparable, V any](a, b map[K]V, eq func(V, V) bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k, va := range a {
		vb, ok := b[k]
		if !ok || !eq(va, vb) {
			return false
		}
	}
	return true
}
