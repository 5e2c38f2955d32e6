// Package engine implements the Stylesheet Evaluation and Equivalence
// Engine: the pass that turns a parsed syntax.StyleSheet into a
// canonical, comparable Model, plus the equivalence relation over two
// such models.
//
// Grounded on the teacher's css.Stylesheet/StylesheetItem aggregate
// (css/types.go) for the top-level shape, generalized from four
// item kinds into the full entity family spec.md's Data Model names
// (Selector, Keyframes, FontFace, Supports, PageSelector, namespaces,
// charset), and on convert/kfx/style_merger.go for the cascade-merge
// idiom this package's Property.Merge descends from.
package engine

import "go.uber.org/zap"

// Model is the `Engine (model)` entity of spec §3: one value of each
// entity family, built during a single evaluation pass and frozen for
// comparison afterward (spec "Lifecycle").
type Model struct {
	Selectors   map[string]*Selector
	Keyframes   map[string]*Keyframes
	Namespaces  map[string]string
	Pages       map[string]*PageSelector
	Supports    map[string]*Supports
	FontFaces   map[string]*FontFace
	Charset     string
	Unsupported []string
}

// NewModel returns an empty, ready-to-populate Model.
func NewModel() *Model {
	return &Model{
		Selectors:  make(map[string]*Selector),
		Keyframes:  make(map[string]*Keyframes),
		Namespaces: make(map[string]string),
		Pages:      make(map[string]*PageSelector),
		Supports:   make(map[string]*Supports),
		FontFaces:  make(map[string]*FontFace),
	}
}

func (m *Model) selector(canonicalName string) *Selector {
	s, ok := m.Selectors[canonicalName]
	if !ok {
		s = newSelector(canonicalName)
		m.Selectors[canonicalName] = s
	}
	return s
}

func (m *Model) keyframes(name string) *Keyframes {
	k, ok := m.Keyframes[name]
	if !ok {
		k = newKeyframes(name)
		m.Keyframes[name] = k
	}
	return k
}

func (m *Model) page(selText string) *PageSelector {
	p, ok := m.Pages[selText]
	if !ok {
		p = newPageSelector(selText)
		m.Pages[selText] = p
	}
	return p
}

func (m *Model) supports(name string) *Supports {
	s, ok := m.Supports[name]
	if !ok {
		s = newSupports(name)
		m.Supports[name] = s
	}
	return s
}

func (m *Model) warn(log *zap.Logger, msg string) {
	m.Unsupported = append(m.Unsupported, msg)
	if log != nil {
		log.Debug(msg)
	}
}

// Clone returns a deep copy of m sharing no mutable state; Supports.Clone
// uses it to copy each nested model.
func (m *Model) Clone() *Model {
	out := NewModel()
	for k, v := range m.Selectors {
		out.Selectors[k] = v.Clone()
	}
	for k, v := range m.Keyframes {
		out.Keyframes[k] = v.Clone()
	}
	for k, v := range m.Namespaces {
		out.Namespaces[k] = v
	}
	for k, v := range m.Pages {
		out.Pages[k] = v.Clone()
	}
	for k, v := range m.Supports {
		out.Supports[k] = v.Clone()
	}
	for k, v := range m.FontFaces {
		out.FontFaces[k] = v.Clone()
	}
	out.Charset = m.Charset
	out.Unsupported = append([]string(nil), m.Unsupported...)
	return out
}

// Equal implements the Equivalence Checker (spec §4.9): for each entity
// family, key sets must match and every keyed value must compare equal
// by the entity's own rule. Unsupported is deliberately excluded
// (SPEC_FULL §4.9): two sheets that reach the same canonical model via
// different unsupported constructs still compare equal.
func (m *Model) Equal(other *Model) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.Charset != other.Charset {
		return false
	}
	return equalMaps(m.Selectors, other.Selectors, (*Selector).Equal) &&
		equalMaps(m.Keyframes, other.Keyframes, (*Keyframes).Equal) &&
		equalMaps(m.Namespaces, other.Namespaces, func(a, b string) bool { return a == b }) &&
		equalMaps(m.Pages, other.Pages, (*PageSelector).Equal) &&
		equalMaps(m.Supports, other.Supports, (*Supports).Equal) &&
		equalMaps(m.FontFaces, other.FontFaces, (*FontFace).Equal)
}
