package engine

import (
	"strings"

	"csscompare/value"
)

// layoutMediaTerms are the media-feature names whose presence in a
// condition string disqualifies a `size` binding on a margin box (spec
// §4.6, CSS Paged Media: "size is ignored when qualified by
// layout-dependent media features").
var layoutMediaTerms = []string{"width", "height", "aspect-ratio", "orientation"}

// MarginBox is structurally identical to Selector (spec §3), with one
// override: a `size` property drops any binding whose condition mentions
// a layout/orientation media term.
type MarginBox struct {
	Selector
}

func newMarginBox(symbol string) *MarginBox {
	return &MarginBox{Selector: *newSelector(symbol)}
}

// AddProperty shadows Selector.AddProperty to apply the `size`
// layout-term exclusion (SPEC_FULL §4.6: substring match, case
// insensitive, against the four layout terms).
func (m *MarginBox) AddProperty(name string, v value.Value, condition string) {
	if name == "size" && mentionsLayoutTerm(condition) {
		return
	}
	m.Selector.AddProperty(name, v, condition)
}

func mentionsLayoutTerm(condition string) bool {
	lower := strings.ToLower(condition)
	for _, term := range layoutMediaTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

func (m *MarginBox) Clone() *MarginBox {
	return &MarginBox{Selector: *m.Selector.Clone()}
}

func (m *MarginBox) Equal(other *MarginBox) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.Selector.Equal(&other.Selector)
}

// allMarginSymbol is the synthetic margin-box name for declarations that
// appear directly inside @page, outside any explicit margin at-rule
// (glossary: "Margin symbol").
const allMarginSymbol = "@all"

// PageSelector is the `{ page_selector, margin_boxes }` entity of spec §3.
type PageSelector struct {
	PageSelectorText string
	MarginBoxes      map[string]*MarginBox
}

func newPageSelector(selText string) *PageSelector {
	return &PageSelector{PageSelectorText: selText, MarginBoxes: make(map[string]*MarginBox)}
}

func (ps *PageSelector) box(symbol string) *MarginBox {
	b, ok := ps.MarginBoxes[symbol]
	if !ok {
		b = newMarginBox(symbol)
		ps.MarginBoxes[symbol] = b
	}
	return b
}

func (ps *PageSelector) Clone() *PageSelector {
	out := newPageSelector(ps.PageSelectorText)
	for symbol, box := range ps.MarginBoxes {
		out.MarginBoxes[symbol] = box.Clone()
	}
	return out
}

func (ps *PageSelector) Equal(other *PageSelector) bool {
	if ps == nil || other == nil {
		return ps == other
	}
	return equalMaps(ps.MarginBoxes, other.MarginBoxes, (*MarginBox).Equal)
}
