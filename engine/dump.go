package engine

import (
	"sort"

	"csscompare/utils/debug"
)

// Dump renders a Model as an indented tree for debug logging, grounded on
// the teacher's utils/debug.TreeWriter used the same way across fbc's
// conversion passes to log an intermediate structure without a full
// String()/GoString() implementation on every entity.
func (m *Model) Dump() string {
	tw := debug.NewTreeWriter()
	tw.Line(0, "model")
	if m.Charset != "" {
		tw.TextBlock(1, "charset", m.Charset)
	}

	tw.Line(1, "selectors (%d)", len(m.Selectors))
	for _, name := range sortedKeys(m.Selectors) {
		dumpSelector(tw, 2, name, m.Selectors[name])
	}

	tw.Line(1, "keyframes (%d)", len(m.Keyframes))
	for _, name := range sortedKeys(m.Keyframes) {
		dumpKeyframes(tw, 2, m.Keyframes[name])
	}

	tw.Line(1, "pages (%d)", len(m.Pages))
	for _, name := range sortedKeys(m.Pages) {
		dumpPage(tw, 2, m.Pages[name])
	}

	tw.Line(1, "font-faces (%d)", len(m.FontFaces))
	for _, key := range sortedKeys(m.FontFaces) {
		tw.TextBlock(2, "key", key)
	}

	tw.Line(1, "supports (%d)", len(m.Supports))
	for _, name := range sortedKeys(m.Supports) {
		dumpSupports(tw, 2, m.Supports[name])
	}

	if len(m.Unsupported) > 0 {
		tw.Line(1, "unsupported (%d)", len(m.Unsupported))
		for _, msg := range m.Unsupported {
			tw.TextBlock(2, "item", msg)
		}
	}

	return tw.String()
}

func dumpSelector(tw *debug.TreeWriter, depth int, name string, s *Selector) {
	tw.Line(depth, "selector %q", name)
	for _, propName := range sortedKeys(s.Properties) {
		dumpProperty(tw, depth+1, s.Properties[propName])
	}
}

func dumpProperty(tw *debug.TreeWriter, depth int, p *Property) {
	tw.Line(depth, "property %q", p.Name)
	for _, cond := range sortedKeys(p.Bindings) {
		v := p.Bindings[cond]
		tw.TextBlock(depth+1, cond, v.Literal)
	}
}

func dumpKeyframes(tw *debug.TreeWriter, depth int, k *Keyframes) {
	tw.Line(depth, "keyframes %q", k.Name)
	for _, cond := range sortedKeys(k.Rules) {
		tw.Line(depth+1, "condition %q", cond)
		byOffset := k.Rules[cond]
		for _, offset := range sortedKeys(byOffset) {
			tw.Line(depth+2, "offset %q", offset)
		}
	}
}

func dumpPage(tw *debug.TreeWriter, depth int, ps *PageSelector) {
	tw.Line(depth, "page %q", ps.PageSelectorText)
	for _, symbol := range sortedKeys(ps.MarginBoxes) {
		tw.Line(depth+1, "margin-box %q", symbol)
	}
}

func dumpSupports(tw *debug.TreeWriter, depth int, s *Supports) {
	tw.Line(depth, "supports %q", s.Name)
	for _, cond := range sortedKeys(s.Rules) {
		tw.Line(depth+1, "condition %q", cond)
	}
}

// sortedKeys returns a map's keys in lexicographic order, so Dump's
// output is stable across runs.
func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
