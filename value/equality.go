package value

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Equal implements the per-variant content equality rules of spec §4.8.
// Importance is deliberately excluded here — see BindingsEqual for the
// combined check a Property comparison actually needs.
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		ca, okA := colorOf(a)
		cb, okB := colorOf(b)
		return okA && okB && ca.Hex() == cb.Hex()
	}
	switch a.Kind {
	case KindLiteral:
		return literalsEqual(a.Literal, b.Literal)
	case KindListLiteral:
		return listsEqual(a.List, b.List)
	case KindFunction:
		return functionsEqual(a, b)
	case KindURL:
		return urlsEqual(a.URL, b.URL)
	default:
		return false
	}
}

// BindingsEqual compares two values the way a Property's binding list
// does: equal content AND matching !important flags (spec §4.8:
// "two bindings ... equal iff their Values are equal and their importance
// flags match").
func BindingsEqual(a, b Value) bool {
	return a.Important == b.Important && Equal(a, b)
}

// literalsEqual implements spec §4.8's Literal rule: equal iff (both are
// color-recognizable AND color-equivalent) OR their normalized string
// forms match.
func literalsEqual(a, b string) bool {
	if IsColorRecognizable(a) && IsColorRecognizable(b) {
		return ColorsEqual(a, b)
	}
	return normalizeLiteral(a) == normalizeLiteral(b)
}

// normalizeLiteral lowercases the value and collapses internal whitespace
// runs; a value that is one quoted string is left untouched, so that
// e.g. content: "Foo" does not fold case.
func normalizeLiteral(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s
	}
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// listsEqual implements spec §4.8's ListLiteral rule: lengths must match
// and elements are pairwise equal under the Literal rule (list elements
// are raw strings, never nested Function/Url variants).
func listsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !literalsEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// colorFunctions names functions whose arguments spec §4.8 says to
// interpret as channel values rather than compare as opaque literals.
var colorFunctions = map[string]bool{
	"rgb": true, "rgba": true, "hsl": true, "hsla": true,
}

// functionsEqual implements spec §4.8's Function rule: if both are color
// functions, compare the colors they produce; otherwise the function
// names must match and arguments must be pairwise equal (recursively).
func functionsEqual(a, b Value) bool {
	aName := strings.ToLower(a.FuncName)
	bName := strings.ToLower(b.FuncName)

	if colorFunctions[aName] && colorFunctions[bName] {
		ca, ok1 := colorFromFunction(aName, a.FuncArgs)
		cb, ok2 := colorFromFunction(bName, b.FuncArgs)
		if ok1 && ok2 {
			ar, ag, ab := ca.RGB255()
			br, bg, bb := cb.RGB255()
			return ar == br && ag == bg && ab == bb
		}
	}

	if aName != bName || len(a.FuncArgs) != len(b.FuncArgs) {
		return false
	}
	for i := range a.FuncArgs {
		if !Equal(a.FuncArgs[i], b.FuncArgs[i]) {
			return false
		}
	}
	return true
}

// colorOf returns the color named by a color literal or an rgb/hsl function.
func colorOf(v Value) (colorful.Color, bool) {
	if v.Kind == KindLiteral {
		return ParseColorLiteral(v.Literal)
	}
	if name := strings.ToLower(v.FuncName); v.Kind == KindFunction && colorFunctions[name] {
		return colorFromFunction(name, v.FuncArgs)
	}
	return colorful.Color{}, false
}

func colorFromFunction(name string, args []Value) (c colorful.Color, ok bool) {
	raw := make([]string, len(args))
	for i, a := range args {
		raw[i] = a.Literal
	}
	if strings.HasPrefix(name, "hsl") {
		return ParseHSLFunction(raw)
	}
	return ParseRGBFunction(raw)
}

// urlsEqual implements spec §4.8's Url rule: extract inner string
// argument, strip quotes, drop a leading "./", and compare verbatim —
// urls are not otherwise path-resolved or normalized relative to the
// sheet (spec §8: url("./a.png"), url('a.png') and url(a.png) compare
// equal).
func urlsEqual(a, b string) bool {
	return trimDotSlash(a) == trimDotSlash(b)
}

func trimDotSlash(s string) string {
	return strings.TrimPrefix(s, "./")
}
