package engine

import "strings"

// fontFaceDefaults is the descriptor default table of SPEC_FULL §4.7,
// taken from the CSS Fonts Module Level 4 initial values — filling in
// spec.md's "initialized to their specification defaults".
var fontFaceDefaults = map[string]string{
	"font-family":              "",
	"src":                      "",
	"font-style":               "normal",
	"font-weight":              "400",
	"font-stretch":             "normal",
	"unicode-range":            "U+0-10FFFF",
	"font-variant":             "normal",
	"font-feature-settings":    "normal",
	"font-kerning":             "auto",
	"font-variant-ligatures":   "normal",
	"font-variant-position":    "normal",
	"font-variant-caps":        "normal",
	"font-variant-numeric":     "normal",
	"font-variant-alternates":  "normal",
	"font-variant-east-asian":  "normal",
	"font-language-override":   "normal",
}

// fontWeightSynonyms is spec.md's "small synonym table": named weights
// collapse to numeric. Deliberately normal→400, bold→600 as spec.md
// states verbatim (not the browser spec's bold→700 — this project's
// contract, not CSS, governs here). Values outside this set (e.g. a raw
// numeric weight like "700") pass through unchanged rather than reverting
// to default — reverting would make numeric font-weight unusable, which
// spec.md's own end-to-end scenarios never exercise and cannot have
// intended.
var fontWeightSynonyms = map[string]string{
	"normal": "400",
	"bold":   "600",
}

// FontFace is the `{ descriptors }` entity of spec §3/§4.7.
type FontFace struct {
	Descriptors map[string]string
}

func newFontFace() *FontFace {
	d := make(map[string]string, len(fontFaceDefaults))
	for k, v := range fontFaceDefaults {
		d[k] = v
	}
	return &FontFace{Descriptors: d}
}

// SetDescriptor applies one declaration to the font-face, following
// spec §4.7: lowercase font-family, strip quotes from src, apply the
// font-weight synonym table, ignore descriptors outside the table.
func (f *FontFace) SetDescriptor(name, rawValue string) {
	if _, known := fontFaceDefaults[name]; !known {
		return
	}
	v := strings.TrimSpace(rawValue)
	switch name {
	case "font-family":
		f.Descriptors[name] = strings.ToLower(unquoteFontValue(v))
	case "src":
		f.Descriptors[name] = unquoteFontValue(unwrapURL(v))
	case "font-weight":
		if mapped, ok := fontWeightSynonyms[strings.ToLower(v)]; ok {
			f.Descriptors[name] = mapped
		} else {
			f.Descriptors[name] = v
		}
	default:
		f.Descriptors[name] = v
	}
}

// unwrapURL strips a url(...) wrapper the way syntax.extractImport and
// value.parseURL do, leaving the inner (possibly still quoted) text. The
// src descriptor's raw value text is the full "url(...)" form (see the
// tokenizer's URLToken handling), so this must run before unquoting.
func unwrapURL(s string) string {
	lower := strings.ToLower(s)
	if !strings.HasPrefix(lower, "url(") || !strings.HasSuffix(s, ")") {
		return s
	}
	return strings.TrimSpace(s[len("url(") : len(s)-1])
}

func unquoteFontValue(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// Valid reports whether both font-family and src were supplied (spec
// §4.7: "both font-family and src must be present").
func (f *FontFace) Valid() bool {
	return f.Descriptors["font-family"] != "" && f.Descriptors["src"] != ""
}

// Key returns the (condition, family, src) composite identity spec §3
// mandates: "a later identical-key rule overwrites the prior".
func (f *FontFace) Key(condition string) string {
	return condition + "|" + f.Descriptors["font-family"] + "|" + f.Descriptors["src"]
}

func (f *FontFace) Clone() *FontFace {
	out := &FontFace{Descriptors: make(map[string]string, len(f.Descriptors))}
	for k, v := range f.Descriptors {
		out.Descriptors[k] = v
	}
	return out
}

func (f *FontFace) Equal(other *FontFace) bool {
	if f == nil || other == nil {
		return f == other
	}
	return equalMaps(f.Descriptors, other.Descriptors, func(a, b string) bool { return a == b })
}
