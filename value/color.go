package value

import (
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// IsColorKeyword reports whether s names a CSS color keyword (case-insensitive).
func IsColorKeyword(s string) bool {
	_, ok := namedColors[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// IsHexColor reports whether s is a CSS hex color of the form #rgb, #rgba,
// #rrggbb or #rrggbbaa (case-insensitive).
func IsHexColor(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) == 0 || s[0] != '#' {
		return false
	}
	hex := s[1:]
	switch len(hex) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for _, r := range hex {
		if !isHexDigit(r) {
			return false
		}
	}
	return true
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// IsColorRecognizable reports whether s is either a named color or a
// recognized hex pattern (spec §4.8 "Color recognition").
func IsColorRecognizable(s string) bool {
	return IsColorKeyword(s) || IsHexColor(s)
}

// ParseColorLiteral parses a named color or hex literal into a colorful.Color,
// dropping any alpha channel (spec §4.8: equivalence is silent on alpha).
func ParseColorLiteral(s string) (colorful.Color, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return colorful.Color{}, false
	}
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, true
	}
	if IsHexColor(s) {
		return parseHex(s)
	}
	return colorful.Color{}, false
}

// parseHex expands #rgb/#rgba to #rrggbb before delegating to colorful.Hex,
// dropping any alpha nibble(s).
func parseHex(s string) (colorful.Color, bool) {
	hex := s[1:]
	switch len(hex) {
	case 3:
		hex = expandShortHex(hex[:3])
	case 4:
		hex = expandShortHex(hex[:3]) // drop alpha nibble
	case 8:
		hex = hex[:6] // drop alpha byte
	case 6:
		// already full form
	default:
		return colorful.Color{}, false
	}
	c, err := colorful.Hex("#" + strings.ToLower(hex))
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}

func expandShortHex(hex3 string) string {
	var b strings.Builder
	for _, r := range hex3 {
		b.WriteRune(r)
		b.WriteRune(r)
	}
	return b.String()
}

// ColorTolerance is the CIE76 perceptual distance under which two colors
// still count as equivalent (cliconfig's "color_tolerance" knob, SPEC_FULL
// §5 expansion of spec §4.8's color rule). Zero, the default, reproduces
// spec §8's exact-equivalence examples (#ff0000 == red ==
// rgb(255,0,0) == hsl(0,100%,50%)) with no slack. It is set once, before
// any comparison begins, by the CLI's configuration load — Equal/
// ColorsEqual themselves stay free functions so the per-value equality
// rules of spec §4.8 don't need a comparator object threaded through
// every entity's Equal method for a knob that, in practice, never varies
// within a single run.
var ColorTolerance float64

// SetColorTolerance installs the perceptual tolerance used by ColorsEqual.
func SetColorTolerance(t float64) {
	ColorTolerance = t
}

// ColorsEqual reports whether two CSS color literals are perceptually the
// same color, ignoring alpha, within ColorTolerance.
func ColorsEqual(a, b string) bool {
	ca, ok := ParseColorLiteral(a)
	if !ok {
		return false
	}
	cb, ok := ParseColorLiteral(b)
	if !ok {
		return false
	}
	if ColorTolerance <= 0 {
		ar, ag, ab := ca.RGB255()
		br, bg, bb := cb.RGB255()
		return ar == br && ag == bg && ab == bb
	}
	return ca.DistanceCIE76(cb) <= ColorTolerance
}

// ParseRGBFunction parses rgb()/rgba() argument lists (comma or
// space-separated, percentages allowed) into a colorful.Color.
func ParseRGBFunction(args []string) (colorful.Color, bool) {
	if len(args) < 3 {
		return colorful.Color{}, false
	}
	r, ok1 := parseChannel(args[0])
	g, ok2 := parseChannel(args[1])
	b, ok3 := parseChannel(args[2])
	if !ok1 || !ok2 || !ok3 {
		return colorful.Color{}, false
	}
	return colorful.Color{R: r / 255, G: g / 255, B: b / 255}, true
}

func parseChannel(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return 0, false
		}
		return v * 255 / 100, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseHSLFunction parses hsl()/hsla() argument lists into a colorful.Color.
func ParseHSLFunction(args []string) (colorful.Color, bool) {
	if len(args) < 3 {
		return colorful.Color{}, false
	}
	h, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(args[0]), "deg"), 64)
	if err != nil {
		return colorful.Color{}, false
	}
	s, ok := parsePercent(args[1])
	if !ok {
		return colorful.Color{}, false
	}
	l, ok := parsePercent(args[2])
	if !ok {
		return colorful.Color{}, false
	}
	return colorful.Hsl(h, s, l), true
}

func parsePercent(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v / 100, true
}
