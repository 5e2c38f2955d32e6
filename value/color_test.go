package value_test

import (
	"testing"

	"csscompare/value"
)

func TestIsColorRecognizable(t *testing.T) {
	cases := map[string]bool{
		"red":      true,
		"#fff":     true,
		"#ff0000":  true,
		"#ff0000ff": true,
		"notacolor": false,
		"":          false,
	}
	for in, want := range cases {
		if got := value.IsColorRecognizable(in); got != want {
			t.Errorf("IsColorRecognizable(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestColorsEqual(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"#ff0000", "red", true},
		{"#f00", "#ff0000", true},
		{"red", "blue", false},
		{"#ff0000ff", "#ff0000", true},
		{"rebeccapurple", "#663399", true},
	}
	for _, c := range cases {
		if got := value.ColorsEqual(c.a, c.b); got != c.want {
			t.Errorf("ColorsEqual(%q, %q) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestColorsEqual_Tolerance(t *testing.T) {
	value.SetColorTolerance(0)
	defer value.SetColorTolerance(0)

	if value.ColorsEqual("#ff0000", "#fe0101") {
		t.Error("expected near-miss red to mismatch at zero tolerance")
	}
	value.SetColorTolerance(0.05)
	if !value.ColorsEqual("#ff0000", "#fe0101") {
		t.Error("expected near-miss red to match within tolerance")
	}
}

func TestParseRGBFunction(t *testing.T) {
	c, ok := value.ParseRGBFunction([]string{"255", "0", "0"})
	if !ok {
		t.Fatal("ParseRGBFunction failed")
	}
	r, g, b := c.RGB255()
	if r != 255 || g != 0 || b != 0 {
		t.Errorf("got rgb(%d,%d,%d), want (255,0,0)", r, g, b)
	}
}

func TestParseHSLFunction(t *testing.T) {
	c, ok := value.ParseHSLFunction([]string{"0", "100%", "50%"})
	if !ok {
		t.Fatal("ParseHSLFunction failed")
	}
	r, g, b := c.RGB255()
	if r != 255 || g != 0 || b != 0 {
		t.Errorf("got rgb(%d,%d,%d), want (255,0,0)", r, g, b)
	}
}
