package engine_test

import "testing"

func TestKeyframes_FromToNormalization(t *testing.T) {
	m := evalSheet(t, `@keyframes spin {
		from { opacity: 0; }
		50% { opacity: 0.5; }
		to { opacity: 1; }
	}`)

	kf, ok := m.Keyframes["spin"]
	if !ok {
		t.Fatal("expected keyframes 'spin'")
	}
	byOffset, ok := kf.Rules["all"]
	if !ok {
		t.Fatal("expected 'all' condition bucket")
	}
	for _, want := range []string{"0%", "50%", "100%"} {
		if _, ok := byOffset[want]; !ok {
			t.Errorf("missing offset %q, have %v", want, keysOf(byOffset))
		}
	}
}

func keysOf[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestKeyframes_RedeclarationReplaces(t *testing.T) {
	m := evalSheet(t, `@keyframes spin {
		from { opacity: 0; }
		from { opacity: 0.2; }
	}`)
	kf := m.Keyframes["spin"]
	sel := kf.Rules["all"]["0%"]
	v := sel.Properties["opacity"].Bindings["all"]
	if v.Literal != "0.2" {
		t.Errorf("expected redeclaration to replace, got %q", v.Literal)
	}
}

func TestKeyframes_CrossBlockRedeclarationReplaces(t *testing.T) {
	m := evalSheet(t, `@keyframes spin { from { opacity: 0; } to { opacity: 1; } }
	@keyframes spin { from { opacity: 0.5; } }`)
	kf := m.Keyframes["spin"]
	byOffset := kf.Rules["all"]
	if _, ok := byOffset["100%"]; ok {
		t.Errorf("expected second @keyframes block to replace the first wholesale, but 100%% survived: %v", keysOf(byOffset))
	}
	sel, ok := byOffset["0%"]
	if !ok {
		t.Fatal("expected 0% offset from the second block")
	}
	v := sel.Properties["opacity"].Bindings["all"]
	if v.Literal != "0.5" {
		t.Errorf("opacity = %q, want 0.5", v.Literal)
	}
}

func TestKeyframes_Equal(t *testing.T) {
	a := evalSheet(t, `@keyframes spin { from { opacity: 0; } to { opacity: 1; } }`)
	b := evalSheet(t, `@keyframes spin { from { opacity: 0; } to { opacity: 1; } }`)
	c := evalSheet(t, `@keyframes spin { from { opacity: 0; } to { opacity: 0.9; } }`)

	if !a.Equal(b) {
		t.Error("expected identical keyframes to be equal")
	}
	if a.Equal(c) {
		t.Error("expected differing keyframes to be unequal")
	}
}
