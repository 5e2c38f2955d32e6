package value_test

import (
	"testing"

	"csscompare/value"
)

func TestFromRaw_Literal(t *testing.T) {
	v, err := value.FromRaw("10px", false)
	if err != nil {
		t.Fatalf("FromRaw error = %v", err)
	}
	if v.Kind != value.KindLiteral || v.Literal != "10px" {
		t.Errorf("got %+v", v)
	}
}

func TestFromRaw_List(t *testing.T) {
	v, err := value.FromRaw("Arial, sans-serif", false)
	if err != nil {
		t.Fatalf("FromRaw error = %v", err)
	}
	if v.Kind != value.KindListLiteral {
		t.Fatalf("got kind %v, want list", v.Kind)
	}
	want := []string{"Arial", "sans-serif"}
	if len(v.List) != len(want) {
		t.Fatalf("got %v, want %v", v.List, want)
	}
	for i := range want {
		if v.List[i] != want[i] {
			t.Errorf("List[%d] = %q, want %q", i, v.List[i], want[i])
		}
	}
}

func TestFromRaw_Function(t *testing.T) {
	v, err := value.FromRaw("rgb(255, 0, 0)", false)
	if err != nil {
		t.Fatalf("FromRaw error = %v", err)
	}
	if v.Kind != value.KindFunction || v.FuncName != "rgb" || len(v.FuncArgs) != 3 {
		t.Errorf("got %+v", v)
	}
}

func TestFromRaw_URL(t *testing.T) {
	v, err := value.FromRaw(`url("images/bg.png")`, false)
	if err != nil {
		t.Fatalf("FromRaw error = %v", err)
	}
	if v.Kind != value.KindURL || v.URL != "images/bg.png" {
		t.Errorf("got %+v", v)
	}
}

func TestFromRaw_Important(t *testing.T) {
	v, err := value.FromRaw("red", true)
	if err != nil {
		t.Fatalf("FromRaw error = %v", err)
	}
	if !v.Important {
		t.Error("Important not propagated")
	}
}

func TestValue_Clone(t *testing.T) {
	v := mustValue(t, "Arial, sans-serif", false)
	c := v.Clone()
	c.List[0] = "Changed"
	if v.List[0] == "Changed" {
		t.Error("Clone shared the underlying List slice")
	}
}

func TestFromRaw_Unbalanced(t *testing.T) {
	_, err := value.FromRaw("rgb(255, 0, 0", false)
	if err == nil {
		t.Fatal("expected FatalError for unbalanced parens")
	}
	if _, ok := err.(*value.FatalError); !ok {
		t.Errorf("got error type %T, want *value.FatalError", err)
	}
}
