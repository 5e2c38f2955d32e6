package engine

// Supports is the `{ name, rules }` entity of spec §3/§4.5. name is the
// @supports condition's *raw* text before canonicalization (SPEC_FULL
// §4.5), used as the grouping key so textually-identical conditions
// always group together even before whitespace/!important stripping
// runs; rules maps the canonicalized condition to the nested Model that
// condition's body evaluates to.
type Supports struct {
	Name  string
	Rules map[string]*Model
}

func newSupports(name string) *Supports {
	return &Supports{Name: name, Rules: make(map[string]*Model)}
}

func (s *Supports) nested(canonicalCondition string) *Model {
	m, ok := s.Rules[canonicalCondition]
	if !ok {
		m = NewModel()
		s.Rules[canonicalCondition] = m
	}
	return m
}

func (s *Supports) Clone() *Supports {
	out := newSupports(s.Name)
	for cond, m := range s.Rules {
		out.Rules[cond] = m.Clone()
	}
	return out
}

func (s *Supports) Equal(other *Supports) bool {
	if s == nil || other == nil {
		return s == other
	}
	return equalMaps(s.Rules, other.Rules, (*Model).Equal)
}
