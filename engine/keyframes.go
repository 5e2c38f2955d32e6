package engine

import "strings"

// KeyframesSelector is the `{ offset, properties }` entity of spec §3.
// Keyword offsets from/to are normalized to 0%/100% before storage.
type KeyframesSelector struct {
	Offset     string
	Properties map[string]*Property
}

func newKeyframesSelector(offset string) *KeyframesSelector {
	return &KeyframesSelector{Offset: NormalizeOffset(offset), Properties: make(map[string]*Property)}
}

// NormalizeOffset maps the from/to keywords to their percentage
// equivalents (spec §3, §4.4, §8 "Keyframes keyword normalization") and
// leaves any other offset text exactly as the parser produced it — no
// further numeric normalization (SPEC_FULL §4.4: "50%" stays "50%",
// "50.0%" stays "50.0%").
func NormalizeOffset(offset string) string {
	switch strings.ToLower(strings.TrimSpace(offset)) {
	case "from":
		return "0%"
	case "to":
		return "100%"
	default:
		return strings.TrimSpace(offset)
	}
}

func (ks *KeyframesSelector) Clone() *KeyframesSelector {
	out := &KeyframesSelector{Offset: ks.Offset, Properties: make(map[string]*Property, len(ks.Properties))}
	for name, p := range ks.Properties {
		out.Properties[name] = p.Clone()
	}
	return out
}

func (ks *KeyframesSelector) Equal(other *KeyframesSelector) bool {
	if ks == nil || other == nil {
		return ks == other
	}
	return equalMaps(ks.Properties, other.Properties, (*Property).Equal)
}

// Keyframes is the `{ name, rules }` entity of spec §3: rules maps a
// condition to a map of offset-string to KeyframesSelector. Re-declaring
// the same (condition, offset) pair replaces the prior entry — CSS
// @keyframes does not merge across declarations (spec §4.4).
type Keyframes struct {
	Name  string
	Rules map[string]map[string]*KeyframesSelector
}

func newKeyframes(name string) *Keyframes {
	return &Keyframes{Name: name, Rules: make(map[string]map[string]*KeyframesSelector)}
}

// SetOffset replaces (not merges) the selector stored at (condition,
// offset), matching CSS @keyframes replace-on-redeclare semantics.
func (k *Keyframes) SetOffset(condition string, sel *KeyframesSelector) {
	byOffset, ok := k.Rules[condition]
	if !ok {
		byOffset = make(map[string]*KeyframesSelector)
		k.Rules[condition] = byOffset
	}
	byOffset[sel.Offset] = sel
}

func (k *Keyframes) Clone() *Keyframes {
	out := newKeyframes(k.Name)
	for cond, byOffset := range k.Rules {
		clone := make(map[string]*KeyframesSelector, len(byOffset))
		for offset, sel := range byOffset {
			clone[offset] = sel.Clone()
		}
		out.Rules[cond] = clone
	}
	return out
}

func (k *Keyframes) Equal(other *Keyframes) bool {
	if k == nil || other == nil {
		return k == other
	}
	return equalMaps(k.Rules, other.Rules, func(a, b map[string]*KeyframesSelector) bool {
		return equalMaps(a, b, (*KeyframesSelector).Equal)
	})
}
