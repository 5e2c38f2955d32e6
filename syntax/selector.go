package syntax

import "strings"

// ParseComplexSelector tokenizes a raw CSS selector string (one item of a
// comma-separated selector list) into a ComplexSelector: simple-selector
// sequences joined by combinators, each sequence broken into typed
// SimpleMembers per the parser contract (§6).
//
// Grounded on the teacher's parseSelector/parseSimpleSelector
// (css/parser.go), generalized from its element/class/pseudo-element-only
// subset (which outright rejected combinators and attribute selectors) to
// the full simple-selector-sequence grammar the canonicalizer (spec §4.2)
// needs: ids, universal, pseudo-classes, and attribute gluing.
func ParseComplexSelector(raw string) ComplexSelector {
	raw = strings.TrimSpace(raw)
	texts, combinators := splitByCombinator(raw)

	cs := ComplexSelector{Raw: raw, Combinators: combinators}
	for _, t := range texts {
		cs.Sequences = append(cs.Sequences, SimpleSequence{Members: tokenizeSequence(t)})
	}
	return cs
}

// splitByCombinator splits a selector string into simple-sequence texts
// and the combinators between them, honoring nested [] and () so that a
// space inside an attribute value or a functional pseudo-class argument
// is never mistaken for a descendant combinator.
func splitByCombinator(s string) (texts []string, combinators []string) {
	var cur strings.Builder
	depthBracket, depthParen := 0, 0
	i := 0
	n := len(s)

	flush := func() {
		text := strings.TrimSpace(cur.String())
		if text != "" {
			texts = append(texts, text)
		}
		cur.Reset()
	}

	for i < n {
		r := s[i]
		switch r {
		case '[':
			depthBracket++
			cur.WriteByte(r)
			i++
		case ']':
			if depthBracket > 0 {
				depthBracket--
			}
			cur.WriteByte(r)
			i++
		case '(':
			depthParen++
			cur.WriteByte(r)
			i++
		case ')':
			if depthParen > 0 {
				depthParen--
			}
			cur.WriteByte(r)
			i++
		case '>', '+', '~':
			if depthBracket == 0 && depthParen == 0 {
				flush()
				combinators = append(combinators, string(r))
				i++
				for i < n && isSpace(s[i]) {
					i++
				}
			} else {
				cur.WriteByte(r)
				i++
			}
		case ' ', '\t', '\n', '\r':
			if depthBracket == 0 && depthParen == 0 {
				start := i
				for i < n && isSpace(s[i]) {
					i++
				}
				// A run of whitespace is only a combinator if it separates
				// two real sequences and is not followed by an explicit
				// '>', '+' or '~' combinator.
				if cur.Len() > 0 && i < n && s[i] != '>' && s[i] != '+' && s[i] != '~' {
					flush()
					combinators = append(combinators, " ")
				} else {
					_ = start
				}
			} else {
				cur.WriteByte(r)
				i++
			}
		default:
			cur.WriteByte(r)
			i++
		}
	}
	flush()
	return texts, combinators
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// tokenizeSequence breaks one simple-selector-sequence's text into typed
// SimpleMembers, gluing attribute sub-selectors onto the immediately
// preceding member (spec §4.2 step 2).
func tokenizeSequence(text string) []SimpleMember {
	var members []SimpleMember
	i := 0
	n := len(text)

	for i < n {
		switch text[i] {
		case '*':
			members = append(members, SimpleMember{Kind: Universal, Text: "*"})
			i++
		case '.':
			start := i
			i++
			i = skipIdent(text, i)
			members = append(members, SimpleMember{Kind: Class, Text: text[start:i]})
		case '#':
			start := i
			i++
			i = skipIdent(text, i)
			members = append(members, SimpleMember{Kind: Id, Text: text[start:i]})
		case ':':
			start := i
			i++
			if i < n && text[i] == ':' {
				i++
			}
			i = skipIdent(text, i)
			if i < n && text[i] == '(' {
				depth := 1
				i++
				for i < n && depth > 0 {
					switch text[i] {
					case '(':
						depth++
					case ')':
						depth--
					}
					i++
				}
			}
			members = append(members, SimpleMember{Kind: Pseudo, Text: text[start:i]})
		case '[':
			start := i
			depth := 1
			i++
			for i < n && depth > 0 {
				switch text[i] {
				case '[':
					depth++
				case ']':
					depth--
				}
				i++
			}
			attr := text[start:i]
			if len(members) > 0 {
				last := &members[len(members)-1]
				last.Attributes = append(last.Attributes, attr)
			} else {
				members = append(members, SimpleMember{Kind: Attribute, Text: attr})
			}
		default:
			start := i
			i = skipIdent(text, i)
			if i == start {
				// Unrecognized character (combinator leakage, namespace
				// '|', escape sequence); consume one byte to make
				// progress rather than looping forever.
				i++
				continue
			}
			members = append(members, SimpleMember{Kind: Element, Text: text[start:i]})
		}
	}
	return members
}

// skipIdent advances past a CSS identifier run starting at i (letters,
// digits, hyphen, underscore, or escaped characters).
func skipIdent(s string, i int) int {
	n := len(s)
	for i < n {
		c := s[i]
		if c == '-' || c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			i++
			continue
		}
		if c == '\\' && i+1 < n {
			i += 2
			continue
		}
		break
	}
	return i
}
