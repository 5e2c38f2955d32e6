// Package syntax defines the parser contract (spec §6 "Parser contract")
// and a conformant implementation built on tdewolff/parse/v2/css.
//
// The contract is expressed as a Go sum type, one arm per node kind
// (rule, property, media, directive, supports, keyframe-rule, charset,
// import, unknown) per design note §9 "Duck-typed node dispatch → tagged
// variants" — generalizing the teacher's own StylesheetItem{Rule,
// MediaBlock, FontFace, Import} pattern (css/types.go) from four arms to
// the full node family the evaluator needs.
package syntax

// Kind tags which arm of Node is populated.
type Kind int

const (
	KindRule Kind = iota
	KindMedia
	KindDirective
	KindSupports
	KindKeyframeRule
	KindCharset
	KindImport
	KindProperty
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindRule:
		return "rule"
	case KindMedia:
		return "media"
	case KindDirective:
		return "directive"
	case KindSupports:
		return "supports"
	case KindKeyframeRule:
		return "keyframe-rule"
	case KindCharset:
		return "charset"
	case KindImport:
		return "import"
	case KindProperty:
		return "property"
	default:
		return "unknown"
	}
}

// Node is one child of the root, or one child of a container node
// (Rule/Media/Directive/Supports/KeyframeRule all carry further Nodes in
// their Children). Exactly the field matching Kind is populated.
type Node struct {
	Kind Kind
	Line int

	Rule         *RuleNode
	Media        *MediaNode
	Directive    *DirectiveNode
	Supports     *SupportsNode
	KeyframeRule *KeyframeRuleNode
	Charset      *CharsetNode
	Import       *ImportNode
	Property     *PropertyNode

	// UnknownName carries the at-rule name for KindUnknown nodes, so the
	// evaluator can log what it is skipping (spec §7 "unrecognized
	// at-rule node: append to unsupported, continue").
	UnknownName string
}

// RuleNode is a qualified rule: one or more selectors sharing one
// declaration block (contract: "parsed_rules.members" + "children").
type RuleNode struct {
	Members  []ComplexSelector
	Children []Node
}

// PropertyNode is a single declaration (contract: "resolved_name",
// "resolved_value").
type PropertyNode struct {
	Name      string
	Value     string
	Important bool
}

// MediaNode is an @media conditional group rule (contract: "a queryable
// resolved query list whose elements stringify to CSS query form").
type MediaNode struct {
	Queries  []string
	Children []Node
}

// DirectiveNode is the generic container for at-rules that do not have
// their own dedicated node kind in the contract — @namespace, @page,
// @font-face, @keyframes (the block itself; its offset entries arrive as
// KeyframeRuleNode), and any other recognized-but-generic at-rule
// (contract: "name", "value", "children", "resolved_value").
type DirectiveNode struct {
	Name          string
	Value         string
	ResolvedValue string
	Children      []Node
}

// SupportsNode is an @supports conditional group rule (contract: "name",
// "condition.to_css", "children").
type SupportsNode struct {
	Name      string
	Condition string
	Children  []Node
}

// KeyframeRuleNode is a single offset entry inside an @keyframes body
// (contract: "resolved_value", "children"). ResolvedValue carries the
// offset text verbatim ("from", "50%", ...); normalization to percentage
// form is the evaluator's job (spec §4.4).
type KeyframeRuleNode struct {
	ResolvedValue string
	Children      []Node
}

// CharsetNode is an @charset at-rule (contract: "name" — the charset
// string itself).
type CharsetNode struct {
	Name string
}

// ImportNode is an @import at-rule (contract: "resolved_uri", "query").
type ImportNode struct {
	URI   string
	Query []string
}

// SimpleMemberKind enumerates the simple-selector atom types named by
// the parser contract (§6): "Universal, Element, Id, Class, Placeholder,
// Pseudo, Attribute". Placeholder (Sass-style %foo) is part of the
// contract for pluggable parsers but this package's own parser never
// emits it, since plain CSS has no placeholder selectors.
type SimpleMemberKind int

const (
	Universal SimpleMemberKind = iota
	Element
	Id
	Class
	Placeholder
	Pseudo
	Attribute
)

// SimpleMember is one atom of a simple-selector-sequence, plus any
// Attribute sub-selectors glued onto it by ParseComplexSelector (spec §4.2
// step 2). Text is the atom's literal text including any leading sigil
// (".", "#", "::", ":").
type SimpleMember struct {
	Kind       SimpleMemberKind
	Text       string
	Attributes []string
}

// SimpleSequence is a maximal run of selector atoms not separated by a
// combinator (glossary: "Simple-selector-sequence").
type SimpleSequence struct {
	Members []SimpleMember
}

// ComplexSelector is a full selector: simple sequences joined by
// combinators (" ", ">", "+", "~"). len(Combinators) == len(Sequences)-1.
type ComplexSelector struct {
	Sequences   []SimpleSequence
	Combinators []string
	Raw         string
}

// StyleSheet is the parsed root: an ordered list of top-level nodes.
type StyleSheet struct {
	Children []Node
}
