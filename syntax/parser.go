package syntax

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	tdcss "github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser drives tdewolff/parse/v2/css.Parser into the Node tree defined
// in types.go, implementing the parser contract of spec §6.
//
// Grounded on the teacher's css.Parser (css/parser.go): same grammar-event
// dispatch (BeginAtRuleGrammar/BeginRulesetGrammar/DeclarationGrammar/
// EndRulesetGrammar/QualifiedRuleGrammar/CustomPropertyGrammar), but
// generalized to recurse into every at-rule body instead of skipping
// @media/@supports/@keyframes/@page/@namespace — those bodies must be
// represented, not discarded, for the equivalence engine to see them.
type Parser struct {
	log *zap.Logger
}

// NewParser builds a Parser. A nil logger is replaced with a no-op one.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// parseMode selects how BeginRulesetGrammar bodies are interpreted: as
// ordinary rules, or — inside an @keyframes body — as keyframe offset
// entries. tdewolff's tokenizer cannot tell these apart on its own since
// both look like a qualified rule to the grammar layer.
type parseMode int

const (
	modeStylesheet parseMode = iota
	modeKeyframes
)

// Parse parses CSS source into a StyleSheet. source, if given, identifies
// the input for debug logging only.
func (p *Parser) Parse(data []byte, source ...string) (*StyleSheet, error) {
	if len(source) > 0 && source[0] != "" {
		p.log.Debug("parsing stylesheet", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	input := parse.NewInput(bytes.NewReader(data))
	cp := tdcss.NewParser(input, false)

	children := p.parseChildren(cp, modeStylesheet)

	if err := cp.Err(); err != nil && !errors.Is(err, io.EOF) && err.Error() != "EOF" {
		return nil, fmt.Errorf("syntax: parse error: %w", err)
	}
	return &StyleSheet{Children: children}, nil
}

// parseChildren consumes grammar events until the enclosing block ends
// (or input is exhausted) and returns the Nodes produced. It is reused
// for the stylesheet root, @media/@supports bodies, rule bodies (CSS
// nesting), and @page bodies (whose direct declarations arrive as bare
// DeclarationGrammar events alongside nested margin-box at-rules).
func (p *Parser) parseChildren(cp *tdcss.Parser, mode parseMode) []Node {
	var children []Node

	for {
		gt, _, data := cp.Next()

		switch gt {
		case tdcss.ErrorGrammar:
			return children

		case tdcss.EndAtRuleGrammar, tdcss.EndRulesetGrammar:
			return children

		case tdcss.BeginAtRuleGrammar:
			name := strings.ToLower(string(data))
			children = append(children, p.parseAtRuleBlock(cp, name))

		case tdcss.AtRuleGrammar:
			name := strings.ToLower(string(data))
			children = append(children, p.parseAtRuleFlat(name, cp.Values()))

		case tdcss.BeginRulesetGrammar:
			if mode == modeKeyframes {
				children = append(children, p.parseKeyframeRule(cp, data))
			} else {
				children = append(children, p.parseRule(cp, data))
			}

		case tdcss.QualifiedRuleGrammar:
			// A qualified rule with no declaration block. Rare in real
			// stylesheets; recorded with an empty body for completeness.
			sel := buildPrelude(data, cp.Values())
			children = append(children, Node{Kind: KindRule, Rule: &RuleNode{Members: parseSelectorList(sel)}})

		case tdcss.DeclarationGrammar, tdcss.CustomPropertyGrammar:
			name := string(data)
			raw, important := joinValues(cp.Values())
			children = append(children, Node{Kind: KindProperty, Property: &PropertyNode{Name: name, Value: raw, Important: important}})
		}
	}
}

// parseAtRuleBlock dispatches a block-form at-rule (one with { ... }) to
// its specific node shape, or falls back to a generic Directive with flat
// declaration children — which is exactly the right shape for @page's
// margin-box at-rules (@top-left-corner, etc.) without any special case.
func (p *Parser) parseAtRuleBlock(cp *tdcss.Parser, name string) Node {
	prelude := buildPrelude(nil, cp.Values())

	switch name {
	case "@media":
		queries := splitTopLevelCommas(prelude)
		children := p.parseChildren(cp, modeStylesheet)
		return Node{Kind: KindMedia, Media: &MediaNode{Queries: trimAll(queries), Children: children}}

	case "@supports":
		condition := prelude
		children := p.parseChildren(cp, modeStylesheet)
		return Node{Kind: KindSupports, Supports: &SupportsNode{Name: condition, Condition: condition, Children: children}}

	case "@keyframes", "@-webkit-keyframes", "@-moz-keyframes":
		children := p.parseChildren(cp, modeKeyframes)
		return Node{Kind: KindDirective, Directive: &DirectiveNode{Name: "keyframes", Value: prelude, ResolvedValue: prelude, Children: children}}

	case "@font-face":
		children := p.parseDeclarationsAsNodes(cp)
		return Node{Kind: KindDirective, Directive: &DirectiveNode{Name: "font-face", Children: children}}

	case "@page":
		children := p.parseChildren(cp, modeStylesheet)
		return Node{Kind: KindDirective, Directive: &DirectiveNode{Name: "page", Value: prelude, ResolvedValue: prelude, Children: children}}

	default:
		ruleName := strings.TrimPrefix(name, "@")
		children := p.parseDeclarationsAsNodes(cp)
		p.log.Debug("generic at-rule block", zap.String("rule", name))
		return Node{Kind: KindDirective, Directive: &DirectiveNode{Name: ruleName, Value: prelude, ResolvedValue: prelude, Children: children}}
	}
}

// parseAtRuleFlat dispatches a block-less at-rule (terminated by ';').
func (p *Parser) parseAtRuleFlat(name string, values []tdcss.Token) Node {
	switch name {
	case "@charset":
		return Node{Kind: KindCharset, Charset: &CharsetNode{Name: extractCharsetString(values)}}

	case "@import":
		uri, query := extractImport(values)
		return Node{Kind: KindImport, Import: &ImportNode{URI: uri, Query: query}}

	case "@namespace":
		raw := buildPrelude(nil, values)
		return Node{Kind: KindDirective, Directive: &DirectiveNode{Name: "namespace", Value: raw, ResolvedValue: raw}}

	default:
		p.log.Debug("unrecognized at-rule", zap.String("rule", name))
		return Node{Kind: KindUnknown, UnknownName: name}
	}
}

// parseRule parses a qualified rule's selector prelude and declaration
// body.
func (p *Parser) parseRule(cp *tdcss.Parser, data []byte) Node {
	sel := buildPrelude(data, cp.Values())
	members := parseSelectorList(sel)
	children := p.parseChildren(cp, modeStylesheet)
	return Node{Kind: KindRule, Rule: &RuleNode{Members: members, Children: children}}
}

// parseKeyframeRule parses one offset entry inside an @keyframes body.
func (p *Parser) parseKeyframeRule(cp *tdcss.Parser, data []byte) Node {
	offset := buildPrelude(data, cp.Values())
	children := p.parseDeclarationsAsNodes(cp)
	return Node{Kind: KindKeyframeRule, KeyframeRule: &KeyframeRuleNode{ResolvedValue: offset, Children: children}}
}

// parseDeclarationsAsNodes reads a flat declaration body (rulesets that
// never contain nested blocks: @font-face, margin boxes, keyframe
// entries) until the enclosing block ends.
func (p *Parser) parseDeclarationsAsNodes(cp *tdcss.Parser) []Node {
	var nodes []Node
	for {
		gt, _, data := cp.Next()
		switch gt {
		case tdcss.ErrorGrammar, tdcss.EndRulesetGrammar, tdcss.EndAtRuleGrammar:
			return nodes
		case tdcss.DeclarationGrammar, tdcss.CustomPropertyGrammar:
			name := string(data)
			raw, important := joinValues(cp.Values())
			nodes = append(nodes, Node{Kind: KindProperty, Property: &PropertyNode{Name: name, Value: raw, Important: important}})
		}
	}
}

// buildPrelude concatenates a grammar event's leading data (if any, e.g.
// an at-rule keyword or declaration name) with its token values into one
// trimmed string, the way the teacher's parseSelectors does.
func buildPrelude(data []byte, values []tdcss.Token) string {
	var b strings.Builder
	b.Write(data)
	for _, v := range values {
		b.Write(v.Data)
	}
	return strings.TrimSpace(b.String())
}

// joinValues renders a declaration's value tokens into a single
// normalized string and reports whether a trailing !important marker was
// present, stripping it from the returned text (spec §3: "the
// !important marker is stripped from the textual payload and
// represented only by the flag").
func joinValues(tokens []tdcss.Token) (raw string, important bool) {
	// Detect and strip a trailing "!" Ident("important") pair (with
	// optional whitespace tokens around the "!").
	end := len(tokens)
	for end > 0 && tokens[end-1].TokenType == tdcss.WhitespaceToken {
		end--
	}
	if end >= 2 {
		identTok := tokens[end-1]
		if identTok.TokenType == tdcss.IdentToken && strings.EqualFold(string(identTok.Data), "important") {
			j := end - 2
			for j >= 0 && tokens[j].TokenType == tdcss.WhitespaceToken {
				j--
			}
			if j >= 0 && isBangToken(tokens[j]) {
				important = true
				end = j
				for end > 0 && tokens[end-1].TokenType == tdcss.WhitespaceToken {
					end--
				}
			}
		}
	}

	var parts []string
	for _, t := range tokens[:end] {
		if t.TokenType == tdcss.WhitespaceToken {
			if len(parts) > 0 {
				parts = append(parts, " ")
			}
			continue
		}
		parts = append(parts, string(t.Data))
	}
	return strings.TrimSpace(strings.Join(parts, "")), important
}

// isBangToken reports whether a token is the "!" delimiter that precedes
// !important. tdewolff's css tokenizer surfaces this as a DelimToken
// whose data is "!".
func isBangToken(t tdcss.Token) bool {
	return string(t.Data) == "!"
}

// extractCharsetString pulls the quoted charset name out of @charset's
// prelude tokens.
func extractCharsetString(values []tdcss.Token) string {
	for _, t := range values {
		if t.TokenType == tdcss.StringToken {
			return unquoteString(string(t.Data))
		}
	}
	return ""
}

// extractImport pulls the URI and any trailing media query list out of
// @import's prelude tokens. Handles @import "url", @import url("url"),
// and @import url(url) media ... forms.
func extractImport(values []tdcss.Token) (uri string, query []string) {
	var rest []tdcss.Token
	found := false
	for i, t := range values {
		if found {
			continue
		}
		switch t.TokenType {
		case tdcss.StringToken:
			uri = unquoteString(string(t.Data))
			found = true
			rest = values[i+1:]
		case tdcss.URLToken:
			s := string(t.Data)
			s = strings.TrimPrefix(s, "url(")
			s = strings.TrimSuffix(s, ")")
			uri = unquoteString(strings.TrimSpace(s))
			found = true
			rest = values[i+1:]
		}
	}
	raw := buildPrelude(nil, rest)
	if raw != "" {
		query = trimAll(splitTopLevelCommas(raw))
	}
	return uri, query
}

// unquoteString strips one layer of matching single/double quotes.
func unquoteString(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

func trimAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strings.TrimSpace(s)
	}
	return out
}

// splitTopLevelCommas splits s on commas not nested inside parentheses or
// brackets (media query lists, @import query lists).
func splitTopLevelCommas(s string) []string {
	var out []string
	depthParen, depthBracket := 0, 0
	start := 0
	for i, r := range s {
		switch r {
		case '(':
			depthParen++
		case ')':
			if depthParen > 0 {
				depthParen--
			}
		case '[':
			depthBracket++
		case ']':
			if depthBracket > 0 {
				depthBracket--
			}
		case ',':
			if depthParen == 0 && depthBracket == 0 {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	tail := s[start:]
	if strings.TrimSpace(tail) != "" || len(out) > 0 {
		out = append(out, tail)
	}
	return out
}

// parseSelectorList splits a selector prelude on top-level commas and
// parses each item into a ComplexSelector.
func parseSelectorList(raw string) []ComplexSelector {
	items := splitTopLevelCommas(raw)
	out := make([]ComplexSelector, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, ParseComplexSelector(item))
	}
	return out
}
