package engine

import (
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"csscompare/imports"
	"csscompare/syntax"
	"csscompare/value"
)

// DefaultImportDepth bounds @import recursion (spec §5: "bound
// recursion at a conservative depth, e.g. 32, and drop deeper imports as
// unsupported").
const DefaultImportDepth = 32

// rootCondition is the initial, empty condition stack: a single literal
// "all" entry, per spec §3 ("all is the default condition when none
// applies") and §4.1 ("an empty outer stack collapses to child
// directly").
var rootCondition = []string{"all"}

// Evaluator is the Evaluator component of spec §4.1: it walks a parsed
// syntax.StyleSheet once and builds a Model.
//
// Grounded on the teacher's css.Parser driving loop (css/parser.go) for
// the overall walk-and-dispatch shape, generalized from flat rule/
// font-face/import handling into the full recursive node-kind dispatch
// spec.md's Evaluator requires (media, keyframes, namespace, charset,
// page, supports all threaded through instead of skipped).
type Evaluator struct {
	log         *zap.Logger
	loader      imports.Loader
	importDepth int
}

// NewEvaluator builds an Evaluator. A nil logger is replaced with a
// no-op one; a nil loader disables @import resolution (every @import is
// recorded as unsupported).
func NewEvaluator(log *zap.Logger, loader imports.Loader, importDepth int) *Evaluator {
	if log == nil {
		log = zap.NewNop()
	}
	if importDepth <= 0 {
		importDepth = DefaultImportDepth
	}
	return &Evaluator{log: log.Named("engine"), loader: loader, importDepth: importDepth}
}

// Evaluate builds a Model from sheet. baseDir resolves any top-level
// @import targets. The returned error is non-nil only for the one fatal
// condition spec §7 names (unsupported ValueFactory input); @import read
// failures are aggregated into a non-fatal multierr the caller may log,
// matching spec §7's "file open failure on an @import target: silent
// skip" — the aggregate is informational, not a failure signal.
func (e *Evaluator) Evaluate(sheet *syntax.StyleSheet, baseDir string) (*Model, error) {
	model := NewModel()
	var importErrs error
	if err := e.walk(model, sheet.Children, rootCondition, baseDir, 0, &importErrs); err != nil {
		return nil, err
	}
	if importErrs != nil {
		e.log.Debug("import warnings", zap.Error(importErrs))
	}
	return model, nil
}

func (e *Evaluator) walk(model *Model, nodes []syntax.Node, conditions []string, baseDir string, depth int, importErrs *error) error {
	for _, n := range nodes {
		if err := e.dispatch(model, n, conditions, baseDir, depth, importErrs); err != nil {
			return err
		}
	}
	return nil
}

func (e *Evaluator) dispatch(model *Model, n syntax.Node, conditions []string, baseDir string, depth int, importErrs *error) error {
	switch n.Kind {
	case syntax.KindRule:
		return e.processRule(model, n.Rule, conditions)

	case syntax.KindMedia:
		next := composeConditions(conditions, n.Media.Queries)
		return e.walk(model, n.Media.Children, next, baseDir, depth, importErrs)

	case syntax.KindDirective:
		return e.processDirective(model, n.Directive, conditions, baseDir, depth, importErrs)

	case syntax.KindSupports:
		return e.processSupports(model, n.Supports, baseDir, depth, importErrs)

	case syntax.KindCharset:
		if model.Charset == "" {
			model.Charset = n.Charset.Name
		} else {
			model.warn(e.log, "duplicate @charset: "+n.Charset.Name)
		}

	case syntax.KindImport:
		return e.processImport(model, n.Import, conditions, baseDir, depth, importErrs)

	case syntax.KindProperty:
		// A declaration directly at stylesheet/media/supports level has
		// no owning selector; record it rather than silently drop it.
		model.warn(e.log, "stray declaration outside any rule: "+n.Property.Name)

	case syntax.KindKeyframeRule:
		model.warn(e.log, "keyframe-rule outside @keyframes")

	default:
		model.warn(e.log, "unrecognized at-rule: "+n.UnknownName)
	}
	return nil
}

// processRule implements §4.2's "process_rule": each comma-separated
// complex selector becomes (or extends) a Selector keyed by its
// canonical name, and every declaration child is merged in under every
// condition currently active.
func (e *Evaluator) processRule(model *Model, rule *syntax.RuleNode, conditions []string) error {
	for _, cs := range rule.Members {
		canon := Canonicalize(cs)
		sel := model.selector(canon)
		if err := bindConditions(sel.AddProperty, rule.Children, conditions); err != nil {
			return err
		}
	}
	return nil
}

// bindConditions parses every property-kind child into a value.Value
// once and records it under each currently active condition.
func bindConditions(add func(string, value.Value, string), children []syntax.Node, conditions []string) error {
	for _, child := range children {
		if child.Kind != syntax.KindProperty {
			continue
		}
		v, err := value.FromRaw(child.Property.Value, child.Property.Important)
		if err != nil {
			return &FatalError{Cause: err}
		}
		for _, c := range conditions {
			add(child.Property.Name, v.Clone(), c)
		}
	}
	return nil
}

func (e *Evaluator) processDirective(model *Model, d *syntax.DirectiveNode, conditions []string, baseDir string, depth int, importErrs *error) error {
	switch d.Name {
	case "keyframes":
		return e.processKeyframes(model, d, conditions)
	case "namespace":
		e.processNamespace(model, d)
	case "page":
		return e.processPage(model, d, conditions)
	case "font-face":
		return e.processFontFace(model, d, conditions)
	default:
		model.warn(e.log, "unrecognized at-rule: @"+d.Name)
	}
	return nil
}

func (e *Evaluator) processKeyframes(model *Model, d *syntax.DirectiveNode, conditions []string) error {
	name := strings.TrimSpace(d.Value)
	kf := model.keyframes(name)
	for _, c := range conditions {
		kf.Rules[c] = make(map[string]*KeyframesSelector)
	}
	for _, child := range d.Children {
		if child.Kind != syntax.KindKeyframeRule {
			continue
		}
		sel := newKeyframesSelector(child.KeyframeRule.ResolvedValue)
		for _, prop := range child.KeyframeRule.Children {
			if prop.Kind != syntax.KindProperty {
				continue
			}
			v, err := value.FromRaw(prop.Property.Value, prop.Property.Important)
			if err != nil {
				return &FatalError{Cause: err}
			}
			p, ok := sel.Properties[prop.Property.Name]
			if !ok {
				p = newProperty(prop.Property.Name)
				sel.Properties[prop.Property.Name] = p
			}
			p.Bindings["all"] = v
		}
		for _, c := range conditions {
			kf.SetOffset(c, sel.Clone())
		}
	}
	return nil
}

// processNamespace implements §4.1's "@namespace: parse `prefix value`;
// if only value, prefix is `default`; strip quotes if url(...)".
func (e *Evaluator) processNamespace(model *Model, d *syntax.DirectiveNode) {
	raw := strings.TrimSpace(d.Value)
	fields := strings.Fields(raw)
	var prefix, uri string
	switch len(fields) {
	case 0:
		return
	case 1:
		prefix, uri = "default", fields[0]
	default:
		prefix, uri = fields[0], strings.Join(fields[1:], " ")
	}
	uri = stripNamespaceURL(uri)
	model.Namespaces[prefix] = uri
}

func stripNamespaceURL(s string) string {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "url(") && strings.HasSuffix(s, ")") {
		inner := strings.TrimSpace(s[4 : len(s)-1])
		return unquoteNamespace(inner)
	}
	return unquoteNamespace(s)
}

func unquoteNamespace(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// processPage implements §4.1/§4.6: comma-split selectors, one
// PageSelector per selector text, declarations outside any margin box
// attached to the synthetic @all margin, margin-box at-rules (arriving
// as generic nested directives) attached to their own symbol.
func (e *Evaluator) processPage(model *Model, d *syntax.DirectiveNode, conditions []string) error {
	selTexts := splitPageSelectors(d.Value)
	for _, selText := range selTexts {
		ps := model.page(selText)
		for _, child := range d.Children {
			switch child.Kind {
			case syntax.KindProperty:
				v, err := value.FromRaw(child.Property.Value, child.Property.Important)
				if err != nil {
					return &FatalError{Cause: err}
				}
				box := ps.box(allMarginSymbol)
				for _, c := range conditions {
					box.AddProperty(child.Property.Name, v.Clone(), c)
				}
			case syntax.KindDirective:
				box := ps.box(child.Directive.Name)
				for _, prop := range child.Directive.Children {
					if prop.Kind != syntax.KindProperty {
						continue
					}
					v, err := value.FromRaw(prop.Property.Value, prop.Property.Important)
					if err != nil {
						return &FatalError{Cause: err}
					}
					for _, c := range conditions {
						box.AddProperty(prop.Property.Name, v.Clone(), c)
					}
				}
			}
		}
	}
	return nil
}

func splitPageSelectors(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{""}
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

// processFontFace implements §4.1/§4.7.
func (e *Evaluator) processFontFace(model *Model, d *syntax.DirectiveNode, conditions []string) error {
	ff := newFontFace()
	for _, child := range d.Children {
		if child.Kind != syntax.KindProperty {
			continue
		}
		ff.SetDescriptor(child.Property.Name, child.Property.Value)
	}
	if !ff.Valid() {
		model.warn(e.log, "discarding invalid @font-face (missing family or src)")
		return nil
	}
	for _, c := range conditions {
		model.FontFaces[ff.Key(c)] = ff.Clone()
	}
	return nil
}

// processSupports implements §4.1/§4.5: the nested model's own starting
// condition is the canonicalized @supports condition itself (spec: "a
// nested Engine model ... with an outer condition equal to the
// canonicalized CONDITION"), not the conditions the @supports block
// itself is nested under.
func (e *Evaluator) processSupports(model *Model, sn *syntax.SupportsNode, baseDir string, depth int, importErrs *error) error {
	canon := canonicalizeSupportsCondition(sn.Condition)
	sup := model.supports(sn.Name)
	nested := sup.nested(canon)
	return e.walk(nested, sn.Children, []string{canon}, baseDir, depth, importErrs)
}

// canonicalizeSupportsCondition normalizes whitespace and strips
// !important noise from an @supports condition (spec §4.5).
func canonicalizeSupportsCondition(condition string) string {
	condition = strings.Join(strings.Fields(condition), " ")
	condition = strings.ReplaceAll(condition, "!important", "")
	condition = strings.ReplaceAll(condition, "! important", "")
	return strings.TrimSpace(condition)
}

// composeConditions implements §4.1's condition stack composition: new
// stack S' is {p + " > " + c | p in S, c in C}; the literal "all" is
// elided on both sides (child "all"/empty per spec; parent "all" too,
// since the initial stack's "all" entry represents the empty/no-
// condition case — SPEC_FULL §4.1, design note "empty outer stack
// collapses to child directly").
func composeConditions(parents []string, children []string) []string {
	if len(children) == 0 {
		return parents
	}
	seen := make(map[string]bool)
	var out []string
	for _, p := range parents {
		for _, rawC := range children {
			c := strings.TrimSpace(rawC)
			var composed string
			switch {
			case c == "" || strings.EqualFold(c, "all"):
				composed = p
			case p == "" || strings.EqualFold(p, "all"):
				composed = c
			default:
				composed = p + " > " + c
			}
			if !seen[composed] {
				seen[composed] = true
				out = append(out, composed)
			}
		}
	}
	if len(out) == 0 {
		return rootCondition
	}
	return out
}

// processImport implements §4.1/§5: resolve the target relative to the
// enclosing file, parse and recurse on success; a media query on the
// import wraps its children in a synthetic condition composition instead
// of a literal @media node. Read failures and the depth bound are
// non-fatal (spec §7 "silent skip" / §5 "drop deeper imports as
// unsupported") and are folded into importErrs purely for diagnostics.
func (e *Evaluator) processImport(model *Model, imp *syntax.ImportNode, conditions []string, baseDir string, depth int, importErrs *error) error {
	if depth+1 > e.importDepth {
		model.warn(e.log, "import recursion depth exceeded, dropping: "+imp.URI)
		return nil
	}
	if e.loader == nil {
		model.warn(e.log, "no import loader configured, skipping: "+imp.URI)
		return nil
	}

	data, resolvedDir, err := e.loader.Load(baseDir, imp.URI)
	if err != nil {
		model.warn(e.log, "skipping unreadable @import: "+imp.URI)
		*importErrs = multierr.Append(*importErrs, err)
		return nil
	}

	sheet, err := syntax.NewParser(e.log).Parse(data, imp.URI)
	if err != nil {
		model.warn(e.log, "skipping unparsable @import: "+imp.URI)
		*importErrs = multierr.Append(*importErrs, err)
		return nil
	}

	next := composeConditions(conditions, imp.Query)
	return e.walk(model, sheet.Children, next, resolvedDir, depth+1, importErrs)
}
