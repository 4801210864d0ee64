/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package compiler maps a ParsedToken to one or more CSS declarations with
// a selector and media query, per spec.md §4.5. The family resolution
// itself is a closed dispatch table keyed by family name (tagged-variant
// records, not interfaces, since the family set is closed and benefits
// from exhaustive matching — spec.md §9).
package compiler

import (
	"strconv"
	"strings"

	"github.com/dxlang/style/internal/diagnostics"
	"github.com/dxlang/style/internal/families"
	"github.com/dxlang/style/internal/tokenmodel"
)

// Declaration is a single CSS property/value pair with its own important flag.
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

// Rule is a compiled token: a selector, optional media query, and its
// declarations, plus the specificity tier the assembler uses to order it.
type Rule struct {
	Selector        string
	Media           string
	Declarations    []Declaration
	SpecificityTier uint8
}

// Compiler resolves ParsedTokens against the configured variant allowlist
// and family scale tables.
type Compiler struct {
	KnownVariants map[string]bool
	Tables        *families.Tables
}

// New returns a Compiler bound to the given recognised-variant allowlist
// and family tables.
func New(knownVariants []string, tables *families.Tables) *Compiler {
	set := make(map[string]bool, len(knownVariants))
	for _, v := range knownVariants {
		set[v] = true
	}
	if tables == nil {
		tables = families.DefaultTables()
	}
	return &Compiler{KnownVariants: set, Tables: tables}
}

// Compile resolves raw (already grouping-expanded) into a Rule. ok is
// false when the token could not be compiled (unrecognised variant,
// unknown utility, malformed arbitrary value); the caller should treat
// that as "no rule emitted" per spec.md §4.5 and §7, having already
// recorded a diagnostic.
func (c *Compiler) Compile(raw string, fromGroup bool, diags *diagnostics.Collector) (Rule, bool) {
	pt := tokenmodel.Parse(raw).Dedup()

	effects := make([]VariantEffect, 0, len(pt.Variants))
	for _, v := range pt.Variants {
		if !c.KnownVariants[v] {
			diags.Add(diagnostics.Diagnostic{
				Kind:    diagnostics.KindToken,
				Token:   raw,
				Message: "unknown variant " + strconv.Quote(v),
			})
			return Rule{}, false
		}
		effect, ok := resolveVariant(v)
		if !ok {
			// Recognised by config but the compiler has no built-in
			// wrapper for it; fall back to treating it as a pseudo-class,
			// which is the least surprising default.
			effect = VariantEffect{Kind: VariantPseudoClass, Value: v}
		}
		effects = append(effects, effect)
	}

	decls, ok := c.resolveFamily(pt, diags)
	if !ok {
		return Rule{}, false
	}

	for i := range decls {
		decls[i].Important = pt.Important
	}

	selector := "." + EscapeIdent(raw)
	var media []string
	for _, e := range effects {
		switch e.Kind {
		case VariantPseudoClass:
			selector += ":" + e.Value
		case VariantPseudoElement:
			selector += "::" + e.Value
		case VariantAttribute:
			selector = e.Value + selector
		case VariantMedia:
			media = append(media, e.Value)
		case VariantSupports:
			media = append(media, "@supports "+e.Value)
		}
	}

	return Rule{
		Selector:        selector,
		Media:           strings.Join(media, " and "),
		Declarations:    decls,
		SpecificityTier: specificityTier(len(pt.Variants), fromGroup),
	}, true
}

// specificityTier derives the stable tier spec.md §4.6 step 2 describes:
// base=0, single-variant=1, multi-variant=2, group-variant=3.
func specificityTier(variantCount int, fromGroup bool) uint8 {
	if fromGroup {
		return 3
	}
	switch {
	case variantCount == 0:
		return 0
	case variantCount == 1:
		return 1
	default:
		return 2
	}
}

// resolveFamily dispatches pt.Base (and pt.Arbitrary, if present) to the
// family that recognises it. Order matters only for the ambiguous "text"
// name, which is both a color alias prefix and the typography family;
// color is tried first since palette keys are distinctive ("blue-500")
// while typography scale keys are short identifiers ("lg", "sm").
func (c *Compiler) resolveFamily(pt tokenmodel.ParsedToken, diags *diagnostics.Collector) ([]Declaration, bool) {
	name, arg, hasArg := splitFamily(pt.Base)

	if pt.Arbitrary != nil {
		return c.resolveArbitrary(pt, diags)
	}

	if !hasArg {
		if decls, ok := families.Layout(pt.Base); ok {
			return toCompilerDecls(decls), true
		}
		diags.Add(diagnostics.Diagnostic{
			Kind:    diagnostics.KindUtility,
			Token:   pt.Raw,
			Message: "unknown utility " + strconv.Quote(pt.Base),
		})
		return nil, false
	}

	if name == "text" {
		if decls, ok := families.Color(c.Tables, "color", arg); ok {
			return toCompilerDecls(decls), true
		}
		if decls, ok := families.Typography(c.Tables, name, arg); ok {
			return toCompilerDecls(decls), true
		}
	}

	if name == "bg" {
		if decls, ok := families.Color(c.Tables, "background-color", arg); ok {
			return toCompilerDecls(decls), true
		}
	}

	if families.IsSpacingFamily(name) {
		if decls, ok := families.Spacing(c.Tables, name, arg); ok {
			return toCompilerDecls(decls), true
		}
	}

	if decls, ok := families.Layout(pt.Base); ok {
		return toCompilerDecls(decls), true
	}

	diags.Add(diagnostics.Diagnostic{
		Kind:    diagnostics.KindUtility,
		Token:   pt.Raw,
		Message: "unknown utility " + strconv.Quote(pt.Base),
	})
	return nil, false
}

// resolveArbitrary validates and emits the declaration for a "-[...]"
// arbitrary value base, per spec.md §4.5: the family's target property
// with the arbitrary value, after validating no unbalanced brackets and
// no ";" or "}".
func (c *Compiler) resolveArbitrary(pt tokenmodel.ParsedToken, diags *diagnostics.Collector) ([]Declaration, bool) {
	prop, ok := arbitraryTargetProperty(pt.Base)
	if !ok {
		diags.Add(diagnostics.Diagnostic{
			Kind:    diagnostics.KindUtility,
			Token:   pt.Raw,
			Message: "unknown utility " + strconv.Quote(pt.Base),
		})
		return nil, false
	}

	value := *pt.Arbitrary
	if !validArbitraryValue(value) {
		diags.Add(diagnostics.Diagnostic{
			Kind:    diagnostics.KindToken,
			Token:   pt.Raw,
			Message: "malformed arbitrary value " + strconv.Quote(value),
		})
		return nil, false
	}

	return []Declaration{{Property: prop, Value: value}}, true
}

// arbitraryTargetProperty maps a family prefix to the CSS property an
// arbitrary value applies to.
var arbitraryTargetProperty = func() func(string) (string, bool) {
	table := map[string]string{
		"w": "width", "h": "height", "top": "top", "left": "left",
		"right": "right", "bottom": "bottom", "z": "z-index",
		"text": "color", "bg": "background-color",
	}
	return func(name string) (string, bool) {
		p, ok := table[name]
		return p, ok
	}
}()

// validArbitraryValue enforces spec.md §4.5's arbitrary-value rules:
// balanced brackets and no ";" or "}".
func validArbitraryValue(value string) bool {
	if strings.ContainsAny(value, ";}") {
		return false
	}
	depth := 0
	for i := 0; i < len(value); i++ {
		switch value[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

// splitFamily splits a non-arbitrary base into its leading ident family
// name and the remainder after the first "-", if any (e.g. "blue-500"
// won't itself be split here; this splits the *utility* base like "p-4"
// into ("p", "4") or "text-blue-500" into ("text", "blue-500")).
func splitFamily(base string) (name, arg string, hasArg bool) {
	idx := strings.IndexByte(base, '-')
	if idx < 0 {
		return base, "", false
	}
	return base[:idx], base[idx+1:], true
}

func toCompilerDecls(in []families.Declaration) []Declaration {
	out := make([]Declaration, len(in))
	for i, d := range in {
		out[i] = Declaration{Property: d.Property, Value: d.Value}
	}
	return out
}
