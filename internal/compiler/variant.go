/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package compiler

// VariantKind classifies how a variant wraps the generated rule.
type VariantKind int

// Variant kinds, per spec.md §4.5 step 2.
const (
	VariantPseudoClass VariantKind = iota
	VariantPseudoElement
	VariantMedia
	VariantSupports
	VariantAttribute
)

// VariantEffect is the resolved meaning of a recognised variant name.
type VariantEffect struct {
	Kind  VariantKind
	Value string
}

// builtinVariants resolves the variant names the compiler knows how to
// wrap a rule with. Only names also present in the configured
// variants.known allowlist are honoured; the allowlist is the source of
// truth for "recognised", this table is the source of truth for "how".
var builtinVariants = map[string]VariantEffect{
	"hover":         {VariantPseudoClass, "hover"},
	"focus":         {VariantPseudoClass, "focus"},
	"active":        {VariantPseudoClass, "active"},
	"visited":       {VariantPseudoClass, "visited"},
	"disabled":      {VariantPseudoClass, "disabled"},
	"first":         {VariantPseudoClass, "first-child"},
	"last":          {VariantPseudoClass, "last-child"},
	"before":        {VariantPseudoElement, "before"},
	"after":         {VariantPseudoElement, "after"},
	"placeholder":   {VariantPseudoElement, "placeholder"},
	"dark":          {VariantMedia, "(prefers-color-scheme: dark)"},
	"sm":            {VariantMedia, "(min-width: 640px)"},
	"md":            {VariantMedia, "(min-width: 768px)"},
	"lg":            {VariantMedia, "(min-width: 1024px)"},
	"xl":            {VariantMedia, "(min-width: 1280px)"},
	"supports-grid": {VariantSupports, "(display: grid)"},
	"group-hover":   {VariantAttribute, "[data-group]:hover "},
}

// resolveVariant returns the effect for name if the compiler knows how to
// apply it. Callers must separately check the configured allowlist for
// whether the variant is "recognised" at all.
func resolveVariant(name string) (VariantEffect, bool) {
	e, ok := builtinVariants[name]
	return e, ok
}
