/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package grouping expands "label(a b c)" grouping expressions into plain
// tokens, either discarding the label (flatten) or prepending it as a
// synthetic variant (context-prefixing).
package grouping

import (
	"fmt"
	"strings"

	"github.com/dxlang/style/internal/diagnostics"
)

// Expander rewrites grouping expressions found in a raw token stream.
type Expander struct {
	// ContextLabels is the configured set of labels that activate
	// context-prefixing; any other label flattens.
	ContextLabels map[string]bool

	// MaxDepth bounds grouping nesting. Expansion beyond MaxDepth emits a
	// diagnostic and treats the deepest inner group as flat text.
	MaxDepth int
}

// NewExpander builds an Expander from the configured context-prefix labels
// and max nesting depth.
func NewExpander(contextLabels []string, maxDepth int) *Expander {
	set := make(map[string]bool, len(contextLabels))
	for _, l := range contextLabels {
		set[l] = true
	}
	if maxDepth <= 0 {
		maxDepth = 8
	}
	return &Expander{ContextLabels: set, MaxDepth: maxDepth}
}

// Expanded is one token produced by flattening a grouping expression.
type Expanded struct {
	// Raw is the fully-flattened token text, including any context-prefix
	// variants prepended by an enclosing context-prefixing label.
	Raw string

	// FromGroup is true when Raw descended from a grouping expression of
	// either kind (flatten or context-prefixing), rather than appearing
	// as a bare top-level token. The assembler uses this to assign the
	// group-variant specificity tier (spec.md §4.6 step 2).
	FromGroup bool
}

// Expand walks raw, a whitespace-split fragment that may itself be a
// grouping expression ("label(...)"), and appends the fully-flattened
// tokens it denotes to out. Fragments without a grouping expression are
// appended unchanged. Expansion is linear in the number of inner tokens:
// expanded tokens are never reinterpreted as grouping expressions.
func (e *Expander) Expand(raw string, diags *diagnostics.Collector) []Expanded {
	var out []Expanded
	e.expand(raw, 0, "", false, &out, diags)
	return out
}

// ExpandAll applies Expand to every fragment in raws, in order.
func (e *Expander) ExpandAll(raws []string, diags *diagnostics.Collector) []Expanded {
	var out []Expanded
	for _, raw := range raws {
		out = append(out, e.Expand(raw, diags)...)
	}
	return out
}

func (e *Expander) expand(raw string, depth int, contextPrefix string, fromGroup bool, out *[]Expanded, diags *diagnostics.Collector) {
	label, inner, ok := splitGroup(raw)
	if !ok {
		*out = append(*out, Expanded{Raw: contextPrefix + raw, FromGroup: fromGroup})
		return
	}

	if depth >= e.MaxDepth {
		if diags != nil {
			diags.Add(diagnostics.Diagnostic{
				Kind:    diagnostics.KindToken,
				Token:   raw,
				Message: fmt.Sprintf("grouping nesting exceeds max depth %d, treating as flat text", e.MaxDepth),
			})
		}
		*out = append(*out, Expanded{Raw: contextPrefix + raw, FromGroup: fromGroup})
		return
	}

	nextPrefix := contextPrefix
	if e.ContextLabels[label] {
		nextPrefix = contextPrefix + label + ":"
	}

	// Split inner at top-level whitespace only, so a nested group whose own
	// inner text contains spaces stays one field.
	level, start := 0, -1
	for i := 0; i <= len(inner); i++ {
		if i < len(inner) && (level > 0 || strings.IndexByte(" \t\n\r\f\v", inner[i]) < 0) {
			if start < 0 {
				start = i
			}
			if inner[i] == '(' {
				level++
			} else if inner[i] == ')' && level > 0 {
				level--
			}
			continue
		}
		if start >= 0 {
			e.expand(inner[start:i], depth+1, nextPrefix, true, out, diags)
			start = -1
		}
	}
}

// splitGroup recognises "label(...)" with balanced parentheses and returns
// the label and the inner text. ok is false if raw is not a grouping
// expression (no "(" or unbalanced parens).
func splitGroup(raw string) (label, inner string, ok bool) {
	open := strings.IndexByte(raw, '(')
	if open < 0 || !strings.HasSuffix(raw, ")") {
		return "", "", false
	}
	label = raw[:open]
	depth := 0
	for i := open; i < len(raw); i++ {
		switch raw[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				if i != len(raw)-1 {
					return "", "", false
				}
				return label, raw[open+1 : i], true
			}
		}
	}
	return "", "", false
}
