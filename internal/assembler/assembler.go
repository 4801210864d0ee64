/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package assembler collects compiled rules into a deterministic,
// minified stylesheet, per spec.md §4.6.
package assembler

import (
	"fmt"
	"strings"

	"github.com/dxlang/style/internal/compiler"
)

// CompiledRule is a rule ready for assembly: a selector, an optional media
// query ("" for none), its declarations in source order, and the
// specificity tier used to order it relative to other rules.
type CompiledRule struct {
	Selector        string
	Media           string
	Declarations    []compiler.Declaration
	SpecificityTier uint8
}

// Stylesheet is the ordered, deduplicated rule set ready for rendering.
type Stylesheet struct {
	Rules []CompiledRule
}

// Assemble merges rules emitted by the compiler (in first-seen token
// order) into a deterministic Stylesheet: identical selectors are merged
// (last write wins per property, §3 CompiledRule invariant), then grouped
// by media in first-seen order, and within each media group ordered by
// tier then first-seen.
func Assemble(rules []compiler.Rule) Stylesheet {
	merged := mergeBySelector(rules)

	mediaOrder := make([]string, 0)
	seenMedia := make(map[string]bool)
	byMedia := make(map[string][]*mergedRule)
	for _, r := range merged {
		if !seenMedia[r.media] {
			seenMedia[r.media] = true
			mediaOrder = append(mediaOrder, r.media)
		}
		byMedia[r.media] = append(byMedia[r.media], r)
	}

	var out []CompiledRule
	for _, media := range mediaOrder {
		group := byMedia[media]
		stableSortByTier(group)
		for _, r := range group {
			out = append(out, CompiledRule{
				Selector:        r.selector,
				Media:           r.media,
				Declarations:    r.declarations,
				SpecificityTier: r.tier,
			})
		}
	}

	return Stylesheet{Rules: out}
}

type mergedRule struct {
	selector     string
	media        string
	tier         uint8
	declarations []compiler.Declaration
	firstSeen    int
}

// mergeBySelector combines rules sharing a selector into one, applying
// last-write-wins per property while preserving the declaration list's
// original order otherwise (spec.md §4.6 step 4: never reorder
// declarations within a rule).
func mergeBySelector(rules []compiler.Rule) []*mergedRule {
	index := make(map[string]*mergedRule)
	var order []*mergedRule

	for i, r := range rules {
		m, ok := index[r.Selector]
		if !ok {
			m = &mergedRule{
				selector:  r.Selector,
				media:     r.Media,
				tier:      r.SpecificityTier,
				firstSeen: i,
			}
			index[r.Selector] = m
			order = append(order, m)
		}
		m.declarations = mergeDeclarations(m.declarations, r.Declarations)
	}

	return order
}

// mergeDeclarations appends each of next's declarations to base, replacing
// an existing entry for the same property in place (last write wins)
// rather than reordering it to the end.
func mergeDeclarations(base []compiler.Declaration, next []compiler.Declaration) []compiler.Declaration {
	for _, d := range next {
		replaced := false
		for i := range base {
			if base[i].Property == d.Property {
				base[i] = d
				replaced = true
				break
			}
		}
		if !replaced {
			base = append(base, d)
		}
	}
	return base
}

// stableSortByTier orders group by tier ascending, preserving first-seen
// order among rules with equal tiers (an explicit insertion sort keeps
// this visibly stable rather than relying on sort.SliceStable's internals).
func stableSortByTier(group []*mergedRule) {
	for i := 1; i < len(group); i++ {
		j := i
		for j > 0 && group[j-1].tier > group[j].tier {
			group[j-1], group[j] = group[j], group[j-1]
			j--
		}
	}
}

// Render minifies the stylesheet to UTF-8 text per spec.md §6.3: no BOM,
// single trailing newline, whitespace collapsed, no trailing semicolon
// before "}", media blocks nested.
func (s Stylesheet) Render() string {
	var b strings.Builder
	i := 0
	for i < len(s.Rules) {
		media := s.Rules[i].Media
		j := i
		for j < len(s.Rules) && s.Rules[j].Media == media {
			j++
		}
		renderMediaGroup(&b, media, s.Rules[i:j])
		i = j
	}
	b.WriteByte('\n')
	return b.String()
}

func renderMediaGroup(b *strings.Builder, media string, rules []CompiledRule) {
	if media != "" {
		fmt.Fprintf(b, "@media %s{", media)
	}
	for _, r := range rules {
		renderRule(b, r)
	}
	if media != "" {
		b.WriteByte('}')
	}
}

func renderRule(b *strings.Builder, r CompiledRule) {
	b.WriteString(r.Selector)
	b.WriteByte('{')
	for i, d := range r.Declarations {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(d.Property)
		b.WriteByte(':')
		b.WriteString(d.Value)
		if d.Important {
			b.WriteString(" !important")
		}
	}
	b.WriteByte('}')
}
