/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package extractor

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	tshtml "github.com/tree-sitter/tree-sitter-html/bindings/go"
	tsjavascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"

	"github.com/dxlang/style/internal/diagnostics"
)

// structuralExtensions names the source kinds where a byte-scan for
// `class=` would false-positive inside a JS template-literal expression
// (e.g. `className={active ? "a b" : "c"}`), so a structural parse is
// used instead to isolate only the literal attribute-value text.
var structuralExtensions = map[string]bool{
	"svelte": true,
	"vue":    true,
	"jsx":    true,
	"tsx":    true,
}

// IsStructural reports whether ext needs the tree-sitter backend rather
// than the scalar byte scanner.
func IsStructural(ext string) bool {
	return structuralExtensions[ext]
}

// ExtractStructural parses data with the HTML or JavaScript grammar
// (selected by ext) and extracts string-literal values of the configured
// class attributes, reusing the same whitespace/grouping split as the
// byte-scan backend so both paths produce identical token shapes.
func ExtractStructural(path, ext string, data []byte, opts Options, diags *diagnostics.Collector) Result {
	lang := languageFor(ext)
	if lang == nil {
		return Extract(path, data, opts, diags)
	}

	parser := sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(lang); err != nil {
		diags.Add(diagnostics.Diagnostic{
			Kind:    diagnostics.KindExtractor,
			Path:    path,
			Message: "tree-sitter language init failed: " + err.Error(),
		})
		return Extract(path, data, opts, diags)
	}

	tree := parser.Parse(data, nil)
	if tree == nil {
		diags.Add(diagnostics.Diagnostic{
			Kind:    diagnostics.KindExtractor,
			Path:    path,
			Message: "tree-sitter parse failed",
		})
		return Result{FirstOffset: map[string]int{}}
	}
	defer tree.Close()

	attrs := opts.Attributes
	if len(attrs) == 0 {
		attrs = []string{"class", "className"}
	}
	attrSet := make(map[string]bool, len(attrs))
	for _, a := range attrs {
		attrSet[a] = true
	}

	capacity := opts.CapacityHint
	if capacity <= 0 {
		capacity = 16
	}
	seen := make(map[string]bool, capacity)
	result := Result{FirstOffset: make(map[string]int, capacity)}

	walkAttributeValues(tree.RootNode(), data, attrSet, func(value []byte, offset int) {
		scanTokens(value, offset, &result, seen, diags, path)
	})

	return result
}

func languageFor(ext string) *sitter.Language {
	switch ext {
	case "svelte", "vue":
		return sitter.NewLanguage(tshtml.Language())
	case "jsx", "tsx":
		return sitter.NewLanguage(tsjavascript.Language())
	default:
		return nil
	}
}

// walkAttributeValues walks the parse tree looking for attribute/property
// nodes named in attrSet and invokes emit with each string literal value
// found, attribute text stripped of its surrounding quotes.
func walkAttributeValues(node *sitter.Node, source []byte, attrSet map[string]bool, emit func(value []byte, offset int)) {
	if node == nil {
		return
	}

	switch node.Kind() {
	case "attribute":
		emitHTMLAttribute(node, source, attrSet, emit)
	case "jsx_attribute":
		emitJSXAttribute(node, source, attrSet, emit)
	}

	count := int(node.ChildCount())
	for i := 0; i < count; i++ {
		walkAttributeValues(node.Child(uint(i)), source, attrSet, emit)
	}
}

func emitHTMLAttribute(node *sitter.Node, source []byte, attrSet map[string]bool, emit func([]byte, int)) {
	nameNode := node.ChildByFieldName("name")
	valueNode := node.ChildByFieldName("value")
	if nameNode == nil || valueNode == nil {
		return
	}
	if !attrSet[string(source[nameNode.StartByte():nameNode.EndByte()])] {
		return
	}
	start, end := unquote(valueNode.StartByte(), valueNode.EndByte(), source)
	emit(source[start:end], int(start))
}

func emitJSXAttribute(node *sitter.Node, source []byte, attrSet map[string]bool, emit func([]byte, int)) {
	nameNode := node.ChildByFieldName("name")
	valueNode := node.ChildByFieldName("value")
	if nameNode == nil || valueNode == nil {
		return
	}
	if !attrSet[string(source[nameNode.StartByte():nameNode.EndByte()])] {
		return
	}
	// Only a plain string literal value is scanned; an expression
	// container (`{cond ? "a" : "b"}`) is structural precisely because a
	// byte scan can't safely interpret it, and this backend doesn't
	// attempt to either — it is correctness-conservative, not exhaustive.
	if valueNode.Kind() != "string" {
		return
	}
	start, end := unquote(valueNode.StartByte(), valueNode.EndByte(), source)
	emit(source[start:end], int(start))
}

// unquote trims a single layer of matching quote bytes from [start,end).
func unquote(start, end uint, source []byte) (uint, uint) {
	if end-start < 2 {
		return start, end
	}
	first := source[start]
	if (first == '"' || first == '\'') && source[end-1] == first {
		return start + 1, end - 1
	}
	return start, end
}
