/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package extractor scans source bytes for class-attribute tokens, per
// spec.md §4.2. The scalar byte-scan backend below is always correct; a
// wider SIMD path is a capability, never a requirement (spec.md §9), so
// Capabilities only reports what the CPU could accelerate, it never
// changes the token set the scan produces.
package extractor

import (
	"bytes"

	"github.com/klauspost/cpuid/v2"

	"github.com/dxlang/style/internal/diagnostics"
)

// Result is the extractor's per-file output: an ordered-unique list of raw
// class tokens and a byte-offset index of each token's first occurrence.
type Result struct {
	Tokens      []string
	FirstOffset map[string]int
}

// Options configures which attribute names the scan recognises.
type Options struct {
	Attributes []string

	// CapacityHint is the expected unique-token count, used to pre-size
	// the de-duplication set.
	CapacityHint int
}

// Capabilities reports the SIMD-adjacent instruction sets detected on the
// running CPU. This is observability only: Extract's token set is
// identical regardless of what it reports.
type Capabilities struct {
	AVX2 bool
	SSE2 bool
}

// DetectCapabilities inspects the running CPU via klauspost/cpuid.
func DetectCapabilities() Capabilities {
	return Capabilities{
		AVX2: cpuid.CPU.Has(cpuid.AVX2),
		SSE2: cpuid.CPU.Has(cpuid.SSE2),
	}
}

// String reports which scan strategy the detected capabilities favor, for
// startup logging (spec.md §4.2's "reports which scan strategy is active").
func (c Capabilities) String() string {
	switch {
	case c.AVX2:
		return "scalar scan (AVX2 available)"
	case c.SSE2:
		return "scalar scan (SSE2 available)"
	default:
		return "scalar scan (no SIMD capability detected)"
	}
}

// Extract scans data for class-attribute values and returns the
// ordered-unique tokens found, per spec.md §4.2's algorithm. It never
// aborts: a per-file I/O failure is the caller's concern (this function
// only ever receives bytes already read), and an unterminated attribute
// value is tolerated by stopping at end-of-file.
func Extract(path string, data []byte, opts Options, diags *diagnostics.Collector) Result {
	attrs := opts.Attributes
	if len(attrs) == 0 {
		attrs = []string{"class", "className"}
	}

	capacity := opts.CapacityHint
	if capacity <= 0 {
		capacity = 16
	}

	seen := make(map[string]bool, capacity)
	result := Result{FirstOffset: make(map[string]int, capacity)}

	for _, attr := range attrs {
		needle := []byte(attr + "=")
		pos := 0
		for {
			idx := bytes.Index(data[pos:], needle)
			if idx < 0 {
				break
			}
			attrStart := pos + idx
			valueStart := attrStart + len(needle)
			if valueStart >= len(data) {
				break
			}
			quote := data[valueStart]
			if quote != '"' && quote != '\'' {
				pos = valueStart
				continue
			}
			valueStart++

			end := indexUnescapedQuote(data, valueStart, quote)
			unterminated := end < 0
			if unterminated {
				end = len(data)
			}

			scanTokens(data[valueStart:end], valueStart, &result, seen, diags, path)

			if unterminated {
				break
			}
			pos = end + 1
		}
	}

	return result
}

// indexUnescapedQuote returns the index of the first quote byte at or
// after start, with no escape-sequence handling (spec.md §4.2: "escaped
// quotes not supported; first unescaped matching quote ends the value").
func indexUnescapedQuote(data []byte, start int, quote byte) int {
	idx := bytes.IndexByte(data[start:], quote)
	if idx < 0 {
		return -1
	}
	return start + idx
}

// scanTokens splits value on ASCII whitespace, keeping balanced-paren
// grouping expressions as single tokens, and records each token's first
// occurrence by absolute offset into the original file.
func scanTokens(value []byte, baseOffset int, result *Result, seen map[string]bool, diags *diagnostics.Collector, path string) {
	i := 0
	for i < len(value) {
		for i < len(value) && isSpace(value[i]) {
			i++
		}
		if i >= len(value) {
			break
		}
		start := i
		depth := 0
		for i < len(value) {
			c := value[i]
			if c == '(' {
				depth++
			} else if c == ')' && depth > 0 {
				depth--
			} else if isSpace(c) && depth == 0 {
				break
			}
			i++
		}
		if depth != 0 && diags != nil {
			diags.Add(diagnostics.Diagnostic{
				Kind:    diagnostics.KindExtractor,
				Path:    path,
				Message: "unbalanced grouping parentheses",
			})
		}
		token := string(value[start:i])
		if token == "" {
			continue
		}
		if !seen[token] {
			seen[token] = true
			result.Tokens = append(result.Tokens, token)
			result.FirstOffset[token] = baseOffset + start
		}
	}
}

// isSpace reports whether c is one of the ASCII whitespace bytes
// spec.md §4.2 names: space, tab, \n, \r, \f, \v.
func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	default:
		return false
	}
}
