/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package compiler

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// EscapeIdent escapes raw as a CSS identifier: any printable ASCII byte
// outside [A-Za-z0-9_-] is escaped with a leading backslash (e.g. ":" ->
// "\:", "!" -> "\!"), per spec.md §4.5 step 1 and scenario B. raw is first
// normalized to NFC so that visually identical arbitrary-value tokens
// written in different Unicode normal forms (a common source drift
// between editors) always escape to the same identifier. Valid UTF-8
// continuation bytes (>= 0x80) are preserved as-is, since they form valid
// CSS ident characters.
func EscapeIdent(raw string) string {
	raw = norm.NFC.String(raw)
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c >= 0x80:
			b.WriteByte(c)
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_', c == '-':
			b.WriteByte(c)
		case c < 0x20 || c == 0x7f:
			fmt.Fprintf(&b, "\\%02x ", c)
		default:
			b.WriteByte('\\')
			b.WriteByte(c)
		}
	}
	return b.String()
}
