/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package diagnostics

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mazznoer/csscolorparser"
)

// Collector gathers diagnostics raised over a single compile cycle and
// renders them either as JSON-lines (for --json / CI consumption) or as
// human-readable lines with an ANSI color swatch when a diagnostic names
// a color-family token.
type Collector struct {
	diagnostics []Diagnostic
}

// NewCollector returns an empty diagnostic collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Add records a diagnostic.
func (c *Collector) Add(d Diagnostic) {
	c.diagnostics = append(c.diagnostics, d)
}

// Len returns the number of diagnostics collected so far.
func (c *Collector) Len() int {
	return len(c.diagnostics)
}

// All returns the collected diagnostics in emission order.
func (c *Collector) All() []Diagnostic {
	return c.diagnostics
}

// WriteJSONLines writes one JSON object per diagnostic, newline-delimited.
func (c *Collector) WriteJSONLines(w io.Writer) error {
	enc := json.NewEncoder(w)
	for _, d := range c.diagnostics {
		if err := enc.Encode(d); err != nil {
			return err
		}
	}
	return nil
}

// WriteHuman writes one human-readable line per diagnostic. A diagnostic
// whose token resolves to a parseable CSS color is prefixed with a 24-bit
// ANSI color swatch so a reader can see the value at a glance.
func (c *Collector) WriteHuman(w io.Writer) error {
	for _, d := range c.diagnostics {
		var b strings.Builder
		if swatch := colorSwatch(d.Token); swatch != "" {
			b.WriteString(swatch)
		}
		if d.Path != "" {
			fmt.Fprintf(&b, "%s: ", d.Path)
		}
		if d.ByteOffset != nil {
			fmt.Fprintf(&b, "byte %d: ", *d.ByteOffset)
		}
		fmt.Fprintf(&b, "[%s] %s", d.Kind, d.Message)
		if _, err := fmt.Fprintln(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}

// colorSwatch returns a 24-bit ANSI color block for value, or "" if value
// isn't a parseable CSS color (including the common case of a non-color token).
func colorSwatch(value string) string {
	if value == "" {
		return ""
	}
	col, err := csscolorparser.Parse(value)
	if err != nil {
		return ""
	}
	r, g, b, _ := col.RGBA255()
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m ", r, g, b)
}
