/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package families implements the closed set of utility families the
// compiler dispatches on: spacing, color, typography, and layout. Each
// family resolves a (name, argument) pair drawn from a ParsedToken's base
// into a list of CSS declarations.
package families

// Declaration is a single CSS property/value pair, in source order.
type Declaration struct {
	Property string
	Value    string
}

// Tables carries the scale/palette lookup tables. Each table maps a scale
// key (e.g. "4", "blue-500") to its resolved CSS value. The engine always
// uses DefaultTables; utilities.family_tables from configuration is not
// read into a Tables value.
type Tables struct {
	Spacing    map[string]string
	Colors     map[string]string
	FontSize   map[string]string
	LineHeight map[string]string
}

// DefaultTables returns the built-in scales.
func DefaultTables() *Tables {
	return &Tables{
		Spacing: map[string]string{
			"0": "0", "1": "0.25rem", "2": "0.5rem", "4": "1rem",
			"6": "1.5rem", "8": "2rem", "12": "3rem", "16": "4rem",
		},
		Colors: map[string]string{
			"blue-500": "#3b82f6", "red-500": "#ef4444",
			"green-500": "#22c55e", "gray-500": "#6b7280",
			"black": "#000000", "white": "#ffffff",
		},
		FontSize: map[string]string{
			"xs": "0.75rem", "sm": "0.875rem", "base": "1rem",
			"lg": "1.125rem", "xl": "1.25rem",
		},
		LineHeight: map[string]string{
			"xs": "1rem", "sm": "1.25rem", "base": "1.5rem",
			"lg": "1.75rem", "xl": "1.75rem",
		},
	}
}
