/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package families

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"
)

// AlphaThreshold is the value at or above which an opacity suffix is
// dropped from CSS output, since it is indistinguishable from fully opaque.
const AlphaThreshold = 0.999

// Color resolves a color-family base (e.g. "blue-500", "red-500/50") against
// the palette table into declarations for prop. arg may carry a trailing
// "/opacity" where opacity is an integer percentage (0-100).
func Color(tables *Tables, prop, arg string) ([]Declaration, bool) {
	paletteKey, opacity, hasOpacity := splitOpacity(arg)

	hex, ok := tables.Colors[paletteKey]
	if !ok {
		return nil, false
	}

	if !hasOpacity || opacity >= AlphaThreshold {
		return []Declaration{{Property: prop, Value: hex}}, true
	}

	value, err := applyOpacity(hex, opacity)
	if err != nil {
		return []Declaration{{Property: prop, Value: hex}}, true
	}
	return []Declaration{{Property: prop, Value: value}}, true
}

// splitOpacity splits "palette-shade/opacity" into the palette key and a
// 0..1 opacity fraction. hasOpacity is false when no "/" suffix is present.
func splitOpacity(arg string) (string, float64, bool) {
	idx := strings.LastIndexByte(arg, '/')
	if idx < 0 {
		return arg, 1, false
	}
	pct, err := strconv.Atoi(arg[idx+1:])
	if err != nil {
		return arg, 1, false
	}
	return arg[:idx], float64(pct) / 100, true
}

// applyOpacity parses hex as a CSS color and re-renders it with alpha,
// using go-colorful for the RGBA round-trip.
func applyOpacity(hex string, alpha float64) (string, error) {
	parsed, err := csscolorparser.Parse(hex)
	if err != nil {
		return "", err
	}
	r, g, b, _ := parsed.RGBA255()
	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	cr, cg, cb := c.RGB255()
	return fmt.Sprintf("rgb(%d %d %d / %.4g)", cr, cg, cb, alpha), nil
}
