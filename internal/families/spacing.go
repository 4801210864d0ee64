/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package families

// sides maps a spacing family name to the CSS properties it expands to.
var sides = map[string][]string{
	"p":  {"padding"},
	"px": {"padding-left", "padding-right"},
	"py": {"padding-top", "padding-bottom"},
	"pt": {"padding-top"},
	"pr": {"padding-right"},
	"pb": {"padding-bottom"},
	"pl": {"padding-left"},
	"m":  {"margin"},
	"mx": {"margin-left", "margin-right"},
	"my": {"margin-top", "margin-bottom"},
	"mt": {"margin-top"},
	"mr": {"margin-right"},
	"mb": {"margin-bottom"},
	"ml":  {"margin-left"},
	"gap": {"gap"},
}

// IsSpacingFamily reports whether name is a recognised spacing family.
func IsSpacingFamily(name string) bool {
	_, ok := sides[name]
	return ok
}

// Spacing resolves a spacing-family base (e.g. "p", arg "4") against the
// spacing scale, emitting one declaration per side the family encodes.
func Spacing(tables *Tables, name, arg string) ([]Declaration, bool) {
	props, ok := sides[name]
	if !ok {
		return nil, false
	}
	value, ok := tables.Spacing[arg]
	if !ok {
		return nil, false
	}
	decls := make([]Declaration, len(props))
	for i, p := range props {
		decls[i] = Declaration{Property: p, Value: value}
	}
	return decls, true
}
