/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package families

// Typography resolves a "text" family base (e.g. "text", arg "lg") into a
// font-size/line-height pair drawn from the typography scale.
func Typography(tables *Tables, name, arg string) ([]Declaration, bool) {
	if name != "text" {
		return nil, false
	}
	size, ok := tables.FontSize[arg]
	if !ok {
		return nil, false
	}
	decls := []Declaration{{Property: "font-size", Value: size}}
	if lh, ok := tables.LineHeight[arg]; ok {
		decls = append(decls, Declaration{Property: "line-height", Value: lh})
	}
	return decls, true
}
