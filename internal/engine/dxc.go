/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package engine

import (
	"github.com/dxlang/style/internal/assembler"
	"github.com/dxlang/style/internal/cache"
)

// buildCache serialises sheet into the bit-exact .dxc byte image,
// interning every selector, media query, property, and value string into
// the builder's deduplicated string table.
func buildCache(sheet assembler.Stylesheet) []byte {
	b := cache.NewBuilder()

	for _, r := range sheet.Rules {
		selectorID := b.Intern(r.Selector)
		// mediaID 0 means "no media" (spec.md §4.7); a real media string's
		// string-table index is stored offset by one to keep that sentinel
		// unambiguous even when the media string interns to index 0.
		var mediaID uint32
		if r.Media != "" {
			mediaID = b.Intern(r.Media) + 1
		}

		decls := make([]cache.Declaration, len(r.Declarations))
		for i, d := range r.Declarations {
			decls[i] = cache.Declaration{
				PropertyID: b.Intern(d.Property),
				ValueID:    b.Intern(d.Value),
				Important:  d.Important,
			}
		}

		b.AddRule(selectorID, mediaID, r.SpecificityTier, decls)
	}

	return b.Build()
}
