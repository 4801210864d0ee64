/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package families

import (
	"fmt"
	"strconv"
)

// flexLayout are fixed, argument-less layout declarations.
var flexLayout = map[string][]Declaration{
	"flex":            {{Property: "display", Value: "flex"}},
	"grid":            {{Property: "display", Value: "grid"}},
	"block":           {{Property: "display", Value: "block"}},
	"hidden":          {{Property: "display", Value: "none"}},
	"inline":          {{Property: "display", Value: "inline"}},
	"items-center":    {{Property: "align-items", Value: "center"}},
	"items-start":     {{Property: "align-items", Value: "flex-start"}},
	"items-end":       {{Property: "align-items", Value: "flex-end"}},
	"justify-center":  {{Property: "justify-content", Value: "center"}},
	"justify-between": {{Property: "justify-content", Value: "space-between"}},
	"justify-start":   {{Property: "justify-content", Value: "flex-start"}},
	"justify-end":     {{Property: "justify-content", Value: "flex-end"}},
}

// Layout resolves a fixed-declaration layout utility ("flex", "items-center",
// …) or a parametric "grid-cols-N" (1..=12 by default).
func Layout(raw string) ([]Declaration, bool) {
	if decls, ok := flexLayout[raw]; ok {
		return decls, true
	}
	if n, ok := gridCols(raw); ok {
		return []Declaration{
			{Property: "grid-template-columns", Value: fmt.Sprintf("repeat(%d, minmax(0, 1fr))", n)},
		}, true
	}
	return nil, false
}

const maxGridCols = 12

// gridCols parses "grid-cols-N" into N, bounded to [1, maxGridCols].
func gridCols(raw string) (int, bool) {
	const prefix = "grid-cols-"
	if len(raw) <= len(prefix) || raw[:len(prefix)] != prefix {
		return 0, false
	}
	n, err := strconv.Atoi(raw[len(prefix):])
	if err != nil || n < 1 || n > maxGridCols {
		return 0, false
	}
	return n, true
}
