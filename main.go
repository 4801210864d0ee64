/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Command style is a binary-first atomic CSS compiler: it watches
// HTML/template sources, extracts utility class tokens, and emits a
// minified stylesheet plus a binary B-CSS cache.
package main

import (
	"errors"
	"os"

	"github.com/dxlang/style/cmd"
	"github.com/dxlang/style/internal/diagnostics"
)

func main() {
	os.Exit(run())
}

func run() int {
	err := cmd.Execute()
	if err == nil {
		return 0
	}

	var exitErr *diagnostics.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}
