/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dxlang/style/internal/diagnostics"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestScan_IncludesConfiguredExtensions(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "index.html", `<div class="p-4"></div>`)
	writeFile(t, root, "style.css", `body{}`)

	diags := diagnostics.NewCollector()
	files := Scan(root, Options{IncludeExt: []string{"html"}}, diags)

	require.Len(t, files, 1)
	_, ok := files[filepath.Join(root, "index.html")]
	assert.True(t, ok)
	assert.Zero(t, diags.Len())
}

func TestScan_ExcludesConfiguredDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/index.html", `<div class="p-4"></div>`)
	writeFile(t, root, "node_modules/pkg/index.html", `<div class="m-2"></div>`)

	diags := diagnostics.NewCollector()
	files := Scan(root, Options{IncludeExt: []string{"html"}, ExcludeDirs: []string{"node_modules"}}, diags)

	require.Len(t, files, 1)
	_, ok := files[filepath.Join(root, "src/index.html")]
	assert.True(t, ok)
}

func TestScan_NestedDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a/b/c/page.html", `<div class="gap-1"></div>`)

	diags := diagnostics.NewCollector()
	files := Scan(root, Options{IncludeExt: []string{"html"}}, diags)

	require.Len(t, files, 1)
}

func TestMatchGlob(t *testing.T) {
	assert.True(t, MatchGlob("**/*.html", "a/b/index.html"))
	assert.False(t, MatchGlob("**/*.css", "a/b/index.html"))
}

func TestHashContent_Deterministic(t *testing.T) {
	a := HashContent([]byte("hello"))
	b := HashContent([]byte("hello"))
	c := HashContent([]byte("world"))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
