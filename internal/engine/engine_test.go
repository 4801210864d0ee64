/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dxlang/style/internal/config"
	"github.com/dxlang/style/internal/diagnostics"
	"github.com/dxlang/style/internal/watch"
	dxfs "github.com/dxlang/style/fs"
)

func testConfig(root string) *config.Config {
	cfg := config.Default()
	cfg.Paths.HTMLDir = filepath.Join(root, "src")
	cfg.Paths.CSSFile = filepath.Join(root, "dist", "style.css")
	cfg.Variants.Known = []string{"hover", "dark"}
	return cfg
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestScanAndExtractAndCompile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "index.html"), `<div class="p-4 hover:text-blue-500"></div>`)

	eng := New(testConfig(root), dxfs.NewOSFileSystem())
	diags := diagnostics.NewCollector()
	require.NoError(t, eng.ScanAndExtract(diags))

	stylesheet, dxcBytes, changed, stats := eng.Compile(diags)
	assert.True(t, changed)
	assert.Equal(t, 2, stats.RulesCompiled)
	assert.Contains(t, stylesheet, ".p-4{padding:1rem}")
	assert.NotEmpty(t, dxcBytes)
}

func TestCompile_UnchangedWhenUnionStable(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "index.html"), `<div class="p-4"></div>`)

	eng := New(testConfig(root), dxfs.NewOSFileSystem())
	diags := diagnostics.NewCollector()
	require.NoError(t, eng.ScanAndExtract(diags))

	_, _, changed1, _ := eng.Compile(diags)
	assert.True(t, changed1)

	_, _, changed2, _ := eng.Compile(diags)
	assert.False(t, changed2)
}

func TestApplyEvents_DeletedRemovesFile(t *testing.T) {
	root := t.TempDir()
	aPath := filepath.Join(root, "src", "a.html")
	writeFile(t, aPath, `<div class="p-4"></div>`)
	writeFile(t, filepath.Join(root, "src", "b.html"), `<div class="m-2"></div>`)

	eng := New(testConfig(root), dxfs.NewOSFileSystem())
	diags := diagnostics.NewCollector()
	require.NoError(t, eng.ScanAndExtract(diags))

	eng.ApplyEvents([]watch.Event{{Kind: watch.Deleted, Path: aPath}}, diags)

	_, ok := eng.files[aPath]
	assert.False(t, ok)
	_, ok = eng.files[filepath.Join(root, "src", "b.html")]
	assert.True(t, ok)
}

func TestApplyEvents_ModifiedReExtracts(t *testing.T) {
	root := t.TempDir()
	aPath := filepath.Join(root, "src", "a.html")
	writeFile(t, aPath, `<div class="p-4"></div>`)

	eng := New(testConfig(root), dxfs.NewOSFileSystem())
	diags := diagnostics.NewCollector()
	require.NoError(t, eng.ScanAndExtract(diags))

	writeFile(t, aPath, `<div class="m-2"></div>`)
	eng.ApplyEvents([]watch.Event{{Kind: watch.Modified, Path: aPath}}, diags)

	assert.Equal(t, []string{"m-2"}, eng.files[aPath].tokens)
}

func TestSuggestGroupings_ReportsSimilarFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "a.html"), `<div class="p-4 m-2 text-blue-500"></div>`)
	writeFile(t, filepath.Join(root, "src", "b.html"), `<div class="p-4 m-2 text-blue-500"></div>`)

	eng := New(testConfig(root), dxfs.NewOSFileSystem())
	diags := diagnostics.NewCollector()
	require.NoError(t, eng.ScanAndExtract(diags))

	eng.SuggestGroupings(diags)

	found := false
	for _, d := range diags.All() {
		if d.Kind == diagnostics.KindToken && d.Message != "" {
			found = true
		}
	}
	assert.True(t, found, "expected a grouping suggestion diagnostic")
}

func TestSuggestGroupings_NoSuggestionBelowThreshold(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "a.html"), `<div class="p-4"></div>`)
	writeFile(t, filepath.Join(root, "src", "b.html"), `<div class="m-2"></div>`)

	eng := New(testConfig(root), dxfs.NewOSFileSystem())
	diags := diagnostics.NewCollector()
	require.NoError(t, eng.ScanAndExtract(diags))

	eng.SuggestGroupings(diags)

	assert.Equal(t, 0, diags.Len())
}

func TestWriteOutputs_AtomicWrite(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "index.html"), `<div class="p-4"></div>`)

	cfg := testConfig(root)
	eng := New(cfg, dxfs.NewOSFileSystem())
	diags := diagnostics.NewCollector()
	require.NoError(t, eng.ScanAndExtract(diags))
	stylesheet, dxcBytes, _, _ := eng.Compile(diags)

	require.NoError(t, eng.WriteOutputs(stylesheet, dxcBytes))

	data, err := os.ReadFile(cfg.Paths.CSSFile)
	require.NoError(t, err)
	assert.Equal(t, stylesheet, string(data))
}
