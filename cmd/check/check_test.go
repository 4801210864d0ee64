/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package check

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func setConfigFlag(t *testing.T, path string) {
	t.Helper()
	viper.Set("config", path)
	t.Cleanup(func() { viper.Set("config", "") })
}

func TestRun_CleanTreePassesAndWritesNothing(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "index.html"), `<div class="p-4"></div>`)

	cssFile := filepath.Join(root, "dist", "style.css")
	configPath := filepath.Join(root, "style.toml")
	writeFile(t, configPath, `
[paths]
html_dir = "`+filepath.Join(root, "src")+`"
css_file = "`+cssFile+`"
`)

	setConfigFlag(t, configPath)
	Cmd.SetArgs([]string{})
	require.NoError(t, Cmd.Execute())

	_, err := os.Stat(cssFile)
	assert.True(t, os.IsNotExist(err))
}

func TestRun_UnknownUtilityFailsCheck(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "index.html"), `<div class="totally-not-a-utility"></div>`)

	configPath := filepath.Join(root, "style.toml")
	writeFile(t, configPath, `
[paths]
html_dir = "`+filepath.Join(root, "src")+`"
css_file = "`+filepath.Join(root, "dist", "style.css")+`"
`)

	setConfigFlag(t, configPath)
	Cmd.SetArgs([]string{})
	err := Cmd.Execute()
	assert.Error(t, err)
}

func TestRun_JSONModeWritesSummaryObjectToStdout(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "index.html"), `<div class="p-4 m-2"></div>`)

	configPath := filepath.Join(root, "style.toml")
	writeFile(t, configPath, `
[paths]
html_dir = "`+filepath.Join(root, "src")+`"
css_file = "`+filepath.Join(root, "dist", "style.css")+`"
`)

	setConfigFlag(t, configPath)
	Cmd.SetArgs([]string{"--json"})

	var stdout bytes.Buffer
	Cmd.SetOut(&stdout)
	require.NoError(t, Cmd.Execute())

	out := stdout.String()
	assert.Contains(t, out, `"diagnostics":0`)
	assert.Contains(t, out, `"classes":2`)
	assert.Contains(t, out, `"durationMs"`)
}

func TestRun_JSONModeEmitsGroupingSuggestion(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "a.html"), `<div class="p-4 m-2 text-blue-500"></div>`)
	writeFile(t, filepath.Join(root, "src", "b.html"), `<div class="p-4 m-2 text-blue-500"></div>`)

	configPath := filepath.Join(root, "style.toml")
	writeFile(t, configPath, `
[paths]
html_dir = "`+filepath.Join(root, "src")+`"
css_file = "`+filepath.Join(root, "dist", "style.css")+`"
`)

	setConfigFlag(t, configPath)
	Cmd.SetArgs([]string{"--json"})

	var stderr bytes.Buffer
	Cmd.SetErr(&stderr)
	_ = Cmd.Execute()

	assert.Contains(t, stderr.String(), `"kind":"token"`)
	assert.Contains(t, stderr.String(), "grouping label")
}
