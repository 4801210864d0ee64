/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package diagnostics

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_AddAndLen(t *testing.T) {
	c := NewCollector()
	assert.Zero(t, c.Len())

	c.Add(Diagnostic{Kind: KindExtractor, Path: "a.html", Message: "unbalanced parens"})
	assert.Equal(t, 1, c.Len())
	assert.Len(t, c.All(), 1)
}

func TestWriteJSONLines(t *testing.T) {
	c := NewCollector()
	c.Add(Diagnostic{Kind: KindToken, Token: "bg-red-500", Message: "unknown utility"})

	var buf bytes.Buffer
	require.NoError(t, c.WriteJSONLines(&buf))

	assert.Contains(t, buf.String(), `"kind":"token"`)
	assert.Contains(t, buf.String(), `"token":"bg-red-500"`)
}

func TestWriteHuman_IncludesPathAndMessage(t *testing.T) {
	c := NewCollector()
	c.Add(Diagnostic{Kind: KindIO, Path: "index.html", Message: "permission denied"})

	var buf bytes.Buffer
	require.NoError(t, c.WriteHuman(&buf))

	out := buf.String()
	assert.Contains(t, out, "index.html")
	assert.Contains(t, out, "permission denied")
	assert.Contains(t, out, "[io]")
}

func TestWriteHuman_IncludesByteOffset(t *testing.T) {
	offset := 17
	c := NewCollector()
	c.Add(Diagnostic{Kind: KindExtractor, ByteOffset: &offset, Message: "unterminated attribute"})

	var buf bytes.Buffer
	require.NoError(t, c.WriteHuman(&buf))
	assert.Contains(t, buf.String(), "byte 17:")
}

func TestWriteHuman_ColorSwatchForColorToken(t *testing.T) {
	c := NewCollector()
	c.Add(Diagnostic{Kind: KindUtility, Token: "#ef4444", Message: "unknown palette entry"})

	var buf bytes.Buffer
	require.NoError(t, c.WriteHuman(&buf))
	assert.Contains(t, buf.String(), "\x1b[48;2;")
}

func TestWriteHuman_NoSwatchForNonColorToken(t *testing.T) {
	c := NewCollector()
	c.Add(Diagnostic{Kind: KindUtility, Token: "bg-nonexistent", Message: "unknown palette entry"})

	var buf bytes.Buffer
	require.NoError(t, c.WriteHuman(&buf))
	assert.NotContains(t, buf.String(), "\x1b[48;2;")
}

func TestDiagnostic_Error(t *testing.T) {
	d := Diagnostic{Kind: KindConfig, Path: "style.toml", Message: "missing paths.html_dir"}
	assert.Equal(t, "style.toml: config: missing paths.html_dir", d.Error())

	d2 := Diagnostic{Kind: KindCache, Message: "checksum mismatch"}
	assert.Equal(t, "cache: checksum mismatch", d2.Error())
}

func TestExitError_UnwrapAndCode(t *testing.T) {
	cause := errors.New("bad config")
	err := ConfigExit(cause)

	assert.Equal(t, 2, err.Code)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "bad config", err.Error())
}

func TestIOExit(t *testing.T) {
	err := IOExit(errors.New("disk full"))
	assert.Equal(t, 1, err.Code)
}

func TestCheckExit(t *testing.T) {
	err := CheckExit(3)
	assert.Equal(t, 1, err.Code)
	assert.Contains(t, err.Error(), "3 diagnostic(s) emitted")
}
