/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSample(t *testing.T) []byte {
	t.Helper()
	b := NewBuilder()
	selID := b.Intern(".p-4")
	propID := b.Intern("padding")
	valID := b.Intern("1rem")
	b.AddRule(selID, 0, 0, []Declaration{{PropertyID: propID, ValueID: valID}})
	return b.Build()
}

func writeArtifact(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "out.dxc")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestBuild_HeaderMagicAndVersion(t *testing.T) {
	data := buildSample(t)
	require.GreaterOrEqual(t, len(data), HeaderSize)
	assert.Equal(t, Magic[:], data[OffsetMagic:OffsetMagic+4])
	assert.Equal(t, byte(Version), data[OffsetVersion])
}

func TestLoad_RoundTrip(t *testing.T) {
	data := buildSample(t)
	path := writeArtifact(t, data)

	c, err := Load(path)
	require.NoError(t, err)
	defer c.Close()

	require.Equal(t, 1, c.RuleCount())
	require.Equal(t, 1, c.DeclarationCount())

	rule := c.Rule(0)
	assert.Equal(t, uint32(0), rule.SelectorID)
	assert.Equal(t, uint32(0), rule.MediaID)
	assert.Equal(t, ".p-4", c.String(rule.SelectorID))

	decl := c.Declaration(0)
	assert.Equal(t, "padding", c.String(decl.PropertyID))
	assert.Equal(t, "1rem", c.String(decl.ValueID))
}

func TestLoad_CorruptMagic(t *testing.T) {
	data := buildSample(t)
	data[0] ^= 0xff
	path := writeArtifact(t, data)

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestLoad_CorruptChecksum(t *testing.T) {
	data := buildSample(t)
	data[len(data)-1] ^= 0xff
	path := writeArtifact(t, data)

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestMediaID_OffsetByOneConvention(t *testing.T) {
	b := NewBuilder()
	selID := b.Intern(".hover\\:bg-red-500")
	mediaStr := b.Intern("(min-width: 640px)")
	propID := b.Intern("background-color")
	valID := b.Intern("#ef4444")
	b.AddRule(selID, mediaStr+1, 1, []Declaration{{PropertyID: propID, ValueID: valID}})
	data := b.Build()

	path := writeArtifact(t, data)
	c, err := Load(path)
	require.NoError(t, err)
	defer c.Close()

	rule := c.Rule(0)
	assert.Equal(t, "(min-width: 640px)", c.String(rule.MediaID-1))
}
