/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package grouping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dxlang/style/internal/diagnostics"
)

func TestExpand_Flatten(t *testing.T) {
	e := NewExpander(nil, 8)
	diags := diagnostics.NewCollector()
	out := e.Expand("card(p-4 text-blue-500)", diags)

	require.Len(t, out, 2)
	assert.Equal(t, "p-4", out[0].Raw)
	assert.True(t, out[0].FromGroup)
	assert.Equal(t, "text-blue-500", out[1].Raw)
	assert.True(t, out[1].FromGroup)
	assert.Zero(t, diags.Len())
}

func TestExpand_ContextPrefix(t *testing.T) {
	e := NewExpander([]string{"card"}, 8)
	diags := diagnostics.NewCollector()
	out := e.Expand("card(p-4 text-blue-500)", diags)

	require.Len(t, out, 2)
	assert.Equal(t, "card:p-4", out[0].Raw)
	assert.Equal(t, "card:text-blue-500", out[1].Raw)
}

func TestExpand_NonGroupToken(t *testing.T) {
	e := NewExpander(nil, 8)
	out := e.Expand("p-4", diagnostics.NewCollector())

	require.Len(t, out, 1)
	assert.Equal(t, "p-4", out[0].Raw)
	assert.False(t, out[0].FromGroup)
}

func TestExpand_Nested(t *testing.T) {
	e := NewExpander([]string{"outer", "inner"}, 8)
	out := e.Expand("outer(inner(p-4) m-2)", diagnostics.NewCollector())

	require.Len(t, out, 2)
	assert.Equal(t, "outer:inner:p-4", out[0].Raw)
	assert.Equal(t, "outer:m-2", out[1].Raw)
}

func TestExpand_MaxDepthExceeded(t *testing.T) {
	e := NewExpander(nil, 1)
	diags := diagnostics.NewCollector()
	out := e.Expand("a(b(p-4))", diags)

	require.Len(t, out, 1)
	assert.Equal(t, 1, diags.Len())
}

func TestExpandAll_PreservesOrder(t *testing.T) {
	e := NewExpander(nil, 8)
	out := e.ExpandAll([]string{"p-4", "card(m-2 gap-1)"}, diagnostics.NewCollector())

	require.Len(t, out, 3)
	assert.Equal(t, []string{"p-4", "m-2", "gap-1"}, []string{out[0].Raw, out[1].Raw, out[2].Raw})
}
