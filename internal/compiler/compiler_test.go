/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dxlang/style/internal/diagnostics"
	"github.com/dxlang/style/internal/families"
)

func newTestCompiler() *Compiler {
	return New([]string{"hover", "dark", "sm"}, families.DefaultTables())
}

func TestCompile_ScenarioA_Spacing(t *testing.T) {
	c := newTestCompiler()
	diags := diagnostics.NewCollector()

	rule, ok := c.Compile("p-4", false, diags)
	require.True(t, ok)
	assert.Equal(t, ".p-4", rule.Selector)
	assert.Empty(t, rule.Media)
	require.Len(t, rule.Declarations, 1)
	assert.Equal(t, Declaration{Property: "padding", Value: "1rem"}, rule.Declarations[0])
	assert.Equal(t, uint8(0), rule.SpecificityTier)
	assert.Zero(t, diags.Len())
}

func TestCompile_ScenarioB_VariantColorImportant(t *testing.T) {
	c := newTestCompiler()
	diags := diagnostics.NewCollector()

	rule, ok := c.Compile("hover:text-blue-500!", false, diags)
	require.True(t, ok)
	assert.Equal(t, `.hover\:text-blue-500\!:hover`, rule.Selector)
	require.Len(t, rule.Declarations, 1)
	assert.Equal(t, "color", rule.Declarations[0].Property)
	assert.True(t, rule.Declarations[0].Important)
	assert.Equal(t, uint8(1), rule.SpecificityTier)
}

func TestCompile_ScenarioC_GroupTierOverridesVariantCount(t *testing.T) {
	c := newTestCompiler()
	diags := diagnostics.NewCollector()

	rule, ok := c.Compile("p-4", true, diags)
	require.True(t, ok)
	assert.Equal(t, uint8(3), rule.SpecificityTier)
}

func TestCompile_ScenarioD_ArbitraryValue(t *testing.T) {
	c := newTestCompiler()
	diags := diagnostics.NewCollector()

	rule, ok := c.Compile("w-[37px]", false, diags)
	require.True(t, ok)
	assert.Equal(t, `.w-\[37px\]`, rule.Selector)
	require.Len(t, rule.Declarations, 1)
	assert.Equal(t, Declaration{Property: "width", Value: "37px"}, rule.Declarations[0])
}

func TestCompile_UnknownVariant(t *testing.T) {
	c := newTestCompiler()
	diags := diagnostics.NewCollector()

	_, ok := c.Compile("focus:p-4", false, diags)
	assert.False(t, ok)
	assert.Equal(t, 1, diags.Len())
}

func TestCompile_UnknownUtility(t *testing.T) {
	c := newTestCompiler()
	diags := diagnostics.NewCollector()

	_, ok := c.Compile("not-a-real-utility", false, diags)
	assert.False(t, ok)
	assert.Equal(t, 1, diags.Len())
}

func TestCompile_MultiVariantTier(t *testing.T) {
	c := newTestCompiler()
	diags := diagnostics.NewCollector()

	rule, ok := c.Compile("dark:hover:bg-red-500", false, diags)
	require.True(t, ok)
	assert.Equal(t, uint8(2), rule.SpecificityTier)
	assert.Equal(t, "(prefers-color-scheme: dark)", rule.Media)
}

func TestCompile_ArbitraryUnbalancedBrackets(t *testing.T) {
	c := newTestCompiler()
	diags := diagnostics.NewCollector()

	_, ok := c.Compile("w-[37px]]", false, diags)
	assert.False(t, ok)
	assert.Equal(t, 1, diags.Len())
}

func TestEscapeIdent(t *testing.T) {
	assert.Equal(t, `hover\:text-blue-500\!`, EscapeIdent("hover:text-blue-500!"))
	assert.Equal(t, `w-\[37px\]`, EscapeIdent("w-[37px]"))
	assert.Equal(t, "p-4", EscapeIdent("p-4"))
}
