/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dxlang/style/internal/diagnostics"
)

func TestExtract_SimpleClassAttribute(t *testing.T) {
	data := []byte(`<div class="p-4 hover:text-blue-500"></div>`)
	diags := diagnostics.NewCollector()
	result := Extract("index.html", data, Options{}, diags)

	assert.Equal(t, []string{"p-4", "hover:text-blue-500"}, result.Tokens)
	assert.Zero(t, diags.Len())
}

func TestExtract_ClassNameAttribute(t *testing.T) {
	data := []byte(`<div className='flex gap-1'></div>`)
	diags := diagnostics.NewCollector()
	result := Extract("app.jsx", data, Options{}, diags)

	assert.Equal(t, []string{"flex", "gap-1"}, result.Tokens)
}

func TestExtract_DedupesRepeatedTokens(t *testing.T) {
	data := []byte(`<div class="p-4"></div><div class="p-4 m-2"></div>`)
	diags := diagnostics.NewCollector()
	result := Extract("index.html", data, Options{}, diags)

	assert.Equal(t, []string{"p-4", "m-2"}, result.Tokens)
}

func TestExtract_GroupingExpressionKeptAsOneToken(t *testing.T) {
	data := []byte(`<div class="card(p-4 m-2) flex"></div>`)
	diags := diagnostics.NewCollector()
	result := Extract("index.html", data, Options{}, diags)

	assert.Equal(t, []string{"card(p-4 m-2)", "flex"}, result.Tokens)
	assert.Zero(t, diags.Len())
}

func TestExtract_UnbalancedParensReportsDiagnostic(t *testing.T) {
	data := []byte(`<div class="card(p-4 m-2"></div>`)
	diags := diagnostics.NewCollector()
	result := Extract("index.html", data, Options{}, diags)

	require.NotZero(t, diags.Len())
	assert.Equal(t, diagnostics.KindExtractor, diags.All()[0].Kind)
	assert.Equal(t, []string{"card(p-4 m-2"}, result.Tokens)
}

func TestExtract_UnterminatedAttributeToleratesEOF(t *testing.T) {
	data := []byte(`<div class="p-4 m-2`)
	diags := diagnostics.NewCollector()
	result := Extract("index.html", data, Options{}, diags)

	assert.Equal(t, []string{"p-4", "m-2"}, result.Tokens)
}

func TestExtract_FirstOffsetRecorded(t *testing.T) {
	data := []byte(`<div class="p-4"></div>`)
	diags := diagnostics.NewCollector()
	result := Extract("index.html", data, Options{}, diags)

	offset, ok := result.FirstOffset["p-4"]
	require.True(t, ok)
	assert.Equal(t, "p-4", string(data[offset:offset+3]))
}

func TestExtract_CustomAttributeNames(t *testing.T) {
	data := []byte(`<MyComponent styleClasses="m-2"></MyComponent>`)
	diags := diagnostics.NewCollector()
	result := Extract("x.jsx", data, Options{Attributes: []string{"styleClasses"}}, diags)

	assert.Equal(t, []string{"m-2"}, result.Tokens)
}

func TestDetectCapabilities_DoesNotPanic(t *testing.T) {
	_ = DetectCapabilities()
}
