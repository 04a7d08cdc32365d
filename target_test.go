package hxregion

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pthm/hxregion/lib/dom"
)

func TestParseTarget(t *testing.T) {
	tests := []struct {
		raw  string
		kind TargetKind
		key  string
	}{
		{"@ui.header", TargetAlias, "header"},
		{"@ui.", TargetAlias, ""},
		{"@ui.a.b", TargetAlias, "a.b"},
		{"ui.header", TargetSelector, "ui.header"},
		{"@ui", TargetSelector, "@ui"},
		{" @ui.header", TargetSelector, " @ui.header"},
		{"@UI.header", TargetSelector, "@UI.header"},
		{"#main @ui.header", TargetSelector, "#main @ui.header"},
		{".main-slot", TargetSelector, ".main-slot"},
		{"", TargetSelector, ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := ParseTarget(tt.raw)
			assert.Equal(t, tt.kind, got.Kind)
			assert.Equal(t, tt.key, got.Key)
			assert.Equal(t, tt.raw, got.String(), "String returns the raw form")
		})
	}
}

func TestTargetConstructors(t *testing.T) {
	assert.Equal(t, ParseTarget("@ui.side"), AliasTarget("side"))
	assert.Equal(t, ParseTarget("#main"), SelectorTarget("#main"))

	n := dom.NewElement("section")
	el := ElementTarget(n)
	assert.Equal(t, TargetElement, el.Kind)
	assert.Same(t, n, el.Node)
	assert.Equal(t, "", el.String())
	assert.False(t, el.IsZero())

	assert.True(t, Target{}.IsZero())
	assert.True(t, ParseTarget("").IsZero())
}

func TestTargetKindString(t *testing.T) {
	assert.Equal(t, "selector", TargetSelector.String())
	assert.Equal(t, "alias", TargetAlias.String())
	assert.Equal(t, "element", TargetElement.String())
}
