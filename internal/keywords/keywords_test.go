// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package keywords

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		raw   any
		title string
		want  []string
	}{
		{"list folds case and dedupes", []string{"A", "a", " A "}, "", []string{"a"}},
		{"list keeps first-seen order", []string{"Space", "bio", "SPACE", "plant"}, "", []string{"space", "bio", "plant"}},
		{"list drops empties", []string{"", "  ", "bio"}, "", []string{"bio"}},
		{"any list stringifies elements", []any{"Bio", 42, nil, 1.5, json.Number("7")}, "", []string{"bio", "42", "1.5", "7"}},
		{"array kind is list-like", [2]string{"X", "y"}, "", []string{"x", "y"}},
		{"empty list skips title fallback", []string{}, "Any Title", []string{}},
		{"empty any list skips title fallback", []any{}, "Microgravity Effects", []string{}},
		{"postgres array literal", "{bio,Space; Plant}", "", []string{"bio", "space", "plant"}},
		{"pipe delimited", "Radiation | bone|RADIATION", "", []string{"radiation", "bone"}},
		{"only braces", "{}", "Some Long Title", []string{}},
		{"inner braces kept", "{{a}}", "", []string{"{a}"}},
		{"whitespace string falls through", "   ", "Plant Growth Study", []string{"plant", "growth", "study"}},
		{"nil uses title", nil, "The Effects Of Microgravity", []string{"effects", "microgravity"}},
		{"title strips punctuation", nil, "Bone-loss: in (mice), mice!", []string{"boneloss", "mice"}},
		{"title keeps digits", nil, "Spaceflight 2024 ISS-42", []string{"spaceflight", "2024", "iss42"}},
		{"non-string scalar uses title", 17, "Cosmic Rays", []string{"cosmic", "rays"}},
		{"bytes are not a list", []byte("bio"), "Root Growth", []string{"root", "growth"}},
		{"nothing at all", nil, "", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.raw, tt.title)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeHasNoDuplicatesOrEmpties(t *testing.T) {
	inputs := []any{
		[]string{"a", "A", "", "b ", " B", "c"},
		[]any{"x", "X", " ", nil, "y"},
		"a;A|a,,b;;B",
		"{one, Two ,one|TWO}",
	}
	for _, in := range inputs {
		got := Normalize(in, "")
		seen := map[string]bool{}
		for _, k := range got {
			assert.NotEmpty(t, k)
			assert.Equal(t, strings.ToLower(k), k)
			assert.False(t, seen[k], "duplicate %q in %v", k, got)
			seen[k] = true
		}
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []any{
		[]string{"Bio", "space", "BIO"},
		"{bio,Space; Plant}",
		nil,
	}
	for _, in := range inputs {
		once := Normalize(in, "Effects of Spaceflight on Arabidopsis")
		assert.Equal(t, once, Normalize(once, ""))
		assert.Equal(t, once, Normalize(once, "Completely Different Words"))
	}
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "", Join(nil))
	assert.Equal(t, "bio", Join([]string{"bio"}))
	assert.Equal(t, "bio, space, plant", Join([]string{"bio", "space", "plant"}))
}

func TestContains(t *testing.T) {
	kws := []string{"bio", "space"}
	assert.True(t, Contains(kws, "space"))
	assert.False(t, Contains(kws, "spa"))
	assert.False(t, Contains(nil, "bio"))
}
