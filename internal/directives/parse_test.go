package directives

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-adapter/internal/schemas"
	"github.com/jonathan/resume-adapter/internal/types"
)

func TestParseDirective(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		category types.Category
		want     types.Directive
		wantErr  bool
	}{
		{"label only", "Storytelling", "", types.Directive{Label: "Storytelling", Weight: types.WeightMedium, Category: types.CategoryCustom}, false},
		{"named weight", "Storytelling=high", "", types.Directive{Label: "Storytelling", Weight: types.WeightHigh, Category: types.CategoryCustom}, false},
		{"numeric weight", "Storytelling = 1", types.CategoryFlair, types.Directive{Label: "Storytelling", Weight: types.WeightLow, Category: types.CategoryFlair}, false},
		{"catalog lookup", "include HUMOR=low", "", types.Directive{Label: "Include humor", Weight: types.WeightLow, Category: types.CategoryFlair}, false},
		{"bad weight", "Storytelling=extreme", "", types.Directive{}, true},
		{"blank label", " =high", "", types.Directive{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDirective(tt.value, tt.category)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFile(t *testing.T) {
	data := []byte(`[
		{"label": "Bold and confident", "weight": "high", "category": "style"},
		{"label": "Include humor", "weight": 1, "category": "flair"},
		{"label": "bold and confident", "weight": "low"},
		{"label": "Tailor for a startup company", "category": "company"}
	]`)

	set, err := ParseFile(data)
	require.NoError(t, err)

	assert.Equal(t, []types.Directive{
		{Label: "Bold and confident", Weight: types.WeightHigh, Category: types.CategoryStyle},
		{Label: "Include humor", Weight: types.WeightLow, Category: types.CategoryFlair},
		{Label: "Tailor for a startup company", Weight: types.WeightMedium, Category: types.CategoryAudience},
	}, set.Items())
}

func TestParseFile_SchemaViolation(t *testing.T) {
	_, err := ParseFile([]byte(`[{"label": "x", "weight": "urgent"}]`))
	var validationErr *schemas.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "directives.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"label":"Concise and direct","weight":5}]`), 0o644))

	set, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, 1, set.Len())
	assert.Equal(t, types.WeightHigh, set.Items()[0].Weight)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestCatalog(t *testing.T) {
	c, err := LoadCatalog()
	require.NoError(t, err)

	assert.Len(t, c.Style, 12)
	assert.Len(t, c.Flair, 15)
	assert.Len(t, c.Audience, 10)

	label, category, ok := c.Lookup("  narrative STORYTELLING ")
	require.True(t, ok)
	assert.Equal(t, "Narrative storytelling", label)
	assert.Equal(t, types.CategoryStyle, category)

	_, _, ok = c.Lookup("Write in iambic pentameter")
	assert.False(t, ok)
	assert.Nil(t, c.Options(types.CategoryCustom))

	_, err = ParseCatalog([]byte("style: [unterminated"))
	assert.Error(t, err)
}
