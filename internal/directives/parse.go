package directives

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/resume-adapter/internal/schemas"
	"github.com/jonathan/resume-adapter/internal/types"
)

// ParseDirective parses a "label" or "label=weight" flag value.
// Weight defaults to medium. With an empty category, catalog labels take
// their catalog category and spelling; anything else is custom.
func ParseDirective(value string, category types.Category) (types.Directive, error) {
	label := strings.TrimSpace(value)
	weight := types.WeightMedium

	if idx := strings.LastIndex(label, "="); idx >= 0 {
		w, err := types.ParseWeight(label[idx+1:])
		if err != nil {
			return types.Directive{}, fmt.Errorf("directive %q: %w", value, err)
		}
		weight = w
		label = strings.TrimSpace(label[:idx])
	}
	if label == "" {
		return types.Directive{}, fmt.Errorf("directive %q: label must not be blank", value)
	}

	if category == "" {
		category = types.CategoryCustom
		if c, err := LoadCatalog(); err == nil {
			if canonical, cat, ok := c.Lookup(label); ok {
				label, category = canonical, cat
			}
		}
	}

	return types.Directive{Label: label, Weight: weight, Category: category}, nil
}

// fileEntry is one element of a directive file. Weight may be a name or a number.
type fileEntry struct {
	Label    string `json:"label"`
	Weight   any    `json:"weight"`
	Category string `json:"category"`
}

// ParseFile validates a directive file against its schema and decodes it.
func ParseFile(data []byte) (types.DirectiveSet, error) {
	if err := schemas.Validate(schemas.Directives, data); err != nil {
		return types.DirectiveSet{}, err
	}

	var entries []fileEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return types.DirectiveSet{}, fmt.Errorf("failed to decode directive file: %w", err)
	}

	var set types.DirectiveSet
	for i, e := range entries {
		weight := types.WeightMedium
		if e.Weight != nil {
			w, err := types.ParseWeight(fmt.Sprint(e.Weight))
			if err != nil {
				return types.DirectiveSet{}, fmt.Errorf("directive %d: %w", i, err)
			}
			weight = w
		}
		category, err := types.ParseCategory(e.Category)
		if err != nil {
			return types.DirectiveSet{}, fmt.Errorf("directive %d: %w", i, err)
		}
		set.Add(types.Directive{Label: e.Label, Weight: weight, Category: category})
	}
	return set, nil
}

// LoadFile reads and parses a directive file from disk.
func LoadFile(path string) (types.DirectiveSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.DirectiveSet{}, fmt.Errorf("failed to read directive file %s: %w", path, err)
	}
	return ParseFile(data)
}
