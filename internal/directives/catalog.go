package directives

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/resume-adapter/internal/types"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Catalog lists the predefined directive labels per category.
type Catalog struct {
	Style    []string `yaml:"style"`
	Flair    []string `yaml:"flair"`
	Audience []string `yaml:"audience"`
}

var (
	catalogOnce sync.Once
	catalog     *Catalog
	catalogErr  error
)

// LoadCatalog parses the embedded catalog. The result is cached and must not be modified.
func LoadCatalog() (*Catalog, error) {
	catalogOnce.Do(func() {
		catalog, catalogErr = ParseCatalog(catalogYAML)
	})
	return catalog, catalogErr
}

// ParseCatalog decodes a YAML catalog document.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse directive catalog: %w", err)
	}
	return &c, nil
}

// Options returns the labels of one category.
func (c *Catalog) Options(category types.Category) []string {
	switch category {
	case types.CategoryStyle:
		return c.Style
	case types.CategoryFlair:
		return c.Flair
	case types.CategoryAudience:
		return c.Audience
	default:
		return nil
	}
}

// Lookup finds a catalog entry by label (trimmed, case-insensitive) and
// returns its canonical spelling and category.
func (c *Catalog) Lookup(label string) (string, types.Category, bool) {
	needle := strings.TrimSpace(label)
	for _, category := range []types.Category{types.CategoryStyle, types.CategoryFlair, types.CategoryAudience} {
		for _, option := range c.Options(category) {
			if strings.EqualFold(option, needle) {
				return option, category, true
			}
		}
	}
	return "", "", false
}
