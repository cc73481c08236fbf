package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Weight is the importance of a directive.
type Weight int

const (
	// WeightLow marks a directive as nice to have
	WeightLow Weight = 1
	// WeightMedium is the default importance
	WeightMedium Weight = 3
	// WeightHigh marks a directive that should dominate the output
	WeightHigh Weight = 5
)

// String returns the lowercase weight label ("low", "medium", "high").
func (w Weight) String() string {
	switch w {
	case WeightLow:
		return "low"
	case WeightMedium:
		return "medium"
	case WeightHigh:
		return "high"
	default:
		return strconv.Itoa(int(w))
	}
}

// Valid reports whether w is one of the defined weights.
func (w Weight) Valid() bool {
	return w == WeightLow || w == WeightMedium || w == WeightHigh
}

// ParseWeight accepts "low", "medium", "high" (any case) or their numeric values.
func ParseWeight(s string) (Weight, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "1":
		return WeightLow, nil
	case "medium", "med", "3":
		return WeightMedium, nil
	case "high", "5":
		return WeightHigh, nil
	default:
		return 0, fmt.Errorf("invalid weight %q: must be low, medium or high", s)
	}
}

// Category groups directives by what they influence.
type Category string

const (
	// CategoryStyle is the writing style (tone) of the output
	CategoryStyle Category = "style"
	// CategoryFlair adds creative elements
	CategoryFlair Category = "flair"
	// CategoryAudience targets a kind of employer
	CategoryAudience Category = "audience"
	// CategoryCustom is a user-supplied directive
	CategoryCustom Category = "custom"
)

// ParseCategory parses a category name. "company" is accepted as an alias for audience.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "style":
		return CategoryStyle, nil
	case "flair":
		return CategoryFlair, nil
	case "audience", "company":
		return CategoryAudience, nil
	case "custom", "":
		return CategoryCustom, nil
	default:
		return "", fmt.Errorf("invalid category %q: must be style, flair, audience or custom", s)
	}
}

// Directive is a labeled instruction influencing generation, carrying an importance weight.
type Directive struct {
	Label    string   `json:"label"`
	Weight   Weight   `json:"weight"`
	Category Category `json:"category"`
}

// DirectiveSet is an ordered collection of directives with unique labels.
// Insertion order is preserved; adding a duplicate label keeps the first-seen
// position and raises the weight to the maximum of the two.
type DirectiveSet struct {
	items []Directive
}

// NewDirectiveSet builds a set from directives in order, collapsing duplicates.
func NewDirectiveSet(directives ...Directive) DirectiveSet {
	var set DirectiveSet
	for _, d := range directives {
		set.Add(d)
	}
	return set
}

// directiveKey is the identity of a directive label.
func directiveKey(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// Add inserts a directive. Blank labels are ignored.
// On a duplicate label the higher weight wins; on equal weights the first entry is kept unchanged.
func (s *DirectiveSet) Add(d Directive) {
	d.Label = strings.TrimSpace(d.Label)
	if d.Label == "" {
		return
	}
	if d.Category == "" {
		d.Category = CategoryCustom
	}
	key := directiveKey(d.Label)
	for i := range s.items {
		if directiveKey(s.items[i].Label) != key {
			continue
		}
		if d.Weight > s.items[i].Weight {
			s.items[i].Weight = d.Weight
			s.items[i].Category = d.Category
		}
		return
	}
	s.items = append(s.items, d)
}

// Items returns a copy of the directives in insertion order.
func (s DirectiveSet) Items() []Directive {
	out := make([]Directive, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of unique directives.
func (s DirectiveSet) Len() int {
	return len(s.items)
}

// MarshalJSON encodes the set as an array of directives.
func (s DirectiveSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Items())
}

// UnmarshalJSON decodes an array of directives, collapsing duplicates.
func (s *DirectiveSet) UnmarshalJSON(data []byte) error {
	var items []Directive
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*s = NewDirectiveSet(items...)
	return nil
}
