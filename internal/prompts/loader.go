// Package prompts holds the embedded generation prompt templates.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

//go:embed *.json
var templateFiles embed.FS

// Generation is the file with the system, user and fallback job description templates.
const Generation = "generation.json"

// Template keys in Generation.
const (
	KeySystem           = "system"
	KeyUser             = "user"
	KeyNoJobDescription = "no-job-description"
)

// Set is one parsed template file. It is read-only once loaded.
type Set struct {
	name      string
	templates map[string]string
}

type loaded struct {
	once sync.Once
	set  *Set
	err  error
}

var (
	setsMu sync.Mutex
	sets   = map[string]*loaded{}
)

// Load parses an embedded template file once per process.
func Load(name string) (*Set, error) {
	setsMu.Lock()
	l, ok := sets[name]
	if !ok {
		l = &loaded{}
		sets[name] = l
	}
	setsMu.Unlock()

	l.once.Do(func() {
		l.set, l.err = parse(name)
	})
	return l.set, l.err
}

func parse(name string) (*Set, error) {
	data, err := templateFiles.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", name, err)
	}
	var templates map[string]string
	if err := json.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", name, err)
	}
	return &Set{name: name, templates: templates}, nil
}

// Template returns the template stored under key.
func (s *Set) Template(key string) (string, error) {
	t, ok := s.templates[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, s.name)
	}
	return t, nil
}

// Keys lists the template keys in sorted order.
func (s *Set) Keys() []string {
	keys := make([]string, 0, len(s.templates))
	for k := range s.templates {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Format substitutes {{.Key}} placeholders in one pass, so placeholders
// inside substituted values (resume text, job postings) stay literal.
func Format(template string, data map[string]string) string {
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(data)*2)
	for _, key := range keys {
		pairs = append(pairs, "{{."+key+"}}", data[key])
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
