// Package schemas validates directive files and result documents against
// embedded JSON schemas.
package schemas

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed files/*.schema.json
var schemaFS embed.FS

// Embedded schema names.
const (
	Directives = "directives"
	Result     = "result"
)

// FieldError is one violation at a JSON path.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every violation found in a document.
type ValidationError struct {
	Schema string
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s document is invalid:", ve.Schema)
	for _, fe := range ve.Errors {
		fmt.Fprintf(&sb, "\n  - %s: %s", fe.Field, fe.Message)
	}
	return sb.String()
}

// SchemaLoadError is returned when an embedded schema is missing or does not compile.
type SchemaLoadError struct {
	Name  string
	Cause error
}

func (e *SchemaLoadError) Error() string {
	return fmt.Sprintf("failed to load schema %s: %v", e.Name, e.Cause)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

type compiled struct {
	once   sync.Once
	schema *gojsonschema.Schema
	err    error
}

var (
	compiledMu sync.Mutex
	compiledBy = map[string]*compiled{}
)

// schema compiles the named embedded schema once per process.
func schema(name string) (*gojsonschema.Schema, error) {
	compiledMu.Lock()
	c, ok := compiledBy[name]
	if !ok {
		c = &compiled{}
		compiledBy[name] = c
	}
	compiledMu.Unlock()

	c.once.Do(func() {
		data, err := schemaFS.ReadFile("files/" + name + ".schema.json")
		if err != nil {
			c.err = &SchemaLoadError{Name: name, Cause: err}
			return
		}
		if c.schema, err = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data)); err != nil {
			c.err = &SchemaLoadError{Name: name, Cause: err}
		}
	})
	return c.schema, c.err
}

// Validate checks a JSON document against the named embedded schema.
// Malformed JSON is reported as a single root-level violation.
func Validate(name string, document []byte) error {
	s, err := schema(name)
	if err != nil {
		return err
	}

	result, err := s.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return &ValidationError{Schema: name, Errors: []FieldError{{Field: "(root)", Message: err.Error()}}}
	}
	if result.Valid() {
		return nil
	}

	ve := &ValidationError{Schema: name, Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		ve.Errors = append(ve.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return ve
}
