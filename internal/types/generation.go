package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Creativity bounds and presets.
const (
	MinCreativity = 0.0
	MaxCreativity = 1.5

	CreativityLow      = 0.3
	CreativityMedium   = 0.7
	CreativityHigh     = 1.0
	CreativityVeryHigh = 1.3
)

// ParseCreativity accepts a preset name (low, medium, high, very-high) or a number.
// Range checking is left to GenerationRequest.Validate.
func ParseCreativity(s string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return CreativityLow, nil
	case "medium", "":
		return CreativityMedium, nil
	case "high":
		return CreativityHigh, nil
	case "very-high", "very_high", "veryhigh", "very high":
		return CreativityVeryHigh, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid creativity %q: use low, medium, high, very-high or a number in [%.1f, %.1f]", s, MinCreativity, MaxCreativity)
	}
	return v, nil
}

// GenerationRequest is everything the generator needs for one invocation.
type GenerationRequest struct {
	SourceText         string       `json:"source_text" validate:"required"`
	JobDescription     string       `json:"job_description,omitempty"`
	TargetLanguage     Language     `json:"target_language" validate:"required,oneof=English Dutch Spanish French German Chinese Japanese Russian"`
	Directives         DirectiveSet `json:"directives"`
	CustomInstructions []string     `json:"custom_instructions,omitempty"`
	Creativity         float64      `json:"creativity" validate:"gte=0,lte=1.5"`
}

// FieldError describes a single invalid field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError collects every invalid field of a request.
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("invalid generation request:")
	for _, fe := range ve.Errors {
		sb.WriteString(fmt.Sprintf(" %s: %s;", fe.Field, fe.Message))
	}
	return strings.TrimSuffix(sb.String(), ";")
}

// Validate checks the request invariants: non-blank source text, a supported
// target language, and creativity within [0.0, 1.5].
func (r *GenerationRequest) Validate() error {
	validate := validator.New()
	var fields []FieldError

	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			fields = append(fields, FieldError{Field: fe.Field(), Message: describeTag(fe)})
		}
	}

	if r.SourceText != "" && strings.TrimSpace(r.SourceText) == "" {
		fields = append(fields, FieldError{Field: "SourceText", Message: "must not be blank"})
	}

	if len(fields) > 0 {
		return &ValidationError{Errors: fields}
	}
	return nil
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("%v is not supported (supported: %s)", fe.Value(), supportedLanguageList())
	case "gte":
		return fmt.Sprintf("must be >= %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be <= %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// Section names a part of the generated document.
type Section string

const (
	// SectionResume is the adapted resume
	SectionResume Section = "resume"
	// SectionCoverLetter is the cover letter
	SectionCoverLetter Section = "cover_letter"
)

// Sections lists the required sections in output order.
func Sections() []Section {
	return []Section{SectionResume, SectionCoverLetter}
}

// Title returns the heading used for the section in exports.
func (s Section) Title() string {
	switch s {
	case SectionResume:
		return "Adapted Resume"
	case SectionCoverLetter:
		return "Cover Letter"
	default:
		return string(s)
	}
}

// NoContent is the explicit empty value assigned to a section the generator did not produce.
const NoContent = ""

// GenerationResult is the parsed generator output.
// Sections always holds every key returned by Sections().
type GenerationResult struct {
	Raw      string             `json:"raw"`
	Sections map[Section]string `json:"sections"`
	// Degraded is set when the expected markers were missing or malformed
	// and the whole payload was assigned to the resume section.
	Degraded bool `json:"degraded"`
	// Preamble holds any text the generator emitted before the resume marker.
	Preamble string `json:"preamble,omitempty"`
}

// Resume returns the resume section.
func (r *GenerationResult) Resume() string {
	return r.Sections[SectionResume]
}

// CoverLetter returns the cover letter section (NoContent in degraded mode).
func (r *GenerationResult) CoverLetter() string {
	return r.Sections[SectionCoverLetter]
}
