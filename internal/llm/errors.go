package llm

import "fmt"

// UnavailableError is returned when the generation service cannot produce a
// response: transport failure, timeout, or an API error.
type UnavailableError struct {
	Provider Provider
	Model    string
	Cause    error
}

func (e *UnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation service unavailable (%s/%s): %v", e.Provider, e.Model, e.Cause)
	}
	return fmt.Sprintf("generation service unavailable (%s/%s)", e.Provider, e.Model)
}

func (e *UnavailableError) Unwrap() error {
	return e.Cause
}

// EmptyResponseError is returned when the service answers with blank text.
type EmptyResponseError struct {
	Provider Provider
	Model    string
}

func (e *EmptyResponseError) Error() string {
	return fmt.Sprintf("generation service returned an empty response (%s/%s)", e.Provider, e.Model)
}
