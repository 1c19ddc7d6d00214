package analyzer

import (
	"fmt"

	"github.com/sozercan/prodsight/apimodels"
)

// ValidationError reports a missing or malformed request field. It maps to
// 400 and is never retried.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return "missing required field: " + e.Field
}

func missing(field string) error {
	return &ValidationError{Field: field}
}

// ModelError wraps a transport or API failure from the model call.
type ModelError struct {
	Mode apimodels.AnalysisMode
	Err  error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("%s analysis failed: %v", e.Mode, e.Err)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}
