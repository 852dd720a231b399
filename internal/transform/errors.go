package transform

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is returned when the provider or data source an endpoint
// needs was not configured at startup.
var ErrNotConfigured = errors.New("not configured")

// ValidationError reports a missing or blank required field. Its message is
// safe to show to clients.
type ValidationError struct {
	Field   Field
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func missingField(f Field) *ValidationError {
	return &ValidationError{Field: f, Message: fmt.Sprintf("%s is required", f)}
}

// UpstreamError wraps a failed call to a model or market-data API.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// ShapeError reports a completion that could not be reshaped into the
// endpoint's outputs. Raw holds the model text for logging.
type ShapeError struct {
	Raw string
	Err error
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("unexpected model output: %v", e.Err)
}

func (e *ShapeError) Unwrap() error {
	return e.Err
}
