package errors

import "fmt"

type ParsingError struct {
	ErrorMsg string
}

func (m *ParsingError) Error() string {
	return m.ErrorMsg
}

type BadRequestError struct {
	ErrorMsg string
}

func (m *BadRequestError) Error() string {
	return m.ErrorMsg
}

// MissingFieldError is returned when a required request key is absent or null.
type MissingFieldError struct {
	Field string
}

func (m *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", m.Field)
}

type InvalidDateError struct {
	Value string
	Err   error
}

func (m *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", m.Value)
}

func (m *InvalidDateError) Unwrap() error {
	return m.Err
}

// ModelInferenceError wraps a failure of a single model stage.
type ModelInferenceError struct {
	Stage string
	Err   error
}

func (m *ModelInferenceError) Error() string {
	return fmt.Sprintf("%s model inference failed: %v", m.Stage, m.Err)
}

func (m *ModelInferenceError) Unwrap() error {
	return m.Err
}

type ModelUnavailableError struct {
	Model string
	Err   error
}

func (m *ModelUnavailableError) Error() string {
	if m.Err == nil {
		return fmt.Sprintf("model %s is not available", m.Model)
	}
	return fmt.Sprintf("model %s is not available: %v", m.Model, m.Err)
}

func (m *ModelUnavailableError) Unwrap() error {
	return m.Err
}
