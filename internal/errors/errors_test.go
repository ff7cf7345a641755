package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMissingFieldError(t *testing.T) {
	err := &MissingFieldError{Field: "carrier"}
	assert.Equal(t, "missing required field: carrier", err.Error())
}

func TestInvalidDateError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("month out of range")
	var err error = &InvalidDateError{Value: "2024-13-01", Err: cause}

	assert.Contains(t, err.Error(), "2024-13-01")
	assert.True(t, stderrors.Is(err, cause))
}

func TestModelInferenceError_As(t *testing.T) {
	wrapped := fmt.Errorf("request failed: %w", &ModelInferenceError{Stage: "regression", Err: fmt.Errorf("boom")})

	var inferenceErr *ModelInferenceError
	assert.True(t, stderrors.As(wrapped, &inferenceErr))
	assert.Equal(t, "regression", inferenceErr.Stage)
	assert.Equal(t, "regression model inference failed: boom", inferenceErr.Error())
}

func TestModelUnavailableError(t *testing.T) {
	assert.Equal(t, "model kmeans is not available", (&ModelUnavailableError{Model: "kmeans"}).Error())
	assert.Equal(t, "model kmeans is not available: no such file",
		(&ModelUnavailableError{Model: "kmeans", Err: fmt.Errorf("no such file")}).Error())
}
