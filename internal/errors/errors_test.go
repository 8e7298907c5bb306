package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_Constants(t *testing.T) {
	tests := []struct {
		name     string
		errType  ErrorType
		expected string
	}{
		{
			name:     "parsing error type",
			errType:  ErrTypeParsing,
			expected: "PARSING",
		},
		{
			name:     "storage error type",
			errType:  ErrTypeStorage,
			expected: "STORAGE",
		},
		{
			name:     "validation error type",
			errType:  ErrTypeValidation,
			expected: "VALIDATION",
		},
		{
			name:     "model error type",
			errType:  ErrTypeModel,
			expected: "MODEL",
		},
		{
			name:     "not found error type",
			errType:  ErrTypeNotFound,
			expected: "NOT_FOUND",
		},
		{
			name:     "config error type",
			errType:  ErrTypeConfig,
			expected: "CONFIG",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.errType))
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name        string
		appError    *AppError
		wantMessage string
	}{
		{
			name: "error without cause",
			appError: &AppError{
				Type:    ErrTypeModel,
				Message: "model fit failed",
				Cause:   nil,
			},
			wantMessage: "[MODEL] model fit failed",
		},
		{
			name: "error with cause",
			appError: &AppError{
				Type:    ErrTypeParsing,
				Message: "failed to parse dataset",
				Cause:   fmt.Errorf("unexpected column count"),
			},
			wantMessage: "[PARSING] failed to parse dataset: unexpected column count",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMessage, tt.appError.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("underlying failure")
	appErr := NewStorageError("failed to write report", cause)

	assert.Equal(t, cause, appErr.Unwrap())
	assert.True(t, errors.Is(appErr, cause))

	var target *AppError
	require.True(t, errors.As(appErr, &target))
	assert.Equal(t, ErrTypeStorage, target.Type)
}

func TestAppError_WithContext(t *testing.T) {
	appErr := NewModelError("cannot fit model", nil).
		WithContext("species_count", 1).
		WithContext("observations", 42)

	require.NotNil(t, appErr.Context)
	assert.Equal(t, 1, appErr.Context["species_count"])
	assert.Equal(t, 42, appErr.Context["observations"])
}

func TestAppError_WithContext_NilMap(t *testing.T) {
	appErr := &AppError{Type: ErrTypeValidation, Message: "bad input"}
	appErr.WithContext("field", "species")

	assert.Equal(t, "species", appErr.Context["field"])
}

func TestErrorConstructors(t *testing.T) {
	cause := fmt.Errorf("boom")

	tests := []struct {
		name     string
		err      *AppError
		wantType ErrorType
	}{
		{"parsing", NewParsingError("parse", cause), ErrTypeParsing},
		{"storage", NewStorageError("store", cause), ErrTypeStorage},
		{"validation", NewValidationError("validate"), ErrTypeValidation},
		{"model", NewModelError("fit", cause), ErrTypeModel},
		{"config", NewConfigError("load", cause), ErrTypeConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.NotEmpty(t, tt.err.Message)
		})
	}
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("dataset file")
	assert.Equal(t, ErrTypeNotFound, err.Type)
	assert.Equal(t, "[NOT_FOUND] dataset file not found", err.Error())
}
