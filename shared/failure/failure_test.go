package failure_test

import (
	"errors"
	"net/http"
	"testing"

	"cohost/shared/failure"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "test error message",
	}

	if f.Error() != "test error message" {
		t.Errorf("expected error message to be 'test error message', got %s", f.Error())
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{
			name:    "BadRequestFromString",
			err:     failure.BadRequestFromString("name is required"),
			code:    http.StatusBadRequest,
			message: "name is required",
		},
		{
			name:    "Unauthorized",
			err:     failure.Unauthorized("invalid credentials"),
			code:    http.StatusUnauthorized,
			message: "invalid credentials",
		},
		{
			name:    "NotFound",
			err:     failure.NotFound("party not found"),
			code:    http.StatusNotFound,
			message: "party not found",
		},
		{
			name:    "Conflict",
			err:     failure.Conflict("party was modified by another request"),
			code:    http.StatusConflict,
			message: "party was modified by another request",
		},
		{
			name:    "Placement",
			err:     failure.Placement("table overlaps an existing table"),
			code:    http.StatusConflict,
			message: "table overlaps an existing table",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if failure.GetCode(tt.err) != tt.code {
				t.Errorf("expected code to be %d, got %d", tt.code, failure.GetCode(tt.err))
			}
			if tt.err.Error() != tt.message {
				t.Errorf("expected message to be %s, got %s", tt.message, tt.err.Error())
			}
		})
	}
}

func TestGetCode_PlainError(t *testing.T) {
	if code := failure.GetCode(errors.New("boom")); code != http.StatusInternalServerError {
		t.Errorf("expected plain errors to map to 500, got %d", code)
	}
}
