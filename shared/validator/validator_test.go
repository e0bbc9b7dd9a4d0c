package validator_test

import (
	"strings"
	"testing"

	"cohost/shared/validator"
)

type createPartyPayload struct {
	Name string `json:"name" validate:"required"`
	Size int    `json:"size" validate:"required,gt=0"`
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{
			name:    "valid payload",
			body:    `{"name":"Lee","size":2}`,
			wantErr: false,
		},
		{
			name:    "missing name",
			body:    `{"size":2}`,
			wantErr: true,
		},
		{
			name:    "zero size",
			body:    `{"name":"Lee","size":0}`,
			wantErr: true,
		},
		{
			name:    "negative size",
			body:    `{"name":"Lee","size":-3}`,
			wantErr: true,
		},
		{
			name:    "malformed json",
			body:    `{"name":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := createPartyPayload{}
			err := validator.Validate(strings.NewReader(tt.body), &payload)

			if tt.wantErr && err == nil {
				t.Error("expected an error, got nil")
			}

			if !tt.wantErr && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	if err := validator.ValidateVar("not-an-email", "email"); err == nil {
		t.Error("expected an error for invalid email")
	}

	if err := validator.ValidateVar("host@example.com", "email"); err != nil {
		t.Errorf("expected no error for valid email, got %v", err)
	}
}
