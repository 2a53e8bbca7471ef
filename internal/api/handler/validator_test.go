package handler

import (
	"errors"
	"testing"

	"github.com/slimmom/diet-service/internal/core/domain"
)

func TestValidator_UsesJSONFieldNames(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&dietRequest{Height: 170, Age: 30, CurrentWeight: 70, DesiredWeight: 65, BloodType: 0})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if err.Error() != "bloodType is required" {
		t.Fatalf("unexpected message: %q", err.Error())
	}

	if err := v.Validate(&dietRequest{Height: 170, Age: 30, CurrentWeight: 70, DesiredWeight: 65, BloodType: 4}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidator_JoinsMessages(t *testing.T) {
	err := NewValidator().Validate(&loginRequest{})
	if err == nil || err.Error() != "email is required; password is required" {
		t.Fatalf("unexpected error: %v", err)
	}
}
