package testutil

import (
	"errors"
	"testing"

	apperrors "fintrack/internal/errors"
)

// AssertAppError checks that err is an *AppError with the expected code and
// returns it for further checks.
func AssertAppError(t *testing.T, err error, expectedCode string) *apperrors.AppError {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}

	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
	return appErr
}

// AssertFieldError checks that err is a validation error naming field as
// failing rule.
func AssertFieldError(t *testing.T, err error, field, rule string) {
	t.Helper()

	appErr := AssertAppError(t, err, apperrors.ErrValidation.Code)
	for _, d := range appErr.Details {
		if d.Field != field {
			continue
		}
		if d.Rule != rule {
			t.Errorf("expected %s to fail %q, got %q", field, rule, d.Rule)
		}
		if d.Message == "" {
			t.Errorf("expected a message for %s", field)
		}
		return
	}
	t.Errorf("expected a validation detail for %q, got %+v", field, appErr.Details)
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
