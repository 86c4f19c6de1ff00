package validation

import (
	"errors"
	"testing"

	tgerrors "github.com/vnykmshr/taskgate/pkg/common/errors"
)

func TestValidatePositive(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		wantErr bool
	}{
		{"positive", 5, false},
		{"one", 1, false},
		{"zero", 0, true},
		{"negative", -3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePositive("mod", "field", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePositive(%d) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, tgerrors.ErrInvalidConfiguration) {
				t.Error("validation error should wrap ErrInvalidConfiguration")
			}
		})
	}
}

func TestValidateNonNegative(t *testing.T) {
	if err := ValidateNonNegative("mod", "field", 0); err != nil {
		t.Errorf("zero should be valid: %v", err)
	}
	if err := ValidateNonNegative("mod", "field", 7); err != nil {
		t.Errorf("positive should be valid: %v", err)
	}
	if err := ValidateNonNegative("mod", "field", -1); err == nil {
		t.Error("negative should be invalid")
	}
}

func TestValidateNonNegativeDuration(t *testing.T) {
	if err := ValidateNonNegativeDuration("mod", "delay", 0); err != nil {
		t.Errorf("zero should be valid: %v", err)
	}
	if err := ValidateNonNegativeDuration("mod", "delay", -10); err == nil {
		t.Error("negative should be invalid")
	}
}

func TestValidateNotNil(t *testing.T) {
	if err := ValidateNotNil("mod", "task", struct{}{}); err != nil {
		t.Errorf("non-nil should be valid: %v", err)
	}
	if err := ValidateNotNil("mod", "task", nil); err == nil {
		t.Error("nil should be invalid")
	}
}

func TestValidateNotEmpty(t *testing.T) {
	if err := ValidateNotEmpty("mod", "id", "audit-1"); err != nil {
		t.Errorf("non-empty should be valid: %v", err)
	}
	if err := ValidateNotEmpty("mod", "id", ""); err == nil {
		t.Error("empty should be invalid")
	}
}
