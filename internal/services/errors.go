package services

import (
	"errors"
	"fmt"

	"github.com/egysaas25-hub/fit-coach-sub001/internal/models"
)

var (
	// ErrInvalidCategory is returned for a category outside the fixed enumeration
	ErrInvalidCategory = errors.New("invalid category")

	// ErrInvalidFormat is returned when a settings document is not a JSON object
	ErrInvalidFormat = errors.New("invalid settings format")

	// ErrValidationFailed matches every *ValidationError via errors.Is
	ErrValidationFailed = errors.New("validation failed")

	// ErrInvalidCredentials is returned by Login for an unknown email or wrong password
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError reports the first category rule a document violated
type ValidationError struct {
	Category models.Category
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s settings: %s", e.Category, e.Reason)
}

// Is makes errors.Is(err, ErrValidationFailed) true for any ValidationError
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}
