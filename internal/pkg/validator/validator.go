// Package validator wraps the go-playground/validator library with
// thread-safe initialization and standardized error formatting. It is used to
// check configuration structs and inbound provider payloads against their
// `validate` tags.
package validator

import (
	"errors"
	"fmt"
	"sync"

	gvalidator "github.com/go-playground/validator/v10"
)

var (
	validate          *gvalidator.Validate
	initValidatorOnce sync.Once
)

// ErrValidation is returned as the first error in the chain when one or more
// validation rules are violated.
var ErrValidation = errors.New("validation error")

// errStringFormat is the template for individual field violation messages.
const errStringFormat = "'%s': value '%v' does not meet the requirements for the '%s' validation"

// Init initializes the validator exactly once. It is safe to call from
// multiple goroutines; calls after the first are no-ops.
func Init() {
	initValidatorOnce.Do(func() {
		validate = gvalidator.New(gvalidator.WithRequiredStructEnabled())
	})
}

// formatError converts raw validator errors into a multi-error chain rooted
// at ErrValidation, with one formatted message per failing field.
func formatError(err error) error {
	var validationErrors gvalidator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	errs := []error{ErrValidation}
	for _, validationErr := range validationErrors {
		errs = append(errs, fmt.Errorf(errStringFormat,
			validationErr.Field(),
			validationErr.Value(),
			validationErr.Tag(),
		))
	}

	return errors.Join(errs...)
}

// Validate checks the given struct against its validation tags. Init is
// invoked lazily, so callers do not need to initialize the package first.
// It returns nil on success, or an error chain starting with ErrValidation
// listing every violated rule.
func Validate(v any) error {
	Init()

	if err := validate.Struct(v); err != nil {
		return formatError(err)
	}

	return nil
}
