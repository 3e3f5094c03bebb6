package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrValidationFailed is wrapped by every input validation error.
var ErrValidationFailed = errors.New("validation failed")

// validate is shared by all services; validator.Validate caches struct info and is safe for concurrent use.
var validate = validator.New()

// validationError flattens validator field errors into one ErrValidationFailed error.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", ErrValidationFailed, strings.Join(msgs, "; "))
}

func validateStruct(s any) error {
	if err := validate.Struct(s); err != nil {
		return validationError(err)
	}
	return nil
}
