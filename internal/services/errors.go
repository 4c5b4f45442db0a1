package services

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrNotAuthorised is returned when an operation needs a caller and none is present
	ErrNotAuthorised = errors.New("Not Authorised!")
	// ErrForbidden is returned when the caller does not own the node being changed
	ErrForbidden = errors.New("you are not allowed to modify this resource")
)

// ValidationError reports invalid input to a content mutation
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// fromValidator converts go-playground validation failures into a ValidationError
func fromValidator(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Param() != "" {
			return invalid("%s failed on the '%s=%s' rule", fe.Field(), fe.Tag(), fe.Param())
		}
		return invalid("%s failed on the '%s' rule", fe.Field(), fe.Tag())
	}
	return invalid("%v", err)
}
