package adam

import (
	"fmt"

	"github.com/pkg/errors"
)

// InvalidArgumentError is returned when an argument has an acceptable type
// but an unacceptable value, e.g. a non-positive step size.
type InvalidArgumentError struct {
	Name    string // Name of the argument, e.g. "max_iter"
	Value   any    // The rejected value
	Message string // Constraint that was violated, e.g. "max_iter must be positive"
	Err     error  // Optional underlying cause
}

func (err *InvalidArgumentError) Error() string {
	return describe(err.Message, err.Value)
}

func (err *InvalidArgumentError) Unwrap() error {
	return err.Err
}

// InvalidTypeError is returned when an argument is of the wrong category
// altogether: a missing callback, non-numeric array data, or a non-integer
// where an integer is required.
type InvalidTypeError struct {
	Name    string
	Value   any
	Message string
	Err     error
}

func (err *InvalidTypeError) Error() string {
	return describe(err.Message, err.Value)
}

func (err *InvalidTypeError) Unwrap() error {
	return err.Err
}

func describe(msg string, value any) string {
	if value == nil {
		return msg
	}
	return fmt.Sprintf("%s; got %v", msg, value)
}

func invalidArgument(name string, value any, format string, args ...any) error {
	return errors.WithStack(&InvalidArgumentError{
		Name:    name,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
	})
}

func invalidType(name string, value any, cause error, format string, args ...any) error {
	return errors.WithStack(&InvalidTypeError{
		Name:    name,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
		Err:     cause,
	})
}

// ArgumentName returns the name of the argument an InvalidArgumentError or
// InvalidTypeError in err's chain refers to, or "" if there is none.
func ArgumentName(err error) string {
	var argErr *InvalidArgumentError
	if errors.As(err, &argErr) {
		return argErr.Name
	}
	var typeErr *InvalidTypeError
	if errors.As(err, &typeErr) {
		return typeErr.Name
	}
	return ""
}

// NewInvalidType builds an InvalidTypeError for callers decoding untyped
// input, such as configuration files.
func NewInvalidType(name string, value any, cause error, message string) error {
	return invalidType(name, value, cause, "%s", message)
}
