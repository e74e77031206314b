// Package errs defines the error kinds surfaced by the digit classifier
package errs

import "github.com/pkg/errors"

// Error kinds. Check them using errors.Is.
var (
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrResource      = errors.New("resource error")
	ErrEngine        = errors.New("engine failure")
)

// Validationf returns a validation error with a formatted message.
func Validationf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrValidation, format, args...)
}

// Configurationf returns a configuration error with a formatted message.
func Configurationf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrConfiguration, format, args...)
}

// Resource marks err as a resource error for the resource named what.
func Resource(err error, what string) error {
	return &kindError{kind: ErrResource, cause: errors.Wrapf(err, "resource %q", what)}
}

// Engine marks err as an engine failure of operation op on the model name.
func Engine(err error, op, name string) error {
	if name == "" {
		return &kindError{kind: ErrEngine, cause: errors.Wrapf(err, "engine %s", op)}
	}
	return &kindError{kind: ErrEngine, cause: errors.Wrapf(err, "engine %s of %q", op, name)}
}

// kindError carries a kind next to an unrelated cause, so that both
// errors.Is(err, kind) and errors.Is(err, cause) hold.
type kindError struct {
	kind  error
	cause error
}

func (e *kindError) Error() string {
	return e.kind.Error() + ": " + e.cause.Error()
}

func (e *kindError) Unwrap() error {
	return e.cause
}

func (e *kindError) Is(target error) bool {
	return target == e.kind
}
