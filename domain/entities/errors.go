package entities

import "errors"

// Failure taxonomy for the command pipeline. Every failure is scoped to a
// single command; none is fatal to the process.
var (
	// ErrTaskNotFound - a mutating or lookup operation referenced an id
	// that is not in the store.
	ErrTaskNotFound = errors.New("task not found")

	// ErrUnrecognizedCommand - the text could not be mapped onto any
	// supported action.
	ErrUnrecognizedCommand = errors.New("unrecognized command")

	// ErrIncompleteCommand - the action is known but a required payload
	// field is missing.
	ErrIncompleteCommand = errors.New("incomplete command")

	// ErrValidation - a payload or task field value is malformed.
	ErrValidation = errors.New("validation failed")

	// ErrOracleUnavailable - transport failure or timeout talking to the
	// language model. Recovered locally via the fallback parser.
	ErrOracleUnavailable = errors.New("oracle unavailable")
)

// ErrorKind returns the stable wire label for a pipeline error.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTaskNotFound):
		return "task_not_found"
	case errors.Is(err, ErrUnrecognizedCommand):
		return "unrecognized_command"
	case errors.Is(err, ErrIncompleteCommand):
		return "incomplete_command"
	case errors.Is(err, ErrValidation):
		return "validation_error"
	case errors.Is(err, ErrOracleUnavailable):
		return "oracle_unavailable"
	default:
		return "internal_error"
	}
}
