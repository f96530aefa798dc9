package errors

import "errors"

// Process exit codes.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitValidationError indicates invalid configuration, flags or exclusion patterns.
	ExitValidationError = 2

	// ExitProjectError indicates the project directory cannot be packaged.
	ExitProjectError = 3

	// ExitRuntimeMissing indicates the requested LÖVE runtime is not cached.
	ExitRuntimeMissing = 4

	// ExitNotFound indicates a file, directory or version was not found.
	ExitNotFound = 5

	// ExitUnsupported indicates an unsupported version/platform/bitness combination.
	ExitUnsupported = 6
)

// ExitError wraps an error with an exit code.
type ExitError struct {
	Err  error
	Code int

	// Printed is true once the command layer has already reported the error.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, ErrPattern), errors.Is(err, ErrValidation):
		return ExitValidationError
	case errors.Is(err, ErrInvalidProjectLayout), errors.Is(err, ErrSourceNotFound):
		return ExitProjectError
	case errors.Is(err, ErrRuntimeNotFound):
		return ExitRuntimeMissing
	case errors.Is(err, ErrNotFound):
		return ExitNotFound
	case errors.Is(err, ErrUnsupported):
		return ExitUnsupported
	default:
		return ExitGeneralError
	}
}

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitValidationError:
		return "Validation Error"
	case ExitProjectError:
		return "Project Error"
	case ExitRuntimeMissing:
		return "Runtime Missing"
	case ExitNotFound:
		return "Not Found"
	case ExitUnsupported:
		return "Unsupported"
	default:
		return "Unknown"
	}
}
