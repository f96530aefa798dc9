// Package errors provides sentinel errors and structured error types for the boon CLI.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for known conditions.
var (
	// ErrSourceNotFound indicates the archive source directory is missing or not a directory.
	ErrSourceNotFound = errors.New("source not found")

	// ErrPattern indicates an exclusion pattern is not a valid regular expression.
	ErrPattern = errors.New("invalid exclusion pattern")

	// ErrRuntimeNotFound indicates a cached LÖVE runtime is missing.
	ErrRuntimeNotFound = errors.New("runtime not found")

	// ErrFileSystem indicates a read, write, copy, rename or remove failure.
	ErrFileSystem = errors.New("file system error")

	// ErrInvalidProjectLayout indicates the project directory has no main.lua.
	ErrInvalidProjectLayout = errors.New("invalid project layout")

	// ErrMetadataRewrite indicates Info.plist did not have the expected structure.
	ErrMetadataRewrite = errors.New("metadata rewrite failed")

	// ErrUnsupported indicates an unsupported version/platform/bitness combination.
	ErrUnsupported = errors.New("unsupported combination")

	// ErrValidation indicates invalid user input or configuration.
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates a file, version or directory was not found.
	ErrNotFound = errors.New("not found")
)

// DetailError captures structured error information for terminal display.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Location is the file path the error relates to (optional).
	Location string

	// Context contains additional key-value context (optional).
	Context map[string]string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString("Error: ")
	b.WriteString(e.Type)
	b.WriteString("\n")

	if e.Location != "" {
		b.WriteString("  Location: ")
		b.WriteString(e.Location)
		b.WriteString("\n")
	}
	for k, v := range e.Context {
		b.WriteString("  ")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(e.Message)
	b.WriteString("\n")

	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewRuntimeNotFoundError reports a missing cached runtime and how to fetch it.
func NewRuntimeNotFoundError(path, version string) error {
	return &DetailError{
		Type:     "runtime not found",
		Message:  "LÖVE " + version + " is not available in the runtime cache",
		Location: path,
		Hint:     "You may need to download LÖVE first: `boon love download " + version + "`",
		Cause:    ErrRuntimeNotFound,
	}
}

// NewProjectLayoutError reports a project directory that cannot be packaged.
func NewProjectLayoutError(message, location string) error {
	return &DetailError{
		Type:     "invalid project layout",
		Message:  message,
		Location: location,
		Hint:     "Run boon from the directory containing main.lua, or pass it as an argument.",
		Cause:    ErrInvalidProjectLayout,
	}
}

// NewNotFoundError creates a not found error with details.
func NewNotFoundError(message, location, hint string) error {
	return &DetailError{
		Type:     "not found",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrNotFound,
	}
}

// NewValidationError creates a validation error with details.
func NewValidationError(message, location, hint string) error {
	return &DetailError{
		Type:     "validation failed",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrValidation,
	}
}

// Wrap wraps an error with a sentinel error type.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}

// FileSystem wraps a failed file operation with ErrFileSystem.
// Returns nil when err is nil.
func FileSystem(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", fmt.Sprintf(format, args...), ErrFileSystem, err)
}
