package apperr

import (
	"errors"
	"fmt"
	"os"

	"github.com/kmahoney/tend/internal/logger"
)

// Error taxonomy. Mutations report NotFound and Validation conditions so the
// caller can react; Persistence marks a failed save whose in-memory mutation
// was kept (optimistic local-first model).
var (
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation failed")
	ErrPersistence = errors.New("persistence failed")
)

// NotFoundf wraps ErrNotFound with a formatted message.
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

// Validationf wraps ErrValidation with a formatted message.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}

// Persistencef wraps ErrPersistence around an underlying storage error.
func Persistencef(err error) error {
	return fmt.Errorf("%w: %v", ErrPersistence, err)
}

// IsNotFound reports whether err is a NotFound condition.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsValidation reports whether err is a Validation condition.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// IsPersistence reports whether err is a Persistence condition.
func IsPersistence(err error) bool { return errors.Is(err, ErrPersistence) }

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
