package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Common domain errors
	ErrNotFound           = errors.New("entity not found")
	ErrAlreadyExists      = errors.New("entity already exists")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrInvalidExecContext = errors.New("invalid execution context")

	// Registration write path
	ErrUpload      = errors.New("image upload failed")
	ErrPersistence = errors.New("persistence failed")
)

// Issue is a single field-level validation problem.
// Path uses dotted notation with indices, e.g. "products.3.msp".
type Issue struct {
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationError carries every issue found while validating a payload.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", is.Path, is.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is lets errors.Is(err, ErrInvalidArgument) match any validation failure.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidArgument }

// Add appends an issue and returns the receiver for chaining.
func (e *ValidationError) Add(path, code, msg string) *ValidationError {
	e.Issues = append(e.Issues, Issue{Path: path, Code: code, Message: msg})
	return e
}

// OrNil returns nil when no issue was recorded.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Issues) == 0 {
		return nil
	}
	return e
}
