// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrNoData         = errors.New("no data available")
	ErrDatabaseError  = errors.New("database error")
	ErrConfigInvalid  = errors.New("invalid configuration")
	ErrFileUnreadable = errors.New("file unreadable")
	ErrLLMUnavailable = errors.New("text-generation service unavailable")
)

// ParseError represents a single field that could not be coerced during row
// normalization. The raw cell value is preserved so partial-row failures
// stay observable instead of being swallowed.
type ParseError struct {
	Field string
	Raw   string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: field %q value %q: %v", e.Field, e.Raw, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError.
func NewParseError(field, raw string, err error) *ParseError {
	return &ParseError{Field: field, Raw: raw, Err: err}
}

// FileError represents a source file that could not be ingested.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("file error [%s]: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Is classifies any FileError as ErrFileUnreadable, so callers can match the
// sentinel without naming the concrete type.
func (e *FileError) Is(target error) bool {
	return target == ErrFileUnreadable
}

// NewFileError creates a new FileError.
func NewFileError(path string, err error) *FileError {
	return &FileError{Path: path, Err: err}
}
