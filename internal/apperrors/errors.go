package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotObject is the cause of a ValidationError raised for a document whose
// top-level value is not a JSON object.
var ErrNotObject = errors.New("top-level JSON value must be an object")

// ErrMalformed is the cause of a ParseError when no finer detail is known.
var ErrMalformed = errors.New("malformed JSON")

// ErrInvalidUTF8 is the cause of a ParseError for input that is not UTF-8.
var ErrInvalidUTF8 = errors.New("input is not valid UTF-8")

// NotFoundError reports a missing input file.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("input file '%s' not found. Please create it with the JSON data", e.Path)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// ParseError reports input that is not well-formed JSON.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError reports a document with the wrong shape.
type ValidationError struct {
	Path string
	// Kind is the JSON type that was found instead of an object.
	Kind string
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("invalid document %s: %v", e.Path, e.Err)
	}

	return fmt.Sprintf("invalid document %s: %v (got %s)", e.Path, e.Err, e.Kind)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// IOError reports a failed file operation other than a missing input.
type IOError struct {
	// Op names the operation, e.g. "read", "write", "backup".
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
