// Package pipelexerr defines the typed error hierarchy shared across the
// expansion engine, in the teacher's DomainError idiom: a small closed set
// of error codes, a wrapped cause, and free-form contextual metadata.
package pipelexerr

import (
	"errors"
	"fmt"
)

// Code identifies a well-known error category.
type Code string

const (
	// CodeExpansion wraps a failure returned by a descendant TransformConfig.Expand.
	CodeExpansion Code = "EXPANSION_ERROR"
	// CodeNesting marks a self-nesting violation detected by Nestable.
	CodeNesting Code = "NESTING_VIOLATION"
	// CodeUnexpandedBuild marks an attempt to Build a PipelinesConfig directly.
	CodeUnexpandedBuild Code = "UNEXPANDED_BUILD"
	// CodeUnknownType marks a decode against an unregistered transform type.
	CodeUnknownType Code = "UNKNOWN_TRANSFORM_TYPE"
	// CodeValidation marks a struct-tag validation failure.
	CodeValidation Code = "VALIDATION_ERROR"
	// CodeParse marks a YAML decoding failure.
	CodeParse Code = "PARSE_ERROR"
)

// Error is a typed error enriched with contextual data.
type Error struct {
	Code    Code
	Message string
	Cause   error
	Context map[string]interface{}
}

// New constructs an Error with the given code and message.
func New(code Code, message string, context map[string]interface{}) *Error {
	return &Error{Code: code, Message: message, Context: context}
}

// Wrap constructs an Error that carries cause as its wrapped underlying error.
func Wrap(code Code, message string, cause error, context map[string]interface{}) *Error {
	return &Error{Code: code, Message: message, Cause: cause, Context: context}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is / errors.As.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is allows errors.Is comparisons against other *Error values by code and message.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code && e.Message == other.Message
}

// WithContext returns a copy of e with additional contextual metadata merged in.
func (e *Error) WithContext(ctx map[string]interface{}) *Error {
	if e == nil {
		return nil
	}
	merged := make(map[string]interface{}, len(e.Context)+len(ctx))
	for k, v := range e.Context {
		merged[k] = v
	}
	for k, v := range ctx {
		merged[k] = v
	}
	return &Error{Code: e.Code, Message: e.Message, Cause: e.Cause, Context: merged}
}

// Expansion wraps a child expansion failure, attaching the failing key.
func Expansion(failingKey string, cause error) *Error {
	return Wrap(CodeExpansion, fmt.Sprintf("failed to expand %q", failingKey), cause, map[string]interface{}{
		"key": failingKey,
	})
}

// Nesting constructs the self-nesting diagnostic.
func Nesting(transformType string) *Error {
	return New(CodeNesting, fmt.Sprintf("%s transform shouldn't be nested in a %s transform", transformType, transformType), map[string]interface{}{
		"transform_type": transformType,
	})
}

// UnexpandedBuild constructs the "must be expanded" build-time diagnostic.
func UnexpandedBuild() *Error {
	return New(CodeUnexpandedBuild, "this transform must be expanded", nil)
}

// UnknownType constructs the registry-miss diagnostic.
func UnknownType(transformType string) *Error {
	return New(CodeUnknownType, "no transform registered for type", map[string]interface{}{
		"type": transformType,
	})
}

// Validation constructs a struct-tag validation diagnostic.
func Validation(field, message string, cause error) *Error {
	return Wrap(CodeValidation, message, cause, map[string]interface{}{"field": field})
}

// Parse constructs a YAML decoding diagnostic.
func Parse(path string, cause error) *Error {
	return Wrap(CodeParse, "failed to parse configuration", cause, map[string]interface{}{"path": path})
}
