package model

import (
	"fmt"
	"strings"
)

// ParseError represents extraction errors with dialect context
type ParseError struct {
	Dialect Dialect
	Field   string
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s (%v)", e.Dialect, e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Dialect, e.Field, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// NewParseError creates a new parse error
func NewParseError(dialect Dialect, field, message string, cause error) *ParseError {
	return &ParseError{
		Dialect: dialect,
		Field:   field,
		Message: message,
		Cause:   cause,
	}
}

// DefectError represents a programming defect in a format module: a
// capability declaration that does not cover the canonical key set, or an
// accessor used before extraction. It is unrecoverable and is never folded
// into a Result, so a broken module cannot hand incomplete data to callers.
type DefectError struct {
	Module      Dialect
	MissingKeys []string
	Message     string
}

func (e *DefectError) Error() string {
	if len(e.MissingKeys) > 0 {
		return fmt.Sprintf("format module defect [%s]: %s: %s",
			e.Module, e.Message, strings.Join(e.MissingKeys, ", "))
	}
	return fmt.Sprintf("format module defect [%s]: %s", e.Module, e.Message)
}

// NewDefectError creates a new defect error
func NewDefectError(module Dialect, missingKeys []string, message string) *DefectError {
	return &DefectError{
		Module:      module,
		MissingKeys: missingKeys,
		Message:     message,
	}
}
