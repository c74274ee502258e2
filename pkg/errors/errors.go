// Unified error handling for the kinematics module
//
// Copyright (C) 2026  Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package errors

import (
	stderrors "errors"
	"fmt"
	"runtime"
)

// ErrorCode represents the category of error
type ErrorCode string

const (
	// Caller-facing kinematics errors
	ErrDimensionMismatch ErrorCode = "DIMENSION_MISMATCH"
	ErrIndexOutOfRange   ErrorCode = "INDEX_OUT_OF_RANGE"
	ErrUninitialized     ErrorCode = "UNINITIALIZED"
	ErrTypeMismatch      ErrorCode = "TYPE_MISMATCH"

	// Tree invariant errors
	ErrTopology     ErrorCode = "TOPOLOGY"
	ErrTreeMismatch ErrorCode = "TREE_MISMATCH"
	ErrTreeBuild    ErrorCode = "TREE_BUILD"

	// Symbolic evaluation
	ErrUnboundVariable ErrorCode = "UNBOUND_VARIABLE"

	// Configuration errors
	ErrConfigSection    ErrorCode = "CONFIG_SECTION"
	ErrConfigOption     ErrorCode = "CONFIG_OPTION"
	ErrConfigValidation ErrorCode = "CONFIG_VALIDATION"
	ErrConfigType       ErrorCode = "CONFIG_TYPE"

	// Model factory
	ErrModel ErrorCode = "MODEL"

	// Runtime errors
	ErrRuntime ErrorCode = "RUNTIME"
)

// KinError is the unified error type for the module
type KinError struct {
	// Code is the error category
	Code ErrorCode

	// Message is a human-readable error description
	Message string

	// Body is the body name the error refers to, if any
	Body string

	// Section is the config section or context
	Section string

	// Option is the config option name (if applicable)
	Option string

	// Err wraps the underlying error
	Err error

	// Context provides additional context
	Context map[string]interface{}
}

// Error implements the error interface
func (e *KinError) Error() string {
	switch {
	case e.Option != "":
		return fmt.Sprintf("[%s:%s] %s", e.Code, e.Option, e.Message)
	case e.Body != "":
		return fmt.Sprintf("[%s:%s] %s", e.Code, e.Body, e.Message)
	case e.Section != "":
		return fmt.Sprintf("[%s:%s] %s", e.Code, e.Section, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *KinError) Unwrap() error {
	return e.Err
}

// SetBody sets the body name
func (e *KinError) SetBody(body string) *KinError {
	e.Body = body
	return e
}

// SetSection sets the context section
func (e *KinError) SetSection(section string) *KinError {
	e.Section = section
	return e
}

// SetOption sets the config option
func (e *KinError) SetOption(option string) *KinError {
	e.Option = option
	return e
}

// SetContext adds additional context
func (e *KinError) SetContext(key string, value interface{}) *KinError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// Wrap wraps an existing error with additional context
func Wrap(err error, code ErrorCode, message string) *KinError {
	return &KinError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// New creates a new KinError
func New(code ErrorCode, message string) *KinError {
	return &KinError{
		Code:    code,
		Message: message,
	}
}

// Kinematics errors

// DimensionMismatchError reports a vector whose length differs from the
// tree's declared dimension.
func DimensionMismatchError(what string, got, want int) *KinError {
	return New(ErrDimensionMismatch, fmt.Sprintf("%s has length %d, expected %d", what, got, want)).
		SetContext("got", got).
		SetContext("want", want)
}

// IndexOutOfRangeError reports a body index outside [0, numBodies).
func IndexOutOfRangeError(index, numBodies int) *KinError {
	return New(ErrIndexOutOfRange, fmt.Sprintf("body index %d out of range [0, %d)", index, numBodies)).
		SetContext("index", index)
}

// UninitializedError reports a query issued before any successful update.
func UninitializedError(query string) *KinError {
	return New(ErrUninitialized, fmt.Sprintf("%s requires a prior successful update", query))
}

// TypeMismatchError reports a state block of the wrong vector type.
func TypeMismatchError(got interface{}, want string) *KinError {
	return New(ErrTypeMismatch, fmt.Sprintf("state block of type %T is not a %s", got, want))
}

// TopologyError reports a body whose parent is not processed before it.
func TopologyError(body string, index, parent int) *KinError {
	return New(ErrTopology, fmt.Sprintf("parent %d of body %d is not ordered before it", parent, index)).
		SetBody(body)
}

// TreeBuildError reports an invalid tree description.
func TreeBuildError(body string, reason string) *KinError {
	return New(ErrTreeBuild, reason).SetBody(body)
}

// Config errors

// ConfigSectionError creates an error for missing config section
func ConfigSectionError(section string) *KinError {
	return New(ErrConfigSection, fmt.Sprintf("section '%s' not found", section)).
		SetSection(section)
}

// ConfigOptionError creates an error for missing or invalid config option
func ConfigOptionError(section, option string) *KinError {
	return New(ErrConfigOption, fmt.Sprintf("option '%s' not found in section '%s'", option, section)).
		SetSection(section).
		SetOption(option)
}

// ConfigValidationError creates an error for config validation failure
func ConfigValidationError(section, option string, reason string) *KinError {
	return New(ErrConfigValidation, fmt.Sprintf("option '%s' in section '%s': %s", option, section, reason)).
		SetSection(section).
		SetOption(option)
}

// ConfigTypeError creates an error for config type conversion failure
func ConfigTypeError(section, option, value string, targetType string, err error) *KinError {
	return Wrap(err, ErrConfigType, fmt.Sprintf("option '%s' in section '%s': failed to parse '%s' as %s", option, section, value, targetType)).
		SetSection(section).
		SetOption(option)
}

// ModelError creates a model factory error
func ModelError(message string) *KinError {
	return New(ErrModel, message)
}

// RuntimeError creates a general runtime error
func RuntimeError(message string) *KinError {
	return New(ErrRuntime, message)
}

// RecoverPanic converts a value returned by recover() into an error.
// It returns nil when r is nil.
func RecoverPanic(r interface{}) *KinError {
	if r == nil {
		return nil
	}
	switch x := r.(type) {
	case *KinError:
		return x
	case runtime.Error:
		return Wrap(x, ErrRuntime, x.Error())
	case error:
		return Wrap(x, ErrRuntime, x.Error())
	case string:
		return RuntimeError(fmt.Sprintf("panic: %s", x))
	default:
		return RuntimeError(fmt.Sprintf("panic: %v", x))
	}
}

// Is checks if err, or any error it wraps, carries the given code
func Is(err error, code ErrorCode) bool {
	var kinErr *KinError
	for err != nil {
		if !stderrors.As(err, &kinErr) {
			return false
		}
		if kinErr.Code == code {
			return true
		}
		err = kinErr.Err
	}
	return false
}

// CodeOf returns the code of the outermost KinError in err's chain, or
// the empty code.
func CodeOf(err error) ErrorCode {
	var kinErr *KinError
	if stderrors.As(err, &kinErr) {
		return kinErr.Code
	}
	return ""
}

// IsCaller reports whether err is a recoverable caller-facing error
func IsCaller(err error) bool {
	return Is(err, ErrDimensionMismatch) ||
		Is(err, ErrIndexOutOfRange) ||
		Is(err, ErrTypeMismatch)
}

// IsConfig checks if error is a config error
func IsConfig(err error) bool {
	return Is(err, ErrConfigSection) ||
		Is(err, ErrConfigOption) ||
		Is(err, ErrConfigValidation) ||
		Is(err, ErrConfigType)
}
