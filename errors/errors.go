package errors

import (
	// Go Internal Packages
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
)

// Kind classifies an error so callers can decide how to surface it.
type Kind uint8

const (
	Other Kind = iota
	Invalid
	ResourceLoad
	Inference
	EmptyAggregate
	NotFound
	Internal
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "validation error"
	case ResourceLoad:
		return "resource load error"
	case Inference:
		return "inference error"
	case EmptyAggregate:
		return "empty aggregate"
	case NotFound:
		return "not found"
	case Internal:
		return "internal error"
	}
	return "unknown error"
}

// Error is the error type returned across package boundaries.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// E builds an *Error of the given kind.
func E(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	if e.Message == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Err.Error())
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the outermost *Error in the chain, or Other.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return Other
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// New and As are re-exported so callers importing this package by path
// don't need the standard library package too.
func New(msg string) error {
	return stderrors.New(msg)
}

func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// ValidationError holds per field validation failures.
type ValidationError struct {
	Fields map[string]string
}

func (v *ValidationError) Error() string {
	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, v.Fields[k]))
	}
	return strings.Join(parts, "; ")
}

// ValidationErrs returns an empty builder; call Add per failing field and Err at the end.
func ValidationErrs() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

// Add records the reason for a field. The first reason for a field wins.
func (v *ValidationError) Add(field, reason string) {
	if _, ok := v.Fields[field]; ok {
		return
	}
	v.Fields[field] = reason
}

// Err returns nil when nothing was added.
func (v *ValidationError) Err() error {
	if len(v.Fields) == 0 {
		return nil
	}
	return v
}
