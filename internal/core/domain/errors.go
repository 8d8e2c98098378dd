package domain

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrUnavailable  = errors.New("feature unavailable")
	ErrInvalidInput = errors.New("invalid input")
	ErrDownstream   = errors.New("downstream failure")
	ErrEnvironment  = errors.New("environment failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}

// KindOf maps a wrapped error back to its FailureKind.
func KindOf(err error) FailureKind {
	switch {
	case err == nil:
		return FailureNone
	case IsKind(err, ErrUnavailable):
		return FailureUnavailable
	case IsKind(err, ErrInvalidInput):
		return FailureInvalidInput
	case IsKind(err, ErrEnvironment):
		return FailureEnvironment
	default:
		return FailureDownstream
	}
}

// KindError is a sentinel that carries a stable kind name. The name is what
// callers see in user-facing messages; Msg and Parent stay in the logs.
type KindError struct {
	Name   string
	Msg    string
	Parent error
}

func (e *KindError) Error() string { return e.Msg }

func (e *KindError) Kind() string { return e.Name }

func (e *KindError) Unwrap() error { return e.Parent }

// ErrorKindName names the failure kind of err. The first error in the chain
// with a Kind() method wins; otherwise it is the concrete type of the first
// error that is not a fmt wrapper, e.g. "PathError" for *fs.PathError.
func ErrorKindName(err error) string {
	var named interface{ Kind() string }
	if errors.As(err, &named) {
		return named.Kind()
	}
	for err != nil {
		t := reflect.TypeOf(err)
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		if t.PkgPath() != "fmt" {
			name := t.Name()
			if name == "" || name == "errorString" {
				return "Error"
			}
			return name
		}
		switch u := err.(type) {
		case interface{ Unwrap() error }:
			err = u.Unwrap()
		case interface{ Unwrap() []error }:
			errs := u.Unwrap()
			if len(errs) == 0 {
				return "Error"
			}
			err = errs[len(errs)-1]
		default:
			return "Error"
		}
	}
	return "Error"
}

// ErrResourceNotFound is returned by resource lookups when no search root
// holds the requested resource.
var ErrResourceNotFound = &KindError{Name: "ResourceNotFoundError", Msg: "resource not found"}
