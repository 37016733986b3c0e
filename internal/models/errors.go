package models

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	FetchError ErrorKind = iota + 1
	PersistenceError
	TranslationError
	CorrectionError
	GenerationError
)

func (k ErrorKind) String() string {
	switch k {
	case FetchError:
		return "fetch"
	case PersistenceError:
		return "persistence"
	case TranslationError:
		return "translation"
	case CorrectionError:
		return "correction"
	case GenerationError:
		return "generation"
	default:
		return "unknown"
	}
}

// Error tags a failure with the pipeline stage it came from.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func NewError(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s error in %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether any error in err's chain is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
