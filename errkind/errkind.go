// Package errkind classifies failures into the small set of kinds callers map to responses.
package errkind

import (
	"errors"
	"net/http"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/queuebook/condition"
	"github.com/rise-and-shine/queuebook/pg"
)

// Kind is the externally visible category of a failure.
type Kind int

const (
	Unknown Kind = iota
	ConstraintViolation
	ValidationFailure
	AttributeAccessFailure
	NotFound
)

func (k Kind) String() string {
	switch k {
	case ConstraintViolation:
		return "constraint_violation"
	case ValidationFailure:
		return "validation_failure"
	case AttributeAccessFailure:
		return "attribute_access_failure"
	case NotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Classify returns the kind of err. Explicit kinds are checked in a fixed
// order; anything unrecognized is Unknown. A nil err is Unknown as well.
func Classify(err error) Kind {
	if err == nil {
		return Unknown
	}

	// attribute access first: unknown fields also carry the validation type
	var unknownField *condition.UnknownFieldError
	if errors.As(err, &unknownField) || errx.IsCodeIn(err, condition.CodeUnknownField) {
		return AttributeAccessFailure
	}

	if pg.Violation(err) != pg.ConstraintNone {
		return ConstraintViolation
	}

	if pg.IsNotFound(err) {
		return NotFound
	}

	switch errx.GetType(err) {
	case errx.T_Conflict:
		return ConstraintViolation
	case errx.T_Validation:
		return ValidationFailure
	case errx.T_NotFound:
		return NotFound
	default:
		return Unknown
	}
}

// HTTPStatus returns the response status of kind.
func HTTPStatus(kind Kind) int {
	switch kind {
	case ConstraintViolation:
		return http.StatusConflict
	case ValidationFailure, AttributeAccessFailure:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
