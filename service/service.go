// Package service adds business rules on top of a repogen.Repository.
//
// A Service turns absent results into not-found errors and makes sure every
// repository failure leaves it as a classified errx error.
package service

import (
	"context"
	"strings"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/queuebook/errkind"
	"github.com/rise-and-shine/queuebook/repogen"
)

// NotFoundError reports that no entity matched a lookup, delete or patch.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

// Service wraps a repository of E.
type Service[E any, R repogen.Repository[E]] struct {
	repo         R
	entity       string
	notFoundCode string
}

// New creates a service. entity is the snake_case name used in error codes, e.g. "queue_entry".
func New[E any, R repogen.Repository[E]](repo R, entity string) *Service[E, R] {
	return &Service[E, R]{
		repo:         repo,
		entity:       entity,
		notFoundCode: strings.ToUpper(entity) + "_NOT_FOUND",
	}
}

// Repository returns the wrapped repository.
func (s *Service[E, R]) Repository() R {
	return s.repo
}

// NotFoundCode returns the error code used for absent entities.
func (s *Service[E, R]) NotFoundCode() string {
	return s.notFoundCode
}

func (s *Service[E, R]) Create(ctx context.Context, entity *E) (*E, error) {
	created, err := s.repo.Create(ctx, entity)
	if err != nil {
		return nil, Classified(err)
	}
	return created, nil
}

func (s *Service[E, R]) GetAll(ctx context.Context) ([]E, error) {
	entities, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, Classified(err)
	}
	return entities, nil
}

// GetByID returns the entity or a NotFoundError.
func (s *Service[E, R]) GetByID(ctx context.Context, id any) (*E, error) {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, Classified(err)
	}
	if entity == nil {
		return nil, s.NotFound(errx.D{"id": id})
	}
	return entity, nil
}

// Delete removes the entities matching conditions. Nothing matched is a NotFoundError.
func (s *Service[E, R]) Delete(ctx context.Context, conditions map[string]any) (bool, error) {
	deleted, err := s.repo.DeleteByFilter(ctx, conditions)
	if err != nil {
		return false, Classified(err)
	}
	if deleted == nil {
		return false, s.NotFound(errx.D{"conditions": conditions})
	}
	return true, nil
}

// Patch updates the entities matching conditions and returns the first one.
// Nothing matched, including an empty filter, is a NotFoundError.
func (s *Service[E, R]) Patch(ctx context.Context, conditions, values map[string]any) (*E, error) {
	patched, err := s.repo.PatchByFilter(ctx, conditions, values)
	if err != nil {
		return nil, Classified(err)
	}
	if patched == nil {
		return nil, s.NotFound(errx.D{"conditions": conditions})
	}
	return patched, nil
}

// NotFound builds the not-found error of this service's entity.
func (s *Service[E, R]) NotFound(details errx.D) error {
	return errx.Wrap(
		&NotFoundError{Entity: s.entity},
		errx.WithCode(s.notFoundCode),
		errx.WithType(errx.T_NotFound),
		errx.WithDetails(details),
	)
}

// Classified wraps err with the errx type matching its errkind.Kind.
func Classified(err error) error {
	var t errx.Type
	switch errkind.Classify(err) {
	case errkind.ConstraintViolation:
		t = errx.T_Conflict
	case errkind.ValidationFailure, errkind.AttributeAccessFailure:
		t = errx.T_Validation
	case errkind.NotFound:
		t = errx.T_NotFound
	default:
		t = errx.T_Internal
	}
	return errx.Wrap(err, errx.WithType(t))
}
