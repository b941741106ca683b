// Package repogen provides a generic condition-based repository over bun.
//
// A Repository is bound to one entity type and one session handle. Filters are
// plain field/value mappings resolved by a condition.Builder, so no per-entity
// query code is needed for the common CRUD paths.
package repogen

import (
	"context"
)

// Repository defines CRUD operations for entities of type E.
//
// Lookups that match nothing return (nil, nil). Only store failures and
// invalid field names are reported as errors.
type Repository[E any] interface {
	// Create inserts entity and returns it as stored.
	Create(ctx context.Context, entity *E) (*E, error)
	// GetByID returns the entity with the given primary key, or nil.
	GetByID(ctx context.Context, id any) (*E, error)
	// GetAll returns every entity. The result is not paginated.
	GetAll(ctx context.Context) ([]E, error)
	// FindByFilter returns every entity matching conditions.
	FindByFilter(ctx context.Context, conditions map[string]any) ([]E, error)
	// DeleteByFilter deletes the entities matching conditions and returns the first one, or nil.
	DeleteByFilter(ctx context.Context, conditions map[string]any) (*E, error)
	// DeleteAllByFilter deletes the entities matching conditions and returns all of them.
	DeleteAllByFilter(ctx context.Context, conditions map[string]any) ([]E, error)
	// PatchByFilter sets values on the entities matching conditions and returns the first one, or nil.
	PatchByFilter(ctx context.Context, conditions, values map[string]any) (*E, error)
}
