// Package depfactory builds request-scoped services from registry entries.
package depfactory

import (
	"github.com/code19m/errx"
	"github.com/uptrace/bun"

	"github.com/rise-and-shine/queuebook/condition"
	"github.com/rise-and-shine/queuebook/registry"
)

// Factory builds a fresh service bound to one session.
type Factory[S any] func(idb bun.IDB) S

// ForEntityType resolves key once and returns a Factory. Every call of the
// factory creates a new condition builder, repository and service, so nothing
// is shared between requests.
func ForEntityType[E any, S any](reg *registry.Registry, key registry.Key[E, S]) (Factory[S], error) {
	entry, err := registry.Lookup(reg, key)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	return func(idb bun.IDB) S {
		builder := condition.NewBuilder[E](idb.Dialect())
		repo := entry.NewRepository(idb, builder)
		return entry.NewService(idb, repo)
	}, nil
}

// MustForEntityType is ForEntityType for startup wiring. It panics if key is not registered.
func MustForEntityType[E any, S any](reg *registry.Registry, key registry.Key[E, S]) Factory[S] {
	f, err := ForEntityType(reg, key)
	if err != nil {
		panic("[depfactory]: " + err.Error())
	}
	return f
}
