// Package registry maps entity types to the factories that build their repository and service.
//
// Entries are registered once at startup through a Builder. Build freezes them
// into a Registry that is read without locking for the rest of the process.
package registry

import (
	"fmt"

	"github.com/code19m/errx"
	"github.com/uptrace/bun"

	"github.com/rise-and-shine/queuebook/condition"
	"github.com/rise-and-shine/queuebook/repogen"
)

const (
	CodeDuplicateRegistration = "DUPLICATE_REGISTRATION"
	CodeUnregisteredEntity    = "UNREGISTERED_ENTITY"
	CodeEntryTypeMismatch     = "ENTRY_TYPE_MISMATCH"
)

// Key identifies the registration of entity E served by S.
// The type parameters make a Lookup return exactly what Register stored.
type Key[E any, S any] struct {
	name string
}

// NewKey creates a key. Names must be unique within one registry.
func NewKey[E any, S any](name string) Key[E, S] {
	return Key[E, S]{name: name}
}

// Name returns the registration name.
func (k Key[E, S]) Name() string {
	return k.name
}

// Entry holds the factories for one entity type.
type Entry[E any, S any] struct {
	// NewRepository binds a repository for E to a session.
	NewRepository func(idb bun.IDB, builder *condition.Builder[E]) repogen.Repository[E]
	// NewService wraps repo. idb is the same session, for services that need other repositories.
	NewService func(idb bun.IDB, repo repogen.Repository[E]) S
}

// UnregisteredEntityError reports a lookup of a key that was never registered.
type UnregisteredEntityError struct {
	Name string
}

func (e *UnregisteredEntityError) Error() string {
	return fmt.Sprintf("entity %q is not registered", e.Name)
}

// Builder collects entries. It is not safe for concurrent use.
type Builder struct {
	entries map[string]any
	err     error
}

func NewBuilder() *Builder {
	return &Builder{entries: make(map[string]any)}
}

// Register adds entry under key. Registering a key twice is recorded as an
// error and reported by Build.
func Register[E any, S any](b *Builder, key Key[E, S], entry Entry[E, S]) {
	if b.err != nil {
		return
	}

	if _, exists := b.entries[key.name]; exists {
		b.err = errx.New(
			fmt.Sprintf("entity %q is already registered", key.name),
			errx.WithCode(CodeDuplicateRegistration),
			errx.WithType(errx.T_Internal),
		)
		return
	}

	b.entries[key.name] = entry
}

// Build freezes the registered entries. The Builder must not be used afterward.
func (b *Builder) Build() (*Registry, error) {
	if b.err != nil {
		return nil, b.err
	}

	entries := make(map[string]any, len(b.entries))
	for name, entry := range b.entries {
		entries[name] = entry
	}

	return &Registry{entries: entries}, nil
}

// Registry is an immutable set of entries, safe for concurrent reads.
type Registry struct {
	entries map[string]any
}

// Len returns the number of registered entries.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Lookup returns the entry registered under key.
func Lookup[E any, S any](r *Registry, key Key[E, S]) (Entry[E, S], error) {
	raw, ok := r.entries[key.name]
	if !ok {
		return Entry[E, S]{}, errx.Wrap(
			&UnregisteredEntityError{Name: key.name},
			errx.WithCode(CodeUnregisteredEntity),
			errx.WithType(errx.T_Internal),
		)
	}

	entry, ok := raw.(Entry[E, S])
	if !ok {
		return Entry[E, S]{}, errx.New(
			fmt.Sprintf("entity %q is registered with different types", key.name),
			errx.WithCode(CodeEntryTypeMismatch),
			errx.WithType(errx.T_Internal),
		)
	}

	return entry, nil
}
