// Package condition turns field/value mappings into equality predicates for bun queries.
//
// Field names are resolved against the bun table metadata of the entity, so a
// filter can only reference columns the entity actually has.
package condition

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/code19m/errx"
	"github.com/samber/lo"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/schema"
)

const (
	CodeUnknownField = "UNKNOWN_FIELD"
)

// UnknownFieldError reports a condition or value naming a field the entity does not have.
type UnknownFieldError struct {
	Entity string
	Field  string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("entity %s has no field %q", e.Entity, e.Field)
}

// Predicate is a single column = value test. A nil Value matches NULL.
type Predicate struct {
	Column string
	Value  any
}

// Builder resolves field names of entity E. It holds only immutable table
// metadata, so one instance may be shared by concurrent callers.
type Builder[E any] struct {
	entity string
	table  *schema.Table
}

// NewBuilder creates a Builder for E using the table registry of dialect.
func NewBuilder[E any](dialect schema.Dialect) *Builder[E] {
	typ := reflect.TypeFor[E]()
	return &Builder[E]{
		entity: typ.Name(),
		table:  dialect.Tables().Get(typ),
	}
}

// Entity returns the Go type name of E.
func (b *Builder[E]) Entity() string {
	return b.entity
}

// Table returns the bun table metadata of E.
func (b *Builder[E]) Table() *schema.Table {
	return b.table
}

// Build returns one predicate per entry of conditions, ordered by field name.
// If any field is unknown it returns an UnknownFieldError and no predicates.
func (b *Builder[E]) Build(conditions map[string]any) ([]Predicate, error) {
	return b.resolve(conditions)
}

// Columns resolves update values with the same field rules as Build.
func (b *Builder[E]) Columns(values map[string]any) ([]Predicate, error) {
	return b.resolve(values)
}

func (b *Builder[E]) resolve(pairs map[string]any) ([]Predicate, error) {
	names := lo.Keys(pairs)
	slices.Sort(names)

	preds := make([]Predicate, 0, len(names))
	for _, name := range names {
		field, ok := b.table.FieldMap[name]
		if !ok {
			return nil, errx.Wrap(
				&UnknownFieldError{Entity: b.entity, Field: name},
				errx.WithCode(CodeUnknownField),
				errx.WithType(errx.T_Validation),
				errx.WithDetails(errx.D{"entity": b.entity, "field": name}),
			)
		}
		preds = append(preds, Predicate{Column: field.Name, Value: pairs[name]})
	}

	return preds, nil
}

type whereQuery[Q any] interface {
	Where(query string, args ...any) Q
}

// Apply adds every predicate to q as an AND-ed WHERE clause on the model table alias.
func Apply[Q whereQuery[Q]](q Q, preds []Predicate) Q {
	for _, p := range preds {
		if p.Value == nil {
			q = q.Where("?TableAlias.? IS NULL", bun.Ident(p.Column))
			continue
		}
		q = q.Where("?TableAlias.? = ?", bun.Ident(p.Column), p.Value)
	}
	return q
}
