package repogen

import (
	"context"
	"errors"
	"fmt"

	"github.com/code19m/errx"
	"github.com/uptrace/bun"

	"github.com/rise-and-shine/queuebook/condition"
	"github.com/rise-and-shine/queuebook/pg"
)

const (
	CodeConstraintViolation = "CONSTRAINT_VIOLATION"

	codeMissingPrimaryKey = "MISSING_PRIMARY_KEY"

	modelTableExpr = "?.? AS ?"
)

// errNothingDeleted rolls back a delete transaction that matched no rows.
var errNothingDeleted = errors.New("nothing deleted")

// PgRepo implements Repository for PostgreSQL using bun.
type PgRepo[E any] struct {
	idb     bun.IDB
	builder *condition.Builder[E]
	opts    repoOptions
}

// NewPgRepo creates a repository bound to idb, which may be a *bun.DB or a bun.Tx.
func NewPgRepo[E any](idb bun.IDB, builder *condition.Builder[E], opts ...Option) *PgRepo[E] {
	o := repoOptions{schemaName: defaultSchemaName}
	for _, opt := range opts {
		opt(&o)
	}

	return &PgRepo[E]{
		idb:     idb,
		builder: builder,
		opts:    o,
	}
}

func (r *PgRepo[E]) Create(ctx context.Context, entity *E) (*E, error) {
	q := r.idb.NewInsert().Model(entity).ModelTableExpr(modelTableExpr, r.tableArgs()...).Returning("*")

	_, err := q.Exec(ctx)
	if err != nil {
		return nil, r.writeError(err, q, "creating")
	}

	return entity, nil
}

func (r *PgRepo[E]) GetByID(ctx context.Context, id any) (*E, error) {
	table := r.builder.Table()
	if len(table.PKs) == 0 {
		return nil, errx.New(
			fmt.Sprintf("%s has no primary key", r.builder.Entity()),
			errx.WithCode(codeMissingPrimaryKey),
		)
	}

	entities := make([]E, 0, 1)
	q := r.selectQuery(&entities).Where("?TableAlias.? = ?", bun.Ident(table.PKs[0].Name), id).Limit(1)

	err := q.Scan(ctx)
	if err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	if len(entities) == 0 {
		return nil, nil //nolint:nilnil // absent entity is not an error at this layer
	}

	return &entities[0], nil
}

func (r *PgRepo[E]) GetAll(ctx context.Context) ([]E, error) {
	entities := make([]E, 0)
	q := r.selectQuery(&entities)

	err := q.Scan(ctx)
	if err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	return entities, nil
}

func (r *PgRepo[E]) FindByFilter(ctx context.Context, conditions map[string]any) ([]E, error) {
	preds, err := r.builder.Build(conditions)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	entities := make([]E, 0)
	q := condition.Apply(r.selectQuery(&entities), preds)

	err = q.Scan(ctx)
	if err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	return entities, nil
}

func (r *PgRepo[E]) DeleteByFilter(ctx context.Context, conditions map[string]any) (*E, error) {
	deleted, err := r.DeleteAllByFilter(ctx, conditions)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	if len(deleted) == 0 {
		return nil, nil //nolint:nilnil // nothing matched
	}

	return &deleted[0], nil
}

func (r *PgRepo[E]) DeleteAllByFilter(ctx context.Context, conditions map[string]any) ([]E, error) {
	preds, err := r.builder.Build(conditions)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	// an unscoped delete would wipe the table
	if len(preds) == 0 {
		return nil, nil
	}

	var deleted []E
	err = r.idb.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		rows := make([]E, 0)
		q := tx.NewDelete().Model((*E)(nil)).ModelTableExpr(modelTableExpr, r.tableArgs()...)
		q = condition.Apply(q, preds).Returning("*")

		_, err := q.Exec(ctx, &rows)
		if err != nil {
			return r.writeError(err, q, "deleting")
		}

		if len(rows) == 0 {
			return errNothingDeleted
		}

		deleted = rows
		return nil
	})
	if errors.Is(err, errNothingDeleted) {
		return nil, nil
	}
	if err != nil {
		return nil, errx.Wrap(err)
	}

	return deleted, nil
}

func (r *PgRepo[E]) PatchByFilter(ctx context.Context, conditions, values map[string]any) (*E, error) {
	preds, err := r.builder.Build(conditions)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	// refuse to update every row of the table
	if len(preds) == 0 {
		return nil, nil //nolint:nilnil // empty filter
	}

	sets, err := r.builder.Columns(values)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	if len(sets) == 0 {
		return r.first(ctx, preds)
	}

	rows := make([]E, 0)
	q := r.idb.NewUpdate().Model((*E)(nil)).ModelTableExpr(modelTableExpr, r.tableArgs()...)
	for _, s := range sets {
		q = q.Set("? = ?", bun.Ident(s.Column), s.Value)
	}
	q = condition.Apply(q, preds).Returning("*")

	_, err = q.Exec(ctx, &rows)
	if err != nil {
		return nil, r.writeError(err, q, "patching")
	}

	if len(rows) == 0 {
		return nil, nil //nolint:nilnil // nothing matched
	}

	return &rows[0], nil
}

func (r *PgRepo[E]) first(ctx context.Context, preds []condition.Predicate) (*E, error) {
	entities := make([]E, 0, 1)
	q := condition.Apply(r.selectQuery(&entities), preds).Limit(1)

	err := q.Scan(ctx)
	if err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	if len(entities) == 0 {
		return nil, nil //nolint:nilnil // nothing matched
	}

	return &entities[0], nil
}

func (r *PgRepo[E]) selectQuery(dest *[]E) *bun.SelectQuery {
	q := r.idb.NewSelect().Model(dest).ModelTableExpr(modelTableExpr, r.tableArgs()...)
	for _, rel := range r.opts.relations {
		q = q.Relation(rel)
	}
	return q
}

func (r *PgRepo[E]) tableArgs() []any {
	table := r.builder.Table()
	return []any{bun.Ident(r.opts.schemaName), bun.Ident(table.Name), bun.Ident(table.Alias)}
}

// writeError converts integrity violations into conflict errors and wraps everything else.
func (r *PgRepo[E]) writeError(err error, q fmt.Stringer, op string) error {
	kind := pg.Violation(err)
	if kind == pg.ConstraintNone {
		return errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	code, ok := r.opts.conflictCodes[pg.ConstraintName(err)]
	if !ok {
		code = CodeConstraintViolation
	}

	details := pg.GetPgErrorDetails(err, q)
	details["constraint_kind"] = string(kind)

	return errx.New(
		fmt.Sprintf("conflict while %s %s", op, r.builder.Entity()),
		errx.WithCode(code),
		errx.WithType(errx.T_Conflict),
		errx.WithDetails(details),
	)
}
