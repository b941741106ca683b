package repogen

import (
	"errors"
	"testing"

	"github.com/code19m/errx"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"github.com/rise-and-shine/queuebook/condition"
)

type widget struct {
	bun.BaseModel `bun:"table:widgets,alias:w"`

	ID   int64  `bun:"id,pk,autoincrement"`
	Name string `bun:"name,notnull,unique"`
}

func newWidgetRepo(opts ...Option) *PgRepo[widget] {
	return NewPgRepo(nil, condition.NewBuilder[widget](pgdialect.New()), opts...)
}

func TestNewPgRepoDefaults(t *testing.T) {
	r := newWidgetRepo()
	assert.Equal(t, "public", r.opts.schemaName)
	assert.Empty(t, r.opts.relations)

	r = newWidgetRepo(WithSchemaName("booking"), WithRelations("Owner"), WithRelations("Parts"))
	assert.Equal(t, "booking", r.opts.schemaName)
	assert.Equal(t, []string{"Owner", "Parts"}, r.opts.relations)
}

func TestTableArgs(t *testing.T) {
	r := newWidgetRepo(WithSchemaName("booking"))
	assert.Equal(t, []any{bun.Ident("booking"), bun.Ident("widgets"), bun.Ident("w")}, r.tableArgs())
}

func TestWriteError(t *testing.T) {
	r := newWidgetRepo(WithConflictCodes(map[string]string{
		"widgets_name_key": "WIDGET_ALREADY_EXISTS",
	}))

	tests := []struct {
		name     string
		err      error
		wantCode string
		wantType errx.Type
	}{
		{
			name:     "mapped unique violation",
			err:      &pgconn.PgError{Code: "23505", ConstraintName: "widgets_name_key"},
			wantCode: "WIDGET_ALREADY_EXISTS",
			wantType: errx.T_Conflict,
		},
		{
			name:     "unmapped foreign key violation",
			err:      &pgconn.PgError{Code: "23503", ConstraintName: "widgets_owner_id_fkey"},
			wantCode: CodeConstraintViolation,
			wantType: errx.T_Conflict,
		},
		{
			name:     "check violation",
			err:      &pgconn.PgError{Code: "23514", ConstraintName: "widgets_size_check"},
			wantCode: CodeConstraintViolation,
			wantType: errx.T_Conflict,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := r.writeError(tc.err, nil, "creating")
			require.Error(t, err)
			assert.True(t, errx.IsCodeIn(err, tc.wantCode))
			assert.Equal(t, tc.wantType, errx.GetType(err))
			assert.Contains(t, err.Error(), "conflict while creating widget")
		})
	}
}

func TestWriteErrorPassesThroughOtherFailures(t *testing.T) {
	r := newWidgetRepo()

	err := r.writeError(errors.New("connection reset"), nil, "patching")
	require.Error(t, err)
	assert.NotEqual(t, errx.T_Conflict, errx.GetType(err))
	assert.Contains(t, err.Error(), "connection reset")
}

// The repository below has no store handle, so any query would panic.
func TestGuardsReturnBeforeStore(t *testing.T) {
	r := newWidgetRepo()

	t.Run("patch with empty conditions", func(t *testing.T) {
		got, err := r.PatchByFilter(t.Context(), map[string]any{}, map[string]any{"name": "renamed"})
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("delete with empty conditions", func(t *testing.T) {
		got, err := r.DeleteByFilter(t.Context(), map[string]any{})
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("delete all with empty conditions", func(t *testing.T) {
		got, err := r.DeleteAllByFilter(t.Context(), nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestUnknownFieldsRejectedBeforeStore(t *testing.T) {
	r := newWidgetRepo()

	tests := []struct {
		name string
		call func() (any, error)
	}{
		{
			name: "delete condition",
			call: func() (any, error) { return r.DeleteByFilter(t.Context(), map[string]any{"nope": 1}) },
		},
		{
			name: "find condition",
			call: func() (any, error) { return r.FindByFilter(t.Context(), map[string]any{"nope": 1}) },
		},
		{
			name: "patch condition",
			call: func() (any, error) {
				return r.PatchByFilter(t.Context(), map[string]any{"nope": 1}, map[string]any{"name": "x"})
			},
		},
		{
			name: "patch value",
			call: func() (any, error) {
				return r.PatchByFilter(t.Context(), map[string]any{"id": 1}, map[string]any{"nope": "x"})
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.call()
			require.Error(t, err)
			assert.True(t, errx.IsCodeIn(err, condition.CodeUnknownField))
			assert.Contains(t, err.Error(), `entity widget has no field "nope"`)
			assert.Nil(t, got)
		})
	}
}
