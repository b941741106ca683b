package repogen_test

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/code19m/errx"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"github.com/rise-and-shine/queuebook/condition"
	"github.com/rise-and-shine/queuebook/repogen"
)

const dsnEnv = "QUEUEBOOK_TEST_PG_DSN"

type Ticket struct {
	bun.BaseModel `bun:"table:repogen_test_tickets,alias:t"`

	ID     int64  `bun:"id,pk,autoincrement"`
	Code   string `bun:"code,notnull,unique"`
	Slot   int    `bun:"slot,notnull"`
}

func setupDB(t *testing.T) *bun.DB {
	t.Helper()

	dsn := os.Getenv(dsnEnv)
	if dsn == "" {
		t.Skipf("%s is not set", dsnEnv)
	}

	sqldb, err := sql.Open("pgx", dsn)
	require.NoError(t, err)

	db := bun.NewDB(sqldb, pgdialect.New())
	t.Cleanup(func() { _ = db.Close() })

	ctx := t.Context()
	_, err = db.NewDropTable().Model((*Ticket)(nil)).IfExists().Exec(ctx)
	require.NoError(t, err)
	_, err = db.NewCreateTable().Model((*Ticket)(nil)).Exec(ctx)
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = db.NewDropTable().Model((*Ticket)(nil)).IfExists().Exec(context.Background())
	})

	return db
}

func newRepo(db bun.IDB) *repogen.PgRepo[Ticket] {
	return repogen.NewPgRepo(
		db,
		condition.NewBuilder[Ticket](db.Dialect()),
		repogen.WithConflictCodes(map[string]string{
			"repogen_test_tickets_code_key": "TICKET_ALREADY_EXISTS",
		}),
	)
}

func countRows(t *testing.T, db *bun.DB) int {
	t.Helper()
	n, err := db.NewSelect().Model((*Ticket)(nil)).Count(t.Context())
	require.NoError(t, err)
	return n
}

func TestCreateAndGetByID(t *testing.T) {
	db := setupDB(t)
	repo := newRepo(db)
	ctx := t.Context()

	created, err := repo.Create(ctx, &Ticket{Code: "A-1", Slot: 3})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *created, *got)

	missing, err := repo.GetByID(ctx, created.ID+1000)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCreateConflict(t *testing.T) {
	db := setupDB(t)
	repo := newRepo(db)
	ctx := t.Context()

	_, err := repo.Create(ctx, &Ticket{Code: "dup", Slot: 1})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &Ticket{Code: "dup", Slot: 2})
	require.Error(t, err)
	assert.True(t, errx.IsCodeIn(err, "TICKET_ALREADY_EXISTS"))
	assert.Equal(t, errx.T_Conflict, errx.GetType(err))
}

func TestGetAllAndFindByFilter(t *testing.T) {
	db := setupDB(t)
	repo := newRepo(db)
	ctx := t.Context()

	for _, tk := range []Ticket{{Code: "a", Slot: 1}, {Code: "b", Slot: 1}, {Code: "c", Slot: 2}} {
		_, err := repo.Create(ctx, &tk)
		require.NoError(t, err)
	}

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	found, err := repo.FindByFilter(ctx, map[string]any{"slot": 1})
	require.NoError(t, err)
	assert.Len(t, found, 2)

	_, err = repo.FindByFilter(ctx, map[string]any{"colour": "red"})
	assert.True(t, errx.IsCodeIn(err, condition.CodeUnknownField))
}

func TestDeleteByFilter(t *testing.T) {
	db := setupDB(t)
	repo := newRepo(db)
	ctx := t.Context()

	created, err := repo.Create(ctx, &Ticket{Code: "x", Slot: 4})
	require.NoError(t, err)

	t.Run("no match is a no-op", func(t *testing.T) {
		deleted, err := repo.DeleteByFilter(ctx, map[string]any{"id": 999})
		require.NoError(t, err)
		assert.Nil(t, deleted)
		assert.Equal(t, 1, countRows(t, db))
	})

	t.Run("empty filter deletes nothing", func(t *testing.T) {
		deleted, err := repo.DeleteByFilter(ctx, map[string]any{})
		require.NoError(t, err)
		assert.Nil(t, deleted)
		assert.Equal(t, 1, countRows(t, db))
	})

	t.Run("match", func(t *testing.T) {
		deleted, err := repo.DeleteByFilter(ctx, map[string]any{"id": created.ID})
		require.NoError(t, err)
		require.NotNil(t, deleted)
		assert.Equal(t, "x", deleted.Code)
		assert.Equal(t, 0, countRows(t, db))
	})
}

func TestDeleteAllByFilter(t *testing.T) {
	db := setupDB(t)
	repo := newRepo(db)
	ctx := t.Context()

	for _, tk := range []Ticket{{Code: "a", Slot: 7}, {Code: "b", Slot: 7}, {Code: "c", Slot: 8}} {
		_, err := repo.Create(ctx, &tk)
		require.NoError(t, err)
	}

	deleted, err := repo.DeleteAllByFilter(ctx, map[string]any{"slot": 7})
	require.NoError(t, err)
	assert.Len(t, deleted, 2)
	assert.Equal(t, 1, countRows(t, db))
}

func TestPatchByFilter(t *testing.T) {
	db := setupDB(t)
	repo := newRepo(db)
	ctx := t.Context()

	created, err := repo.Create(ctx, &Ticket{Code: "p", Slot: 1})
	require.NoError(t, err)

	t.Run("empty conditions never touch the store", func(t *testing.T) {
		patched, err := repo.PatchByFilter(ctx, map[string]any{}, map[string]any{"slot": 9})
		require.NoError(t, err)
		assert.Nil(t, patched)

		got, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, got.Slot)
	})

	t.Run("unknown value field", func(t *testing.T) {
		_, err := repo.PatchByFilter(ctx, map[string]any{"id": created.ID}, map[string]any{"colour": 1})
		assert.True(t, errx.IsCodeIn(err, condition.CodeUnknownField))
	})

	t.Run("no match", func(t *testing.T) {
		patched, err := repo.PatchByFilter(ctx, map[string]any{"id": 999}, map[string]any{"slot": 9})
		require.NoError(t, err)
		assert.Nil(t, patched)
	})

	t.Run("match", func(t *testing.T) {
		patched, err := repo.PatchByFilter(ctx, map[string]any{"id": created.ID}, map[string]any{"slot": 9})
		require.NoError(t, err)
		require.NotNil(t, patched)
		assert.Equal(t, 9, patched.Slot)
		assert.Equal(t, "p", patched.Code)
	})
}

func TestRepositoryInsideTransaction(t *testing.T) {
	db := setupDB(t)
	ctx := t.Context()

	err := db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		repo := newRepo(tx)
		if _, err := repo.Create(ctx, &Ticket{Code: "tx", Slot: 1}); err != nil {
			return err
		}
		_, err := repo.DeleteByFilter(ctx, map[string]any{"code": "tx"})
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 0, countRows(t, db))
}
