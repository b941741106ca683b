// Package pg connects to PostgreSQL through pgx and bun and interprets PostgreSQL errors.
package pg

import (
	"github.com/code19m/errx"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/extra/bunotel"

	"github.com/rise-and-shine/queuebook/pg/hooks"
)

// NewBunDB creates a bun database backed by a pgx connection pool.
func NewBunDB(cfg Config) (*bun.DB, error) {
	pool, err := NewPool(cfg)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	bunDB := bun.NewDB(stdlib.OpenDBFromPool(pool), pgdialect.New())

	// query logging is only active in debug mode, tracing always is
	bunDB.AddQueryHook(hooks.NewDebugHook(hooks.WithEnabled(cfg.Debug), hooks.WithVerbose(true)))
	bunDB.AddQueryHook(bunotel.NewQueryHook(bunotel.WithDBName(cfg.Database)))

	return bunDB, nil
}
