package queueing

import (
	"context"

	"github.com/code19m/errx"
	"github.com/uptrace/bun"

	"github.com/rise-and-shine/queuebook/internal/domain"
)

// CreateTables creates the booking tables that do not exist yet, parents first.
func CreateTables(ctx context.Context, db bun.IDB) error {
	models := []any{
		(*domain.User)(nil),
		(*domain.Queue)(nil),
		(*domain.Tag)(nil),
		(*domain.QueueEntry)(nil),
		(*domain.QueueTag)(nil),
	}

	for _, m := range models {
		if _, err := db.NewCreateTable().Model(m).IfNotExists().WithForeignKeys().Exec(ctx); err != nil {
			return errx.Wrap(err, errx.WithDetails(errx.D{"model": m}))
		}
	}

	return nil
}
