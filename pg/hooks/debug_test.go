package hooks_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/uptrace/bun"

	"github.com/rise-and-shine/queuebook/observability/logger"
	"github.com/rise-and-shine/queuebook/pg/hooks"
)

func TestAfterQueryDoesNotPanic(t *testing.T) {
	hook := hooks.NewDebugHook(hooks.WithLogger(logger.NewNop()), hooks.WithVerbose(false))

	events := []*bun.QueryEvent{
		{Query: `SELECT 1`, StartTime: time.Now()},
		{Query: `SELECT "q"."id" FROM "queues"`, StartTime: time.Now(), Err: sql.ErrNoRows},
		{Query: `INSERT INTO "queues"`, StartTime: time.Now(), Err: errors.New("boom")},
		{Query: `SELECT pg_sleep(1)`, StartTime: time.Now().Add(-time.Second)},
	}

	for _, ev := range events {
		assert.NotPanics(t, func() {
			ctx := hook.BeforeQuery(context.Background(), ev)
			hook.AfterQuery(ctx, ev)
		})
	}
}
