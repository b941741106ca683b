package api

import (
	"context"

	"github.com/rise-and-shine/queuebook/cqrs/query"
	"github.com/rise-and-shine/queuebook/cqrs/query/wrapper"
	"github.com/rise-and-shine/queuebook/internal/domain"
)

type noInput struct{}

func newQuery[I query.Input, R query.Result](name string, fn query.Func[I, R]) query.Query[I, R] {
	return query.Chain[I, R](fn, wrapper.NewTracingQueryWrapper[I, R](name))
}

func (a *API) listQueues() query.Query[*noInput, []domain.Queue] {
	return newQuery("list_queues", func(ctx context.Context, _ *noInput) ([]domain.Queue, error) {
		return a.queues(a.db).GetAll(ctx)
	})
}

func (a *API) getQueue() query.Query[*domain.QueueRef, *domain.Queue] {
	return newQuery("get_queue", func(ctx context.Context, in *domain.QueueRef) (*domain.Queue, error) {
		return a.queues(a.db).GetByID(ctx, in.QueueID)
	})
}

func (a *API) listTags() query.Query[*noInput, []domain.Tag] {
	return newQuery("list_tags", func(ctx context.Context, _ *noInput) ([]domain.Tag, error) {
		return a.tags(a.db).GetAll(ctx)
	})
}

func (a *API) listQueueTags() query.Query[*noInput, []domain.QueueTag] {
	return newQuery("list_queue_tags", func(ctx context.Context, _ *noInput) ([]domain.QueueTag, error) {
		return a.queueTags(a.db).GetAll(ctx)
	})
}
