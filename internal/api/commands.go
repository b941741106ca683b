package api

import (
	"context"

	"github.com/rise-and-shine/queuebook/auditlog"
	"github.com/rise-and-shine/queuebook/cqrs/command"
	"github.com/rise-and-shine/queuebook/cqrs/command/wrapper"
	"github.com/rise-and-shine/queuebook/docstore"
	"github.com/rise-and-shine/queuebook/internal/domain"
)

// Audit actions follow the HTTP verbs of the routes they record.
const (
	actionCreate    = "POST"
	actionUpdate    = "PUT"
	actionDelete    = "DELETE"
	actionDeleteAll = "DELETE (all)"
)

func setCreateQueueUser(in *domain.CreateQueue, u *domain.User)      { in.User = u }
func setPatchQueueUser(in *domain.PatchQueue, u *domain.User)        { in.User = u }
func setQueueRefUser(in *domain.QueueRef, u *domain.User)            { in.User = u }
func setCreateEntryUser(in *domain.CreateQueueEntry, u *domain.User) { in.User = u }

// newCommand wraps fn with recovery, tracing, metadata, logging and the command timeout.
func newCommand[I command.Input, R command.Result](
	a *API,
	name string,
	fn command.Func[I, R],
	extra ...command.WrapFunc[I, R],
) command.Command[I, R] {
	wraps := []command.WrapFunc[I, R]{
		wrapper.NewRecoveryCommandWrapper[I, R](a.log, name),
		wrapper.NewTracingCommandWrapper[I, R](name),
		wrapper.NewMetaInjectCommandWrapper[I, R](),
		wrapper.NewLoggerCommandWrapper[I, R](a.log, name),
		wrapper.NewTimeoutCommandWrapper[I, R](name, a.commandTimeout),
	}
	return command.Chain[I, R](fn, append(wraps, extra...)...)
}

// audited is newCommand with an audit record of every execution.
func audited[I command.Input, R command.Result](
	a *API,
	name string,
	desc auditlog.Descriptor,
	capture func(I) auditlog.Params,
	fn command.Func[I, R],
) command.Command[I, R] {
	return newCommand(a, name, fn, auditlog.NewCommandWrapper[I, R](a.enqueuer, a.log, desc, capture))
}

func (a *API) createQueue() command.Command[*domain.CreateQueue, *domain.Queue] {
	return audited(a, "create_queue",
		auditlog.Descriptor{
			Action:     actionCreate,
			Collection: docstore.CollectionQueues,
			Allowed:    []string{"queue_to_create", "user"},
		},
		func(in *domain.CreateQueue) auditlog.Params {
			return auditlog.Params{{Name: "queue_to_create", Value: in}, {Name: "user", Value: in.User}}
		},
		func(ctx context.Context, in *domain.CreateQueue) (*domain.Queue, error) {
			return a.queues(a.db).Create(ctx, in.Entity())
		},
	)
}

func (a *API) patchQueue() command.Command[*domain.PatchQueue, *domain.Queue] {
	return audited(a, "patch_queue",
		auditlog.Descriptor{
			Action:     actionUpdate,
			Collection: docstore.CollectionQueues,
			Allowed:    []string{"queue_to_patch", "user", "queue_id"},
		},
		func(in *domain.PatchQueue) auditlog.Params {
			return auditlog.Params{
				{Name: "queue_to_patch", Value: in},
				{Name: "user", Value: in.User},
				{Name: "queue_id", Value: in.QueueID},
			}
		},
		func(ctx context.Context, in *domain.PatchQueue) (*domain.Queue, error) {
			return a.queues(a.db).Patch(ctx, map[string]any{"id": in.QueueID}, in.Values())
		},
	)
}

func (a *API) deleteQueue() command.Command[*domain.QueueRef, bool] {
	return audited(a, "delete_queue",
		auditlog.Descriptor{
			Action:     actionDelete,
			Collection: docstore.CollectionQueues,
			Allowed:    []string{"queue_id", "user"},
		},
		captureQueueRef,
		func(ctx context.Context, in *domain.QueueRef) (bool, error) {
			return a.queues(a.db).Delete(ctx, map[string]any{"id": in.QueueID})
		},
	)
}

func (a *API) createQueueEntry() command.Command[*domain.CreateQueueEntry, *domain.QueueEntry] {
	return audited(a, "create_queue_entry",
		auditlog.Descriptor{
			Action:     actionCreate,
			Collection: docstore.CollectionQueueEntries,
			Allowed:    []string{"queue_entry_to_create", "user"},
		},
		func(in *domain.CreateQueueEntry) auditlog.Params {
			return auditlog.Params{{Name: "queue_entry_to_create", Value: in}, {Name: "user", Value: in.User}}
		},
		func(ctx context.Context, in *domain.CreateQueueEntry) (*domain.QueueEntry, error) {
			return a.entries(a.db).Create(ctx, in.Entity())
		},
	)
}

func (a *API) deleteQueueEntry() command.Command[*domain.QueueRef, command.EmptyResult] {
	return audited(a, "delete_queue_entry",
		auditlog.Descriptor{
			Action:     actionDelete,
			Collection: docstore.CollectionQueueEntries,
			Allowed:    []string{"queue_id", "user"},
		},
		captureQueueRef,
		func(ctx context.Context, in *domain.QueueRef) (command.EmptyResult, error) {
			_, err := a.entries(a.db).Delete(ctx, map[string]any{"queue_id": in.QueueID, "user_id": in.User.ID})
			return command.EmptyResult{}, err
		},
	)
}

func (a *API) clearQueue() command.Command[*domain.QueueRef, command.EmptyResult] {
	return audited(a, "clear_queue",
		auditlog.Descriptor{
			Action:     actionDeleteAll,
			Collection: docstore.CollectionQueueEntries,
			Allowed:    []string{"queue_id", "user"},
		},
		captureQueueRef,
		func(ctx context.Context, in *domain.QueueRef) (command.EmptyResult, error) {
			_, err := a.entries(a.db).DeleteAll(ctx, map[string]any{"queue_id": in.QueueID})
			return command.EmptyResult{}, err
		},
	)
}

func captureQueueRef(in *domain.QueueRef) auditlog.Params {
	return auditlog.Params{{Name: "queue_id", Value: in.QueueID}, {Name: "user", Value: in.User}}
}

func (a *API) createTag() command.Command[*domain.CreateTag, *domain.Tag] {
	return newCommand(a, "create_tag", func(ctx context.Context, in *domain.CreateTag) (*domain.Tag, error) {
		return a.tags(a.db).Create(ctx, &domain.Tag{Name: in.Name})
	})
}

func (a *API) patchTag() command.Command[*domain.PatchTag, *domain.Tag] {
	return newCommand(a, "patch_tag", func(ctx context.Context, in *domain.PatchTag) (*domain.Tag, error) {
		return a.tags(a.db).Patch(ctx, map[string]any{"id": in.TagID}, map[string]any{"name": in.Name})
	})
}

func (a *API) deleteTag() command.Command[*domain.TagRef, command.EmptyResult] {
	return newCommand(a, "delete_tag", func(ctx context.Context, in *domain.TagRef) (command.EmptyResult, error) {
		_, err := a.tags(a.db).Delete(ctx, map[string]any{"id": in.TagID})
		return command.EmptyResult{}, err
	})
}

func (a *API) createQueueTag() command.Command[*domain.CreateQueueTag, *domain.QueueTag] {
	return newCommand(a, "create_queue_tag",
		func(ctx context.Context, in *domain.CreateQueueTag) (*domain.QueueTag, error) {
			return a.queueTags(a.db).Create(ctx, in.Entity())
		},
	)
}

func (a *API) deleteQueueTag() command.Command[*domain.QueueTagRef, command.EmptyResult] {
	return newCommand(a, "delete_queue_tag",
		func(ctx context.Context, in *domain.QueueTagRef) (command.EmptyResult, error) {
			_, err := a.queueTags(a.db).Delete(ctx, map[string]any{"id": in.QueueTagID})
			return command.EmptyResult{}, err
		},
	)
}
