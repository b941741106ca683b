package queueing

import (
	"github.com/uptrace/bun"

	"github.com/rise-and-shine/queuebook/condition"
	"github.com/rise-and-shine/queuebook/internal/domain"
	"github.com/rise-and-shine/queuebook/registry"
	"github.com/rise-and-shine/queuebook/repogen"
	"github.com/rise-and-shine/queuebook/service"
)

//nolint:gochecknoglobals // typed registry keys
var (
	QueueKey      = registry.NewKey[domain.Queue, *QueueService]("queue")
	QueueEntryKey = registry.NewKey[domain.QueueEntry, *QueueEntryService]("queue_entry")
	TagKey        = registry.NewKey[domain.Tag, *TagService]("tag")
	QueueTagKey   = registry.NewKey[domain.QueueTag, *QueueTagService]("queue_tag")
	UserKey       = registry.NewKey[domain.User, *UserService]("user")
)

// Constraint names of the booking schema and the codes their violations surface with.
const (
	ConstraintQueuePosition = "uq_queue_position"
	ConstraintQueueUser     = "uq_queue_user"
	ConstraintPositionRange = "check_position_range"
	ConstraintEntryQueueFK  = "queue_entries_queue_id_fkey"
	ConstraintEntryUserFK   = "queue_entries_user_id_fkey"
	ConstraintTagName       = "tags_name_key"
	ConstraintQueueTag      = "uq_queue_tag"
	ConstraintUserEmail     = "users_email_key"

	CodePositionTaken   = "POSITION_TAKEN"
	CodePositionInvalid = "POSITION_OUT_OF_RANGE"
	CodeQueueMissing    = "QUEUE_NOT_FOUND"
	CodeUserMissing     = "USER_NOT_FOUND"
	CodeTagExists       = "TAG_ALREADY_EXISTS"
	CodeQueueTagExists  = "QUEUE_TAG_ALREADY_EXISTS"
	CodeTagMissing      = "TAG_NOT_FOUND"
	CodeEmailTaken      = "EMAIL_ALREADY_REGISTERED"
)

// NewRegistry registers every booking entity.
func NewRegistry() (*registry.Registry, error) {
	b := registry.NewBuilder()

	registry.Register(b, QueueKey, registry.Entry[domain.Queue, *QueueService]{
		NewRepository: pgRepository[domain.Queue](
			repogen.WithRelations("Entries", "Entries.User", "Tags"),
		),
		NewService: func(_ bun.IDB, repo repogen.Repository[domain.Queue]) *QueueService {
			return service.New[domain.Queue](repo, "queue")
		},
	})

	registry.Register(b, QueueEntryKey, registry.Entry[domain.QueueEntry, *QueueEntryService]{
		NewRepository: pgRepository[domain.QueueEntry](
			repogen.WithConflictCodes(map[string]string{
				ConstraintQueuePosition: CodePositionTaken,
				ConstraintQueueUser:     CodeDuplicateEntry,
				ConstraintPositionRange: CodePositionInvalid,
				ConstraintEntryQueueFK:  CodeQueueMissing,
				ConstraintEntryUserFK:   CodeUserMissing,
			}),
		),
		NewService: func(idb bun.IDB, repo repogen.Repository[domain.QueueEntry]) *QueueEntryService {
			queues := repogen.NewPgRepo(idb, condition.NewBuilder[domain.Queue](idb.Dialect()))
			return NewQueueEntryService(repo, service.New[domain.Queue](repogen.Repository[domain.Queue](queues), "queue"))
		},
	})

	registry.Register(b, TagKey, registry.Entry[domain.Tag, *TagService]{
		NewRepository: pgRepository[domain.Tag](
			repogen.WithConflictCodes(map[string]string{ConstraintTagName: CodeTagExists}),
		),
		NewService: func(_ bun.IDB, repo repogen.Repository[domain.Tag]) *TagService {
			return service.New[domain.Tag](repo, "tag")
		},
	})

	registry.Register(b, QueueTagKey, registry.Entry[domain.QueueTag, *QueueTagService]{
		NewRepository: pgRepository[domain.QueueTag](
			repogen.WithConflictCodes(map[string]string{ConstraintQueueTag: CodeQueueTagExists}),
		),
		NewService: func(_ bun.IDB, repo repogen.Repository[domain.QueueTag]) *QueueTagService {
			return service.New[domain.QueueTag](repo, "queue_tag")
		},
	})

	registry.Register(b, UserKey, registry.Entry[domain.User, *UserService]{
		NewRepository: pgRepository[domain.User](
			repogen.WithConflictCodes(map[string]string{ConstraintUserEmail: CodeEmailTaken}),
		),
		NewService: func(_ bun.IDB, repo repogen.Repository[domain.User]) *UserService {
			return service.New[domain.User](repo, "user")
		},
	})

	return b.Build()
}

func pgRepository[E any](opts ...repogen.Option) func(bun.IDB, *condition.Builder[E]) repogen.Repository[E] {
	return func(idb bun.IDB, builder *condition.Builder[E]) repogen.Repository[E] {
		return repogen.NewPgRepo(idb, builder, opts...)
	}
}
