// Package api exposes the booking services over HTTP.
package api

import (
	"time"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/uptrace/bun"

	"github.com/rise-and-shine/queuebook/auditlog"
	"github.com/rise-and-shine/queuebook/depfactory"
	"github.com/rise-and-shine/queuebook/http/server/forward"
	"github.com/rise-and-shine/queuebook/internal/domain"
	"github.com/rise-and-shine/queuebook/internal/queueing"
	"github.com/rise-and-shine/queuebook/observability/logger"
	"github.com/rise-and-shine/queuebook/registry"
)

type API struct {
	db       bun.IDB
	enqueuer auditlog.Enqueuer
	log      logger.Logger

	commandTimeout time.Duration

	queues    depfactory.Factory[*queueing.QueueService]
	entries   depfactory.Factory[*queueing.QueueEntryService]
	tags      depfactory.Factory[*queueing.TagService]
	queueTags depfactory.Factory[*queueing.QueueTagService]
	users     depfactory.Factory[*queueing.UserService]
}

// Option customizes an API.
type Option func(*API)

// WithCommandTimeout bounds every command, store round trips included. Zero disables the bound.
func WithCommandTimeout(d time.Duration) Option {
	return func(a *API) {
		a.commandTimeout = d
	}
}

// New resolves every service factory from reg. Services are built per call on db.
func New(
	db bun.IDB,
	reg *registry.Registry,
	enqueuer auditlog.Enqueuer,
	log logger.Logger,
	opts ...Option,
) (*API, error) {
	a := &API{
		db:       db,
		enqueuer: enqueuer,
		log:      log.Named("api"),
	}
	for _, opt := range opts {
		opt(a)
	}

	var err error
	if a.queues, err = depfactory.ForEntityType(reg, queueing.QueueKey); err != nil {
		return nil, errx.Wrap(err)
	}
	if a.entries, err = depfactory.ForEntityType(reg, queueing.QueueEntryKey); err != nil {
		return nil, errx.Wrap(err)
	}
	if a.tags, err = depfactory.ForEntityType(reg, queueing.TagKey); err != nil {
		return nil, errx.Wrap(err)
	}
	if a.queueTags, err = depfactory.ForEntityType(reg, queueing.QueueTagKey); err != nil {
		return nil, errx.Wrap(err)
	}
	if a.users, err = depfactory.ForEntityType(reg, queueing.UserKey); err != nil {
		return nil, errx.Wrap(err)
	}

	return a, nil
}

func (a *API) Register(r fiber.Router) {
	v1 := r.Group("/api/v1")

	queues := v1.Group("/queues")
	queues.Get("", forward.ToQuery(a.listQueues()))
	queues.Post("", forward.ToCommand(a.createQueue(), fiber.StatusCreated, withUser(a, setCreateQueueUser)))
	queues.Get("/:queue_id", forward.ToQuery(a.getQueue()))
	queues.Put("/:queue_id", forward.ToCommand(a.patchQueue(), fiber.StatusOK, withUser(a, setPatchQueueUser)))
	queues.Delete("/:queue_id", forward.ToCommand(a.deleteQueue(), fiber.StatusOK, withUser(a, setQueueRefUser)))

	entries := v1.Group("/queue")
	entries.Post("/:queue_id", forward.ToCommand(a.createQueueEntry(), fiber.StatusCreated, withUser(a, setCreateEntryUser)))
	entries.Delete("/:queue_id", forward.ToCommand(a.deleteQueueEntry(), fiber.StatusNoContent, withUser(a, setQueueRefUser)))
	entries.Delete(
		"/:queue_id/all",
		forward.ToCommand(a.clearQueue(), fiber.StatusNoContent, withUser(a, setQueueRefUser), superuserOnly[*domain.QueueRef](a)),
	)

	tags := v1.Group("/tags")
	tags.Get("", forward.ToQuery(a.listTags()))
	tags.Post("", forward.ToCommand(a.createTag(), fiber.StatusCreated, superuserOnly[*domain.CreateTag](a)))
	tags.Put("/:tag_id", forward.ToCommand(a.patchTag(), fiber.StatusOK, superuserOnly[*domain.PatchTag](a)))
	tags.Delete("/:tag_id", forward.ToCommand(a.deleteTag(), fiber.StatusNoContent, superuserOnly[*domain.TagRef](a)))

	queueTags := v1.Group("/queue_tag")
	queueTags.Get("", forward.ToQuery(a.listQueueTags()))
	queueTags.Post("", forward.ToCommand(a.createQueueTag(), fiber.StatusCreated, superuserOnly[*domain.CreateQueueTag](a)))
	queueTags.Delete(
		"/:queue_tag_id",
		forward.ToCommand(a.deleteQueueTag(), fiber.StatusNoContent, superuserOnly[*domain.QueueTagRef](a)),
	)
}
