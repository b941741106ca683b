// Package auditworker consumes audit records from the task queue and stores them
// in the document store.
package auditworker

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/code19m/errx"

	"github.com/rise-and-shine/queuebook/docstore"
	"github.com/rise-and-shine/queuebook/observability/logger"
	"github.com/rise-and-shine/queuebook/observability/metrics"
	"github.com/rise-and-shine/queuebook/taskqueue"
)

type Worker struct {
	cfg         Config
	router      *message.Router
	store       docstore.Inserter
	collections *docstore.Collections
	log         logger.Logger
	metrics     *metrics.Audit
}

func New(
	cfg Config,
	transport *taskqueue.Transport,
	store docstore.Inserter,
	collections *docstore.Collections,
	log logger.Logger,
	m *metrics.Audit,
) (*Worker, error) {
	log = log.Named("auditworker")
	adapter := taskqueue.NewLoggerAdapter(log)

	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: cfg.CloseTimeout}, adapter)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	w := &Worker{
		cfg:         cfg,
		router:      router,
		store:       store,
		collections: collections,
		log:         log,
		metrics:     m,
	}

	terminal, err := w.terminalMiddlewares(transport.Publisher)
	if err != nil {
		return nil, err
	}

	router.AddMiddleware(terminal...)
	router.AddMiddleware(middleware.Retry{
		MaxRetries:      cfg.MaxRetries,
		InitialInterval: cfg.InitialInterval,
		MaxInterval:     cfg.MaxInterval,
		Multiplier:      cfg.Multiplier,
		Logger:          adapter,
	}.Middleware)
	router.AddMiddleware(middleware.Recoverer)

	for _, topic := range []string{taskqueue.TopicLogRecords, taskqueue.TopicErrorRecords} {
		router.AddConsumerHandler("store_"+topic, topic, transport.Subscriber, w.handler(topic))
	}

	return w, nil
}

// Run blocks until ctx is canceled or Close is called.
func (w *Worker) Run(ctx context.Context) error {
	return errx.Wrap(w.router.Run(ctx))
}

// Running is closed once every handler is subscribed.
func (w *Worker) Running() chan struct{} {
	return w.router.Running()
}

func (w *Worker) Close() error {
	return errx.Wrap(w.router.Close())
}

func (w *Worker) handler(topic string) message.NoPublishHandlerFunc {
	return func(msg *message.Message) error {
		env, err := taskqueue.Decode(topic, msg)
		if err != nil {
			return err
		}

		collection := w.collections.Resolve(env.Collection)
		if collection != env.Collection {
			w.log.With("requested", env.Collection, "message_uuid", msg.UUID).
				Warn("unknown collection, storing in fallback")
		}

		ctx, cancel := w.insertContext(msg.Context())
		defer cancel()

		if err = w.store.Insert(ctx, collection, env.Document); err != nil {
			return errx.Wrap(err, errx.WithDetails(errx.D{"message_uuid": msg.UUID}))
		}

		w.metrics.Inc(collection, metrics.OutcomePersisted)
		return nil
	}
}

func (w *Worker) insertContext(parent context.Context) (context.Context, context.CancelFunc) {
	if w.cfg.InsertTimeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, w.cfg.InsertTimeout)
}

// terminalMiddlewares decide the fate of a message after retries are exhausted.
func (w *Worker) terminalMiddlewares(pub message.Publisher) ([]message.HandlerMiddleware, error) {
	if w.cfg.DeadLetterTopic == "" {
		return []message.HandlerMiddleware{w.drop}, nil
	}

	poison, err := middleware.PoisonQueue(pub, w.cfg.DeadLetterTopic)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	return []message.HandlerMiddleware{poison, w.countDeadLettered}, nil
}

// drop acknowledges a message that failed every attempt.
func (w *Worker) drop(h message.HandlerFunc) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		msgs, err := h(msg)
		if err == nil {
			return msgs, nil
		}

		w.log.With("message_uuid", msg.UUID).Errorx(errx.Wrap(err, errx.WithDetails(errx.D{
			"collection": msg.Metadata.Get(taskqueue.MetadataCollection),
			"outcome":    "dropped",
		})))
		w.metrics.Inc(w.collections.Resolve(msg.Metadata.Get(taskqueue.MetadataCollection)), metrics.OutcomeDropped)

		return nil, nil
	}
}

func (w *Worker) countDeadLettered(h message.HandlerFunc) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		msgs, err := h(msg)
		if err == nil {
			return msgs, nil
		}

		w.log.With("message_uuid", msg.UUID, "topic", w.cfg.DeadLetterTopic).Warnx(err)
		w.metrics.Inc(w.collections.Resolve(msg.Metadata.Get(taskqueue.MetadataCollection)), metrics.OutcomeDeadLettered)

		return msgs, err
	}
}
