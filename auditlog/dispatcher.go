package auditlog

import (
	"context"
	"sync"
	"time"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/queuebook/observability/logger"
	"github.com/rise-and-shine/queuebook/observability/metrics"
)

const (
	CodeQueueFull        = "AUDIT_QUEUE_FULL"
	CodeDispatcherClosed = "DISPATCHER_CLOSED"

	// ErrorsCollection receives ErrorLogRecord documents.
	ErrorsCollection = "errors"
)

// Publisher hands records to the task-queue transport.
type Publisher interface {
	PublishLogRecord(ctx context.Context, rec LogRecord) error
	PublishErrorRecord(ctx context.Context, rec ErrorLogRecord) error
}

// DispatcherConfig sizes the in-process buffer in front of the transport.
type DispatcherConfig struct {
	// Capacity is the number of records buffered before Enqueue starts failing.
	Capacity int `yaml:"capacity" default:"1024" validate:"gt=0"`
	// PublishTimeout bounds a single publish to the transport.
	PublishTimeout time.Duration `yaml:"publish_timeout" default:"5s" validate:"gt=0"`
}

type item struct {
	ctx    context.Context
	log    *LogRecord
	errRec *ErrorLogRecord
}

func (it item) collection() string {
	if it.log != nil {
		return it.log.Collection
	}
	return ErrorsCollection
}

// Dispatcher buffers records in a bounded channel drained by one goroutine
// that publishes them. Submitting never blocks the caller.
type Dispatcher struct {
	cfg       DispatcherConfig
	publisher Publisher
	logger    logger.Logger
	metrics   *metrics.Audit

	mu       sync.RWMutex
	closed   bool
	items    chan item
	finished chan struct{}
}

// NewDispatcher starts the consumer goroutine. Call Close to stop it.
func NewDispatcher(cfg DispatcherConfig, publisher Publisher, log logger.Logger, m *metrics.Audit) *Dispatcher {
	d := &Dispatcher{
		cfg:       cfg,
		publisher: publisher,
		logger:    log.Named("auditlog.dispatcher"),
		metrics:   m,
		items:     make(chan item, cfg.Capacity),
		finished:  make(chan struct{}),
	}

	go d.consume()

	return d
}

// Enqueue submits rec for publishing. Cancelling ctx afterwards does not cancel the record.
func (d *Dispatcher) Enqueue(ctx context.Context, rec LogRecord) error {
	return d.submit(item{ctx: context.WithoutCancel(ctx), log: &rec})
}

// EnqueueError submits an error record for publishing.
func (d *Dispatcher) EnqueueError(ctx context.Context, rec ErrorLogRecord) error {
	return d.submit(item{ctx: context.WithoutCancel(ctx), errRec: &rec})
}

func (d *Dispatcher) submit(it item) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.metrics.Inc(it.collection(), metrics.OutcomeEnqueueFailed)
		return errx.New("audit dispatcher is closed", errx.WithCode(CodeDispatcherClosed))
	}

	select {
	case d.items <- it:
		d.metrics.Inc(it.collection(), metrics.OutcomeEnqueued)
		return nil
	default:
		d.metrics.Inc(it.collection(), metrics.OutcomeEnqueueFailed)
		return errx.New(
			"audit queue is full",
			errx.WithCode(CodeQueueFull),
			errx.WithType(errx.T_Throttling),
			errx.WithDetails(errx.D{"capacity": d.cfg.Capacity}),
		)
	}
}

// Close stops accepting records and waits until buffered ones are published or ctx is done.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.items)
	}
	d.mu.Unlock()

	select {
	case <-d.finished:
		return nil
	case <-ctx.Done():
		return errx.Wrap(ctx.Err(), errx.WithDetails(errx.D{"pending": len(d.items)}))
	}
}

func (d *Dispatcher) consume() {
	defer close(d.finished)

	for it := range d.items {
		d.publish(it)
	}
}

func (d *Dispatcher) publish(it item) {
	ctx, cancel := context.WithTimeout(it.ctx, d.cfg.PublishTimeout)
	defer cancel()

	var err error
	if it.log != nil {
		err = d.publisher.PublishLogRecord(ctx, *it.log)
	} else {
		err = d.publisher.PublishErrorRecord(ctx, *it.errRec)
	}

	if err != nil {
		d.metrics.Inc(it.collection(), metrics.OutcomePublishFailed)
		d.logger.WithContext(ctx).With("collection", it.collection()).Errorx(errx.Wrap(err))
		return
	}

	d.metrics.Inc(it.collection(), metrics.OutcomePublished)
}
