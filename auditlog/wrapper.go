package auditlog

import (
	"context"
	"errors"
	"time"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/queuebook/cqrs/command"
	"github.com/rise-and-shine/queuebook/observability/logger"
)

// Enqueuer accepts finished records. *Dispatcher implements it.
type Enqueuer interface {
	Enqueue(ctx context.Context, rec LogRecord) error
}

// Descriptor names an audited action and the parameters worth keeping.
type Descriptor struct {
	Action     string
	Collection string
	// Allowed lists the parameter names to record. Nil records every parameter.
	Allowed []string
}

var errPanicked = errors.New("panic during execution")

type CommandWrapper[I command.Input, R command.Result] struct {
	enqueuer Enqueuer
	logger   logger.Logger
	desc     Descriptor
	capture  func(I) Params
	now      func() time.Time
	next     command.Command[I, R]
}

// NewCommandWrapper records every execution of the wrapped command. The
// command always runs and its result and error are returned unchanged, even
// when the record cannot be enqueued.
func NewCommandWrapper[I command.Input, R command.Result](
	enqueuer Enqueuer,
	log logger.Logger,
	desc Descriptor,
	capture func(I) Params,
) command.WrapFunc[I, R] {
	return func(next command.Command[I, R]) command.Command[I, R] {
		return &CommandWrapper[I, R]{
			enqueuer: enqueuer,
			logger:   log.Named("auditlog.wrapper").With("action", desc.Action, "collection", desc.Collection),
			desc:     desc,
			capture:  capture,
			now:      time.Now,
			next:     next,
		}
	}
}

func (w *CommandWrapper[I, R]) Execute(ctx context.Context, input I) (result R, err error) {
	returned := false

	defer func() {
		callErr := err
		if !returned {
			callErr = errPanicked
		}
		w.record(ctx, input, callErr)
	}()

	result, err = w.next.Execute(ctx, input)
	returned = true

	return result, err
}

func (w *CommandWrapper[I, R]) record(ctx context.Context, input I, callErr error) {
	var params map[string]any
	if w.capture != nil {
		params = w.capture(input).Snapshot(w.desc.Allowed)
	}

	rec := NewLogRecord(w.desc.Action, w.desc.Collection, params, callErr, w.now())

	if err := w.enqueuer.Enqueue(ctx, rec); err != nil {
		w.logger.WithContext(ctx).Errorx(errx.Wrap(err, errx.WithDetails(errx.D{"status": string(rec.Status)})))
	}
}
