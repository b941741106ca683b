package errkind

import (
	"context"
	"time"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/queuebook/auditlog"
	"github.com/rise-and-shine/queuebook/observability/logger"
)

// ErrorEnqueuer accepts error records. *auditlog.Dispatcher implements it.
type ErrorEnqueuer interface {
	EnqueueError(ctx context.Context, rec auditlog.ErrorLogRecord) error
}

// Reporter classifies failures and records the unknown ones in the errors collection.
type Reporter struct {
	enqueuer ErrorEnqueuer
	logger   logger.Logger
	now      func() time.Time
}

func NewReporter(enqueuer ErrorEnqueuer, log logger.Logger) *Reporter {
	return &Reporter{
		enqueuer: enqueuer,
		logger:   log.Named("errkind.reporter"),
		now:      time.Now,
	}
}

// Report returns the kind of err. Unknown failures are submitted as an
// ErrorLogRecord unless they carry a caller-facing type (authentication,
// forbidden or throttling); a failed submission is only logged.
func (r *Reporter) Report(ctx context.Context, err error) Kind {
	kind := Classify(err)
	if kind != Unknown || err == nil || isCallerOutcome(err) {
		return kind
	}

	rec := auditlog.ErrorLogRecord{
		Description: err.Error(),
		Timestamp:   r.now().UTC(),
	}

	if enqErr := r.enqueuer.EnqueueError(ctx, rec); enqErr != nil {
		r.logger.WithContext(ctx).Errorx(errx.Wrap(enqErr))
	}

	return kind
}

func isCallerOutcome(err error) bool {
	switch errx.GetType(err) {
	case errx.T_Authentication, errx.T_Forbidden, errx.T_Throttling:
		return true
	default:
		return false
	}
}
