package wrapper

import (
	"context"
	"errors"
	"time"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/queuebook/cqrs/command"
)

const CodeCommandTimeout = "COMMAND_TIMEOUT"

// TimeoutCommandWrapper gives every execution its own deadline and reports
// a failure caused by that deadline as COMMAND_TIMEOUT.
type TimeoutCommandWrapper[I command.Input, R command.Result] struct {
	cmdName string
	timeout time.Duration
	next    command.Command[I, R]
}

// NewTimeoutCommandWrapper bounds every execution by timeout. A zero timeout disables the bound.
func NewTimeoutCommandWrapper[I command.Input, R command.Result](
	cmdName string,
	timeout time.Duration,
) command.WrapFunc[I, R] {
	return func(next command.Command[I, R]) command.Command[I, R] {
		if timeout <= 0 {
			return next
		}
		return &TimeoutCommandWrapper[I, R]{cmdName: cmdName, timeout: timeout, next: next}
	}
}

func (cmd *TimeoutCommandWrapper[I, R]) Execute(ctx context.Context, input I) (R, error) {
	boundCtx, cancel := context.WithTimeout(ctx, cmd.timeout)
	defer cancel()

	result, err := cmd.next.Execute(boundCtx, input)
	if err == nil {
		return result, nil
	}

	// only our own deadline is reported; a caller deadline passes through
	if errors.Is(boundCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		return result, errx.Wrap(err,
			errx.WithCode(CodeCommandTimeout),
			errx.WithType(errx.T_Internal),
			errx.WithDetails(errx.D{
				"command_name": cmd.cmdName,
				"timeout":      cmd.timeout.String(),
			}),
		)
	}

	return result, err
}
