package wrapper

import (
	"context"
	"time"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/queuebook/cqrs/command"
	"github.com/rise-and-shine/queuebook/observability/logger"
)

type LoggerCommandWrapper[I command.Input, R command.Result] struct {
	logger logger.Logger
	next   command.Command[I, R]
}

func NewLoggerCommandWrapper[I command.Input, R command.Result](
	log logger.Logger,
	cmdName string,
) command.WrapFunc[I, R] {
	return func(next command.Command[I, R]) command.Command[I, R] {
		return &LoggerCommandWrapper[I, R]{
			logger: log.Named("cqrs.command.logger").With("command_name", cmdName),
			next:   next,
		}
	}
}

func (cmd *LoggerCommandWrapper[I, R]) Execute(ctx context.Context, input I) (R, error) {
	start := time.Now()

	result, err := cmd.next.Execute(ctx, input)

	log := cmd.logger.
		WithContext(ctx).
		With("execution_time", time.Since(start).String())

	if err != nil {
		e := errx.AsErrorX(err)
		log.With(
			"error_code", e.Code(),
			"error_type", e.Type().String(),
			"error_details", e.Details(),
		).Error("command failed: " + err.Error())
	} else {
		log.Info("command executed")
	}

	return result, err
}
