package wrapper

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/rise-and-shine/queuebook/cqrs/command"
)

type TracingCommandWrapper[I command.Input, R command.Result] struct {
	tracer   trace.Tracer
	spanName string
	next     command.Command[I, R]
}

func NewTracingCommandWrapper[I command.Input, R command.Result](cmdName string) command.WrapFunc[I, R] {
	return func(next command.Command[I, R]) command.Command[I, R] {
		return &TracingCommandWrapper[I, R]{
			tracer:   otel.Tracer("cqrs/command"),
			spanName: "command: " + cmdName,
			next:     next,
		}
	}
}

func (t *TracingCommandWrapper[I, R]) Execute(ctx context.Context, input I) (R, error) {
	ctx, span := t.tracer.Start(ctx, t.spanName)
	defer span.End()

	result, err := t.next.Execute(ctx, input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	return result, err
}
