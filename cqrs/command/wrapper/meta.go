package wrapper

import (
	"context"

	"github.com/rise-and-shine/queuebook/cqrs/command"
	"github.com/rise-and-shine/queuebook/meta"
	"github.com/rise-and-shine/queuebook/observability/tracing"
)

type MetaInjectCommandWrapper[I command.Input, R command.Result] struct {
	next command.Command[I, R]
}

// NewMetaInjectCommandWrapper makes sure every command runs with a trace id and service info in ctx.
// Values already present, e.g. injected by the HTTP layer, are kept.
func NewMetaInjectCommandWrapper[I command.Input, R command.Result]() command.WrapFunc[I, R] {
	return func(next command.Command[I, R]) command.Command[I, R] {
		return &MetaInjectCommandWrapper[I, R]{next: next}
	}
}

func (cmd *MetaInjectCommandWrapper[I, R]) Execute(ctx context.Context, input I) (R, error) {
	metadata := map[meta.ContextKey]string{ //nolint:exhaustive // only process level keys
		meta.ServiceName:    meta.GetServiceName(),
		meta.ServiceVersion: meta.GetServiceVersion(),
	}
	if meta.Find(ctx, meta.TraceID) == "" {
		metadata[meta.TraceID] = tracing.TraceIDFromContext(ctx)
	}

	return cmd.next.Execute(meta.InjectMetaToContext(ctx, metadata), input)
}
