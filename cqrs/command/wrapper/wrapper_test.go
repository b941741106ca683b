package wrapper_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/queuebook/cqrs/command"
	"github.com/rise-and-shine/queuebook/cqrs/command/wrapper"
	"github.com/rise-and-shine/queuebook/meta"
	"github.com/rise-and-shine/queuebook/observability/logger"
	"github.com/rise-and-shine/queuebook/observability/tracing"
)

type echo = command.Func[int, int]

func TestRecoveryConvertsPanic(t *testing.T) {
	handler := echo(func(context.Context, int) (int, error) {
		panic("surprise")
	})

	cmd := wrapper.NewRecoveryCommandWrapper[int, int](logger.NewNop(), "explode")(handler)

	out, err := cmd.Execute(t.Context(), 1)
	require.Error(t, err)
	assert.Zero(t, out)
	assert.True(t, errx.IsCodeIn(err, wrapper.CodePanicRecovered))
}

func TestTimeoutSetsDeadline(t *testing.T) {
	handler := echo(func(ctx context.Context, in int) (int, error) {
		_, ok := ctx.Deadline()
		if !ok {
			return 0, errors.New("no deadline")
		}
		return in, nil
	})

	out, err := wrapper.NewTimeoutCommandWrapper[int, int]("double", time.Second)(handler).Execute(t.Context(), 5)
	require.NoError(t, err)
	assert.Equal(t, 5, out)

	_, err = wrapper.NewTimeoutCommandWrapper[int, int]("double", 0)(handler).Execute(t.Context(), 5)
	assert.Error(t, err)
}

func TestTimeoutReportsExpiredDeadline(t *testing.T) {
	slow := echo(func(ctx context.Context, _ int) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})

	_, err := wrapper.NewTimeoutCommandWrapper[int, int]("slow", 10*time.Millisecond)(slow).Execute(t.Context(), 1)
	require.Error(t, err)
	assert.True(t, errx.IsCodeIn(err, wrapper.CodeCommandTimeout))
	assert.Equal(t, errx.T_Internal, errx.GetType(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestTimeoutKeepsOtherFailures(t *testing.T) {
	failure := errors.New("denied")
	handler := echo(func(context.Context, int) (int, error) { return 0, failure })

	_, err := wrapper.NewTimeoutCommandWrapper[int, int]("deny", time.Second)(handler).Execute(t.Context(), 1)
	require.ErrorIs(t, err, failure)
	assert.False(t, errx.IsCodeIn(err, wrapper.CodeCommandTimeout))
}

func TestLoggerAndTracingPassThrough(t *testing.T) {
	failure := errors.New("denied")
	handler := echo(func(_ context.Context, in int) (int, error) {
		if in < 0 {
			return 0, failure
		}
		return in * 2, nil
	})

	cmd := command.Chain[int, int](handler,
		wrapper.NewTracingCommandWrapper[int, int]("double"),
		wrapper.NewLoggerCommandWrapper[int, int](logger.NewNop(), "double"),
	)

	out, err := cmd.Execute(t.Context(), 4)
	require.NoError(t, err)
	assert.Equal(t, 8, out)

	_, err = cmd.Execute(t.Context(), -1)
	assert.ErrorIs(t, err, failure)
}

func TestMetaInjectKeepsExistingTraceID(t *testing.T) {
	var seen string
	handler := echo(func(ctx context.Context, in int) (int, error) {
		seen = meta.Find(ctx, meta.TraceID)
		return in, nil
	})
	cmd := wrapper.NewMetaInjectCommandWrapper[int, int]()(handler)

	ctx := meta.InjectMetaToContext(t.Context(), map[meta.ContextKey]string{meta.TraceID: "req-1"})
	_, err := cmd.Execute(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "req-1", seen)

	_, err = cmd.Execute(t.Context(), 1)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(seen, tracing.ManualTraceIDPrefix))
}
