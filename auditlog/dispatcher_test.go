package auditlog_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/queuebook/auditlog"
	"github.com/rise-and-shine/queuebook/observability/logger"
	"github.com/rise-and-shine/queuebook/observability/metrics"
)

type fakePublisher struct {
	mu      sync.Mutex
	logs    []auditlog.LogRecord
	errs    []auditlog.ErrorLogRecord
	ctxErrs []error
	gate    chan struct{}
	fail    error
}

func (p *fakePublisher) wait() {
	if p.gate != nil {
		<-p.gate
	}
}

func (p *fakePublisher) PublishLogRecord(ctx context.Context, rec auditlog.LogRecord) error {
	p.wait()
	p.mu.Lock()
	defer p.mu.Unlock()
	p.logs = append(p.logs, rec)
	p.ctxErrs = append(p.ctxErrs, ctx.Err())
	return p.fail
}

func (p *fakePublisher) PublishErrorRecord(_ context.Context, rec auditlog.ErrorLogRecord) error {
	p.wait()
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errs = append(p.errs, rec)
	return p.fail
}

func (p *fakePublisher) published() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.logs) + len(p.errs)
}

func newDispatcher(capacity int, pub auditlog.Publisher) *auditlog.Dispatcher {
	return auditlog.NewDispatcher(
		auditlog.DispatcherConfig{Capacity: capacity, PublishTimeout: time.Second},
		pub, logger.NewNop(), metrics.NewNopAudit(),
	)
}

func TestDispatcherPublishesAndDrains(t *testing.T) {
	pub := &fakePublisher{}
	d := newDispatcher(8, pub)

	for range 5 {
		require.NoError(t, d.Enqueue(t.Context(), auditlog.LogRecord{Action: "a", Collection: "queues"}))
	}
	require.NoError(t, d.EnqueueError(t.Context(), auditlog.ErrorLogRecord{Description: "x"}))

	require.NoError(t, d.Close(t.Context()))
	assert.Equal(t, 6, pub.published())
	assert.Len(t, pub.errs, 1)
}

func TestDispatcherFullBufferDoesNotBlock(t *testing.T) {
	pub := &fakePublisher{gate: make(chan struct{})}
	d := newDispatcher(1, pub)

	// the consumer holds one record at the gate, the buffer holds another
	require.NoError(t, d.Enqueue(t.Context(), auditlog.LogRecord{Collection: "queues"}))
	require.Eventually(t, func() bool {
		return d.Enqueue(t.Context(), auditlog.LogRecord{Collection: "queues"}) == nil
	}, time.Second, time.Millisecond)

	done := make(chan error, 1)
	go func() { done <- d.Enqueue(t.Context(), auditlog.LogRecord{Collection: "queues"}) }()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.True(t, errx.IsCodeIn(err, auditlog.CodeQueueFull))
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked on a full buffer")
	}

	close(pub.gate)
	require.NoError(t, d.Close(t.Context()))
	assert.Equal(t, 2, pub.published())
}

func TestDispatcherRejectsAfterClose(t *testing.T) {
	d := newDispatcher(1, &fakePublisher{})
	require.NoError(t, d.Close(t.Context()))
	require.NoError(t, d.Close(t.Context()))

	err := d.Enqueue(t.Context(), auditlog.LogRecord{})
	require.Error(t, err)
	assert.True(t, errx.IsCodeIn(err, auditlog.CodeDispatcherClosed))
}

func TestDispatcherIgnoresCallerCancellation(t *testing.T) {
	pub := &fakePublisher{}
	d := newDispatcher(4, pub)

	ctx, cancel := context.WithCancel(t.Context())
	require.NoError(t, d.Enqueue(ctx, auditlog.LogRecord{Collection: "queues"}))
	cancel()

	require.NoError(t, d.Close(t.Context()))
	require.Len(t, pub.logs, 1)
	assert.NoError(t, pub.ctxErrs[0])
}

func TestDispatcherSurvivesPublishFailures(t *testing.T) {
	pub := &fakePublisher{fail: errors.New("broker down")}
	d := newDispatcher(4, pub)

	require.NoError(t, d.Enqueue(t.Context(), auditlog.LogRecord{Collection: "queues"}))
	require.NoError(t, d.Enqueue(t.Context(), auditlog.LogRecord{Collection: "queues"}))

	require.NoError(t, d.Close(t.Context()))
	assert.Equal(t, 2, pub.published())
}

func TestDispatcherCloseHonoursContext(t *testing.T) {
	pub := &fakePublisher{gate: make(chan struct{})}
	d := newDispatcher(4, pub)
	require.NoError(t, d.Enqueue(t.Context(), auditlog.LogRecord{Collection: "queues"}))

	ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
	defer cancel()
	assert.Error(t, d.Close(ctx))

	close(pub.gate)
}
