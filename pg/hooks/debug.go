// Package hooks contains bun query hooks.
package hooks

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"github.com/rise-and-shine/queuebook/observability/logger"
)

var _ bun.QueryHook = (*DebugHook)(nil)

// DebugHook logs bun queries through the observability logger.
// Failed queries log at error level, empty results and slow queries at warn level,
// everything else at debug level when verbose.
type DebugHook struct {
	enabled            bool
	verbose            bool
	slowQueryThreshold time.Duration
	log                logger.Logger
}

// DebugHookOption configures a DebugHook.
type DebugHookOption func(*DebugHook)

// NewDebugHook creates an enabled, verbose hook with a 100ms slow query threshold.
func NewDebugHook(opts ...DebugHookOption) *DebugHook {
	hook := &DebugHook{
		enabled:            true,
		verbose:            true,
		slowQueryThreshold: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(hook)
	}
	if hook.log == nil {
		hook.log = logger.Named("pg.debug_hook")
	}
	return hook
}

// WithEnabled turns the hook on or off.
func WithEnabled(enabled bool) DebugHookOption {
	return func(h *DebugHook) { h.enabled = enabled }
}

// WithVerbose makes the hook log successful queries too.
func WithVerbose(verbose bool) DebugHookOption {
	return func(h *DebugHook) { h.verbose = verbose }
}

// WithSlowQueryThreshold sets the duration above which queries log at warn level. 0 disables it.
func WithSlowQueryThreshold(threshold time.Duration) DebugHookOption {
	return func(h *DebugHook) { h.slowQueryThreshold = threshold }
}

// WithLogger overrides the logger entries are written to.
func WithLogger(l logger.Logger) DebugHookOption {
	return func(h *DebugHook) { h.log = l }
}

func (h *DebugHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (h *DebugHook) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	if !h.enabled {
		return
	}

	duration := time.Since(event.StartTime)
	noRows := errors.Is(event.Err, sql.ErrNoRows)
	failed := event.Err != nil && !noRows && !errors.Is(event.Err, sql.ErrTxDone)
	slow := h.slowQueryThreshold > 0 && duration >= h.slowQueryThreshold

	if !h.verbose && !failed && !noRows && !slow {
		return
	}

	entry := h.log.WithContext(ctx).With(
		"query", strings.ReplaceAll(event.Query, `"`, ""),
		"duration", duration.Round(time.Microsecond),
	)
	msg := "[pg]: " + event.Operation()

	switch {
	case failed:
		entry.With("error", event.Err.Error()).Error(msg)
	case noRows:
		entry.Warn(msg + " returned no rows")
	case slow:
		entry.Warn(msg + " is slow")
	default:
		entry.Debug(msg)
	}
}
