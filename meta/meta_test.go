package meta_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/queuebook/meta"
)

func TestInjectMetaToContext(t *testing.T) {
	tests := []struct {
		name     string
		data     map[meta.ContextKey]string
		key      meta.ContextKey
		expected any
	}{
		{
			name:     "inject single value",
			data:     map[meta.ContextKey]string{meta.TraceID: "abc-123"},
			key:      meta.TraceID,
			expected: "abc-123",
		},
		{
			name: "inject multiple values",
			data: map[meta.ContextKey]string{
				meta.TraceID:       "trace-1",
				meta.RequestUserID: "user-1",
				meta.ServiceName:   "queuebook-api",
			},
			key:      meta.RequestUserID,
			expected: "user-1",
		},
		{
			name:     "skip empty values",
			data:     map[meta.ContextKey]string{meta.RequestUserID: ""},
			key:      meta.RequestUserID,
			expected: nil,
		},
		{
			name:     "empty map",
			data:     map[meta.ContextKey]string{},
			key:      meta.TraceID,
			expected: nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := meta.InjectMetaToContext(t.Context(), tc.data)
			assert.Equal(t, tc.expected, ctx.Value(tc.key))
		})
	}
}

func TestExtractMetaFromContext(t *testing.T) {
	ctx := context.WithValue(t.Context(), meta.TraceID, "trace-1")
	ctx = context.WithValue(ctx, meta.RequestUserRole, "superuser")
	ctx = context.WithValue(ctx, meta.ServiceName, 42)                  // not a string
	ctx = context.WithValue(ctx, meta.ContextKey("custom"), "ignored") // not a known key

	assert.Equal(t, map[meta.ContextKey]string{
		meta.TraceID:         "trace-1",
		meta.RequestUserRole: "superuser",
	}, meta.ExtractMetaFromContext(ctx))
}

func TestRoundTrip(t *testing.T) {
	data := map[meta.ContextKey]string{
		meta.TraceID:        "trace-123",
		meta.RequestUserID:  "6b1f0c9e",
		meta.ServiceName:    "queuebook-api",
		meta.ServiceVersion: "v1.0.0",
	}

	got := meta.ExtractMetaFromContext(meta.InjectMetaToContext(t.Context(), data))
	assert.Equal(t, data, got)
}

func TestShouldGetMeta(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		ctx := context.WithValue(t.Context(), meta.TraceID, "trace-xyz")
		v, err := meta.ShouldGetMeta(ctx, meta.TraceID)
		require.NoError(t, err)
		assert.Equal(t, "trace-xyz", v)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := meta.ShouldGetMeta(t.Context(), meta.RequestUserID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "key not found")
	})

	t.Run("type mismatch", func(t *testing.T) {
		ctx := context.WithValue(t.Context(), meta.RequestUserID, 12345)
		_, err := meta.ShouldGetMeta(ctx, meta.RequestUserID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "type mismatch")
	})
}

func TestFind(t *testing.T) {
	ctx := context.WithValue(t.Context(), meta.AcceptLanguage, "uz")
	assert.Equal(t, "uz", meta.Find(ctx, meta.AcceptLanguage))
	assert.Empty(t, meta.Find(ctx, meta.TraceID))
}
