package docstore_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/queuebook/auditlog"
	"github.com/rise-and-shine/queuebook/docstore"
)

func TestResolve(t *testing.T) {
	c := docstore.DefaultCollections()

	tests := []struct {
		name string
		want string
	}{
		{name: "queues", want: "queues"},
		{name: "queue_entries", want: "queue_entries"},
		{name: "users", want: "users"},
		{name: "tags", want: "tags"},
		{name: "errors", want: "errors"},
		{name: "payments", want: docstore.FallbackCollection},
		{name: "", want: docstore.FallbackCollection},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, c.Resolve(tc.name))
		})
	}
}

func TestNewFailsAfterRetries(t *testing.T) {
	_, err := docstore.New(t.Context(), docstore.Config{
		URI:            "mongodb://127.0.0.1:1/?directConnection=true",
		Database:       "audit",
		ConnectTimeout: 50 * time.Millisecond,
		RetryAttempts:  2,
		RetryInterval:  time.Millisecond,
	})
	require.Error(t, err)
	assert.True(t, errx.IsCodeIn(err, docstore.CodeConnectFailed))
}

func TestStoreInsert(t *testing.T) {
	uri := os.Getenv("QUEUEBOOK_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("QUEUEBOOK_TEST_MONGO_URI is not set")
	}

	client, err := docstore.New(t.Context(), docstore.Config{
		URI:            uri,
		Database:       "queuebook_test",
		ConnectTimeout: 5 * time.Second,
		RetryAttempts:  1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	require.NoError(t, docstore.Healthcheck(client)(t.Context()))

	store := docstore.NewStore(client, "queuebook_test")
	rec := auditlog.NewLogRecord("create_queue", "queues", map[string]any{"queue_id": 1}, nil, time.Now())
	require.NoError(t, store.Insert(t.Context(), docstore.CollectionQueues, rec))
}
