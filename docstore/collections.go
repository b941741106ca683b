package docstore

import (
	"context"

	"github.com/code19m/errx"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/rise-and-shine/queuebook/auditlog"
)

const (
	CollectionQueues       = "queues"
	CollectionQueueEntries = "queue_entries"
	CollectionUsers        = "users"
	CollectionTags         = "tags"
	CollectionErrors       = auditlog.ErrorsCollection

	// FallbackCollection receives documents addressed to an unknown collection.
	FallbackCollection = "failed_to_get"
)

// Collections is the fixed set of collections documents may be written to.
// It is never modified after creation.
type Collections struct {
	known map[string]struct{}
}

// DefaultCollections returns the collections of the booking domain.
func DefaultCollections() *Collections {
	return NewCollections(
		CollectionQueues,
		CollectionQueueEntries,
		CollectionUsers,
		CollectionTags,
		CollectionErrors,
	)
}

func NewCollections(names ...string) *Collections {
	known := make(map[string]struct{}, len(names))
	for _, n := range names {
		known[n] = struct{}{}
	}
	return &Collections{known: known}
}

// Resolve returns name if it is known, FallbackCollection otherwise.
func (c *Collections) Resolve(name string) string {
	if _, ok := c.known[name]; ok {
		return name
	}
	return FallbackCollection
}

// Inserter writes one document into a collection.
type Inserter interface {
	Insert(ctx context.Context, collection string, doc any) error
}

// Store writes documents into a MongoDB database.
type Store struct {
	db *mongo.Database
}

func NewStore(client *mongo.Client, database string) *Store {
	return &Store{db: client.Database(database)}
}

func (s *Store) Insert(ctx context.Context, collection string, doc any) error {
	_, err := s.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return errx.Wrap(err, errx.WithDetails(errx.D{"collection": collection}))
	}
	return nil
}
