// Package auditlog records business operations as structured log records and
// hands them to a background transport without ever affecting the operation.
package auditlog

import (
	"time"
)

// Status is the outcome of an audited operation.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// LogRecord describes one audited call. It is immutable once built.
type LogRecord struct {
	Action     string         `json:"action"          bson:"action"`
	Collection string         `json:"collection"      bson:"collection"`
	Parameters map[string]any `json:"parameters"      bson:"parameters"`
	Status     Status         `json:"status"          bson:"status"`
	Timestamp  time.Time      `json:"timestamp"       bson:"timestamp"`
	Error      *string        `json:"error,omitempty" bson:"error,omitempty"`
}

// ErrorLogRecord describes an unexpected failure. Records of this kind go to the errors collection.
type ErrorLogRecord struct {
	Description string    `json:"description" bson:"description"`
	Timestamp   time.Time `json:"timestamp"   bson:"timestamp"`
}

// NewLogRecord builds a record for a finished call. A non-nil callErr marks it failed.
func NewLogRecord(action, collection string, params map[string]any, callErr error, now time.Time) LogRecord {
	rec := LogRecord{
		Action:     action,
		Collection: collection,
		Parameters: params,
		Status:     StatusSuccess,
		Timestamp:  now.UTC(),
	}

	if callErr != nil {
		msg := callErr.Error()
		rec.Status = StatusFailed
		rec.Error = &msg
	}

	return rec
}
