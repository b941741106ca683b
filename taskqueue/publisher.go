package taskqueue

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/code19m/errx"

	"github.com/rise-and-shine/queuebook/auditlog"
	"github.com/rise-and-shine/queuebook/meta"
)

const (
	TopicLogRecords   = "audit.log_records"
	TopicErrorRecords = "audit.error_records"

	MetadataCollection = "collection"
	MetadataTraceID    = "trace_id"
)

var _ auditlog.Publisher = (*Publisher)(nil)

// Publisher encodes audit records as JSON messages.
type Publisher struct {
	pub message.Publisher
}

func NewPublisher(pub message.Publisher) *Publisher {
	return &Publisher{pub: pub}
}

func (p *Publisher) PublishLogRecord(ctx context.Context, rec auditlog.LogRecord) error {
	return p.publish(ctx, TopicLogRecords, rec.Collection, rec)
}

func (p *Publisher) PublishErrorRecord(ctx context.Context, rec auditlog.ErrorLogRecord) error {
	return p.publish(ctx, TopicErrorRecords, auditlog.ErrorsCollection, rec)
}

func (p *Publisher) publish(ctx context.Context, topic, collection string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errx.Wrap(err)
	}

	msg := message.NewMessage(watermill.NewUUID(), body)
	msg.Metadata.Set(MetadataCollection, collection)
	if traceID := meta.Find(ctx, meta.TraceID); traceID != "" {
		msg.Metadata.Set(MetadataTraceID, traceID)
	}
	msg.SetContext(ctx)

	if err = p.pub.Publish(topic, msg); err != nil {
		return errx.Wrap(err, errx.WithDetails(errx.D{"topic": topic, "collection": collection}))
	}

	return nil
}
