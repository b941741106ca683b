package taskqueue

import (
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/code19m/errx"

	"github.com/rise-and-shine/queuebook/auditlog"
)

const CodeMalformedPayload = "MALFORMED_PAYLOAD"

// Envelope is a decoded message ready to be stored.
type Envelope struct {
	// Collection is the target named by the producer, not yet resolved.
	Collection string
	TraceID    string
	Document   any
}

// Decode reads the message published on topic.
func Decode(topic string, msg *message.Message) (Envelope, error) {
	env := Envelope{
		Collection: msg.Metadata.Get(MetadataCollection),
		TraceID:    msg.Metadata.Get(MetadataTraceID),
	}

	switch topic {
	case TopicErrorRecords:
		var rec auditlog.ErrorLogRecord
		if err := unmarshal(msg, &rec); err != nil {
			return Envelope{}, err
		}
		if env.Collection == "" {
			env.Collection = auditlog.ErrorsCollection
		}
		env.Document = rec
	default:
		var rec auditlog.LogRecord
		if err := unmarshal(msg, &rec); err != nil {
			return Envelope{}, err
		}
		if env.Collection == "" {
			env.Collection = rec.Collection
		}
		env.Document = rec
	}

	return env, nil
}

func unmarshal(msg *message.Message, dest any) error {
	if err := json.Unmarshal(msg.Payload, dest); err != nil {
		return errx.Wrap(
			err,
			errx.WithCode(CodeMalformedPayload),
			errx.WithType(errx.T_Validation),
			errx.WithDetails(errx.D{"message_uuid": msg.UUID}),
		)
	}
	return nil
}
