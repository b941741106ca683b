// Package taskqueue carries audit records from the api process to the audit worker over watermill.
package taskqueue

import (
	stdsql "database/sql"
	"strings"

	"github.com/ThreeDotsLabs/watermill"
	wkafka "github.com/ThreeDotsLabs/watermill-kafka/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill-sql/v4/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/code19m/errx"
)

const (
	CodeUnknownDriver = "UNKNOWN_TASKQUEUE_DRIVER"
	CodeMissingDB     = "TASKQUEUE_DB_REQUIRED"
	CodeMissingBroker = "TASKQUEUE_BROKERS_REQUIRED"
)

// Transport is a publisher and subscriber pair of one driver.
type Transport struct {
	Publisher  message.Publisher
	Subscriber message.Subscriber
}

// Close closes the publisher and the subscriber.
func (t *Transport) Close() error {
	pubErr := t.Publisher.Close()
	subErr := t.Subscriber.Close()
	if pubErr != nil {
		return errx.Wrap(pubErr)
	}
	if subErr != nil {
		return errx.Wrap(subErr)
	}
	return nil
}

// NewTransport creates the transport selected by cfg.Driver. db is required by the sql driver only.
func NewTransport(cfg Config, db *stdsql.DB, logger watermill.LoggerAdapter) (*Transport, error) {
	switch cfg.Driver {
	case DriverGoChannel:
		return newGoChannelTransport(cfg.GoChannel, logger), nil
	case DriverSQL:
		return newSQLTransport(cfg.SQL, db, logger)
	case DriverKafka:
		return newKafkaTransport(cfg.Kafka, logger)
	default:
		return nil, errx.New(
			"unknown task queue driver",
			errx.WithCode(CodeUnknownDriver),
			errx.WithDetails(errx.D{"driver": cfg.Driver}),
		)
	}
}

func newGoChannelTransport(cfg GoChannelConfig, logger watermill.LoggerAdapter) *Transport {
	ch := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: cfg.OutputBuffer,
		Persistent:          cfg.Persistent,
	}, logger)

	return &Transport{Publisher: ch, Subscriber: ch}
}

func newSQLTransport(cfg SQLConfig, db *stdsql.DB, logger watermill.LoggerAdapter) (*Transport, error) {
	if db == nil {
		return nil, errx.New("sql task queue needs a database", errx.WithCode(CodeMissingDB))
	}

	beginner := sql.BeginnerFromStdSQL(db)

	publisher, err := sql.NewPublisher(beginner, sql.PublisherConfig{
		SchemaAdapter:        sql.DefaultPostgreSQLSchema{},
		AutoInitializeSchema: true,
	}, logger)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	subscriber, err := sql.NewSubscriber(beginner, sql.SubscriberConfig{
		ConsumerGroup:  cfg.ConsumerGroup,
		BackoffManager: sql.NewDefaultBackoffManager(cfg.PollInterval, cfg.RetryInterval),
		ResendInterval: cfg.ResendInterval,
		SchemaAdapter: sql.DefaultPostgreSQLSchema{
			SubscribeBatchSize: cfg.BatchSize,
		},
		OffsetsAdapter:   sql.DefaultPostgreSQLOffsetsAdapter{},
		InitializeSchema: true,
	}, logger)
	if err != nil {
		_ = publisher.Close()
		return nil, errx.Wrap(err)
	}

	return &Transport{Publisher: publisher, Subscriber: subscriber}, nil
}

func newKafkaTransport(cfg KafkaConfig, logger watermill.LoggerAdapter) (*Transport, error) {
	if cfg.Brokers == "" {
		return nil, errx.New("kafka task queue needs brokers", errx.WithCode(CodeMissingBroker))
	}
	brokers := strings.Split(cfg.Brokers, ",")

	pubCfg := wkafka.DefaultSaramaSyncPublisherConfig()
	pubCfg.ClientID = cfg.ClientID

	publisher, err := wkafka.NewPublisher(brokers, wkafka.DefaultMarshaler{}, pubCfg, logger)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	subCfg := wkafka.DefaultSaramaSubscriberConfig()
	subCfg.ClientID = cfg.ClientID

	subscriber, err := wkafka.NewSubscriber(
		wkafka.SubscriberConfig{
			Brokers:       brokers,
			ConsumerGroup: cfg.ConsumerGroup,
		},
		subCfg,
		wkafka.DefaultMarshaler{},
		logger,
	)
	if err != nil {
		_ = publisher.Close()
		return nil, errx.Wrap(err)
	}

	return &Transport{Publisher: publisher, Subscriber: subscriber}, nil
}
