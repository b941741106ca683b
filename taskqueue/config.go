package taskqueue

import "time"

const (
	DriverGoChannel = "gochannel"
	DriverSQL       = "sql"
	DriverKafka     = "kafka"
)

// Config selects and configures the transport between the api and the audit worker.
type Config struct {
	// Driver is gochannel for a single process, sql or kafka when api and worker run apart.
	Driver string `yaml:"driver" default:"sql" validate:"oneof=gochannel sql kafka"`

	GoChannel GoChannelConfig `yaml:"gochannel"`
	SQL       SQLConfig       `yaml:"sql"`
	Kafka     KafkaConfig     `yaml:"kafka"`
}

// GoChannelConfig configures the in-process transport. It suits tests and
// single-process runs; records published while no subscriber is attached are lost.
type GoChannelConfig struct {
	// OutputBuffer is the per subscriber channel buffer.
	OutputBuffer int64 `yaml:"output_buffer" default:"256"`

	// Persistent replays every published message to late subscribers. Messages
	// are then held in memory for the life of the process.
	Persistent bool `yaml:"persistent" default:"false"`
}

// SQLConfig configures the PostgreSQL backed transport. Tables are created on first use.
type SQLConfig struct {
	ConsumerGroup  string        `yaml:"consumer_group"  default:"auditworker"`
	PollInterval   time.Duration `yaml:"poll_interval"   default:"500ms"`
	RetryInterval  time.Duration `yaml:"retry_interval"  default:"1s"`
	ResendInterval time.Duration `yaml:"resend_interval" default:"1s"`
	BatchSize      int           `yaml:"batch_size"      default:"100"`
}

type KafkaConfig struct {
	// Brokers is a comma separated list of host:port pairs.
	Brokers       string `yaml:"brokers"`
	ClientID      string `yaml:"client_id"      default:"queuebook"`
	ConsumerGroup string `yaml:"consumer_group" default:"auditworker"`
}
