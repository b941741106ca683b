package auditworker

import "time"

type Config struct {
	// MaxRetries is the number of retries after the first failed attempt.
	MaxRetries int `yaml:"max_retries" default:"2" validate:"gte=0"`

	InitialInterval time.Duration `yaml:"initial_interval" default:"200ms"`
	MaxInterval     time.Duration `yaml:"max_interval"     default:"5s"`
	Multiplier      float64       `yaml:"multiplier"       default:"2"`

	// InsertTimeout bounds a single document store write.
	InsertTimeout time.Duration `yaml:"insert_timeout" default:"5s"`

	// DeadLetterTopic receives messages that failed every attempt.
	// When empty such messages are dropped.
	DeadLetterTopic string `yaml:"dead_letter_topic"`

	CloseTimeout time.Duration `yaml:"close_timeout" default:"10s"`
}
