package docstore

import "time"

// Config defines the MongoDB connection used for audit documents.
type Config struct {
	URI      string `yaml:"uri"      validate:"required" mask:"true"`
	Database string `yaml:"database" validate:"required"`

	ConnectTimeout  time.Duration `yaml:"connect_timeout"    default:"10s"`
	MaxPoolSize     uint64        `yaml:"max_pool_size"      default:"100"`
	MinPoolSize     uint64        `yaml:"min_pool_size"      default:"1"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" default:"300s"`

	// RetryAttempts is the number of connection attempts made by New.
	RetryAttempts uint          `yaml:"retry_attempts" default:"3" validate:"gt=0"`
	RetryInterval time.Duration `yaml:"retry_interval" default:"2s"`
}
