package server

import (
	"fmt"
	"time"
)

// Config defines configuration options for the HTTP server.
type Config struct {
	// HideErrorDetails removes error trace and details from responses.
	HideErrorDetails bool `yaml:"hide_error_details"`

	Host string `yaml:"host" validate:"required" default:"0.0.0.0"`
	Port int    `yaml:"port" validate:"required" default:"8080"`

	ReadTimeout  time.Duration `yaml:"read_timeout"  validate:"required" default:"5s"`
	WriteTimeout time.Duration `yaml:"write_timeout" validate:"required" default:"5s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"  validate:"required" default:"120s"`

	// HandleTimeout bounds the handling of a single request.
	HandleTimeout time.Duration `yaml:"handle_timeout" validate:"required" default:"10s"`

	// BodyLimit is the maximum request body size in bytes.
	BodyLimit int `yaml:"body_limit" validate:"required" default:"1048576"`
}

// Address returns the listen address in the form "host:port".
func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
