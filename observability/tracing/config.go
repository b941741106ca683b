package tracing

import "time"

const (
	reconnectionPeriod = 30 * time.Second
	shutdownTimeout    = 5 * time.Second
)

// Config holds OTLP exporter settings.
type Config struct {
	// Disable installs a no-op tracer provider.
	Disable bool `yaml:"disable" default:"false"`

	// SampleRate is the fraction of root traces to record, between 0 and 1.
	SampleRate float64 `yaml:"sample_rate" default:"1" validate:"gte=0,lte=1"`

	ExporterHost string `yaml:"exporter_host" validate:"required_unless=Disable true"`
	ExporterPort int    `yaml:"exporter_port" validate:"required_unless=Disable true"`

	// Tags are added as resource attributes to every span.
	Tags map[string]string `yaml:"tags"`
}
