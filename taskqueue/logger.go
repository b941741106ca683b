package taskqueue

import (
	"github.com/ThreeDotsLabs/watermill"

	"github.com/rise-and-shine/queuebook/observability/logger"
)

var _ watermill.LoggerAdapter = (*loggerAdapter)(nil)

// loggerAdapter routes watermill logs through logger.Logger.
type loggerAdapter struct {
	base logger.Logger
}

// NewLoggerAdapter adapts log to watermill. Trace entries are logged at debug level.
func NewLoggerAdapter(log logger.Logger) watermill.LoggerAdapter {
	return &loggerAdapter{base: log}
}

func (l *loggerAdapter) Error(msg string, err error, fields watermill.LogFields) {
	log := l.withFields(fields)
	if err != nil {
		log = log.With("error", err.Error())
	}
	log.Error(msg)
}

func (l *loggerAdapter) Info(msg string, fields watermill.LogFields) {
	l.withFields(fields).Info(msg)
}

func (l *loggerAdapter) Debug(msg string, fields watermill.LogFields) {
	l.withFields(fields).Debug(msg)
}

func (l *loggerAdapter) Trace(msg string, fields watermill.LogFields) {
	l.withFields(fields).Debug(msg)
}

func (l *loggerAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &loggerAdapter{base: l.withFields(fields)}
}

func (l *loggerAdapter) withFields(fields watermill.LogFields) logger.Logger {
	if len(fields) == 0 {
		return l.base
	}

	kv := make([]any, 0, len(fields)*2) //nolint:mnd // key and value
	for k, v := range fields {
		kv = append(kv, k, v)
	}
	return l.base.With(kv...)
}
