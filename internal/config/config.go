// Package config defines the configuration of the api and auditworker processes.
// Both read the same file and ignore the sections they do not use.
package config

import (
	"time"

	"github.com/rise-and-shine/queuebook/auditlog"
	"github.com/rise-and-shine/queuebook/auditworker"
	"github.com/rise-and-shine/queuebook/docstore"
	"github.com/rise-and-shine/queuebook/http/server"
	"github.com/rise-and-shine/queuebook/observability/logger"
	"github.com/rise-and-shine/queuebook/observability/tracing"
	"github.com/rise-and-shine/queuebook/pg"
	"github.com/rise-and-shine/queuebook/taskqueue"
)

type Service struct {
	Name    string `yaml:"name"    validate:"required"`
	Version string `yaml:"version" default:"dev"`
}

type API struct {
	Service  Service        `yaml:"api_service"`
	Logger   logger.Config  `yaml:"logger"`
	Tracing  tracing.Config `yaml:"tracing"`
	Postgres pg.Config      `yaml:"postgres"`
	HTTP     server.Config  `yaml:"http"`

	TaskQueue taskqueue.Config          `yaml:"task_queue"`
	Audit     auditlog.DispatcherConfig `yaml:"audit"`

	// CommandTimeout bounds a single command execution. Zero disables it.
	CommandTimeout time.Duration `yaml:"command_timeout" default:"5s"`

	// BootstrapSchema creates missing tables at startup.
	BootstrapSchema bool `yaml:"bootstrap_schema" default:"false"`
}

type Worker struct {
	Service  Service        `yaml:"worker_service"`
	Logger   logger.Config  `yaml:"logger"`
	Tracing  tracing.Config `yaml:"tracing"`
	Postgres pg.Config      `yaml:"postgres"`

	TaskQueue taskqueue.Config   `yaml:"task_queue"`
	DocStore  docstore.Config    `yaml:"docstore"`
	Worker    auditworker.Config `yaml:"audit_worker"`
}
