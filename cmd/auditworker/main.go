// Command auditworker stores audit records from the task queue in MongoDB.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rise-and-shine/queuebook/auditworker"
	"github.com/rise-and-shine/queuebook/cfgloader"
	"github.com/rise-and-shine/queuebook/docstore"
	"github.com/rise-and-shine/queuebook/internal/config"
	"github.com/rise-and-shine/queuebook/meta"
	"github.com/rise-and-shine/queuebook/observability/logger"
	"github.com/rise-and-shine/queuebook/observability/metrics"
	"github.com/rise-and-shine/queuebook/observability/tracing"
	"github.com/rise-and-shine/queuebook/pg"
	"github.com/rise-and-shine/queuebook/taskqueue"
)

const disconnectTimeout = 10 * time.Second

func main() {
	cfg := cfgloader.MustLoad[config.Worker]()

	logger.SetGlobal(cfg.Logger)
	log := logger.Named("cmd.auditworker")
	meta.SetServiceInfo(cfg.Service.Name, cfg.Service.Version)

	shutdownTracer, err := tracing.InitGlobalTracer(cfg.Tracing)
	if err != nil {
		log.Fatalx(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, err := docstore.New(ctx, cfg.DocStore)
	if err != nil {
		log.Fatalx(err)
	}

	var transport *taskqueue.Transport
	if cfg.TaskQueue.Driver == taskqueue.DriverSQL {
		db, dbErr := pg.NewBunDB(cfg.Postgres)
		if dbErr != nil {
			log.Fatalx(dbErr)
		}
		defer db.Close()
		transport, err = taskqueue.NewTransport(cfg.TaskQueue, db.DB, taskqueue.NewLoggerAdapter(log.Named("taskqueue")))
	} else {
		transport, err = taskqueue.NewTransport(cfg.TaskQueue, nil, taskqueue.NewLoggerAdapter(log.Named("taskqueue")))
	}
	if err != nil {
		log.Fatalx(err)
	}

	w, err := auditworker.New(
		cfg.Worker,
		transport,
		docstore.NewStore(mongoClient, cfg.DocStore.Database),
		docstore.DefaultCollections(),
		log,
		metrics.NewNopAudit(),
	)
	if err != nil {
		log.Fatalx(err)
	}

	log.Info("audit worker started")
	if err = w.Run(ctx); err != nil {
		log.Errorx(err)
	}

	if err = transport.Close(); err != nil {
		log.Errorx(err)
	}

	disconnectCtx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
	defer cancel()
	if err = mongoClient.Disconnect(disconnectCtx); err != nil {
		log.Errorx(err)
	}

	if err = shutdownTracer(); err != nil {
		log.Errorx(err)
	}
	_ = logger.Sync()
}
