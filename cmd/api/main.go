// Command api serves the booking HTTP API and publishes audit records to the task queue.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/rise-and-shine/queuebook/auditlog"
	"github.com/rise-and-shine/queuebook/cfgloader"
	"github.com/rise-and-shine/queuebook/errkind"
	"github.com/rise-and-shine/queuebook/http/server"
	"github.com/rise-and-shine/queuebook/http/server/middleware"
	"github.com/rise-and-shine/queuebook/internal/api"
	"github.com/rise-and-shine/queuebook/internal/config"
	"github.com/rise-and-shine/queuebook/internal/domain"
	"github.com/rise-and-shine/queuebook/internal/queueing"
	"github.com/rise-and-shine/queuebook/meta"
	"github.com/rise-and-shine/queuebook/observability/logger"
	"github.com/rise-and-shine/queuebook/observability/metrics"
	"github.com/rise-and-shine/queuebook/observability/tracing"
	"github.com/rise-and-shine/queuebook/pg"
	"github.com/rise-and-shine/queuebook/taskqueue"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := cfgloader.MustLoad[config.API]()

	logger.SetGlobal(cfg.Logger)
	log := logger.Named("cmd.api")
	meta.SetServiceInfo(cfg.Service.Name, cfg.Service.Version)

	shutdownTracer, err := tracing.InitGlobalTracer(cfg.Tracing)
	if err != nil {
		log.Fatalx(err)
	}

	db, err := pg.NewBunDB(cfg.Postgres)
	if err != nil {
		log.Fatalx(err)
	}
	domain.RegisterModels(db.Dialect())

	if cfg.BootstrapSchema {
		if err = queueing.CreateTables(context.Background(), db); err != nil {
			log.Fatalx(err)
		}
	}

	transport, err := taskqueue.NewTransport(cfg.TaskQueue, db.DB, taskqueue.NewLoggerAdapter(log.Named("taskqueue")))
	if err != nil {
		log.Fatalx(err)
	}

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	auditMetrics, err := metrics.NewAudit(promRegistry)
	if err != nil {
		log.Fatalx(err)
	}

	dispatcher := auditlog.NewDispatcher(cfg.Audit, taskqueue.NewPublisher(transport.Publisher), log, auditMetrics)

	reg, err := queueing.NewRegistry()
	if err != nil {
		log.Fatalx(err)
	}

	booking, err := api.New(db, reg, dispatcher, log, api.WithCommandTimeout(cfg.CommandTimeout))
	if err != nil {
		log.Fatalx(err)
	}

	srv := server.NewHTTPServer(cfg.HTTP, []server.Middleware{
		middleware.NewRecoveryMW(log),
		middleware.NewTracingMW(),
		middleware.NewTimeoutMW(cfg.HTTP.HandleTimeout),
		middleware.NewMetaInjectMW(cfg.Service.Name, cfg.Service.Version),
		middleware.NewErrorReportMW(errkind.NewReporter(dispatcher, log)),
		middleware.NewLoggerMW(log),
		middleware.NewErrorHandlerMW(cfg.HTTP.HideErrorDetails),
	})
	srv.RegisterRouter(func(r fiber.Router) {
		api.RegisterMetrics(r, promRegistry)
		booking.Register(r)
	})

	go func() {
		log.With("address", cfg.HTTP.Address()).Info("http server started")
		if err := srv.Start(); err != nil {
			log.Fatalx(err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info("shutting down")

	if err = srv.Stop(shutdownTimeout); err != nil {
		log.Errorx(err)
	}

	drainCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = dispatcher.Close(drainCtx); err != nil {
		log.Errorx(err)
	}

	if err = transport.Close(); err != nil {
		log.Errorx(err)
	}
	if err = db.Close(); err != nil {
		log.Errorx(err)
	}
	if err = shutdownTracer(); err != nil {
		log.Errorx(err)
	}
	_ = logger.Sync()
}
