// Package docstore stores audit and error documents in MongoDB.
package docstore

import (
	"context"

	"github.com/avast/retry-go/v4"
	"github.com/code19m/errx"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/rise-and-shine/queuebook/observability/logger"
)

const (
	CodeConnectFailed     = "DOCSTORE_CONNECT_FAILED"
	CodeHealthcheckFailed = "DOCSTORE_HEALTHCHECK_FAILED"
)

// New connects to MongoDB and pings it, retrying on failure.
func New(ctx context.Context, cfg Config) (*mongo.Client, error) {
	log := logger.Named("docstore")

	client, err := retry.DoWithData(
		func() (*mongo.Client, error) {
			client, err := mongo.Connect(
				options.Client().
					ApplyURI(cfg.URI).
					SetConnectTimeout(cfg.ConnectTimeout).
					SetServerSelectionTimeout(cfg.ConnectTimeout).
					SetMaxPoolSize(cfg.MaxPoolSize).
					SetMinPoolSize(cfg.MinPoolSize).
					SetMaxConnIdleTime(cfg.MaxConnIdleTime),
			)
			if err != nil {
				return nil, err
			}

			if err = client.Ping(ctx, nil); err != nil {
				_ = client.Disconnect(context.WithoutCancel(ctx))
				return nil, err
			}

			return client, nil
		},
		retry.Context(ctx),
		retry.Attempts(cfg.RetryAttempts),
		retry.Delay(cfg.RetryInterval),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.With("attempt", n+1, "error", err.Error()).Warn("[docstore]: connection attempt failed")
		}),
	)
	if err != nil {
		return nil, errx.Wrap(
			err,
			errx.WithCode(CodeConnectFailed),
			errx.WithDetails(errx.D{"database": cfg.Database, "attempts": cfg.RetryAttempts}),
		)
	}

	return client, nil
}

// Healthcheck returns a probe that pings the server.
func Healthcheck(client *mongo.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx, nil); err != nil {
			return errx.Wrap(err, errx.WithCode(CodeHealthcheckFailed))
		}
		return nil
	}
}
