package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/dev-ahmed/issue-reporter/internal/config"
)

var (
	ErrConnectFailed     = errors.New("store: failed to connect to mongo")
	ErrWriteFailed       = errors.New("store: failed to write submission")
	ErrHealthcheckFailed = errors.New("store: healthcheck failed")
)

// Connect dials the document store, retrying a few times so the app
// survives the store coming up after it in a compose environment.
func Connect(ctx context.Context, cfg config.Mongo) (*mongo.Client, error) {
	var client *mongo.Client

	err := connectLoop(cfg.RetryAttempts, cfg.RetryInterval, time.Sleep, func() error {
		c, err := mongo.Connect(
			options.Client().
				ApplyURI(cfg.URL).
				SetConnectTimeout(cfg.ConnectTimeout).
				SetMaxPoolSize(cfg.MaxPoolSize).
				SetMinPoolSize(cfg.MinPoolSize).
				SetMaxConnIdleTime(cfg.MaxConnIdleTime),
		)
		if err != nil {
			return err
		}
		if err := pingOrDisconnect(ctx, c); err != nil {
			return err
		}
		client = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

// connectLoop retries dial up to attempts times, sleeping interval before
// each retry but never after the last failure.
func connectLoop(attempts int, interval time.Duration, sleep func(time.Duration), dial func() error) error {
	for attempt := range attempts {
		if attempt > 0 {
			sleep(interval)
		}
		if err := dial(); err == nil {
			return nil
		}
	}
	return ErrConnectFailed
}

type mongoClient interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
	Disconnect(ctx context.Context) error
}

// pingOrDisconnect verifies a freshly dialed client and tears it down when
// the ping fails, so failed attempts don't leak connections.
func pingOrDisconnect(ctx context.Context, c mongoClient) error {
	if err := c.Ping(ctx, nil); err != nil {
		_ = c.Disconnect(ctx)
		return err
	}
	return nil
}

// Healthcheck returns a ping func suitable for the health endpoint.
func Healthcheck(client *mongo.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx, nil); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
