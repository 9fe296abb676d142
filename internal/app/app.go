package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"golang.org/x/sync/errgroup"

	"github.com/dev-ahmed/issue-reporter/internal/config"
	"github.com/dev-ahmed/issue-reporter/internal/handler"
	"github.com/dev-ahmed/issue-reporter/internal/notify"
	"github.com/dev-ahmed/issue-reporter/internal/security"
	"github.com/dev-ahmed/issue-reporter/internal/store"
	"github.com/dev-ahmed/issue-reporter/internal/web"
	"github.com/dev-ahmed/issue-reporter/internal/workflow"
)

type App struct {
	config      *config.Config
	logger      *slog.Logger
	mongoClient *mongo.Client
	storePing   func(context.Context) error
	formHandler *handler.FormHandler
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger := newLogger(cfg)

	client, err := store.Connect(ctx, cfg.Mongo)
	if err != nil {
		return nil, fmt.Errorf("connecting to store: %w", err)
	}

	issues := store.NewIssueStore(client.Database(cfg.Mongo.Database))

	sender, err := notify.NewSender(cfg.Relay, logger)
	if err != nil {
		return nil, fmt.Errorf("configuring notifier: %w", err)
	}

	flow := workflow.New(issues, sender, logger)
	limiter := security.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)

	return &App{
		config:      cfg,
		logger:      logger,
		mongoClient: client,
		storePing:   store.Healthcheck(client),
		formHandler: handler.NewFormHandler(flow, limiter, web.Templates, logger),
	}, nil
}

func (app *App) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.mongoClient.Disconnect(ctx); err != nil {
		app.logger.Warn("store disconnect failed", "error", err)
	}
}

func (app *App) Start(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", app.config.Port),
		Handler:      app.routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelError),
	}

	g.Go(func() error {
		app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		app.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	app.logger.Info("stopped server")
	return nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	logLevel := slog.LevelInfo
	if cfg.IsDevelopment() {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))

	slog.SetDefault(logger)
	return logger
}
