// Package detector собирает HTTP-сервис проверки новостей: хранилище,
// реестр сессий, клиент ML-сервиса, сервисы и маршруты.
package detector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/fakenews-detector/internal/cache"
	"github.com/magabrotheeeer/fakenews-detector/internal/config"
	"github.com/magabrotheeeer/fakenews-detector/internal/http/cookie"
	"github.com/magabrotheeeer/fakenews-detector/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/fakenews-detector/internal/lib/sl"
	"github.com/magabrotheeeer/fakenews-detector/internal/migrations"
	"github.com/magabrotheeeer/fakenews-detector/internal/scorer"
	"github.com/magabrotheeeer/fakenews-detector/internal/services/account"
	"github.com/magabrotheeeer/fakenews-detector/internal/services/analysis"
	"github.com/magabrotheeeer/fakenews-detector/internal/session"
	"github.com/magabrotheeeer/fakenews-detector/internal/storage"
)

const shutdownTimeout = 15 * time.Second

// App — собранный HTTP-сервис.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
	cache  *cache.Cache
	amqp   *amqp.Connection
	ch     *amqp.Channel
}

// New инициализирует все зависимости сервиса.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "detector.New"

	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	a := &App{
		logger: logger,
		db:     db,
	}

	registry, err := a.newRegistry(ctx, cfg)
	if err != nil {
		a.closeAll()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var opts []analysis.Option
	if cfg.RabbitMQURL != "" {
		publisher, err := a.newPublisher(cfg.RabbitMQ)
		if err != nil {
			a.closeAll()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		opts = append(opts, analysis.WithPublisher(publisher))
	} else {
		logger.Info("rabbitmq url is empty, analysis events are disabled")
	}

	cookies := cookie.Options{
		Name:   cfg.CookieName,
		Secure: cfg.CookieSecure,
		TTL:    cfg.SessionTTL,
	}
	accounts := account.New(logger, db, registry)
	analyses := analysis.New(logger, db, db, scorer.NewClient(cfg.ScorerURL, cfg.ScorerTimeout), opts...)

	router := chi.NewRouter()
	RegisterRoutes(router, Deps{
		Logger:         logger,
		DB:             db,
		Sessions:       registry,
		Cookies:        cookies,
		Accounts:       accounts,
		Analyses:       analyses,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	a.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP + cfg.ScorerTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return a, nil
}

func (a *App) newRegistry(ctx context.Context, cfg *config.Config) (session.Registry, error) {
	switch cfg.SessionStore {
	case config.SessionStoreRedis:
		c, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			return nil, err
		}
		a.cache = c
		a.logger.Info("using redis session registry", slog.String("address", cfg.AddressRedis))
		return session.NewRedisRegistry(c, cfg.SessionTTL), nil
	default:
		a.logger.Info("using in-memory session registry")
		return session.NewMemoryRegistry(cfg.SessionTTL), nil
	}
}

func (a *App) newPublisher(cfg config.RabbitMQ) (*rabbitmq.AnalysisPublisher, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.ConnectRetries, cfg.ConnectRetryWait)
	if err != nil {
		return nil, err
	}
	a.amqp = conn

	ch, err := rabbitmq.SetupChannel(conn, cfg.Exchange, rabbitmq.AnalysisQueues(cfg.RoutingKey))
	if err != nil {
		return nil, err
	}
	a.ch = ch

	return rabbitmq.NewAnalysisPublisher(ch, cfg.Exchange, cfg.RoutingKey), nil
}

// Run запускает HTTP-сервер и останавливает его при отмене ctx.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.closeAll()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.closeAll()
		return err
	}
}

func (a *App) closeAll() {
	if a.ch != nil {
		if err := a.ch.Close(); err != nil {
			a.logger.Warn("failed to close rabbitmq channel", sl.Err(err))
		}
	}
	if a.amqp != nil {
		if err := a.amqp.Close(); err != nil {
			a.logger.Warn("failed to close rabbitmq connection", sl.Err(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("failed to close redis", sl.Err(err))
		}
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn("failed to close database", sl.Err(err))
	}
}
