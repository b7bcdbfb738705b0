// Package scheduler собирает HTTP-приложение записи на занятия:
// хранилище, кэш, брокер событий, сервисы и маршруты.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/lesson-scheduler/internal/cache"
	"github.com/magabrotheeeer/lesson-scheduler/internal/config"
	"github.com/magabrotheeeer/lesson-scheduler/internal/events"
	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/jwt"
	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/password"
	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/lesson-scheduler/internal/metrics"
	"github.com/magabrotheeeer/lesson-scheduler/internal/migrations"
	authservice "github.com/magabrotheeeer/lesson-scheduler/internal/services/auth"
	clientservice "github.com/magabrotheeeer/lesson-scheduler/internal/services/client"
	companyservice "github.com/magabrotheeeer/lesson-scheduler/internal/services/company"
	lessonservice "github.com/magabrotheeeer/lesson-scheduler/internal/services/lesson"
	userservice "github.com/magabrotheeeer/lesson-scheduler/internal/services/user"
	"github.com/magabrotheeeer/lesson-scheduler/internal/storage/repository"
)

// App представляет HTTP-приложение.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
	conn   *amqp.Connection
	ch     *amqp.Channel
}

func waitForDB(ctx context.Context, db *repository.Storage) error {
	var err error
	for range 10 {
		if err = repository.CheckDatabaseReady(ctx, db); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(3 * time.Second):
		}
	}
	return fmt.Errorf("database not ready after retries: %w", err)
}

// New создает приложение: подключает хранилище, применяет миграции,
// подключает Redis и, если задан URL, RabbitMQ.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect storage: %w", err)
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err = waitForDB(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("cache not initialized: %w", err)
	}

	app := &App{
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}

	var publisher lessonservice.EventPublisher = events.Noop{}
	if cfg.RabbitMQ.URL != "" {
		conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL, cfg.RabbitMQ.Retries, cfg.RabbitMQ.RetryDelay)
		if err != nil {
			app.closeResources()
			return nil, fmt.Errorf("failed to connect RabbitMQ: %w", err)
		}
		app.conn = conn
		ch, err := rabbitmq.SetupChannel(conn, cfg.RabbitMQ.Exchange, rabbitmq.LessonQueues())
		if err != nil {
			app.closeResources()
			return nil, fmt.Errorf("failed to setup RabbitMQ channel: %w", err)
		}
		app.ch = ch
		publisher = events.NewPublisher(ch, cfg.RabbitMQ.Exchange)
	} else {
		logger.Warn("rabbitmq url is empty, lesson events are disabled")
	}

	hasher, err := password.NewHasher(cfg.PasswordPepper, cfg.BcryptCost)
	if err != nil {
		app.closeResources()
		return nil, err
	}
	maker, err := jwt.NewJWTMaker(cfg.AppPrivateKey, cfg.AccessTTL, cfg.RefreshTTL)
	if err != nil {
		app.closeResources()
		return nil, err
	}

	companies := companyservice.New(db, logger)
	svc := Services{
		Auth:    authservice.New(db, hasher, maker, logger),
		Company: companies,
		User:    userservice.New(db, db, hasher, logger),
		Client:  clientservice.New(db, db, logger),
		Lesson:  lessonservice.New(db, db, db, cacheRedis, publisher, logger, cfg.CacheTTL),
	}

	m := metrics.New(prometheus.DefaultRegisterer, "scheduler")

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg.HTTPServer, svc, m, promhttp.Handler())

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
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
		a.closeResources()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.closeResources()
		return err
	}
}

func (a *App) closeResources() {
	if a.ch != nil {
		if err := a.ch.Close(); err != nil {
			a.logger.Error("failed to close channel", slog.Any("err", err))
		}
	}
	if a.conn != nil {
		if err := a.conn.Close(); err != nil {
			a.logger.Error("failed to close connection", slog.Any("err", err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Error("failed to close cache", slog.Any("err", err))
		}
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close storage", slog.Any("err", err))
	}
}
