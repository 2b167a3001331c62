// Package soundvault собирает приложение: подключения к хранилищам,
// бизнес-сервисы, маршруты и HTTP-сервер с мягкой остановкой.
package soundvault

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/soundvault/soundvault/internal/cache"
	"github.com/soundvault/soundvault/internal/config"
	"github.com/soundvault/soundvault/internal/lib/jwt"
	"github.com/soundvault/soundvault/internal/lib/password"
	"github.com/soundvault/soundvault/internal/lib/rabbitmq"
	"github.com/soundvault/soundvault/internal/migrations"
	authservice "github.com/soundvault/soundvault/internal/services/auth"
	catalogservice "github.com/soundvault/soundvault/internal/services/catalog"
	collectionservice "github.com/soundvault/soundvault/internal/services/collection"
	commentservice "github.com/soundvault/soundvault/internal/services/comment"
	moderationservice "github.com/soundvault/soundvault/internal/services/moderation"
	reportservice "github.com/soundvault/soundvault/internal/services/report"
	subscriptionservice "github.com/soundvault/soundvault/internal/services/subscription"
	"github.com/soundvault/soundvault/internal/storage"
)

// App инкапсулирует HTTP-сервер и ресурсы, требующие закрытия.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
	events *rabbitmq.Publisher
}

// New создает приложение: подключается к PostgreSQL, применяет
// миграции, подключается к Redis и RabbitMQ и регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	events, err := rabbitmq.NewPublisher(cfg.RabbitConnection.URL, cfg.RabbitConnection.Queue)
	if err != nil {
		return nil, err
	}

	codec := password.NewCodec(cfg.Secrets.SecretKey)
	jwtMaker := jwt.NewMaker(cfg.Secrets.SecretKey, cfg.Secrets.TokenTTL)

	services := Services{
		Auth:         authservice.NewAuthService(db, codec, jwtMaker, events, logger),
		Catalog:      catalogservice.NewCatalogService(db, cacheRedis, logger),
		Collection:   collectionservice.NewCollectionService(db, cacheRedis, logger),
		Subscription: subscriptionservice.NewSubscriptionService(db, logger),
		Comment:      commentservice.NewCommentService(db, logger),
		Moderation:   moderationservice.NewModerationService(db, events, logger),
		Report:       reportservice.NewReportService(db, cacheRedis, logger),
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, jwtMaker, db, services)

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		events: events,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
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
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.events.Close()
		_ = a.db.DB.Close()
		return err
	}
}
