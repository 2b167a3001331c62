// Package soundvault предоставляет маршруты для основного приложения.
package soundvault

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	adminban "github.com/soundvault/soundvault/internal/http/handlers/admin/ban"
	"github.com/soundvault/soundvault/internal/http/handlers/admin/cardcreate"
	"github.com/soundvault/soundvault/internal/http/handlers/admin/publishercreate"
	"github.com/soundvault/soundvault/internal/http/handlers/admin/unban"
	albumcreate "github.com/soundvault/soundvault/internal/http/handlers/album/create"
	artistinfo "github.com/soundvault/soundvault/internal/http/handlers/artist/info"
	artistsearch "github.com/soundvault/soundvault/internal/http/handlers/artist/search"
	"github.com/soundvault/soundvault/internal/http/handlers/auth/login"
	"github.com/soundvault/soundvault/internal/http/handlers/auth/registerartist"
	"github.com/soundvault/soundvault/internal/http/handlers/auth/registerconsumer"
	commentadd "github.com/soundvault/soundvault/internal/http/handlers/comment/add"
	commentinfo "github.com/soundvault/soundvault/internal/http/handlers/comment/info"
	commentlist "github.com/soundvault/soundvault/internal/http/handlers/comment/list"
	commentremove "github.com/soundvault/soundvault/internal/http/handlers/comment/remove"
	"github.com/soundvault/soundvault/internal/http/handlers/health"
	playlistcreate "github.com/soundvault/soundvault/internal/http/handlers/playlist/create"
	playlistinfo "github.com/soundvault/soundvault/internal/http/handlers/playlist/info"
	playlistremove "github.com/soundvault/soundvault/internal/http/handlers/playlist/remove"
	playlistsearch "github.com/soundvault/soundvault/internal/http/handlers/playlist/search"
	reportmonthly "github.com/soundvault/soundvault/internal/http/handlers/report/monthly"
	songadd "github.com/soundvault/soundvault/internal/http/handlers/song/add"
	songinfo "github.com/soundvault/soundvault/internal/http/handlers/song/info"
	songsearch "github.com/soundvault/soundvault/internal/http/handlers/song/search"
	songstream "github.com/soundvault/soundvault/internal/http/handlers/song/stream"
	subscriptioncreate "github.com/soundvault/soundvault/internal/http/handlers/subscription/create"
	subscriptionlist "github.com/soundvault/soundvault/internal/http/handlers/subscription/list"
	"github.com/soundvault/soundvault/internal/http/middlewarectx"
	"github.com/soundvault/soundvault/internal/lib/jwt"
	"github.com/soundvault/soundvault/internal/metrics"
	"github.com/soundvault/soundvault/internal/models"
	authservice "github.com/soundvault/soundvault/internal/services/auth"
	catalogservice "github.com/soundvault/soundvault/internal/services/catalog"
	collectionservice "github.com/soundvault/soundvault/internal/services/collection"
	commentservice "github.com/soundvault/soundvault/internal/services/comment"
	moderationservice "github.com/soundvault/soundvault/internal/services/moderation"
	reportservice "github.com/soundvault/soundvault/internal/services/report"
	subscriptionservice "github.com/soundvault/soundvault/internal/services/subscription"
	"github.com/soundvault/soundvault/internal/storage"
)

// Services собирает бизнес-сервисы приложения для регистрации маршрутов.
type Services struct {
	Auth         *authservice.AuthService
	Catalog      *catalogservice.CatalogService
	Collection   *collectionservice.CollectionService
	Subscription *subscriptionservice.SubscriptionService
	Comment      *commentservice.CommentService
	Moderation   *moderationservice.ModerationService
	Report       *reportservice.ReportService
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, jwtMaker jwt.Maker, db *storage.Storage, s Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		metrics.Middleware,
	)

	// Открытые конечные точки
	r.Post("/dbproj/consumer", registerconsumer.New(logger, s.Auth).ServeHTTP)
	r.Put("/dbproj/user", login.New(logger, s.Auth).ServeHTTP)
	r.Get("/health", health.New(logger, db).ServeHTTP)

	// Группа с JWT аутентификацией: роль вычисляется на каждый запрос
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.Authenticator(jwtMaker, db, logger))
		r.Use(middlewarectx.RateLimitMiddleware(logger, rate.Limit(100), 200))

		// Администратор
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RequireRoles(logger, models.RoleAdministrator))
			r.Post("/dbproj/artist", registerartist.New(logger, s.Auth).ServeHTTP)
			r.Post("/dbproj/card", cardcreate.New(logger, s.Moderation).ServeHTTP)
			r.Post("/dbproj/publisher", publishercreate.New(logger, s.Moderation).ServeHTTP)
			r.Post("/dbproj/ban", adminban.New(logger, s.Moderation).ServeHTTP)
			r.Put("/dbproj/unban/{user_id}", unban.New(logger, s.Moderation).ServeHTTP)
		})

		// Исполнитель
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RequireRoles(logger, models.RoleArtist))
			r.Post("/dbproj/song", songadd.New(logger, s.Catalog).ServeHTTP)
			r.Post("/dbproj/album", albumcreate.New(logger, s.Collection).ServeHTTP)
		})

		// Чтение каталога: потребитель или администратор
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RequireRoles(logger, models.RoleConsumer, models.RoleAdministrator))
			r.Get("/dbproj/song/{keyword}", songsearch.New(logger, s.Catalog).ServeHTTP)
			r.Get("/dbproj/song_info/{song_id}", songinfo.New(logger, s.Catalog).ServeHTTP)
			r.Get("/dbproj/artist/{keyword}", artistsearch.New(logger, s.Catalog).ServeHTTP)
			r.Get("/dbproj/artist_info/{artist_id}", artistinfo.New(logger, s.Catalog).ServeHTTP)
			r.Get("/dbproj/comment/{song_id}", commentlist.New(logger, s.Comment).ServeHTTP)
			r.Get("/dbproj/comment_info/{comment_id}", commentinfo.New(logger, s.Comment).ServeHTTP)
			r.Delete("/dbproj/comment/{comment_id}", commentremove.New(logger, s.Comment).ServeHTTP)
		})

		// Потребитель (премиум проходит как потребитель)
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RequireRoles(logger, models.RoleConsumer))
			r.Put("/dbproj/{song_id}", songstream.New(logger, s.Catalog).ServeHTTP)
			r.Get("/dbproj/playlist/{keyword}", playlistsearch.New(logger, s.Collection).ServeHTTP)
			r.Get("/dbproj/playlist_info/{playlist_id}", playlistinfo.New(logger, s.Collection).ServeHTTP)
			r.Delete("/dbproj/playlist/{playlist_id}", playlistremove.New(logger, s.Collection).ServeHTTP)
			r.Post("/dbproj/subscription", subscriptioncreate.New(logger, s.Subscription).ServeHTTP)
			r.Get("/dbproj/subscription", subscriptionlist.New(logger, s.Subscription).ServeHTTP)
			r.Post("/dbproj/comment/{song_id}", commentadd.New(logger, s.Comment).ServeHTTP)
			r.Post("/dbproj/comment/{song_id}/{parent_id}", commentadd.New(logger, s.Comment).ServeHTTP)
			r.Get("/dbproj/report/{year_month}", reportmonthly.New(logger, s.Report).ServeHTTP)
		})

		// Только премиум-потребитель
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RequireRoles(logger, models.RolePremiumConsumer))
			r.Post("/dbproj/playlist", playlistcreate.New(logger, s.Collection).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
