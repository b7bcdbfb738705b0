package scheduler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/lesson-scheduler/internal/config"
	"github.com/magabrotheeeer/lesson-scheduler/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/lesson-scheduler/internal/http/handlers/auth/refresh"
	"github.com/magabrotheeeer/lesson-scheduler/internal/http/handlers/auth/register"
	clientcreate "github.com/magabrotheeeer/lesson-scheduler/internal/http/handlers/client/create"
	clientlist "github.com/magabrotheeeer/lesson-scheduler/internal/http/handlers/client/list"
	clientread "github.com/magabrotheeeer/lesson-scheduler/internal/http/handlers/client/read"
	clientremove "github.com/magabrotheeeer/lesson-scheduler/internal/http/handlers/client/remove"
	clientupdate "github.com/magabrotheeeer/lesson-scheduler/internal/http/handlers/client/update"
	companycreate "github.com/magabrotheeeer/lesson-scheduler/internal/http/handlers/company/create"
	companylist "github.com/magabrotheeeer/lesson-scheduler/internal/http/handlers/company/list"
	companyread "github.com/magabrotheeeer/lesson-scheduler/internal/http/handlers/company/read"
	companyupdate "github.com/magabrotheeeer/lesson-scheduler/internal/http/handlers/company/update"
	lessoncreate "github.com/magabrotheeeer/lesson-scheduler/internal/http/handlers/lesson/create"
	lessonlist "github.com/magabrotheeeer/lesson-scheduler/internal/http/handlers/lesson/list"
	lessonread "github.com/magabrotheeeer/lesson-scheduler/internal/http/handlers/lesson/read"
	lessonremove "github.com/magabrotheeeer/lesson-scheduler/internal/http/handlers/lesson/remove"
	lessonupdate "github.com/magabrotheeeer/lesson-scheduler/internal/http/handlers/lesson/update"
	usercreate "github.com/magabrotheeeer/lesson-scheduler/internal/http/handlers/user/create"
	userlist "github.com/magabrotheeeer/lesson-scheduler/internal/http/handlers/user/list"
	userread "github.com/magabrotheeeer/lesson-scheduler/internal/http/handlers/user/read"
	userremove "github.com/magabrotheeeer/lesson-scheduler/internal/http/handlers/user/remove"
	userupdate "github.com/magabrotheeeer/lesson-scheduler/internal/http/handlers/user/update"
	"github.com/magabrotheeeer/lesson-scheduler/internal/http/middlewarectx"
	"github.com/magabrotheeeer/lesson-scheduler/internal/metrics"
	"github.com/magabrotheeeer/lesson-scheduler/internal/models"
	authservice "github.com/magabrotheeeer/lesson-scheduler/internal/services/auth"
	clientservice "github.com/magabrotheeeer/lesson-scheduler/internal/services/client"
	companyservice "github.com/magabrotheeeer/lesson-scheduler/internal/services/company"
	lessonservice "github.com/magabrotheeeer/lesson-scheduler/internal/services/lesson"
	userservice "github.com/magabrotheeeer/lesson-scheduler/internal/services/user"
)

// Services — сервисы, которые обслуживает HTTP-API.
type Services struct {
	Auth    *authservice.Service
	Company *companyservice.Service
	User    *userservice.Service
	Client  *clientservice.Service
	Lesson  *lessonservice.Service
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(
	r chi.Router,
	logger *slog.Logger,
	cfg config.HTTPServer,
	svc Services,
	m *metrics.Metrics,
	metricsHandler http.Handler,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		m.Middleware,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(logger, cfg.RateLimit, cfg.RateBurst))

		// Открытые конечные точки
		r.Post("/login", login.New(logger, svc.Auth, m).ServeHTTP)
		r.Post("/refresh", refresh.New(logger, svc.Auth).ServeHTTP)
		r.Post("/register", register.New(logger, register.RegistrarFunc(
			func(ctx context.Context, in models.RegisterInput) (*models.User, error) {
				return svc.User.Register(ctx, svc.Company, in)
			}), svc.Auth).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(svc.Auth, logger))

			r.Post("/companies", companycreate.New(logger, svc.Company).ServeHTTP)
			r.Get("/companies", companylist.New(logger, svc.Company).ServeHTTP)
			r.Get("/companies/{id}", companyread.New(logger, svc.Company).ServeHTTP)
			r.Put("/companies/{id}", companyupdate.New(logger, svc.Company).ServeHTTP)

			r.Post("/users", usercreate.New(logger, svc.User).ServeHTTP)
			r.Get("/users", userlist.New(logger, svc.User).ServeHTTP)
			r.Get("/users/{id}", userread.New(logger, svc.User).ServeHTTP)
			r.Put("/users/{id}", userupdate.New(logger, svc.User).ServeHTTP)
			r.Delete("/users/{id}", userremove.New(logger, svc.User).ServeHTTP)

			r.Post("/clients", clientcreate.New(logger, svc.Client).ServeHTTP)
			r.Get("/clients", clientlist.New(logger, svc.Client).ServeHTTP)
			r.Get("/clients/{id}", clientread.New(logger, svc.Client).ServeHTTP)
			r.Put("/clients/{id}", clientupdate.New(logger, svc.Client).ServeHTTP)
			r.Delete("/clients/{id}", clientremove.New(logger, svc.Client).ServeHTTP)
			r.Get("/clients/{id}/lessons", lessonlist.NewForClient(logger, svc.Lesson).ServeHTTP)

			r.Post("/lessons", lessoncreate.New(logger, svc.Lesson).ServeHTTP)
			r.Get("/lessons", lessonlist.NewForUser(logger, svc.Lesson).ServeHTTP)
			r.Get("/lessons/{id}", lessonread.New(logger, svc.Lesson).ServeHTTP)
			r.Put("/lessons/{id}", lessonupdate.New(logger, svc.Lesson).ServeHTTP)
			r.Delete("/lessons/{id}", lessonremove.New(logger, svc.Lesson).ServeHTTP)
		})
	})

	r.Handle("/metrics", metricsHandler)
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
