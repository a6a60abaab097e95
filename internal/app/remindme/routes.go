package remindme

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Rud356/RemindMeServer/internal/http/handlers/auth/login"
	"github.com/Rud356/RemindMeServer/internal/http/handlers/auth/register"
	"github.com/Rud356/RemindMeServer/internal/http/handlers/health"
	"github.com/Rud356/RemindMeServer/internal/http/handlers/reminder/create"
	"github.com/Rud356/RemindMeServer/internal/http/handlers/reminder/deactivate"
	"github.com/Rud356/RemindMeServer/internal/http/handlers/reminder/list"
	"github.com/Rud356/RemindMeServer/internal/http/handlers/reminder/read"
	"github.com/Rud356/RemindMeServer/internal/http/handlers/reminder/update"
	"github.com/Rud356/RemindMeServer/internal/http/middlewarectx"
	authservice "github.com/Rud356/RemindMeServer/internal/services/auth"
	reminderservice "github.com/Rud356/RemindMeServer/internal/services/reminder"
	"github.com/Rud356/RemindMeServer/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, db *repository.Storage,
	authService *authservice.AuthService, reminderService *reminderservice.ReminderService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)
		r.Get("/health", health.New(logger, db).ServeHTTP)

		// Группа с проверкой токена доступа
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.TokenMiddleware(authService, logger))
			r.Post("/reminders", create.New(logger, reminderService).ServeHTTP)
			r.Get("/reminders", list.New(logger, reminderService).ServeHTTP)
			r.Get("/reminders/{id}", read.New(logger, reminderService).ServeHTTP)
			r.Patch("/reminders/{id}", update.New(logger, reminderService).ServeHTTP)
			r.Delete("/reminders/{id}", deactivate.New(logger, reminderService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
