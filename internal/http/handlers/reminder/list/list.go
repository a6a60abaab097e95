// Package list реализует HTTP-обработчик получения списка напоминаний
// текущего пользователя.
//
// По умолчанию возвращаются активные напоминания; параметр ?active=false
// переключает выдачу на деактивированные.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/Rud356/RemindMeServer/internal/http/middlewarectx"
	"github.com/Rud356/RemindMeServer/internal/http/response"
	"github.com/Rud356/RemindMeServer/internal/http/views"
	"github.com/Rud356/RemindMeServer/internal/lib/sl"
	"github.com/Rud356/RemindMeServer/internal/models"
)

// Handler обрабатывает HTTP-запросы на получение списка напоминаний.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики получения списков напоминаний.
type Service interface {
	ListActive(ctx context.Context, authorUID string) ([]*models.Reminder, error)
	ListInactive(ctx context.Context, authorUID string) ([]*models.Reminder, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список напоминаний пользователя
// @Description Возвращает активные напоминания текущего пользователя; ?active=false возвращает деактивированные.
// @Tags Reminders
// @Accept  json
// @Produce  json
// @Param active query bool false "Выдавать активные (по умолчанию true)"
// @Success 200 {array} views.ReminderView "Список напоминаний"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /reminders [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.reminder.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	authorUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || authorUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	var reminders []*models.Reminder
	var err error
	if r.URL.Query().Get("active") == "false" {
		reminders, err = h.service.ListInactive(r.Context(), authorUID)
	} else {
		reminders, err = h.service.ListActive(r.Context(), authorUID)
	}
	if err != nil {
		log.Error("failed to list reminders", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list reminders"))
		return
	}

	log.Info("success to list reminders", slog.Int("count", len(reminders)))
	render.JSON(w, r, response.OKWithData(views.NewReminderViews(reminders)))
}
