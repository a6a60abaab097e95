// Package read реализует HTTP-обработчик получения напоминания по ID.
//
// Несуществующее и чужое напоминание дают одинаковый ответ 404:
// по ответу нельзя определить, существует ли запись у другого пользователя.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/Rud356/RemindMeServer/internal/http/middlewarectx"
	"github.com/Rud356/RemindMeServer/internal/http/response"
	"github.com/Rud356/RemindMeServer/internal/http/views"
	"github.com/Rud356/RemindMeServer/internal/lib/sl"
	"github.com/Rud356/RemindMeServer/internal/models"
)

// Handler обрабатывает HTTP-запросы на чтение напоминания по идентификатору.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения напоминания.
type Service interface {
	Get(ctx context.Context, authorUID string, id int) (*models.Reminder, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить напоминание по ID
// @Description Возвращает напоминание текущего пользователя, включая деактивированные.
// @Tags Reminders
// @Accept  json
// @Produce  json
// @Param id path int true "ID напоминания"
// @Success 200 {object} views.ReminderView "Напоминание"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Напоминание не найдено"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /reminders/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.reminder.read"

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

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid id format", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	reminder, err := h.service.Get(r.Context(), authorUID, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Error("reminder not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("reminder not found"))
			return
		}
		log.Error("failed to get reminder", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to get reminder"))
		return
	}

	log.Info("success to get reminder", slog.Int("id", id))
	render.JSON(w, r, response.OKWithData(views.NewReminderView(reminder)))
}
