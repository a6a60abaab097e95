// Package deactivate реализует HTTP-обработчик деактивации напоминания по ID.
//
// Деактивация односторонняя и идемпотентная: повторный запрос по уже
// неактивному напоминанию также успешен.
package deactivate

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
	"github.com/Rud356/RemindMeServer/internal/lib/sl"
	"github.com/Rud356/RemindMeServer/internal/models"
)

// Handler обрабатывает HTTP-запросы на деактивацию напоминания.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики напоминаний
}

// Service описывает интерфейс бизнес-логики деактивации напоминания.
type Service interface {
	Deactivate(ctx context.Context, authorUID string, id int) (bool, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Деактивировать напоминание по ID
// @Description Переводит напоминание в неактивное состояние; обратной активации нет.
// @Tags Reminders
// @Accept  json
// @Produce  json
// @Param id path int true "ID напоминания"
// @Success 200 {object} map[string]any "Напоминание деактивировано"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Напоминание не найдено"
// @Failure 500 {object} response.ErrorResponse "Ошибка при деактивации"
// @Router /reminders/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.reminder.deactivate"

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

	deactivated, err := h.service.Deactivate(r.Context(), authorUID, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Error("reminder not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("reminder not found"))
			return
		}
		log.Error("failed to deactivate reminder", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to deactivate reminder"))
		return
	}

	log.Info("success to deactivate reminder", slog.Int("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"id":                   id,
		"has_been_deactivated": deactivated,
	}))
}
