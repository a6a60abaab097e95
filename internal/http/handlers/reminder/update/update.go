// Package update реализует HTTP-обработчик частичного обновления напоминания.
//
// Handler принимает JSON-запрос с подмножеством изменяемых полей, валидирует
// его, извлекает UID пользователя из контекста и ID из URL-параметров,
// вызывает бизнес-логику обновления через сервис и возвращает список
// фактически изменённых полей в формате JSON.
package update

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/Rud356/RemindMeServer/internal/http/middlewarectx"
	"github.com/Rud356/RemindMeServer/internal/http/response"
	"github.com/Rud356/RemindMeServer/internal/lib/sl"
	"github.com/Rud356/RemindMeServer/internal/models"
)

// Handler отвечает за обработку запросов на обновление напоминания.
type Handler struct {
	log      *slog.Logger        // Логгер для ведения журналов и ошибок
	service  Service             // Сервис бизнес-логики напоминаний
	validate *validator.Validate // Валидатор для проверки входных данных
}

// Service описывает интерфейс бизнес-логики обновления напоминания.
type Service interface {
	Update(ctx context.Context, authorUID string, id int, entry models.UpdateReminderEntry) ([]string, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Обновить напоминание по ID
// @Description Частично обновляет напоминание: принимаются только поля title, description, color_code, is_periodic, triggered_at, trigger_period.
// @Tags Reminders
// @Accept  json
// @Produce  json
// @Param id path int true "ID напоминания"
// @Param request body models.UpdateReminderEntry true "Изменяемые поля"
// @Success 200 {object} map[string]any "Успешное обновление"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID, пустой набор полей или ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Напоминание не найдено"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при обновлении"
// @Router /reminders/{id} [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.reminder.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var entry models.UpdateReminderEntry
	if err := render.DecodeJSON(r.Body, &entry); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode request"))
		return
	}

	if err := h.validate.Struct(entry); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

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

	updatedFields, err := h.service.Update(r.Context(), authorUID, id, entry)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNoFieldsProvided):
			log.Error("no updatable fields provided", slog.Int("id", id))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("no updatable fields provided"))
		case errors.Is(err, models.ErrValidation):
			log.Error("invalid reminder fields", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid reminder fields"))
		case errors.Is(err, models.ErrNotFound):
			log.Error("reminder not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("reminder not found"))
		default:
			log.Error("failed to update reminder", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not update reminder"))
		}
		return
	}

	log.Info("success to update reminder", slog.Int("id", id), slog.Any("updated fields", updatedFields))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"updated_fields": updatedFields,
	}))
}
