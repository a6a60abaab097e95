// Package services содержит бизнес-логику управления жизненным циклом
// напоминаний: создание с проверкой полей, частичное обновление по
// закрытому набору полей, одностороннюю деактивацию и чтение с кешем.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Rud356/RemindMeServer/internal/lib/colorhex"
	"github.com/Rud356/RemindMeServer/internal/lib/sl"
	"github.com/Rud356/RemindMeServer/internal/models"
)

// ReminderRepository определяет методы для работы с напоминаниями в хранилище.
type ReminderRepository interface {
	// CreateReminder добавляет новое напоминание и возвращает его ID.
	CreateReminder(ctx context.Context, reminder models.Reminder) (int, error)
	// GetReminderByID возвращает напоминание по ID и UID автора;
	// чужие и несуществующие ID дают одинаковый models.ErrNotFound.
	GetReminderByID(ctx context.Context, authorUID string, id int) (*models.Reminder, error)
	// ListActiveReminders возвращает активные напоминания пользователя.
	ListActiveReminders(ctx context.Context, authorUID string) ([]*models.Reminder, error)
	// ListInactiveReminders возвращает деактивированные напоминания пользователя.
	ListInactiveReminders(ctx context.Context, authorUID string) ([]*models.Reminder, error)
	// UpdateReminderFields атомарно обновляет переданные поля и возвращает
	// количество изменённых строк.
	UpdateReminderFields(ctx context.Context, authorUID string, id int,
		entry models.UpdateReminderEntry, colorCode *int, editedAt time.Time) (int, error)
	// DeactivateReminder гасит напоминание и возвращает количество
	// изменённых строк.
	DeactivateReminder(ctx context.Context, authorUID string, id int, editedAt time.Time) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// ReminderService реализует бизнес-логику работы с напоминаниями, включая кеширование.
type ReminderService struct {
	repo  ReminderRepository
	cache Cache
	log   *slog.Logger
}

// NewReminderService создает новый экземпляр ReminderService.
func NewReminderService(repo ReminderRepository, cache Cache, log *slog.Logger) *ReminderService {
	return &ReminderService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// cacheKey строит ключ кеша, привязанный к автору: попадание в кеш
// не должно раскрывать чужие напоминания.
func cacheKey(authorUID string, id int) string {
	return fmt.Sprintf("reminder:%s:%d", authorUID, id)
}

// Create создает новое активное напоминание пользователя и возвращает его ID.
//
// HEX-цвет конвертируется во внутреннее целое до вставки; любая ошибка
// конверсии или нарушение ограничения при вставке дают models.ErrValidation,
// и запись не создаётся.
func (s *ReminderService) Create(ctx context.Context, authorUID string, req models.DummyReminder) (int, error) {
	colorCode, err := colorhex.ToInt(req.ColorCode)
	if err != nil {
		return 0, err
	}

	reminder := models.Reminder{
		AuthorUID:     authorUID,
		Title:         req.Title,
		Description:   req.Description,
		ColorCode:     colorCode,
		IsActive:      true,
		IsPeriodic:    req.IsPeriodic,
		TriggeredAt:   req.TriggeredAt,
		TriggerPeriod: req.TriggerPeriod,
	}

	id, err := s.repo.CreateReminder(ctx, reminder)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new reminder", slog.Int("id", id))
	return id, nil
}

// Get возвращает напоминание по ID, используя кеш или репозиторий.
//
// Деактивированные напоминания остаются доступными по ID.
func (s *ReminderService) Get(ctx context.Context, authorUID string, id int) (*models.Reminder, error) {
	var result *models.Reminder
	key := cacheKey(authorUID, id)
	found, err := s.cache.Get(key, &result)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", key), sl.Err(err))
	}
	if found && result != nil {
		return result, nil
	}

	result, err = s.repo.GetReminderByID(ctx, authorUID, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(key, result, time.Hour); err != nil {
		s.log.Warn("failed to cache reminder", slog.String("key", key), sl.Err(err))
	}
	return result, nil
}

// ListActive возвращает список активных напоминаний пользователя.
func (s *ReminderService) ListActive(ctx context.Context, authorUID string) ([]*models.Reminder, error) {
	return s.repo.ListActiveReminders(ctx, authorUID)
}

// ListInactive возвращает список деактивированных напоминаний пользователя.
func (s *ReminderService) ListInactive(ctx context.Context, authorUID string) ([]*models.Reminder, error) {
	return s.repo.ListInactiveReminders(ctx, authorUID)
}

// Update применяет частичное обновление к напоминанию и возвращает
// имена фактически изменённых полей.
//
// Допустимый набор полей закрыт структурой models.UpdateReminderEntry.
// Пустой набор изменений отклоняется с models.ErrNoFieldsProvided до
// обращения к хранилищу, поэтому last_edited_at остаётся нетронутым.
// Цвет, если передан, конвертируется и проверяется до применения.
func (s *ReminderService) Update(ctx context.Context, authorUID string, id int,
	entry models.UpdateReminderEntry) ([]string, error) {
	if entry.IsEmpty() {
		return nil, models.ErrNoFieldsProvided
	}

	var colorCode *int
	if entry.ColorCode != nil {
		value, err := colorhex.ToInt(*entry.ColorCode)
		if err != nil {
			return nil, err
		}
		colorCode = &value
	}

	rows, err := s.repo.UpdateReminderFields(ctx, authorUID, id, entry, colorCode, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, models.ErrNotFound
	}

	key := cacheKey(authorUID, id)
	if err := s.cache.Invalidate(key); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", key), sl.Err(err))
	}

	modified := make([]string, 0, 6)
	if entry.Title != nil {
		modified = append(modified, "title")
	}
	if entry.Description != nil {
		modified = append(modified, "description")
	}
	if entry.ColorCode != nil {
		modified = append(modified, "color_code")
	}
	if entry.IsPeriodic != nil {
		modified = append(modified, "is_periodic")
	}
	if entry.TriggeredAt != nil {
		modified = append(modified, "triggered_at")
	}
	if entry.TriggerPeriod != nil {
		modified = append(modified, "trigger_period")
	}

	s.log.Info("updated reminder", slog.Int("id", id), slog.Any("fields", modified))
	return modified, nil
}

// Deactivate переводит напоминание в неактивное состояние.
//
// Переход односторонний: пути обратной активации нет. Повторная
// деактивация уже неактивного напоминания так же успешна и так же
// возвращает true: на уровне данных особого случая для неё нет.
func (s *ReminderService) Deactivate(ctx context.Context, authorUID string, id int) (bool, error) {
	rows, err := s.repo.DeactivateReminder(ctx, authorUID, id, time.Now().UTC())
	if err != nil {
		return false, err
	}
	if rows == 0 {
		return false, models.ErrNotFound
	}

	key := cacheKey(authorUID, id)
	if err := s.cache.Invalidate(key); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", key), sl.Err(err))
	}

	s.log.Info("deactivated reminder", slog.Int("id", id))
	return true, nil
}
