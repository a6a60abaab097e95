// Package services содержит службу планировщика, которая периодически
// ищет сработавшие напоминания и публикует уведомления о них в брокер.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Rud356/RemindMeServer/internal/lib/sl"
	"github.com/Rud356/RemindMeServer/internal/models"
	"github.com/Rud356/RemindMeServer/internal/rabbitmq"
)

// ReminderFinder описывает операции хранилища, нужные планировщику.
type ReminderFinder interface {
	FindDueReminders(ctx context.Context, now time.Time) ([]*models.ReminderInfo, error)
	RescheduleReminder(ctx context.Context, id int) error
	DeactivateFiredReminder(ctx context.Context, id int, editedAt time.Time) error
}

// Publisher публикует сообщение в обменник брокера.
type Publisher interface {
	Publish(exchange, routingKey string, message any) error
}

// SchedulerService находит сработавшие напоминания, рассылает по ним
// уведомления и переводит их в следующее состояние: периодические
// сдвигаются на период вперёд, разовые деактивируются.
type SchedulerService struct {
	repo      ReminderFinder
	publisher Publisher
	log       *slog.Logger
}

// New создает новый экземпляр SchedulerService.
func New(repo ReminderFinder, publisher Publisher, log *slog.Logger) *SchedulerService {
	return &SchedulerService{repo: repo, publisher: publisher, log: log}
}

// Run запускает цикл планировщика с заданным интервалом до отмены контекста.
func (s *SchedulerService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopped")
			return
		case <-ticker.C:
			if err := s.ProcessDueReminders(ctx); err != nil {
				s.log.Error("failed to process due reminders", sl.Err(err))
			}
		}
	}
}

// ProcessDueReminders выполняет один проход планировщика: находит все
// сработавшие напоминания, публикует уведомления и обновляет их состояние.
//
// Ошибка по одному напоминанию не прерывает проход: остальные
// обрабатываются, а первая ошибка возвращается после завершения.
func (s *SchedulerService) ProcessDueReminders(ctx context.Context) error {
	const op = "scheduler.ProcessDueReminders"

	now := time.Now().UTC()
	due, err := s.repo.FindDueReminders(ctx, now)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if len(due) == 0 {
		return nil
	}
	s.log.Info("found due reminders", slog.Int("count", len(due)))

	var firstErr error
	for _, info := range due {
		if err := s.publisher.Publish(rabbitmq.Exchange, rabbitmq.RoutingKeyDue, info); err != nil {
			s.log.Error("failed to publish notification",
				slog.Int("reminder_id", info.ReminderID), sl.Err(err))
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: %w", op, err)
			}
			continue
		}

		if info.IsPeriodic && info.TriggerPeriod > 0 {
			err = s.repo.RescheduleReminder(ctx, info.ReminderID)
		} else {
			err = s.repo.DeactivateFiredReminder(ctx, info.ReminderID, now)
		}
		if err != nil {
			s.log.Error("failed to advance reminder state",
				slog.Int("reminder_id", info.ReminderID), sl.Err(err))
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: %w", op, err)
			}
		}
	}
	return firstErr
}
