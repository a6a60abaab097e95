package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Rud356/RemindMeServer/internal/models"
)

// CreateReminder вставляет новую запись напоминания и возвращает её ID.
//
// Вставка атомарна: при нарушении любого ограничения (пустой заголовок,
// цвет вне диапазона, отрицательный период) транзакция откатывается,
// частичной записи не остаётся, а наружу уходит models.ErrValidation.
func (s *Storage) CreateReminder(ctx context.Context, reminder models.Reminder) (int, error) {
	const op = "storage.CreateReminder"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int
	err := s.WithinTx(ctx, func(tx *Storage) error {
		query := `INSERT INTO reminders (author_uid, title, description, color_code,
			      is_active, is_periodic, triggered_at, trigger_period)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id`
		if err := tx.db.QueryRowContext(ctx, query,
			reminder.AuthorUID, reminder.Title, reminder.Description, reminder.ColorCode,
			reminder.IsActive, reminder.IsPeriodic, reminder.TriggeredAt,
			reminder.TriggerPeriod).Scan(&newID); err != nil {
			return translateConstraint(op, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newID, nil
}

// GetReminderByID возвращает напоминание по его ID и UID автора.
//
// Возвращает models.ErrNotFound и когда записи с таким ID нет, и когда
// она принадлежит другому пользователю: оба случая неразличимы для
// вызывающей стороны. Деактивированные напоминания по ID доступны.
func (s *Storage) GetReminderByID(ctx context.Context, authorUID string, id int) (*models.Reminder, error) {
	const op = "storage.GetReminderByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, author_uid, title, description, color_code, is_active,
		      is_periodic, created_at, last_edited_at, triggered_at, trigger_period
		  FROM reminders
		  WHERE id = $1 AND author_uid = $2`
	row := s.db.QueryRowContext(ctx, query, id, authorUID)

	var result models.Reminder
	if err := row.Scan(&result.ID, &result.AuthorUID, &result.Title, &result.Description,
		&result.ColorCode, &result.IsActive, &result.IsPeriodic, &result.CreatedAt,
		&result.LastEditedAt, &result.TriggeredAt, &result.TriggerPeriod); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ListActiveReminders возвращает список активных напоминаний пользователя.
func (s *Storage) ListActiveReminders(ctx context.Context, authorUID string) ([]*models.Reminder, error) {
	return s.listReminders(ctx, "storage.ListActiveReminders", authorUID, true)
}

// ListInactiveReminders возвращает список деактивированных напоминаний пользователя.
func (s *Storage) ListInactiveReminders(ctx context.Context, authorUID string) ([]*models.Reminder, error) {
	return s.listReminders(ctx, "storage.ListInactiveReminders", authorUID, false)
}

func (s *Storage) listReminders(ctx context.Context, op, authorUID string, isActive bool) ([]*models.Reminder, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, author_uid, title, description, color_code, is_active,
		      is_periodic, created_at, last_edited_at, triggered_at, trigger_period
		  FROM reminders
		  WHERE author_uid = $1 AND is_active = $2
		  ORDER BY id`
	rows, err := s.db.QueryContext(ctx, query, authorUID, isActive)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Reminder
	for rows.Next() {
		var item models.Reminder
		if err := rows.Scan(&item.ID, &item.AuthorUID, &item.Title, &item.Description,
			&item.ColorCode, &item.IsActive, &item.IsPeriodic, &item.CreatedAt,
			&item.LastEditedAt, &item.TriggeredAt, &item.TriggerPeriod); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateReminderFields обновляет переданные поля напоминания одной
// атомарной командой и возвращает количество изменённых строк.
//
// Неуказанные поля (nil) сохраняют прежние значения за счёт COALESCE.
// last_edited_at обновляется в той же команде. Ноль изменённых строк
// означает, что напоминание не существует или принадлежит другому
// пользователю. Нарушение ограничения откатывает всё обновление целиком.
func (s *Storage) UpdateReminderFields(ctx context.Context, authorUID string, id int,
	entry models.UpdateReminderEntry, colorCode *int, editedAt time.Time) (int, error) {
	const op = "storage.UpdateReminderFields"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var rowsAffected int64
	err := s.WithinTx(ctx, func(tx *Storage) error {
		query := `UPDATE reminders
			  SET title = COALESCE($1, title),
			      description = COALESCE($2, description),
			      color_code = COALESCE($3, color_code),
			      is_periodic = COALESCE($4, is_periodic),
			      triggered_at = COALESCE($5, triggered_at),
			      trigger_period = COALESCE($6, trigger_period),
			      last_edited_at = $7
			  WHERE id = $8 AND author_uid = $9`
		result, err := tx.db.ExecContext(ctx, query,
			entry.Title, entry.Description, colorCode, entry.IsPeriodic,
			entry.TriggeredAt, entry.TriggerPeriod, editedAt, id, authorUID)
		if err != nil {
			return translateConstraint(op, err)
		}
		rowsAffected, err = result.RowsAffected()
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return int(rowsAffected), nil
}

// DeactivateReminder переводит напоминание в неактивное состояние и
// обновляет last_edited_at; возвращает количество изменённых строк.
//
// Повторная деактивация уже неактивного напоминания также изменяет
// одну строку: особого случая для этого нет.
func (s *Storage) DeactivateReminder(ctx context.Context, authorUID string, id int, editedAt time.Time) (int, error) {
	const op = "storage.DeactivateReminder"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var rowsAffected int64
	err := s.WithinTx(ctx, func(tx *Storage) error {
		query := `UPDATE reminders
			  SET is_active = false,
			      last_edited_at = $1
			  WHERE id = $2 AND author_uid = $3`
		result, err := tx.db.ExecContext(ctx, query, editedAt, id, authorUID)
		if err != nil {
			return translateConstraint(op, err)
		}
		rowsAffected, err = result.RowsAffected()
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return int(rowsAffected), nil
}

// FindDueReminders находит активные напоминания, время срабатывания
// которых уже наступило, вместе с адресами их авторов.
func (s *Storage) FindDueReminders(ctx context.Context, now time.Time) ([]*models.ReminderInfo, error) {
	const op = "storage.FindDueReminders"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT r.id, u.username, COALESCE(u.email, ''), r.title, r.description,
		      r.triggered_at, r.is_periodic, r.trigger_period
		  FROM reminders r
		  JOIN users u ON r.author_uid = u.uid
		  WHERE r.is_active = true
		    AND r.triggered_at <= $1`
	rows, err := s.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ReminderInfo
	for rows.Next() {
		var ri models.ReminderInfo
		if err = rows.Scan(&ri.ReminderID, &ri.Username, &ri.Email, &ri.Title,
			&ri.Description, &ri.TriggeredAt, &ri.IsPeriodic, &ri.TriggerPeriod); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &ri)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// RescheduleReminder сдвигает время срабатывания периодического
// напоминания на его период в днях.
func (s *Storage) RescheduleReminder(ctx context.Context, id int) error {
	const op = "storage.RescheduleReminder"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	return s.WithinTx(ctx, func(tx *Storage) error {
		query := `UPDATE reminders
			  SET triggered_at = triggered_at + (trigger_period || ' days')::interval
			  WHERE id = $1`
		if _, err := tx.db.ExecContext(ctx, query, id); err != nil {
			return translateConstraint(op, err)
		}
		return nil
	})
}

// DeactivateFiredReminder гасит сработавшее напоминание без привязки к
// автору. Используется только планировщиком уведомлений.
func (s *Storage) DeactivateFiredReminder(ctx context.Context, id int, editedAt time.Time) error {
	const op = "storage.DeactivateFiredReminder"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	return s.WithinTx(ctx, func(tx *Storage) error {
		query := `UPDATE reminders
			  SET is_active = false,
			      last_edited_at = $1
			  WHERE id = $2`
		if _, err := tx.db.ExecContext(ctx, query, editedAt, id); err != nil {
			return translateConstraint(op, err)
		}
		return nil
	})
}
