// Package views содержит внешние представления доменных моделей для
// JSON-ответов: цвет напоминания наружу отдаётся HEX-строкой.
package views

import (
	"time"

	"github.com/Rud356/RemindMeServer/internal/lib/colorhex"
	"github.com/Rud356/RemindMeServer/internal/models"
)

// ReminderView — представление напоминания в ответах API.
type ReminderView struct {
	ID            int       `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	ColorCode     string    `json:"color_code"`
	IsActive      bool      `json:"is_active"`
	IsPeriodic    bool      `json:"is_periodic"`
	CreatedAt     time.Time `json:"created_at"`
	LastEditedAt  time.Time `json:"last_edited_at"`
	TriggeredAt   time.Time `json:"triggered_at"`
	TriggerPeriod int       `json:"trigger_period"`
}

// NewReminderView строит представление одного напоминания.
func NewReminderView(r *models.Reminder) ReminderView {
	return ReminderView{
		ID:            r.ID,
		Title:         r.Title,
		Description:   r.Description,
		ColorCode:     colorhex.ToHex(r.ColorCode),
		IsActive:      r.IsActive,
		IsPeriodic:    r.IsPeriodic,
		CreatedAt:     r.CreatedAt,
		LastEditedAt:  r.LastEditedAt,
		TriggeredAt:   r.TriggeredAt,
		TriggerPeriod: r.TriggerPeriod,
	}
}

// NewReminderViews строит представления для списка напоминаний.
func NewReminderViews(reminders []*models.Reminder) []ReminderView {
	result := make([]ReminderView, 0, len(reminders))
	for _, r := range reminders {
		result = append(result, NewReminderView(r))
	}
	return result
}
