// Package models содержит доменные структуры, описывающие напоминание,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// Reminder представляет собой основную модель напоминания,
// используемую в бизнес-логике и хранилище.
//
// ColorCode хранится как целое число в диапазоне [0, 256^3 - 1]
// (упакованный RGB); наружу цвет отдаётся шестизначной HEX-строкой.
type Reminder struct {
	ID            int       // Идентификатор напоминания
	AuthorUID     string    // UID пользователя, создавшего напоминание
	Title         string    // Заголовок, 1-65 символов
	Description   string    // Описание, до 240 символов
	ColorCode     int       // Цвет в формате упакованного RGB
	IsActive      bool      // Активно ли напоминание (рассылаются ли уведомления)
	IsPeriodic    bool      // Повторяется ли напоминание
	CreatedAt     time.Time // Когда напоминание создано
	LastEditedAt  time.Time // Когда напоминание последний раз изменялось
	TriggeredAt   time.Time // Когда напоминание сработает в первый/следующий раз
	TriggerPeriod int       // Через сколько дней напоминание сработает снова
}

// DummyReminder используется для приёма данных из JSON-запроса на создание,
// прежде чем конвертировать их в Reminder. Цвет приходит HEX-строкой,
// чтобы его можно было проверить и преобразовать вручную.
type DummyReminder struct {
	Title         string    `json:"title" validate:"required,max=65"`      // Заголовок
	Description   string    `json:"description" validate:"max=240"`        // Описание
	ColorCode     string    `json:"color_code" validate:"required"`        // Цвет, HEX-строка RRGGBB
	TriggeredAt   time.Time `json:"triggered_at" validate:"required"`      // Время первого срабатывания
	IsPeriodic    bool      `json:"is_periodic"`                           // Повторяемость
	TriggerPeriod int       `json:"trigger_period" validate:"gte=0"`       // Период в днях (>= 0)
}

// UpdateReminderEntry описывает частичное обновление напоминания.
//
// Набор полей закрыт и совпадает с разрешённым списком изменяемых полей:
// title, description, color_code, is_periodic, triggered_at, trigger_period.
// Неуказанные поля (nil) не изменяются; поля вне этого набора сервер
// игнорирует на этапе декодирования JSON.
type UpdateReminderEntry struct {
	Title         *string    `json:"title" validate:"omitempty,min=1,max=65"`
	Description   *string    `json:"description" validate:"omitempty,max=240"`
	ColorCode     *string    `json:"color_code"`
	IsPeriodic    *bool      `json:"is_periodic"`
	TriggeredAt   *time.Time `json:"triggered_at"`
	TriggerPeriod *int       `json:"trigger_period" validate:"omitempty,gte=0"`
}

// IsEmpty сообщает, что ни одно изменяемое поле не было передано.
func (u UpdateReminderEntry) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.ColorCode == nil &&
		u.IsPeriodic == nil && u.TriggeredAt == nil && u.TriggerPeriod == nil
}

// ReminderInfo объединяет данные напоминания и адрес его автора.
// Используется планировщиком уведомлений при публикации сообщений.
type ReminderInfo struct {
	ReminderID    int       `json:"reminder_id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	TriggeredAt   time.Time `json:"triggered_at"`
	IsPeriodic    bool      `json:"is_periodic"`
	TriggerPeriod int       `json:"trigger_period"`
}
