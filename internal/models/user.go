// Package models содержит доменную модель пользователя системы,
// включающую учётные данные, соль и хэш пароля, а также постоянный
// токен доступа. Структура используется в бизнес‑логике и при работе
// с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
//
// Поля Salt, PasswordHash и AccessToken задаются один раз при регистрации
// и далее не изменяются: смена пароля и ротация токена не предусмотрены.
type User struct {
	UID          string    // Уникальный идентификатор пользователя
	Username     string    // Имя пользователя (уникальное)
	Salt         string    // Случайная соль, сгенерированная при регистрации
	PasswordHash string    // PBKDF2-хэш пароля пользователя
	AccessToken  string    // Постоянный токен доступа (уникальный)
	Email        string    // Электронная почта для уведомлений, может быть пустой
	CreatedAt    time.Time // Дата создания учётной записи
}
