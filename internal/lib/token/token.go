// Package token генерирует непрозрачные токены доступа.
//
// Токен — это URL-safe base64 от 128 байт криптографически стойкой
// случайности. Он не содержит никакой информации о пользователе:
// единственный способ сопоставить токен с учётной записью — поиск
// в базе данных.
package token

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// tokenBytes — количество байт случайности в токене до кодирования.
const tokenBytes = 128

// New возвращает новый случайный токен доступа.
//
// Уникальность значения здесь не гарантируется: вызывающая сторона
// обязана проверить токен по хранилищу и перегенерировать при коллизии.
func New() (string, error) {
	const op = "token.New"
	raw := make([]byte, tokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}
