// Package colorhex реализует преобразование цвета между внешним
// HEX-представлением (строка RRGGBB) и внутренним целочисленным
// значением в диапазоне [0, 256^3 - 1].
package colorhex

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Rud356/RemindMeServer/internal/models"
)

// MaxColor — верхняя граница упакованного RGB-цвета (FFFFFF).
const MaxColor = 256*256*256 - 1

// ToInt разбирает HEX-строку цвета и проверяет границы.
//
// Возвращает models.ErrValidation, если строка не является числом
// в шестнадцатеричной записи или значение выходит за диапазон
// [0, MaxColor].
func ToInt(hexColor string) (int, error) {
	const op = "colorhex.ToInt"
	value, err := strconv.ParseInt(strings.TrimSpace(hexColor), 16, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q: %w", op, hexColor, models.ErrValidation)
	}
	if value < 0 || value > MaxColor {
		return 0, fmt.Errorf("%s: %q out of range: %w", op, hexColor, models.ErrValidation)
	}
	return int(value), nil
}

// ToHex форматирует целочисленный цвет как HEX-строку из шести символов
// в верхнем регистре с ведущими нулями.
func ToHex(color int) string {
	return strings.ToUpper(fmt.Sprintf("%06x", color))
}
