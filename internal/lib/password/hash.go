// Package password реализует функции для хеширования и проверки паролей.
//
// NewSalt генерирует случайную соль для нового пользователя.
// GetHash выводит PBKDF2-хэш пароля для хранения в базе данных.
// CompareHash проверяет соответствие пароля сохранённому хэшу.
package password

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// saltBytes — длина соли в байтах до кодирования (512 бит энтропии).
	saltBytes = 64
	// iterations — число итераций PBKDF2.
	iterations = 10000
	// keyLength — длина выводимого ключа в байтах (SHA-256).
	keyLength = 32
)

// NewSalt возвращает случайную соль, закодированную в URL-safe base64.
//
// Соль генерируется один раз при регистрации и никогда не переиспользуется.
func NewSalt() (string, error) {
	const op = "password.NewSalt"
	raw := make([]byte, saltBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// GetHash принимает пароль пользователя и соль и возвращает
// hex-представление его PBKDF2-HMAC-SHA256 хэша.
//
// Используется для безопасного хранения паролей в базе данных.
func GetHash(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), iterations, keyLength, sha256.New)
	return hex.EncodeToString(key)
}

// CompareHash заново выводит хэш от введённого пароля с сохранённой солью
// и сравнивает его с исходным хэшем.
//
// Возвращает true, если пароль соответствует хэшу.
func CompareHash(originalHash, externalPassword, salt string) bool {
	return GetHash(externalPassword, salt) == originalHash
}
