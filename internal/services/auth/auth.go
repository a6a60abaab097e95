// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Rud356/RemindMeServer/internal/lib/password"
	"github.com/Rud356/RemindMeServer/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя вместе с выданным токеном
	// доступа и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByUsername возвращает пользователя по имени
	// или models.ErrNotFound, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByAccessToken возвращает пользователя по токену доступа
	// или models.ErrInvalidCredentials, если токен никому не выдан.
	GetUserByAccessToken(ctx context.Context, accessToken string) (*models.User, error)
}

// AuthService отвечает за регистрацию, проверку пароля и разрешение токенов.
type AuthService struct {
	users UserRepository
	log   *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, log *slog.Logger) *AuthService {
	return &AuthService{
		users: users,
		log:   log,
	}
}

// Register создает нового пользователя: генерирует соль, выводит
// PBKDF2-хэш пароля и сохраняет учётную запись одной атомарной вставкой.
//
// Возвращает models.ErrAlreadyExists, если имя пользователя занято.
func (s *AuthService) Register(ctx context.Context, username, rawPassword, email string) (string, error) {
	const op = "auth.Register"

	salt, err := password.NewSalt()
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	user := models.User{
		UID:          uuid.New().String(),
		Username:     username,
		Salt:         salt,
		PasswordHash: password.GetHash(rawPassword, salt),
		Email:        email,
	}

	uid, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		return "", err
	}
	s.log.Info("registered new user", slog.String("username", username))
	return uid, nil
}

// Login проверяет пароль пользователя и возвращает его постоянный токен доступа.
//
// Возвращает models.ErrNotFound для незарегистрированного имени и
// models.ErrUnauthenticated при несовпадении пароля.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (string, error) {
	const op = "auth.Login"

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if !password.CompareHash(user.PasswordHash, rawPassword, user.Salt) {
		return "", fmt.Errorf("%s: %w", op, models.ErrUnauthenticated)
	}
	return user.AccessToken, nil
}

// ResolveToken возвращает UID пользователя, которому принадлежит токен.
//
// Пустой и неизвестный токены дают одинаковый models.ErrInvalidCredentials:
// клиент не должен различать эти случаи.
func (s *AuthService) ResolveToken(ctx context.Context, accessToken string) (string, error) {
	const op = "auth.ResolveToken"

	if accessToken == "" {
		return "", fmt.Errorf("%s: %w", op, models.ErrInvalidCredentials)
	}
	user, err := s.users.GetUserByAccessToken(ctx, accessToken)
	if err != nil {
		return "", err
	}
	return user.UID, nil
}
