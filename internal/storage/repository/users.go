package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Rud356/RemindMeServer/internal/lib/token"
	"github.com/Rud356/RemindMeServer/internal/models"
)

// RegisterUser сохраняет нового пользователя в базу данных и возвращает его UID.
//
// Токен доступа выдаётся здесь же: внутри одной транзакции значение
// проверяется на отсутствие в таблице и перегенерируется при совпадении.
// Цикл не ограничен сверху — при 128 байтах случайности ожидаемое число
// итераций равно единице, а гонку двух одновременных регистраций
// за один и тот же токен разрешает уникальный индекс на момент вставки.
// Нарушение уникальности (по имени или по токену) возвращается как
// models.ErrAlreadyExists, и регистрацию можно повторить целиком.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	err := s.WithinTx(ctx, func(tx *Storage) error {
		accessToken, err := token.New()
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		for {
			exists, err := tx.accessTokenExists(ctx, accessToken)
			if err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
			if !exists {
				break
			}
			if accessToken, err = token.New(); err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
		}

		query := `INSERT INTO users (uid, username, salt, password_hash, access_token, email)
			  VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
			  RETURNING uid;`
		if err := tx.db.QueryRowContext(ctx, query,
			user.UID, user.Username, user.Salt, user.PasswordHash,
			accessToken, user.Email).Scan(&newUID); err != nil {
			return translateConstraint(op, err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return newUID, nil
}

// GetUserByUsername возвращает пользователя по его username
// или models.ErrNotFound, если такой не зарегистрирован.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, username, salt, password_hash, access_token, email, created_at
		  FROM users
		  WHERE username = $1`
	u := &models.User{}
	row := s.db.QueryRowContext(ctx, query, username)

	var email sql.NullString
	if err := row.Scan(&u.UID, &u.Username, &u.Salt, &u.PasswordHash,
		&u.AccessToken, &email, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if email.Valid {
		u.Email = email.String
	}
	return u, nil
}

// GetUserByAccessToken возвращает пользователя по его токену доступа
// или models.ErrInvalidCredentials, если токен никому не принадлежит.
func (s *Storage) GetUserByAccessToken(ctx context.Context, accessToken string) (*models.User, error) {
	const op = "storage.GetUserByAccessToken"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, username, salt, password_hash, access_token, email, created_at
		  FROM users
		  WHERE access_token = $1`
	u := &models.User{}
	row := s.db.QueryRowContext(ctx, query, accessToken)

	var email sql.NullString
	if err := row.Scan(&u.UID, &u.Username, &u.Salt, &u.PasswordHash,
		&u.AccessToken, &email, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if email.Valid {
		u.Email = email.String
	}
	return u, nil
}

// accessTokenExists сообщает, занят ли токен доступа каким-либо пользователем.
func (s *Storage) accessTokenExists(ctx context.Context, accessToken string) (bool, error) {
	const op = "storage.accessTokenExists"

	query := `SELECT EXISTS (SELECT 1 FROM users WHERE access_token = $1)`
	var exists bool
	if err := s.db.QueryRowContext(ctx, query, accessToken).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}
