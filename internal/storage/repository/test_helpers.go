package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя
func (f *TestDataFactory) CreateUser(t *testing.T, userUID, username, salt, passwordHash, accessToken, email string) {
	_, err := f.storage.DB.Exec(`INSERT INTO users (uid, username, salt, password_hash, access_token, email)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))`,
		userUID, username, salt, passwordHash, accessToken, email)
	require.NoError(t, err)
}

// CreateReminder создает тестовое напоминание и возвращает его ID
func (f *TestDataFactory) CreateReminder(t *testing.T, authorUID, title, description string,
	colorCode int, isActive, isPeriodic bool, triggeredAt time.Time, triggerPeriod int) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO reminders
		(author_uid, title, description, color_code, is_active, is_periodic, triggered_at, trigger_period)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		authorUID, title, description, colorCode, isActive, isPeriodic, triggeredAt, triggerPeriod).Scan(&id)
	require.NoError(t, err)
	return id
}

// LastEditedAt возвращает значение last_edited_at напоминания
func (f *TestDataFactory) LastEditedAt(t *testing.T, id int) time.Time {
	var lastEditedAt time.Time
	err := f.storage.DB.QueryRow(`SELECT last_edited_at FROM reminders WHERE id = $1`, id).Scan(&lastEditedAt)
	require.NoError(t, err)
	return lastEditedAt
}

// setupTestDatabase создает тестовую БД с контейнером PostgreSQL
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(3*time.Minute)),
	)
	require.NoError(t, err, "failed to start container")

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	// Пробуем подключиться несколько раз с ретраями
	var storage *Storage
	for range 10 {
		storage, err = New(connStr)
		if err == nil {
			err = storage.DB.Ping()
			if err == nil {
				break
			}
		}
		time.Sleep(1 * time.Second)
	}
	require.NoError(t, err, "Failed to create storage after retries")

	// Создаем таблицы
	_, err = storage.DB.Exec(`
        DROP TABLE IF EXISTS reminders CASCADE;
        DROP TABLE IF EXISTS users CASCADE;

        CREATE TABLE users (
            uid UUID PRIMARY KEY,
            username VARCHAR(50) NOT NULL UNIQUE,
            salt TEXT NOT NULL,
            password_hash TEXT NOT NULL,
            access_token TEXT NOT NULL UNIQUE,
            email TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );

        CREATE TABLE reminders (
            id SERIAL PRIMARY KEY,
            author_uid UUID NOT NULL REFERENCES users(uid) ON DELETE CASCADE,
            title VARCHAR(65) NOT NULL CHECK (length(title) > 0),
            description VARCHAR(240) NOT NULL DEFAULT '',
            color_code INTEGER NOT NULL CHECK (color_code BETWEEN 0 AND 256 * 256 * 256 - 1),
            is_active BOOLEAN NOT NULL DEFAULT true,
            is_periodic BOOLEAN NOT NULL DEFAULT false,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            last_edited_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            triggered_at TIMESTAMPTZ NOT NULL,
            trigger_period INTEGER NOT NULL DEFAULT 0 CHECK (trigger_period >= 0)
        );

        CREATE INDEX idx_reminders_author_uid ON reminders(author_uid);
        CREATE INDEX idx_reminders_triggered_at ON reminders(triggered_at) WHERE is_active;
    `)
	require.NoError(t, err, "Failed to create tables")

	cleanup := func() {
		if storage != nil && storage.DB != nil {
			_ = storage.DB.Close()
		}
		if pgContainer != nil {
			_ = pgContainer.Terminate(ctx)
		}
	}

	return storage, cleanup
}
