// Package repository реализует хранилище данных на основе PostgreSQL
// для управления пользователями и напоминаниями. Предоставляет методы
// создания, чтения, обновления и деактивации записей, а также выдачу
// уникальных токенов доступа.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// DBTX — подмножество database/sql, используемое методами хранилища.
// Интерфейсу удовлетворяют и *sql.DB, и *sql.Tx, поэтому один и тот же
// метод может выполняться как вне, так и внутри транзакции.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с пользователями и напоминаниями.
type Storage struct {
	DB *sql.DB

	db DBTX
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
		db: db,
	}, nil
}

// WithinTx открывает транзакцию, выполняет fn с копией хранилища,
// привязанной к этой транзакции, и фиксирует её при успехе либо
// откатывает при ошибке или панике.
//
// Каждая изменяющая операция хранилища выполняется ровно в одной такой
// области: фиксация и откат нигде больше не вызываются.
func (s *Storage) WithinTx(ctx context.Context, fn func(tx *Storage) error) (err error) {
	const op = "storage.WithinTx"

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(&Storage{DB: s.DB, db: tx})
	return err
}

// CheckDatabaseReady проверяет готовность базы данных.
func (s *Storage) CheckDatabaseReady(ctx context.Context) error {
	var exists bool
	err := s.DB.QueryRowContext(ctx, `SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'reminders'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table reminders missing or query error: %w", err)
	}
	return nil
}
