package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Rud356/RemindMeServer/internal/models"
)

// translateConstraint переводит ошибки ограничений PostgreSQL в доменные.
//
// Нарушение уникальности становится models.ErrAlreadyExists, остальные
// нарушения целостности (check, not null, усечение строки) —
// models.ErrValidation. Прочие ошибки возвращаются как есть и считаются
// фатальными для объемлющей транзакции.
func translateConstraint(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgerrcode.UniqueViolation:
			return fmt.Errorf("%s: %w", op, models.ErrAlreadyExists)
		case pgerrcode.IsIntegrityConstraintViolation(pgErr.Code),
			pgErr.Code == pgerrcode.StringDataRightTruncationDataException:
			return fmt.Errorf("%s: %w", op, models.ErrValidation)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
