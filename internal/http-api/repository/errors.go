package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// normalizeConflict maps storage-level unique violations to
// gorm.ErrDuplicatedKey so services never see a raw driver error for a
// constraint race. GORM's TranslateError covers most paths; the pgconn
// check catches violations raised inside transactions.
func normalizeConflict(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return gorm.ErrDuplicatedKey
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return gorm.ErrDuplicatedKey
	}
	return err
}
