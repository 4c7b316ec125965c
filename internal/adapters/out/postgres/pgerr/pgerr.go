// Package pgerr classifies errors returned by gorm over the pgx driver.
package pgerr

import (
	"errors"

	"dispatch/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// IsUniqueViolation reports whether err was raised by a unique constraint.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// Unavailable wraps a persistence failure of table. Domain errors pass through unchanged.
func Unavailable(table string, err error) error {
	if err == nil {
		return nil
	}
	var unavailable *errs.UnavailableError
	if errors.As(err, &unavailable) {
		return err
	}
	return errs.NewUnavailableError(table, err)
}
