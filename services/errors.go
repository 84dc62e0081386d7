package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrDuplicatePhone     = errors.New("phone number already used by another order")
	ErrInvalidPhoneFormat = errors.New("invalid phone number format")
)

// ValidationError reports the offending field. errors.Is(err, ErrValidation)
// holds for every *ValidationError.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

func notFound(entity string, id int64) error {
	return fmt.Errorf("%s #%d: %w", entity, id, ErrNotFound)
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgBadEncoding         = "22021"

	phoneUniqueConstraint = "orders_phone_number_key"
)

// mapDBError turns pgx and postgres errors into the package's error kinds.
// entity and id describe the row the caller was looking for.
func mapDBError(err error, entity string, id int64) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound(entity, id)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case pgUniqueViolation:
			if pgErr.ConstraintName == phoneUniqueConstraint {
				return ErrDuplicatePhone
			}
		case pgForeignKeyViolation:
			return fmt.Errorf("%s #%d: %s: %w", entity, id, pgErr.ConstraintName, ErrNotFound)
		case pgCheckViolation:
			return invalid(pgErr.ConstraintName, "%s", pgErr.Message)
		case pgBadEncoding:
			return invalid(entity, "%s", pgErr.Message)
		}
	}
	return err
}
