package persistence

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/khoahotran/hireboard/pkg/apperror"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// persistErr wraps a store failure, keeping AppErrors raised deeper down.
func persistErr(details string, err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperror.NewPersist(details, err)
}
