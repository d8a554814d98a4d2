package leave

import (
	"errors"
	"net/http"

	"go-hrms/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgSerializationFailure = "40001"
	pgUniqueViolation      = "23505"
)

// mapPgError menerjemahkan error driver postgres ke AppError domain.
// Kegagalan serialisasi berarti request konkuren lain sudah menang.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgSerializationFailure:
			return apperror.Wrap(
				err,
				apperror.CodeConflict,
				"Request conflicted with a concurrent change, please retry",
				http.StatusConflict,
			)
		case pgUniqueViolation:
			return apperror.Wrap(err, apperror.CodeConflict, "Duplicate record", http.StatusConflict)
		}
	}
	return err
}
