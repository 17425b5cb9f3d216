package repository

import (
	"errors"
	"fmt"

	"github.com/Kumaravel655/loan-backend/service"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SELECT ... FOR UPDATE
func clauseUpdateLock() clause.Locking {
	return clause.Locking{Strength: "UPDATE"}
}

// notFound maps gorm's missing-row error onto service.ErrNotFound.
func notFound(err error, what string, id any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %v: %w", what, id, service.ErrNotFound)
	}
	return err
}

// IsUniqueViolation reports whether err is a Postgres unique_violation (23505).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
