package database

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"

	"customerapp/internal/core/domain"
)

const pgUniqueViolation = "23505"

// ClassifyWriteError turns a unique index violation from either store into
// a *domain.ConflictError naming the offending field. Other errors are
// returned unchanged.
func ClassifyWriteError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != pgUniqueViolation {
			return err
		}
		return conflictFor(pgErr.ConstraintName+" "+pgErr.Message+" "+pgErr.Detail, err)
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		if sqliteErr.ExtendedCode != sqlite3.ErrConstraintUnique {
			return err
		}
		return conflictFor(sqliteErr.Error(), err)
	}

	// Wrapping drivers may flatten the error to its message.
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return conflictFor(err.Error(), err)
	}

	return err
}

func conflictFor(description string, err error) error {
	description = strings.ToLower(description)

	switch {
	case strings.Contains(description, "customers.cpf"), strings.Contains(description, "ux_customers_cpf"), strings.Contains(description, "(cpf)"):
		return domain.NewCPFConflict(err)
	case strings.Contains(description, "customers.email"), strings.Contains(description, "ux_customers_email"), strings.Contains(description, "(email)"):
		return domain.NewEmailConflict(err)
	default:
		return &domain.ConflictError{Message: domain.MessageCustomerRegistered, Err: err}
	}
}
