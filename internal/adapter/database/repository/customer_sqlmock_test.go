package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"customerapp/internal/adapter/database"
	"customerapp/internal/adapter/database/repository"
	"customerapp/internal/core/domain"
)

func newPostgresMock(t *testing.T) (*database.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return database.New(sqlDB, database.Postgres), mock
}

func TestCustomerRepository_GetByIDs_SingleBatchedQuery(t *testing.T) {
	db, mock := newPostgresMock(t)
	repo := repository.NewCustomerRepository(db, nil)

	first, second := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, cpf, name, email FROM customers WHERE id IN ($1,$2)")).
		WithArgs(first.String(), second.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "cpf", "name", "email"}).
			AddRow(first.String(), "12345678901", "Ana", "ana@example.com").
			AddRow(second.String(), nil, nil, nil))

	customers, err := repo.GetByIDs(context.Background(), []uuid.UUID{first, second})

	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, first, customers[0].ID)
	assert.Equal(t, "12345678901", *customers[0].CPF)
	assert.Nil(t, customers[1].CPF)
	assert.Nil(t, customers[1].Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepository_Create_PostgresUniqueViolation(t *testing.T) {
	cases := []struct {
		constraint string
		field      string
		message    string
	}{
		{constraint: "ux_customers_cpf", field: "cpf", message: domain.MessageCPFRegistered},
		{constraint: "ux_customers_email", field: "email", message: domain.MessageEmailRegistered},
		{constraint: "customers_pkey", field: "", message: domain.MessageCustomerRegistered},
	}

	for _, tc := range cases {
		t.Run(tc.constraint, func(t *testing.T) {
			db, mock := newPostgresMock(t)
			repo := repository.NewCustomerRepository(db, nil)

			mock.ExpectExec(regexp.QuoteMeta("INSERT INTO customers (id,cpf,name,email) VALUES ($1,$2,$3,$4)")).
				WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
				WillReturnError(&pgconn.PgError{
					Code:           "23505",
					Message:        "duplicate key value violates unique constraint",
					ConstraintName: tc.constraint,
				})

			_, err := repo.Create(context.Background(), domain.Customer{ID: uuid.New()})

			var conflict *domain.ConflictError
			require.True(t, errors.As(err, &conflict))
			assert.Equal(t, tc.field, conflict.Field)
			assert.Equal(t, tc.message, conflict.Message)

			var pgErr *pgconn.PgError
			assert.True(t, errors.As(err, &pgErr))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCustomerRepository_Update_OtherPostgresErrorIsNotConflict(t *testing.T) {
	db, mock := newPostgresMock(t)
	repo := repository.NewCustomerRepository(db, nil)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE customers SET cpf = $1, name = $2, email = $3, updated_at = CURRENT_TIMESTAMP WHERE id = $4")).
		WillReturnError(&pgconn.PgError{Code: "57014", Message: "canceling statement"})

	_, err := repo.Update(context.Background(), domain.Customer{ID: uuid.New()})

	require.Error(t, err)
	assert.False(t, domain.IsConflictError(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepository_DeleteByID_ZeroRows(t *testing.T) {
	db, mock := newPostgresMock(t)
	repo := repository.NewCustomerRepository(db, nil)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM customers WHERE id = $1")).
		WithArgs(id.String()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.DeleteByID(context.Background(), id)

	require.NoError(t, err)
	assert.False(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
