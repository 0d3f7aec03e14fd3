package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"customerapp/internal/adapter/database"
	"customerapp/internal/core/domain"
	"customerapp/internal/core/port"
	tel "customerapp/internal/core/telemetry"
)

const (
	customersTable = "customers"
	entity         = "customer"
)

var customerColumns = []string{"id", "cpf", "name", "email"}

type CustomerRepository struct {
	db        *database.DB
	telemetry port.Telemetry
}

func NewCustomerRepository(db *database.DB, telemetry port.Telemetry) port.CustomerRepository {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &CustomerRepository{
		db:        db,
		telemetry: telemetry,
	}
}

func (r *CustomerRepository) GetAll(ctx context.Context) (customers []domain.Customer, err error) {
	ctx, span := r.telemetry.StartRepositorySpan(ctx, "get_all", entity, nil)
	defer span.End()
	op := tel.StartOperation(ctx, r.telemetry, "get_all", entity)
	defer func() { op.End(err) }()

	query := r.db.QueryBuilder.Select(customerColumns...).
		From(customersTable).
		OrderBy("created_at", "id")

	return r.queryMany(ctx, query)
}

func (r *CustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (customer domain.Customer, err error) {
	ctx, span := r.telemetry.StartRepositorySpan(ctx, "get_by_id", entity, []attribute.KeyValue{
		attribute.String("customer.id", id.String()),
	})
	defer span.End()
	op := tel.StartOperation(ctx, r.telemetry, "get_by_id", entity)
	defer func() { op.End(err) }()

	return r.queryOne(ctx, sq.Eq{"id": id.String()})
}

func (r *CustomerRepository) GetByCPF(ctx context.Context, cpf string) (customer domain.Customer, err error) {
	ctx, span := r.telemetry.StartRepositorySpan(ctx, "get_by_cpf", entity, nil)
	defer span.End()
	op := tel.StartOperation(ctx, r.telemetry, "get_by_cpf", entity)
	defer func() { op.End(err) }()

	return r.queryOne(ctx, sq.Eq{"cpf": cpf})
}

func (r *CustomerRepository) GetByEmail(ctx context.Context, email string) (customer domain.Customer, err error) {
	ctx, span := r.telemetry.StartRepositorySpan(ctx, "get_by_email", entity, nil)
	defer span.End()
	op := tel.StartOperation(ctx, r.telemetry, "get_by_email", entity)
	defer func() { op.End(err) }()

	return r.queryOne(ctx, sq.Eq{"email": email})
}

// GetByIDs fetches every customer whose id is in ids with a single query.
// Missing ids are simply absent from the result.
func (r *CustomerRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (customers []domain.Customer, err error) {
	ctx, span := r.telemetry.StartRepositorySpan(ctx, "get_by_ids", entity, []attribute.KeyValue{
		attribute.Int("customer.ids", len(ids)),
	})
	defer span.End()
	op := tel.StartOperation(ctx, r.telemetry, "get_by_ids", entity)
	defer func() { op.End(err) }()

	if len(ids) == 0 {
		return []domain.Customer{}, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, id.String())
	}

	query := r.db.QueryBuilder.Select(customerColumns...).
		From(customersTable).
		Where(sq.Eq{"id": keys})

	return r.queryMany(ctx, query)
}

func (r *CustomerRepository) Create(ctx context.Context, customer domain.Customer) (created domain.Customer, err error) {
	ctx, span := r.telemetry.StartRepositorySpan(ctx, "create", entity, []attribute.KeyValue{
		attribute.String("customer.id", customer.ID.String()),
	})
	defer span.End()
	op := tel.StartOperation(ctx, r.telemetry, "create", entity)
	defer func() { op.End(err) }()

	query, args, err := r.db.QueryBuilder.Insert(customersTable).
		Columns(customerColumns...).
		Values(customer.ID.String(), nullable(customer.CPF), nullable(customer.Name), nullable(customer.Email)).
		ToSql()
	if err != nil {
		return domain.Customer{}, err
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		return domain.Customer{}, database.ClassifyWriteError(err)
	}

	return customer, nil
}

// Update overwrites cpf, name and email. It reports false when no row has
// the customer's id.
func (r *CustomerRepository) Update(ctx context.Context, customer domain.Customer) (updated bool, err error) {
	ctx, span := r.telemetry.StartRepositorySpan(ctx, "update", entity, []attribute.KeyValue{
		attribute.String("customer.id", customer.ID.String()),
	})
	defer span.End()
	op := tel.StartOperation(ctx, r.telemetry, "update", entity)
	defer func() { op.End(err) }()

	query, args, err := r.db.QueryBuilder.Update(customersTable).
		Set("cpf", nullable(customer.CPF)).
		Set("name", nullable(customer.Name)).
		Set("email", nullable(customer.Email)).
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{"id": customer.ID.String()}).
		ToSql()
	if err != nil {
		return false, err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, database.ClassifyWriteError(err)
	}

	return affected(result)
}

func (r *CustomerRepository) DeleteByID(ctx context.Context, id uuid.UUID) (deleted bool, err error) {
	ctx, span := r.telemetry.StartRepositorySpan(ctx, "delete", entity, []attribute.KeyValue{
		attribute.String("customer.id", id.String()),
	})
	defer span.End()
	op := tel.StartOperation(ctx, r.telemetry, "delete", entity)
	defer func() { op.End(err) }()

	query, args, err := r.db.QueryBuilder.Delete(customersTable).
		Where(sq.Eq{"id": id.String()}).
		ToSql()
	if err != nil {
		return false, err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}

	return affected(result)
}

func (r *CustomerRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *CustomerRepository) queryOne(ctx context.Context, where sq.Eq) (domain.Customer, error) {
	query := r.db.QueryBuilder.Select(customerColumns...).
		From(customersTable).
		Where(where).
		Limit(1)

	customers, err := r.queryMany(ctx, query)
	if err != nil {
		return domain.Customer{}, err
	}

	if len(customers) == 0 {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}

	return customers[0], nil
}

func (r *CustomerRepository) queryMany(ctx context.Context, query sq.SelectBuilder) ([]domain.Customer, error) {
	statement, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, statement, args...)
	if err != nil {
		return nil, fmt.Errorf("query customers: %w", err)
	}
	defer rows.Close()

	customers := make([]domain.Customer, 0)
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customers: %w", err)
	}

	return customers, nil
}

func scanCustomer(rows *sql.Rows) (domain.Customer, error) {
	var (
		customer         domain.Customer
		cpf, name, email sql.NullString
	)

	if err := rows.Scan(&customer.ID, &cpf, &name, &email); err != nil {
		return domain.Customer{}, fmt.Errorf("scan customer: %w", err)
	}

	customer.CPF = fromNullable(cpf)
	customer.Name = fromNullable(name)
	customer.Email = fromNullable(email)

	return customer, nil
}

func nullable(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}

func fromNullable(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	v := value.String
	return &v
}

func affected(result sql.Result) (bool, error) {
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read affected rows: %w", err)
	}
	return rows > 0, nil
}
