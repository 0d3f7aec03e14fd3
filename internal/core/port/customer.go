package port

import (
	"context"

	"github.com/google/uuid"

	"customerapp/internal/core/domain"
	"customerapp/internal/core/model/request"
	"customerapp/internal/core/model/response"
)

// CustomerRepository lookups return domain.ErrCustomerNotFound when no row
// matches. Writes that hit a unique index return a *domain.ConflictError.
type CustomerRepository interface {
	GetAll(ctx context.Context) ([]domain.Customer, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Customer, error)
	GetByCPF(ctx context.Context, cpf string) (domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (domain.Customer, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Customer, error)
	Create(ctx context.Context, customer domain.Customer) (domain.Customer, error)
	Update(ctx context.Context, customer domain.Customer) (bool, error)
	DeleteByID(ctx context.Context, id uuid.UUID) (bool, error)
	Ping(ctx context.Context) error
}

type CustomerService interface {
	List(ctx context.Context) ([]domain.Customer, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Customer, error)
	GetByCPF(ctx context.Context, cpf string) (domain.Customer, error)
	Create(ctx context.Context, req request.CreateCustomerRequest) (domain.Customer, error)
	Update(ctx context.Context, id uuid.UUID, req request.UpdateCustomerRequest) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	GetBatch(ctx context.Context, req request.BatchRequest) ([]response.CustomerBatchItem, error)
	Ping(ctx context.Context) error
}
