package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"customerapp/internal/core/domain"
	"customerapp/internal/core/port"
	"customerapp/internal/core/telemetry"
)

const serviceName = "customer"

type CustomerService struct {
	repo      port.CustomerRepository
	validator port.Validator
	probe     port.Telemetry
}

var _ port.CustomerService = (*CustomerService)(nil)

func NewCustomerService(repo port.CustomerRepository, validator port.Validator, probe port.Telemetry) *CustomerService {
	if probe == nil {
		probe = telemetry.NewNoOpProbe()
	}

	return &CustomerService{
		repo:      repo,
		validator: validator,
		probe:     probe,
	}
}

// trace opens a service span and returns the function that closes it.
func (s *CustomerService) trace(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	ctx, span := s.probe.StartServiceSpan(ctx, serviceName, operation, attrs)
	start := time.Now()

	return ctx, func(err error) {
		s.probe.RecordServiceOperation(ctx, serviceName, operation, time.Since(start), err)
		span.End()
	}
}

func (s *CustomerService) List(ctx context.Context) (customers []domain.Customer, err error) {
	ctx, end := s.trace(ctx, "list")
	defer func() { end(err) }()

	customers, err = s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	if customers == nil {
		customers = []domain.Customer{}
	}

	return customers, nil
}

func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (customer domain.Customer, err error) {
	ctx, end := s.trace(ctx, "get_by_id", attribute.String("customer.id", id.String()))
	defer func() { end(err) }()

	customer, err = s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Customer{}, wrapLookup("get customer", err)
	}

	return customer, nil
}

func (s *CustomerService) GetByCPF(ctx context.Context, cpf string) (customer domain.Customer, err error) {
	ctx, end := s.trace(ctx, "get_by_cpf")
	defer func() { end(err) }()

	normalized := domain.NormalizeString(cpf)
	if normalized == nil {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}

	customer, err = s.repo.GetByCPF(ctx, *normalized)
	if err != nil {
		return domain.Customer{}, wrapLookup("get customer by cpf", err)
	}

	return customer, nil
}

func (s *CustomerService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// ensureCPFAvailable returns a conflict when another customer already owns cpf.
func (s *CustomerService) ensureCPFAvailable(ctx context.Context, cpf string) error {
	_, err := s.repo.GetByCPF(ctx, cpf)

	switch {
	case err == nil:
		return domain.NewCPFConflict(nil)
	case errors.Is(err, domain.ErrCustomerNotFound):
		return nil
	default:
		return fmt.Errorf("check cpf: %w", err)
	}
}

func (s *CustomerService) ensureEmailAvailable(ctx context.Context, email string) error {
	_, err := s.repo.GetByEmail(ctx, email)

	switch {
	case err == nil:
		return domain.NewEmailConflict(nil)
	case errors.Is(err, domain.ErrCustomerNotFound):
		return nil
	default:
		return fmt.Errorf("check email: %w", err)
	}
}

func (s *CustomerService) validate(customer domain.Customer) error {
	if errs := s.validator.Validate(customer); len(errs) > 0 {
		return domain.NewValidationError(errs)
	}

	return nil
}

// wrapLookup keeps not-found errors bare so callers can compare them directly.
func wrapLookup(operation string, err error) error {
	if errors.Is(err, domain.ErrCustomerNotFound) {
		return err
	}

	return fmt.Errorf("%s: %w", operation, err)
}
