package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"customerapp/internal/core/domain"
	"customerapp/internal/core/model/request"
)

func (s *CustomerService) Create(ctx context.Context, req request.CreateCustomerRequest) (created domain.Customer, err error) {
	ctx, end := s.trace(ctx, "create")
	defer func() { end(err) }()

	customer := domain.Customer{
		CPF:   domain.NormalizeString(req.CPF),
		Name:  domain.NormalizeString(req.Name),
		Email: domain.NormalizeString(req.Email),
	}

	if customer.CPF != nil {
		if err = s.ensureCPFAvailable(ctx, *customer.CPF); err != nil {
			return domain.Customer{}, err
		}
	}

	if customer.Email != nil {
		if err = s.ensureEmailAvailable(ctx, *customer.Email); err != nil {
			return domain.Customer{}, err
		}
	}

	customer.ID = uuid.New()

	if err = s.validate(customer); err != nil {
		return domain.Customer{}, err
	}

	created, err = s.repo.Create(ctx, customer)
	if err != nil {
		if domain.IsConflictError(err) {
			return domain.Customer{}, err
		}
		return domain.Customer{}, fmt.Errorf("create customer: %w", err)
	}

	s.probe.RecordBusinessEvent(ctx, "customer.created", "customer", created.ID.String(), nil)

	return created, nil
}

// Update replaces name, email and cpf of an existing customer. It reports
// false without error when the customer does not exist.
func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, req request.UpdateCustomerRequest) (updated bool, err error) {
	ctx, end := s.trace(ctx, "update", attribute.String("customer.id", id.String()))
	defer func() { end(err) }()

	current, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, domain.ErrCustomerNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load customer: %w", err)
	}

	cpf := domain.NormalizeString(req.CPF)
	email := domain.NormalizeString(req.Email)
	name := domain.NormalizeString(req.Name)

	if cpf != nil && !domain.SameValue(cpf, current.CPF) {
		if err = s.ensureCPFAvailable(ctx, *cpf); err != nil {
			return false, err
		}
	}

	if email != nil && !domain.SameValue(email, current.Email) {
		if err = s.ensureEmailAvailable(ctx, *email); err != nil {
			return false, err
		}
	}

	current.Name = name
	current.Email = email
	current.CPF = cpf

	if err = s.validate(current); err != nil {
		return false, err
	}

	updated, err = s.repo.Update(ctx, current)
	if err != nil {
		if domain.IsConflictError(err) {
			return false, err
		}
		return false, fmt.Errorf("update customer: %w", err)
	}

	if updated {
		s.probe.RecordBusinessEvent(ctx, "customer.updated", "customer", id.String(), nil)
	}

	return updated, nil
}

func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) (deleted bool, err error) {
	ctx, end := s.trace(ctx, "delete", attribute.String("customer.id", id.String()))
	defer func() { end(err) }()

	deleted, err = s.repo.DeleteByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete customer: %w", err)
	}

	if deleted {
		s.probe.RecordBusinessEvent(ctx, "customer.deleted", "customer", id.String(), nil)
	}

	return deleted, nil
}
