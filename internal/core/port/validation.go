package port

import "customerapp/internal/core/domain"

type Validator interface {
	Validate(customer domain.Customer) []domain.FieldError
}
