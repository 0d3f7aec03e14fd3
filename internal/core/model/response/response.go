package response

import (
	"github.com/google/uuid"

	"customerapp/internal/core/domain"
)

type CustomerDetail struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	CPF   *string `json:"cpf"`
}

type CustomerBatchItem struct {
	ID       uuid.UUID      `json:"id"`
	Customer CustomerDetail `json:"customer"`
}

func NewCustomerBatchItem(customer domain.Customer) CustomerBatchItem {
	return CustomerBatchItem{
		ID: customer.ID,
		Customer: CustomerDetail{
			Name:  customer.Name,
			Email: customer.Email,
			CPF:   customer.CPF,
		},
	}
}

type ValidationError = domain.FieldError

type ResponseError struct {
	Code   string            `json:"code"`
	Errors []ValidationError `json:"errors"`
}

type ErrorResponse struct {
	Error ResponseError `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
