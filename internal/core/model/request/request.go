package request

import "github.com/google/uuid"

type CreateCustomerRequest struct {
	CPF   string `json:"cpf"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UpdateCustomerRequest replaces name, email and cpf. An omitted or blank
// field clears the stored value.
type UpdateCustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	CPF   string `json:"cpf"`
}

type BatchItemRequest struct {
	CustomerID uuid.UUID `json:"customerId"`
}

type BatchRequest struct {
	Items []BatchItemRequest `json:"items"`
}
