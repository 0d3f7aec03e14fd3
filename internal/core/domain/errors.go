package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrBatchTooLarge    = fmt.Errorf("batch exceeds the limit of %d items per request", MaxBatchItems)
	ErrBatchEmpty       = errors.New("items required, at least 1 element")
)

const (
	MessageInvalidCPF         = "invalid CPF"
	MessageNameTooLong        = "name too long"
	MessageInvalidEmail       = "invalid email"
	MessageCPFRegistered      = "CPF already registered"
	MessageEmailRegistered    = "Email already registered"
	MessageCustomerRegistered = "customer already registered"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every field-level failure found for a customer.
type ValidationError struct {
	Errors []FieldError
}

func NewValidationError(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

func (e *ValidationError) Error() string {
	messages := make([]string, 0, len(e.Errors))

	for _, fe := range e.Errors {
		messages = append(messages, fe.Message)
	}

	return "validation failed: " + strings.Join(messages, "; ")
}

// ConflictError reports a uniqueness violation on cpf or email, whether it was
// caught by the pre-check or by the storage constraint.
type ConflictError struct {
	Field   string
	Message string
	Err     error
}

func NewCPFConflict(err error) *ConflictError {
	return &ConflictError{Field: "cpf", Message: MessageCPFRegistered, Err: err}
}

func NewEmailConflict(err error) *ConflictError {
	return &ConflictError{Field: "email", Message: MessageEmailRegistered, Err: err}
}

func (e *ConflictError) Error() string {
	return e.Message
}

func (e *ConflictError) Unwrap() error {
	return e.Err
}

func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsConflictError(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}
