package domain

import (
	"strings"

	"github.com/google/uuid"
)

const (
	CPFLength     = 11
	NameMaxLength = 100
	MaxBatchItems = 100
)

// Customer is a registered customer. Optional fields are nil when absent and
// are never stored as empty strings.
type Customer struct {
	ID    uuid.UUID `json:"id"`
	CPF   *string   `json:"cpf"`
	Name  *string   `json:"name"`
	Email *string   `json:"email"`
}

// Normalize turns a blank or whitespace-only value into nil.
func Normalize(value *string) *string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil
	}

	v := *value
	return &v
}

// NormalizeString is Normalize for plain request strings.
func NormalizeString(value string) *string {
	return Normalize(&value)
}

// SameValue reports whether two optional values hold the same content.
func SameValue(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	return *a == *b
}

// Value dereferences an optional value, returning "" when absent.
func Value(value *string) string {
	if value == nil {
		return ""
	}

	return *value
}
