package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string {
	return &s
}

func TestNormalize(t *testing.T) {
	t.Run("should return nil for nil", func(t *testing.T) {
		assert.Nil(t, Normalize(nil))
	})

	t.Run("should return nil for empty and whitespace values", func(t *testing.T) {
		assert.Nil(t, Normalize(strPtr("")))
		assert.Nil(t, Normalize(strPtr("   ")))
		assert.Nil(t, NormalizeString("\t\n"))
	})

	t.Run("should keep non blank values untouched", func(t *testing.T) {
		value := strPtr(" 12345678901")
		normalized := Normalize(value)

		assert.Equal(t, " 12345678901", *normalized)
		assert.NotSame(t, value, normalized)
	})
}

func TestSameValue(t *testing.T) {
	assert.True(t, SameValue(nil, nil))
	assert.True(t, SameValue(strPtr("a"), strPtr("a")))
	assert.False(t, SameValue(strPtr("a"), nil))
	assert.False(t, SameValue(nil, strPtr("a")))
	assert.False(t, SameValue(strPtr("a"), strPtr("b")))
}

func TestConflictError(t *testing.T) {
	cause := errors.New("UNIQUE constraint failed: customers.cpf")
	err := error(NewCPFConflict(cause))

	assert.True(t, IsConflictError(err))
	assert.False(t, IsValidationError(err))
	assert.Equal(t, MessageCPFRegistered, err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestValidationError(t *testing.T) {
	err := error(NewValidationError([]FieldError{
		{Field: "cpf", Message: MessageInvalidCPF},
		{Field: "email", Message: MessageInvalidEmail},
	}))

	assert.True(t, IsValidationError(err))
	assert.Equal(t, "validation failed: invalid CPF; invalid email", err.Error())
}
