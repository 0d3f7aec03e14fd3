package factory

import (
	"fmt"
	"math/rand/v2"

	fab "github.com/Goldziher/fabricator"
	"github.com/google/uuid"
)

// NewCustomer builds a customer-shaped struct (a request or a fixture) with a
// valid, unique cpf and email. customData overrides fields by name.
func NewCustomer[T any](customData ...map[string]any) T {
	instance := fab.New(*new(T))

	defaults := map[string]any{
		"CPF":   RandomCPF(),
		"Name":  "Customer " + uuid.NewString()[:8],
		"Email": fmt.Sprintf("customer-%s@example.com", uuid.NewString()[:12]),
	}

	for _, data := range customData {
		for key, value := range data {
			defaults[key] = value
		}
	}

	return instance.Build(defaults)
}

func RandomCPF() string {
	return fmt.Sprintf("%011d", rand.Int64N(100_000_000_000))
}
