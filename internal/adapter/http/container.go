package http

import (
	"fmt"

	"customerapp/internal/adapter/database"
	"customerapp/internal/adapter/database/repository"
	"customerapp/internal/adapter/http/handler"
	"customerapp/internal/adapter/http/validation"
	"customerapp/internal/core/port"
	"customerapp/internal/core/service"
	"customerapp/pkg/config"
)

type Container struct {
	CustomerRepo    port.CustomerRepository
	CustomerService port.CustomerService
	CustomerHandler *handler.CustomerHandler
}

func NewContainer(db *database.DB, logger *config.LokiLogger, probe port.Telemetry) (*Container, error) {
	validator, err := validation.NewCustomerValidator()
	if err != nil {
		return nil, fmt.Errorf("build validator: %w", err)
	}

	customerRepo := repository.NewCustomerRepository(db, probe)
	customerSvc := service.NewCustomerService(customerRepo, validator, probe)
	customerHandler := handler.NewCustomerHandler(customerSvc, logger)

	return &Container{
		CustomerRepo:    customerRepo,
		CustomerService: customerSvc,
		CustomerHandler: customerHandler,
	}, nil
}
