package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"customerapp/internal/core/domain"
	"customerapp/internal/core/model/request"
	"customerapp/internal/core/model/response"
)

// GetBatch resolves every requested id or fails. Duplicate ids are looked up
// once and the result follows the order of first appearance.
func (s *CustomerService) GetBatch(ctx context.Context, req request.BatchRequest) (items []response.CustomerBatchItem, err error) {
	ctx, end := s.trace(ctx, "get_batch", attribute.Int("batch.items", len(req.Items)))
	defer func() { end(err) }()

	if len(req.Items) > domain.MaxBatchItems {
		return nil, domain.ErrBatchTooLarge
	}

	if len(req.Items) == 0 {
		return nil, domain.ErrBatchEmpty
	}

	ids := distinctIDs(req.Items)
	s.probe.RecordBatchSize(ctx, len(req.Items), len(ids))

	customers, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get customers batch: %w", err)
	}

	if len(customers) != len(ids) {
		return nil, fmt.Errorf("%w: resolved %d of %d requested customers",
			domain.ErrCustomerNotFound, len(customers), len(ids))
	}

	byID := make(map[uuid.UUID]domain.Customer, len(customers))
	for _, customer := range customers {
		byID[customer.ID] = customer
	}

	items = make([]response.CustomerBatchItem, 0, len(ids))
	for _, id := range ids {
		customer, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrCustomerNotFound, id)
		}
		items = append(items, response.NewCustomerBatchItem(customer))
	}

	return items, nil
}

func distinctIDs(items []request.BatchItemRequest) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(items))
	ids := make([]uuid.UUID, 0, len(items))

	for _, item := range items {
		if _, ok := seen[item.CustomerID]; ok {
			continue
		}
		seen[item.CustomerID] = struct{}{}
		ids = append(ids, item.CustomerID)
	}

	return ids
}
