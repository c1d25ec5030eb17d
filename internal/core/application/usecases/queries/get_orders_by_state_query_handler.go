package queries

import (
	"context"

	"fulfillment/internal/core/ports"
)

// GetOrdersByStateQueryHandler serves the filtered dashboard listing.
// Ordering (newest ledger first, ledger-less orders last) and truncation
// happen in storage; the handler only assembles projections.
type GetOrdersByStateQueryHandler struct {
	repo ports.OrderRepository
}

// NewGetOrdersByStateQueryHandler creates a handler for state listings.
func NewGetOrdersByStateQueryHandler(repo ports.OrderRepository) GetOrdersByStateQueryHandler {
	return GetOrdersByStateQueryHandler{repo: repo}
}

// Handle returns at most query.Count() assembled projections, each with its
// ledger in the queried status.
func (h GetOrdersByStateQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersByStateQuery,
) ([]OrderProjection, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	aggregates, err := h.repo.ListByState(ctx, query.State(), query.Count(), query.Search())
	if err != nil {
		return nil, err
	}

	projections := make([]OrderProjection, 0, len(aggregates))
	for _, aggregate := range aggregates {
		projections = append(projections, AssembleOrder(aggregate))
	}

	return projections, nil
}
