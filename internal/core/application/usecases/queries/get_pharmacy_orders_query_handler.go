package queries

import (
	"context"

	"fulfillment/internal/core/ports"
)

// GetPharmacyOrdersQueryHandler reads the pharmacy subgraph of one order.
// An order without pharmacy orders yields an empty list, not an error.
type GetPharmacyOrdersQueryHandler struct {
	repo ports.OrderRepository
}

// NewGetPharmacyOrdersQueryHandler creates a handler for subgraph reads.
func NewGetPharmacyOrdersQueryHandler(repo ports.OrderRepository) GetPharmacyOrdersQueryHandler {
	return GetPharmacyOrdersQueryHandler{repo: repo}
}

// Handle returns the assembled pharmacy-order projections.
func (h GetPharmacyOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetPharmacyOrdersQuery,
) ([]PharmacyOrderProjection, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	pharmacyOrders, err := h.repo.GetPharmacyOrders(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	return AssemblePharmacyOrders(pharmacyOrders), nil
}
