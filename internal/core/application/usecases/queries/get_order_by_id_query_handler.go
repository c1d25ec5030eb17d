package queries

import (
	"context"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// GetOrderByIDQueryHandler reads one aggregate and assembles its projection.
type GetOrderByIDQueryHandler struct {
	repo ports.OrderRepository
}

// NewGetOrderByIDQueryHandler creates a handler for single-order reads.
func NewGetOrderByIDQueryHandler(repo ports.OrderRepository) GetOrderByIDQueryHandler {
	return GetOrderByIDQueryHandler{repo: repo}
}

// Handle returns the assembled projection. An order whose ledger does not
// match the state filter is reported as not found, the same as an absent
// order.
func (h GetOrderByIDQueryHandler) Handle(ctx context.Context, query GetOrderByIDQuery) (OrderProjection, error) {
	if err := query.Validate(); err != nil {
		return OrderProjection{}, err
	}

	aggregate, err := h.repo.Get(ctx, query.OrderID())
	if err != nil {
		return OrderProjection{}, err
	}

	if filter := query.StateFilter(); filter != nil {
		ledger := aggregate.Ledger()
		if ledger == nil || ledger.State != *filter {
			return OrderProjection{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
	}

	return AssembleOrder(aggregate), nil
}
