package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetOrderByIDQueryIsNotConstructed = errors.New(
		"GetOrderByIDQuery must be created via NewGetOrderByIDQuery constructor",
	)
)

// GetOrderByIDQuery retrieves one assembled order projection, optionally
// requiring the ledger to currently be in a specific status.
type GetOrderByIDQuery struct {
	orderID     kernel.UUID
	stateFilter *order.Status

	guard guard.ConstructorGuard
}

// NewGetOrderByIDQuery creates a lookup for one order.
// stateFilter may be nil to accept the order in any status.
func NewGetOrderByIDQuery(orderID kernel.UUID, stateFilter *order.Status) (GetOrderByIDQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderByIDQuery{}, err
	}

	return GetOrderByIDQuery{
		orderID:     orderID,
		stateFilter: stateFilter,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderByIDQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderByIDQueryIsNotConstructed)
}

// OrderID returns the identifier to look up.
func (q GetOrderByIDQuery) OrderID() kernel.UUID {
	return q.orderID
}

// StateFilter returns the optional required status, or nil.
func (q GetOrderByIDQuery) StateFilter() *order.Status {
	return q.stateFilter
}
