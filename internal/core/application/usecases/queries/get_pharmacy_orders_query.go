package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetPharmacyOrdersQueryIsNotConstructed = errors.New(
		"GetPharmacyOrdersQuery must be created via NewGetPharmacyOrdersQuery constructor",
	)
)

// GetPharmacyOrdersQuery retrieves the pharmacy-order subgraph of one order.
type GetPharmacyOrdersQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetPharmacyOrdersQuery creates a subgraph lookup for one order.
func NewGetPharmacyOrdersQuery(orderID kernel.UUID) (GetPharmacyOrdersQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetPharmacyOrdersQuery{}, err
	}

	return GetPharmacyOrdersQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPharmacyOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetPharmacyOrdersQueryIsNotConstructed)
}

// OrderID returns the order whose subgraph is requested.
func (q GetPharmacyOrdersQuery) OrderID() kernel.UUID {
	return q.orderID
}
