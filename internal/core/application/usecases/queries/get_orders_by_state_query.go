package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetOrdersByStateQueryIsNotConstructed = errors.New(
		"GetOrdersByStateQuery must be created via NewGetOrdersByStateQuery constructor",
	)
)

// GetOrdersByStateQuery lists orders currently in one lifecycle status,
// bounded by a result count and optionally narrowed by a free-text search
// against order number, client name, or client phone. This is the read
// behind the operational dashboards.
type GetOrdersByStateQuery struct {
	state  order.Status
	count  int
	search string

	guard guard.ConstructorGuard
}

// NewGetOrdersByStateQuery creates a listing query.
// count bounds the result set and must be positive; search may be empty.
func NewGetOrdersByStateQuery(state order.Status, count int, search string) (GetOrdersByStateQuery, error) {
	if err := state.Validate(); err != nil {
		return GetOrdersByStateQuery{}, err
	}
	if count <= 0 {
		return GetOrdersByStateQuery{}, errs.NewValueIsInvalidError("count must be greater than 0")
	}

	return GetOrdersByStateQuery{
		state:  state,
		count:  count,
		search: search,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersByStateQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersByStateQueryIsNotConstructed)
}

// State returns the lifecycle status to filter by.
func (q GetOrdersByStateQuery) State() order.Status {
	return q.state
}

// Count returns the maximum number of results.
func (q GetOrdersByStateQuery) Count() int {
	return q.count
}

// Search returns the free-text filter, possibly empty.
func (q GetOrdersByStateQuery) Search() string {
	return q.search
}
