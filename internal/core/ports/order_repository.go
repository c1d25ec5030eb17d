package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Every read restores the full aggregate: order scalars, ledger, pharmacy
// subgraph, and the read-only client/pharmacy/product snapshots.
type OrderRepository interface {
	// Add persists a new order aggregate, including its ledger and any
	// pharmacy-order subgraph supplied at intake, in one write.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate and its ledger.
	// No revision check is performed: concurrent updates race and the last
	// write wins.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its identifier together with its relations.
	// Returns errs.ObjectNotFound when the order does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListByState retrieves up to limit orders whose ledger is in the given
	// status, newest ledger first (orders with no ledger sort as oldest).
	// A non-empty search narrows the set to orders whose order number or
	// client full name contains it case-insensitively, or whose client
	// phone number contains it literally.
	ListByState(ctx context.Context, state order.Status, limit int, search string) ([]*order.Order, error)

	// GetPharmacyOrders retrieves the pharmacy-order subgraph of one order.
	GetPharmacyOrders(ctx context.Context, orderID kernel.UUID) ([]*order.PharmacyOrder, error)
}
