package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
)

// UpdateOrderStateCommandHandler runs the order state machine.
// Loads the order, repairs a missing ledger, applies the requested
// transition with its side effects, and persists order and ledger together.
//
// The ledger update is an unguarded read-modify-write: two concurrent
// transitions against the same order race and the later write wins.
type UpdateOrderStateCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdateOrderStateCommandHandler creates a handler for state transitions.
func NewUpdateOrderStateCommandHandler(uowFactory OrderUoWFactory) UpdateOrderStateCommandHandler {
	return UpdateOrderStateCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle applies the transition and returns the refreshed aggregate.
// Returns errs.ObjectNotFound (wrapped) when the order does not exist.
func (h UpdateOrderStateCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateOrderStateCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	aggregate, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.ApplyTransition(cmd.Target(), cmd.Payload(), time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
