package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// ReturnFromRejectionCommandHandler undoes the reversible Rejection hold.
// Unlike regular transitions this does not run the state machine's dispatch
// table: it only restores the remembered status and clears the flag.
type ReturnFromRejectionCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewReturnFromRejectionCommandHandler creates a handler for rejection recovery.
func NewReturnFromRejectionCommandHandler(uowFactory OrderUoWFactory) ReturnFromRejectionCommandHandler {
	return ReturnFromRejectionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle releases the hold and returns the refreshed aggregate.
// Both a missing order and a missing ledger surface as errs.ObjectNotFound:
// an order that never had a ledger has nothing to restore.
func (h ReturnFromRejectionCommandHandler) Handle(
	ctx context.Context,
	cmd ReturnFromRejectionCommand,
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

	if err = aggregate.ReturnFromRejection(); err != nil {
		if errors.Is(err, order.ErrLedgerIsMissing) {
			return nil, errs.NewObjectNotFoundErrorWithCause("orderLedger", cmd.OrderID().String(), err)
		}
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
