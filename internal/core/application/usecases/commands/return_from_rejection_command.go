package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrReturnFromRejectionCommandIsNotConstructed = errors.New(
		"ReturnFromRejectionCommand must be created via NewReturnFromRejectionCommand constructor",
	)
)

// ReturnFromRejectionCommand releases an order from the reversible
// Rejection hold, restoring the status it held before the hold was entered.
type ReturnFromRejectionCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewReturnFromRejectionCommand creates a release request for one order.
func NewReturnFromRejectionCommand(orderID kernel.UUID) (ReturnFromRejectionCommand, error) {
	cmd := ReturnFromRejectionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return ReturnFromRejectionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReturnFromRejectionCommand) Validate() error {
	return c.guard.Validate(ErrReturnFromRejectionCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to release.
func (c ReturnFromRejectionCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *ReturnFromRejectionCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}
