package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrUpdateOrderStateCommandIsNotConstructed = errors.New(
		"UpdateOrderStateCommand must be created via NewUpdateOrderStateCommand constructor",
	)
)

// UpdateOrderStateCommand requests a lifecycle transition for one order.
// The target status may be any value of the vocabulary; the accompanying
// payload supplies reasons, courier data, payment fields, and free comments
// consumed by the transition.
//
// Example:
//
//	cmd, err := NewUpdateOrderStateCommand(orderID, order.InSearch, order.TransitionPayload{})
//	if err != nil {
//	    return err
//	}
//	updated, err := handler.Handle(ctx, cmd)
type UpdateOrderStateCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	target  order.Status
	payload order.TransitionPayload

	guard guard.ConstructorGuard
}

// NewUpdateOrderStateCommand creates a transition request.
// Validates that the order ID is set and the target status belongs to the
// vocabulary; the payload is free-form and not validated here.
func NewUpdateOrderStateCommand(
	orderID kernel.UUID,
	target order.Status,
	payload order.TransitionPayload,
) (UpdateOrderStateCommand, error) {
	cmd := UpdateOrderStateCommand{
		payload: payload,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
	); err != nil {
		return UpdateOrderStateCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderStateCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStateCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to transition.
func (c UpdateOrderStateCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested lifecycle status.
func (c UpdateOrderStateCommand) Target() order.Status {
	return c.target
}

// Payload returns the transition payload.
func (c UpdateOrderStateCommand) Payload() order.TransitionPayload {
	return c.payload
}

func (c *UpdateOrderStateCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateOrderStateCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	c.target = target
	return nil
}
