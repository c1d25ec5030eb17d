package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrUpdateDeliveryStatusCommandIsNotConstructed = errors.New(
		"UpdateDeliveryStatusCommand must be created via NewUpdateDeliveryStatusCommand constructor",
	)
)

// UpdateDeliveryStatusCommand reports delivery progress for an order using
// the courier-facing status vocabulary. The status text is human-entered
// and resolved against the alias table by the handler.
type UpdateDeliveryStatusCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	statusText string
	comment    *string

	guard guard.ConstructorGuard
}

// NewUpdateDeliveryStatusCommand creates a delivery-status update request.
// The order ID and the status text must be non-blank.
func NewUpdateDeliveryStatusCommand(
	orderID kernel.UUID,
	statusText string,
	comment *string,
) (UpdateDeliveryStatusCommand, error) {
	cmd := UpdateDeliveryStatusCommand{
		comment: comment,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStatusText(statusText),
	); err != nil {
		return UpdateDeliveryStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being updated.
func (c UpdateDeliveryStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// StatusText returns the raw delivery status as entered.
func (c UpdateDeliveryStatusCommand) StatusText() string {
	return c.statusText
}

// Comment returns the optional progress comment.
func (c UpdateDeliveryStatusCommand) Comment() *string {
	return c.comment
}

func (c *UpdateDeliveryStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateDeliveryStatusCommand) setStatusText(statusText string) error {
	if strings.TrimSpace(statusText) == "" {
		return errs.NewValueIsRequiredError("status")
	}
	c.statusText = statusText
	return nil
}
