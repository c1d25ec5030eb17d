package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrAssignCourierCommandIsNotConstructed = errors.New(
		"AssignCourierCommand must be created via NewAssignCourierCommand constructor",
	)
)

// AssignCourierCommand hands an order over to a courier.
// The courier identifier is free text supplied by the delivery side; the
// core records it verbatim, it is not a reference into courier storage.
type AssignCourierCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID string
	comment   *string

	guard guard.ConstructorGuard
}

// NewAssignCourierCommand creates a courier-assignment request.
// Both the order ID and the courier ID must be non-blank; validation
// happens here, before any storage access.
func NewAssignCourierCommand(orderID kernel.UUID, courierID string, comment *string) (AssignCourierCommand, error) {
	cmd := AssignCourierCommand{
		comment: comment,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCourierID(courierID),
	); err != nil {
		return AssignCourierCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignCourierCommand) Validate() error {
	return c.guard.Validate(ErrAssignCourierCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to hand over.
func (c AssignCourierCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierID returns the courier identifier to record on the order.
func (c AssignCourierCommand) CourierID() string {
	return c.courierID
}

// Comment returns the optional handover comment.
func (c AssignCourierCommand) Comment() *string {
	return c.comment
}

func (c *AssignCourierCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	c.orderID = orderID
	return nil
}

func (c *AssignCourierCommand) setCourierID(courierID string) error {
	if strings.TrimSpace(courierID) == "" {
		return errs.NewValueIsRequiredError("courierId")
	}
	c.courierID = courierID
	return nil
}
