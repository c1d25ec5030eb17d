package commands

import (
	"errors"

	"github.com/shopspring/decimal"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateConsultingOrderCommandIsNotConstructed = errors.New(
		"CreateConsultingOrderCommand must be created via NewCreateConsultingOrderCommand constructor",
	)
)

// PharmacyOrderDraft describes one pharmacy's part of a new order as
// supplied at intake. Identifiers and timestamps for the persisted rows are
// generated by the handler.
type PharmacyOrderDraft struct {
	PharmacyID *kernel.UUID
	Products   []ProductHistoryDraft
}

// ProductHistoryDraft describes one product row within a pharmacy draft.
type ProductHistoryDraft struct {
	ProductID           *kernel.UUID
	Message             *string
	Comment             *string
	Count               *int
	AmountWithMarkup    *decimal.Decimal
	AmountWithoutMarkup *decimal.Decimal
}

// CreateConsultingOrderCommand requests intake of a brand-new order in the
// Application (consulting) status, optionally with its pharmacy-order
// subgraph supplied up front.
//
// Example:
//
//	cmd, err := NewCreateConsultingOrderCommand(kernel.NewUUID(), clientID, details, nil)
//	if err != nil {
//	    return err
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateConsultingOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	clientID       kernel.UUID
	details        order.Details
	pharmacyOrders []PharmacyOrderDraft

	guard guard.ConstructorGuard
}

// NewCreateConsultingOrderCommand creates an intake request.
// The client reference is mandatory; everything else is optional.
func NewCreateConsultingOrderCommand(
	orderID kernel.UUID,
	clientID kernel.UUID,
	details order.Details,
	pharmacyOrders []PharmacyOrderDraft,
) (CreateConsultingOrderCommand, error) {
	cmd := CreateConsultingOrderCommand{
		details:        details,
		pharmacyOrders: pharmacyOrders,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setClientID(clientID),
	); err != nil {
		return CreateConsultingOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateConsultingOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateConsultingOrderCommandIsNotConstructed)
}

// OrderID returns the identifier the new order will be created under.
func (c CreateConsultingOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ClientID returns the client the order belongs to.
func (c CreateConsultingOrderCommand) ClientID() kernel.UUID {
	return c.clientID
}

// Details returns the scalar order fields for the new order.
func (c CreateConsultingOrderCommand) Details() order.Details {
	return c.details
}

// PharmacyOrders returns the subgraph drafts supplied at intake.
func (c CreateConsultingOrderCommand) PharmacyOrders() []PharmacyOrderDraft {
	return c.pharmacyOrders
}

func (c *CreateConsultingOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateConsultingOrderCommand) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("clientId", err)
	}
	c.clientID = clientID
	return nil
}
