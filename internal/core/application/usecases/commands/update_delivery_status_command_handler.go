package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
)

// UpdateDeliveryStatusCommandHandler translates courier-entered status text
// into a canonical transition and drives the state machine with it.
// Only the delivery-relevant statuses (Received, OnTheWay, Delivered) are
// reachable this way.
type UpdateDeliveryStatusCommandHandler struct {
	resolver    services.DeliveryStatusResolver
	updateState UpdateOrderStateCommandHandler
}

// NewUpdateDeliveryStatusCommandHandler creates a handler for delivery updates.
func NewUpdateDeliveryStatusCommandHandler(
	resolver services.DeliveryStatusResolver,
	updateState UpdateOrderStateCommandHandler,
) UpdateDeliveryStatusCommandHandler {
	return UpdateDeliveryStatusCommandHandler{
		resolver:    resolver,
		updateState: updateState,
	}
}

// Handle resolves the status text and applies the transition. Returns false
// (with a nil error) when the order does not exist; an unrecognized status
// is a validation error carrying the accepted values.
func (h UpdateDeliveryStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateDeliveryStatusCommand,
) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	target, err := h.resolver.Resolve(cmd.StatusText())
	if err != nil {
		return false, err
	}

	updateCmd, err := NewUpdateOrderStateCommand(cmd.OrderID(), target, order.TransitionPayload{
		Comment: cmd.Comment(),
	})
	if err != nil {
		return false, err
	}

	if _, err = h.updateState.Handle(ctx, updateCmd); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
