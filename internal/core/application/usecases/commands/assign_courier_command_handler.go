package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// AssignCourierCommandHandler drives the courier-handoff transition.
// It is a thin layer over the state machine: the order moves to
// AcceptedByCourier with the courier identifier and comment in the payload.
type AssignCourierCommandHandler struct {
	updateState UpdateOrderStateCommandHandler
}

// NewAssignCourierCommandHandler creates a handler for courier assignment.
func NewAssignCourierCommandHandler(updateState UpdateOrderStateCommandHandler) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		updateState: updateState,
	}
}

// Handle assigns the courier. Returns false (with a nil error) when the
// order does not exist; validation failures are returned as errors.
func (h AssignCourierCommandHandler) Handle(ctx context.Context, cmd AssignCourierCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	courierID := cmd.CourierID()
	updateCmd, err := NewUpdateOrderStateCommand(cmd.OrderID(), order.AcceptedByCourier, order.TransitionPayload{
		Courier:        &courierID,
		CourierComment: cmd.Comment(),
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
