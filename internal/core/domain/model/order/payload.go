package order

import "time"

// TransitionPayload carries the optional data accompanying a status
// transition. Per-status fields (reasons, courier, callback marker) are
// consumed by the transition the status maps to; the generic fields
// (Comment, DelayReason, payment fields, IndividualDeliveryTime) are applied
// for any target status whenever present.
type TransitionPayload struct {
	Comment        *string
	Courier        *string
	CourierComment *string

	DelayReason        *string
	CancellationReason *string
	RejectionReason    *string
	ReturnReason       *string
	LongSearchReason   *string

	// CallingAt is the scheduled-callback marker stored when the order
	// moves to WaitingClient. Free text, as entered by the operator.
	CallingAt *string

	IndividualDeliveryTime *time.Time
	PaymentMethod          *string
	PaymentStatus          *PaymentStatus
}
