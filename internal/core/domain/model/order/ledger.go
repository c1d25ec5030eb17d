package order

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// Ledger is the single audit record kept per order. It holds the current and
// previous lifecycle status plus a large set of optional event timestamps and
// reasons, each meaningful only for specific transitions.
//
// The ledger is pure data: it is mutated exclusively by the Order aggregate
// during transitions and never carries behavior of its own. PastState stores
// exactly one step back, not a full history; the rejection-recovery feature
// depends on that one-step-back semantics.
//
// Invariants:
//   - State always reflects the last successfully applied transition.
//   - PastState equals the State value held immediately before it.
//   - When WasRejection is true, PreviousStateBeforeRejection holds the
//     status to restore on release.
type Ledger struct {
	ID      kernel.UUID
	OrderID kernel.UUID

	State     Status
	PastState Status

	// WasRejection and PreviousStateBeforeRejection implement the reversible
	// hold: entering Rejection captures the prior status, and releasing it
	// restores that status and clears the flag.
	WasRejection                 bool
	PreviousStateBeforeRejection *Status

	IsReturned bool

	CreatedAt              *time.Time
	ConsultedAt            *time.Time
	SearchingAt            *time.Time
	PlacementAt            *time.Time
	PlacedAt               *time.Time
	ReadyForShipmentAt     *time.Time
	CourierAcceptedAt      *time.Time
	CourierReceivedAt      *time.Time
	NotifiedAt             *time.Time
	DeliveredAt            *time.Time
	DeliveredTime          *time.Time
	CanceledAt             *time.Time
	ConfirmedAt            *time.Time
	LeadCreatedAt          *time.Time
	IndividualDeliveryTime *time.Time

	Message            *string
	CommentForCourier  *string
	DelayReason        *string
	CancellationReason *string
	RejectionReason    *string
	ReturnReason       *string
	LongSearchReason   *string
	CallingAt          *string

	PaymentMethod *string
	PaymentStatus *PaymentStatus
}

// NewLedger creates an empty ledger in the Undefined status. This is the
// repair path for orders that predate ledger creation, not a normal flow.
func NewLedger(id, orderID kernel.UUID, now time.Time) *Ledger {
	return &Ledger{
		ID:        id,
		OrderID:   orderID,
		State:     Undefined,
		CreatedAt: &now,
	}
}

// NewConsultingLedger creates the initial ledger for a freshly taken order:
// status Application with consult-start and lead-created timestamps set.
func NewConsultingLedger(id, orderID kernel.UUID, now time.Time) *Ledger {
	return &Ledger{
		ID:            id,
		OrderID:       orderID,
		State:         Application,
		CreatedAt:     &now,
		ConsultedAt:   &now,
		LeadCreatedAt: &now,
	}
}
