package order

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrOrderNumberIsRequired is returned when an order is constructed
	// without an order number.
	ErrOrderNumberIsRequired = errors.New("order number is required")

	// ErrLedgerIsMissing is returned by ReturnFromRejection when the order
	// has no ledger to restore from.
	ErrLedgerIsMissing = errors.New("order has no ledger")
)

// Order is the aggregate root for a customer fulfillment request. It owns
// exactly one Ledger (created lazily on the first transition if absent) and
// zero or more PharmacyOrder subgraphs, and carries an optional read-only
// client snapshot attached at restore time.
//
// All lifecycle mutation goes through ApplyTransition and
// ReturnFromRejection; everything else on the aggregate is read-only.
type Order struct {
	id          kernel.UUID
	clientID    kernel.UUID
	orderNumber string
	details     Details

	ledger         *Ledger
	pharmacyOrders []*PharmacyOrder
	client         *ClientInfo

	isConstructed bool
}

// NewOrder creates a new Order with a fresh consulting ledger: status
// Application, consult-start and lead-created timestamps set to now.
// An optional pharmacy-order subgraph may be supplied at creation time and
// persists together with the order.
func NewOrder(
	id kernel.UUID,
	clientID kernel.UUID,
	orderNumber string,
	details Details,
	pharmacyOrders []*PharmacyOrder,
	now time.Time,
) (*Order, error) {
	o := &Order{
		details:        details,
		pharmacyOrders: pharmacyOrders,
		isConstructed:  true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setClientID(clientID),
		o.setOrderNumber(orderNumber),
	); err != nil {
		return nil, err
	}

	o.ledger = NewConsultingLedger(kernel.NewUUID(), id, now)
	return o, nil
}

// RestoreOrder reconstructs an Order from persistence. The ledger, subgraph,
// and client snapshot are attached as loaded; any of them may be absent.
func RestoreOrder(
	id kernel.UUID,
	clientID kernel.UUID,
	orderNumber string,
	details Details,
	ledger *Ledger,
	pharmacyOrders []*PharmacyOrder,
	client *ClientInfo,
) (*Order, error) {
	o := &Order{
		details:        details,
		ledger:         ledger,
		pharmacyOrders: pharmacyOrders,
		client:         client,
		isConstructed:  true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setClientID(clientID),
		o.setOrderNumber(orderNumber),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// ClientID returns the identifier of the client the order belongs to.
func (o *Order) ClientID() kernel.UUID {
	return o.clientID
}

// OrderNumber returns the human-readable order number.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// Details returns the scalar order fields.
func (o *Order) Details() Details {
	return o.details
}

// Ledger returns the order's audit record, or nil if none exists yet.
func (o *Order) Ledger() *Ledger {
	return o.ledger
}

// PharmacyOrders returns the owned pharmacy-order subgraph.
func (o *Order) PharmacyOrders() []*PharmacyOrder {
	return o.pharmacyOrders
}

// Client returns the read-only client snapshot, or nil if none was attached.
func (o *Order) Client() *ClientInfo {
	return o.client
}

// EnsureLedger returns the order's ledger, creating an empty one in the
// Undefined status when absent. Orders written before ledgers existed are
// silently repaired this way mid-transition rather than rejected.
func (o *Order) EnsureLedger(now time.Time) *Ledger {
	if o.ledger == nil {
		o.ledger = NewLedger(kernel.NewUUID(), o.id, now)
	}
	return o.ledger
}

// ApplyTransition moves the order to the target status and populates exactly
// the ledger fields meaningful for that transition, stamping them with now.
//
// The machine is permissive: any enumerated status is accepted from any
// other, and a status with no side-effect entry still gets the State and
// PastState swap. Independently of the target, generic payload fields
// (individual delivery time, payment method/status, comment, delay reason)
// overwrite the ledger whenever present.
func (o *Order) ApplyTransition(target Status, payload TransitionPayload, now time.Time) error {
	if err := target.Validate(); err != nil {
		return err
	}

	ledger := o.EnsureLedger(now)
	ledger.PastState = ledger.State
	ledger.State = target

	switch target {
	case Application:
		ledger.ConsultedAt = &now

	case InSearch:
		ledger.SearchingAt = &now
		ledger.LongSearchReason = payload.LongSearchReason

	case WaitingClient:
		ledger.CallingAt = payload.CallingAt

	case Placement:
		ledger.PlacementAt = &now

	case Placed:
		ledger.PlacedAt = &now

	case ReadyForShipment:
		ledger.ReadyForShipmentAt = &now

	case AcceptedByCourier:
		ledger.CourierAcceptedAt = &now
		o.details.Courier = payload.Courier
		ledger.CommentForCourier = payload.CourierComment

	case Received:
		ledger.CourierReceivedAt = &now

	case OnTheWay:
		ledger.NotifiedAt = &now

	case Delivered:
		ledger.DeliveredAt = &now
		ledger.DeliveredTime = &now

	case Canceled:
		ledger.CanceledAt = &now
		ledger.CancellationReason = payload.CancellationReason

	case Rejection:
		// Reversible hold: remember where the order was so it can be
		// restored by ReturnFromRejection.
		ledger.WasRejection = true
		ledger.RejectionReason = payload.RejectionReason
		previous := ledger.PastState
		ledger.PreviousStateBeforeRejection = &previous

	case Returned:
		ledger.IsReturned = true
		ledger.ReturnReason = payload.ReturnReason
	}

	if payload.IndividualDeliveryTime != nil {
		ledger.IndividualDeliveryTime = payload.IndividualDeliveryTime
	}
	if payload.PaymentMethod != nil && *payload.PaymentMethod != "" {
		ledger.PaymentMethod = payload.PaymentMethod
	}
	if payload.PaymentStatus != nil {
		ledger.PaymentStatus = payload.PaymentStatus
	}
	if payload.Comment != nil && *payload.Comment != "" {
		ledger.Message = payload.Comment
	}
	if payload.DelayReason != nil && *payload.DelayReason != "" {
		ledger.DelayReason = payload.DelayReason
	}

	return nil
}

// ReturnFromRejection releases the reversible hold: the ledger returns to
// the status it held when Rejection was entered (Application when that was
// never recorded) and the rejection flag is cleared. This is the only
// transition that reads PreviousStateBeforeRejection rather than writing it,
// and it deliberately bypasses the ApplyTransition dispatch table.
func (o *Order) ReturnFromRejection() error {
	if o.ledger == nil {
		return ErrLedgerIsMissing
	}

	previous := Application
	if o.ledger.PreviousStateBeforeRejection != nil {
		previous = *o.ledger.PreviousStateBeforeRejection
	}

	o.ledger.State = previous
	o.ledger.WasRejection = false
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("clientId", err)
	}
	o.clientID = clientID
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return ErrOrderNumberIsRequired
	}
	o.orderNumber = orderNumber
	return nil
}
