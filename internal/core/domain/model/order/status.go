package order

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of a fulfillment order.
//
// The lifecycle is a long, branching flow: intake (Application) → search →
// placement → courier handoff → delivery, with cancellation, rejection, and
// return side-paths. Operators routinely move orders backwards to correct
// mistakes, so the machine is permissive: any enumerated status may be
// requested from any other, and only the per-status side effects recorded by
// the ledger are enforced.
//
// Rejection is a reversible hold: entering it remembers the prior status so
// the order can later be restored exactly where it was.
type Status int

const (
	// Undefined marks an uninitialized status. It is also the status a
	// repaired ledger starts in when an order predates ledger creation.
	Undefined Status = iota

	// Application is the intake status: the client is being consulted.
	Application

	// InSearch means an operator is searching pharmacies for the products.
	InSearch

	// WaitingClient means the order waits on a scheduled client callback.
	WaitingClient

	// Placement means the order is being placed with pharmacies.
	Placement

	// Placed means all pharmacy placements are confirmed.
	Placed

	// ReadyForShipment means the order is packed and awaiting a courier.
	ReadyForShipment

	// AcceptedByCourier means a courier took responsibility for the order.
	AcceptedByCourier

	// Received means the courier physically received the order.
	Received

	// OnTheWay means the client has been notified and delivery is in progress.
	OnTheWay

	// Delivered means the order reached the client.
	Delivered

	// Canceled means the order was canceled.
	Canceled

	// Returned means products were returned after delivery.
	Returned

	// Rejection is the reversible hold status.
	Rejection
)

// getStatusStrings returns the map of Status values to their names.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Undefined:         "Undefined",
		Application:       "Application",
		InSearch:          "InSearch",
		WaitingClient:     "WaitingClient",
		Placement:         "Placement",
		Placed:            "Placed",
		ReadyForShipment:  "ReadyForShipment",
		AcceptedByCourier: "AcceptedByCourier",
		Received:          "Received",
		OnTheWay:          "OnTheWay",
		Delivered:         "Delivered",
		Canceled:          "Canceled",
		Returned:          "Returned",
		Rejection:         "Rejection",
	}
}

// Validate checks that the Status value belongs to the enumerated vocabulary.
// Undefined is a member: it is a legitimate stored value for repaired ledgers.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the status name, or "Undefined" for out-of-range values.
// Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Undefined"
}

// ParseStatus resolves a status by its name, case-insensitively.
// Returns an error for names outside the vocabulary.
func ParseStatus(name string) (Status, error) {
	for status, str := range getStatusStrings() {
		if strings.EqualFold(str, name) {
			return status, nil
		}
	}
	return Undefined, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid status name", name),
	)
}
