package order

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// PaymentStatus represents how far payment for an order has progressed.
// It is recorded on the ledger alongside the free-text payment method.
type PaymentStatus int

const (
	// PaymentUndefined marks an unset payment status.
	PaymentUndefined PaymentStatus = iota

	// PaymentPending means payment is expected but not yet made.
	PaymentPending

	// PaymentPaid means the order is fully paid.
	PaymentPaid

	// PaymentPartiallyPaid means a prepayment was made.
	PaymentPartiallyPaid

	// PaymentRefunded means a completed payment was returned to the client.
	PaymentRefunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentUndefined:     "Undefined",
		PaymentPending:       "Pending",
		PaymentPaid:          "Paid",
		PaymentPartiallyPaid: "PartiallyPaid",
		PaymentRefunded:      "Refunded",
	}
}

// Validate checks that the PaymentStatus value belongs to the enumeration.
func (p PaymentStatus) Validate() error {
	if _, ok := getPaymentStatusStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment status is invalid",
			fmt.Errorf("%d is not a valid payment status", p),
		)
	}
	return nil
}

// String returns the payment status name. Implements fmt.Stringer.
func (p PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[p]; ok {
		return str
	}
	return "Undefined"
}

// ParsePaymentStatus resolves a payment status by its name, case-insensitively.
// Returns an error for names outside the vocabulary.
func ParsePaymentStatus(name string) (PaymentStatus, error) {
	for status, str := range getPaymentStatusStrings() {
		if strings.EqualFold(str, name) {
			return status, nil
		}
	}
	return PaymentUndefined, errs.NewValueIsInvalidErrorWithCause(
		"payment status is invalid",
		fmt.Errorf("%q is not a valid payment status name", name),
	)
}
