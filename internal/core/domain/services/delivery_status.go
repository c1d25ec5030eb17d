package services

import (
	"fmt"
	"sort"
	"strings"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// DeliveryStatusResolver translates the loosely-typed, human-entered delivery
// status vocabulary used by the courier side into canonical order statuses.
//
// Only {Received, OnTheWay, Delivered} are reachable through the resolver:
// couriers report delivery progress, nothing else. Multiple spellings are
// accepted ("ontheway", "on_the_way", ...); anything outside the vocabulary
// is rejected with a validation error listing the accepted values.
type DeliveryStatusResolver struct {
	aliases map[string]order.Status
}

// NewDeliveryStatusResolver builds the resolver with its immutable alias
// table. Construct once at process start and share; the resolver is
// read-only and safe for concurrent use.
func NewDeliveryStatusResolver() DeliveryStatusResolver {
	return DeliveryStatusResolver{
		aliases: map[string]order.Status{
			"received":   order.Received,
			"ontheway":   order.OnTheWay,
			"on_the_way": order.OnTheWay,
			"delivered":  order.Delivered,
		},
	}
}

// Resolve normalizes statusText (trim, case-fold) and maps it to a canonical
// status. Unknown spellings fall back to a case-insensitive match against the
// full status vocabulary, accepted only when the result is delivery-relevant.
func (r DeliveryStatusResolver) Resolve(statusText string) (order.Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(statusText))

	if status, ok := r.aliases[normalized]; ok {
		return status, nil
	}

	if status, err := order.ParseStatus(normalized); err == nil {
		if status == order.Received || status == order.OnTheWay || status == order.Delivered {
			return status, nil
		}
	}

	return order.Undefined, errs.NewValueIsInvalidErrorWithCause(
		"delivery status",
		fmt.Errorf("%q is not a valid delivery status, valid values: %s",
			statusText, strings.Join(r.AcceptedValues(), ", ")),
	)
}

// AcceptedValues lists the accepted spellings, sorted for stable messages.
func (r DeliveryStatusResolver) AcceptedValues() []string {
	values := make([]string, 0, len(r.aliases))
	for alias := range r.aliases {
		values = append(values, alias)
	}
	sort.Strings(values)
	return values
}
