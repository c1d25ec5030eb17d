package order

import (
	"time"

	"github.com/shopspring/decimal"

	"fulfillment/internal/core/domain/model/kernel"
)

// ReturnTarget says where a returned product goes back to.
type ReturnTarget int

const (
	// ReturnTargetUndefined marks an unset return target.
	ReturnTargetUndefined ReturnTarget = iota

	// ReturnToPharmacy returns the product to the fulfilling pharmacy.
	ReturnToPharmacy

	// ReturnToProvider returns the product to the upstream provider.
	ReturnToProvider
)

// PharmacyOrder groups the product rows fulfilled by one pharmacy for an
// order. One order can fan out to several pharmacies. The Order aggregate
// owns its pharmacy orders; the referenced Pharmacy itself is external and
// only a read-only snapshot of it may be attached.
type PharmacyOrder struct {
	ID         kernel.UUID
	OrderID    kernel.UUID
	PharmacyID *kernel.UUID

	// Pharmacy is an optional reference snapshot attached at restore time.
	Pharmacy *PharmacyInfo

	ProductHistories []*ProductHistory
}

// ProductHistory records the outcome of one product within a pharmacy order:
// amounts, count, return bookkeeping, arrival date, and free comments.
// Rows are created at intake or by external collaborators and only read here.
type ProductHistory struct {
	ID              kernel.UUID
	PharmacyOrderID kernel.UUID
	ProductID       *kernel.UUID

	Message          *string
	LongSearchReason *string
	Comment          *string

	Count               *int
	AmountWithMarkup    *decimal.Decimal
	AmountWithoutMarkup *decimal.Decimal

	IsReturned    bool
	ReturnedCount *int
	ReturnReason  *string
	ReturnTo      *ReturnTarget

	CreatedAt   *time.Time
	ArrivalDate *time.Time

	// Product is an optional reference snapshot attached at restore time.
	Product *ProductInfo
}

// PharmacyInfo is a read-only snapshot of the referenced pharmacy.
type PharmacyInfo struct {
	ID      kernel.UUID
	Name    *string
	Address *string
}

// ProductInfo is a read-only snapshot of the referenced product.
type ProductInfo struct {
	ID                 kernel.UUID
	Name               string
	PriceWithMarkup    decimal.Decimal
	PriceWithoutMarkup *decimal.Decimal
	PathImage          string
}
