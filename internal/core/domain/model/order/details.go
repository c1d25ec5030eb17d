package order

import (
	"github.com/shopspring/decimal"

	"fulfillment/internal/core/domain/model/kernel"
)

// Details carries the scalar order fields outside identity: the monetary
// breakdown, delivery classification, and free-text courier/operator/comment
// fields. All monetary fields except TotalCost are optional.
//
// Classification fields (OrderType, ComesFrom, DeliveryType) are recorded as
// free strings: their vocabularies are reference data maintained outside the
// core, which only stores what it is given.
type Details struct {
	Comment           *string
	CountryToDelivery *string
	CityOrDistrict    string
	Courier           *string
	CommentForCourier *string
	Operator          string

	TotalCost             decimal.Decimal
	Prepayment            *decimal.Decimal
	Discount              *decimal.Decimal
	AmountWithMarkup      *decimal.Decimal
	AmountWithoutMarkup   *decimal.Decimal
	AmountWithDelivery    *decimal.Decimal
	AmountWithoutDelivery *decimal.Decimal

	OrderType    *string
	ComesFrom    *string
	DeliveryType *string
}

// ClientInfo is a read-only snapshot of the referenced client, attached to
// the aggregate when it is restored from persistence. The core never writes
// client data; the snapshot exists for projections and search.
type ClientInfo struct {
	ID          kernel.UUID
	FullName    string
	PhoneNumber string
	Street      *string
	Landmark    *string
}
