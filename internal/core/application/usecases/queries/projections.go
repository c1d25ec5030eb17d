// Package queries contains read operations and the projection types they
// return. Projections are the externally visible shape of an order: scalar
// fields plus the ledger, client summary, and pharmacy-order subgraph, with
// every optional relation tolerated as absent.
package queries

import (
	"time"

	"github.com/shopspring/decimal"

	"fulfillment/internal/core/domain/model/order"
)

// OrderProjection is the assembled external view of one order.
type OrderProjection struct {
	ID          string `json:"id"`
	ClientID    string `json:"clientId"`
	OrderNumber string `json:"orderNumber"`

	Comment           *string `json:"comment,omitempty"`
	CountryToDelivery *string `json:"countryToDelivery,omitempty"`
	CityOrDistrict    string  `json:"cityOrDistrict"`
	Courier           *string `json:"courier,omitempty"`
	CommentForCourier *string `json:"commentForCourier,omitempty"`
	Operator          string  `json:"operator"`

	TotalCost             decimal.Decimal  `json:"totalCost"`
	Prepayment            *decimal.Decimal `json:"prepayment,omitempty"`
	Discount              *decimal.Decimal `json:"discount,omitempty"`
	AmountWithMarkup      *decimal.Decimal `json:"amountWithMarkup,omitempty"`
	AmountWithoutMarkup   *decimal.Decimal `json:"amountWithoutMarkup,omitempty"`
	AmountWithDelivery    *decimal.Decimal `json:"amountWithDelivery,omitempty"`
	AmountWithoutDelivery *decimal.Decimal `json:"amountWithoutDelivery,omitempty"`

	OrderType    *string `json:"orderType,omitempty"`
	ComesFrom    *string `json:"comesFrom,omitempty"`
	DeliveryType *string `json:"deliveryType,omitempty"`

	Client         *ClientProjection        `json:"client,omitempty"`
	Ledger         *LedgerProjection        `json:"orderLedger,omitempty"`
	PharmacyOrders []PharmacyOrderProjection `json:"pharmacyOrders"`
}

// ClientProjection is the client summary embedded in an order projection.
type ClientProjection struct {
	ID          string  `json:"id"`
	FullName    string  `json:"fullName"`
	PhoneNumber string  `json:"phoneNumber"`
	Street      *string `json:"street,omitempty"`
	Landmark    *string `json:"landmark,omitempty"`
}

// LedgerProjection is the audit-record view: lifecycle statuses by name plus
// every populated timestamp and reason.
type LedgerProjection struct {
	ID      string `json:"id"`
	OrderID string `json:"orderId"`

	State     string `json:"state"`
	PastState string `json:"pastState"`

	WasRejection                 bool    `json:"wasRejection"`
	PreviousStateBeforeRejection *string `json:"previousStateBeforeRejection,omitempty"`
	IsReturned                   bool    `json:"isReturned"`

	CreatedAt              *time.Time `json:"createdAt,omitempty"`
	ConsultedAt            *time.Time `json:"consultedAt,omitempty"`
	SearchingAt            *time.Time `json:"searchingAt,omitempty"`
	PlacementAt            *time.Time `json:"placementAt,omitempty"`
	PlacedAt               *time.Time `json:"placedAt,omitempty"`
	ReadyForShipmentAt     *time.Time `json:"readyForShipmentAt,omitempty"`
	CourierAcceptedAt      *time.Time `json:"courierAcceptedAt,omitempty"`
	CourierReceivedAt      *time.Time `json:"courierReceivedAt,omitempty"`
	NotifiedAt             *time.Time `json:"notifiedAt,omitempty"`
	DeliveredAt            *time.Time `json:"deliveredAt,omitempty"`
	DeliveredTime          *time.Time `json:"deliveredTime,omitempty"`
	CanceledAt             *time.Time `json:"canceledAt,omitempty"`
	ConfirmedAt            *time.Time `json:"confirmedAt,omitempty"`
	LeadCreatedAt          *time.Time `json:"leadCreatedAt,omitempty"`
	IndividualDeliveryTime *time.Time `json:"individualDeliveryTime,omitempty"`

	Message            *string `json:"message,omitempty"`
	CommentForCourier  *string `json:"commentForCourier,omitempty"`
	DelayReason        *string `json:"delayReason,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	RejectionReason    *string `json:"rejectionReason,omitempty"`
	ReturnReason       *string `json:"returnReason,omitempty"`
	LongSearchReason   *string `json:"longSearchReason,omitempty"`
	CallingAt          *string `json:"callingAt,omitempty"`

	PaymentMethod *string `json:"paymentMethod,omitempty"`
	PaymentStatus *string `json:"paymentStatus,omitempty"`
}

// PharmacyOrderProjection is one pharmacy's part of an order.
type PharmacyOrderProjection struct {
	ID         string  `json:"id"`
	OrderID    string  `json:"orderId"`
	PharmacyID *string `json:"pharmacyId,omitempty"`

	Pharmacy *PharmacyProjection `json:"pharmacy,omitempty"`

	ProductHistories []ProductHistoryProjection `json:"productHistories"`
}

// PharmacyProjection is the pharmacy summary embedded in a pharmacy order.
type PharmacyProjection struct {
	ID      string  `json:"id"`
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
}

// ProductHistoryProjection is one product row of a pharmacy order.
type ProductHistoryProjection struct {
	ID              string  `json:"id"`
	PharmacyOrderID string  `json:"pharmacyOrderId"`
	ProductID       *string `json:"productId,omitempty"`

	Message          *string `json:"message,omitempty"`
	LongSearchReason *string `json:"longSearchReason,omitempty"`
	Comment          *string `json:"comment,omitempty"`

	Count               *int             `json:"count,omitempty"`
	AmountWithMarkup    *decimal.Decimal `json:"amountWithMarkup,omitempty"`
	AmountWithoutMarkup *decimal.Decimal `json:"amountWithoutMarkup,omitempty"`

	IsReturned    bool    `json:"isReturned"`
	ReturnedCount *int    `json:"returnedCount,omitempty"`
	ReturnReason  *string `json:"returnReason,omitempty"`
	ReturnTo      *int    `json:"returnTo,omitempty"`

	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	ArrivalDate *time.Time `json:"arrivalDate,omitempty"`

	Product *ProductProjection `json:"product,omitempty"`
}

// ProductProjection is the product summary embedded in a product row.
type ProductProjection struct {
	ID                 string           `json:"id"`
	Name               string           `json:"name"`
	PriceWithMarkup    decimal.Decimal  `json:"priceWithMarkup"`
	PriceWithoutMarkup *decimal.Decimal `json:"priceWithoutMarkup,omitempty"`
	PathImage          string           `json:"pathImage"`
}

// AssembleOrder builds the projection for one aggregate. It never fails on
// absent relations: a missing client or ledger is omitted and a missing
// subgraph becomes an empty collection.
func AssembleOrder(aggregate *order.Order) OrderProjection {
	details := aggregate.Details()

	projection := OrderProjection{
		ID:          aggregate.ID().String(),
		ClientID:    aggregate.ClientID().String(),
		OrderNumber: aggregate.OrderNumber(),

		Comment:           details.Comment,
		CountryToDelivery: details.CountryToDelivery,
		CityOrDistrict:    details.CityOrDistrict,
		Courier:           details.Courier,
		CommentForCourier: details.CommentForCourier,
		Operator:          details.Operator,

		TotalCost:             details.TotalCost,
		Prepayment:            details.Prepayment,
		Discount:              details.Discount,
		AmountWithMarkup:      details.AmountWithMarkup,
		AmountWithoutMarkup:   details.AmountWithoutMarkup,
		AmountWithDelivery:    details.AmountWithDelivery,
		AmountWithoutDelivery: details.AmountWithoutDelivery,

		OrderType:    details.OrderType,
		ComesFrom:    details.ComesFrom,
		DeliveryType: details.DeliveryType,

		PharmacyOrders: assemblePharmacyOrders(aggregate.PharmacyOrders()),
	}

	if client := aggregate.Client(); client != nil {
		projection.Client = &ClientProjection{
			ID:          client.ID.String(),
			FullName:    client.FullName,
			PhoneNumber: client.PhoneNumber,
			Street:      client.Street,
			Landmark:    client.Landmark,
		}
	}

	if ledger := aggregate.Ledger(); ledger != nil {
		projection.Ledger = assembleLedger(ledger)
	}

	return projection
}

// AssemblePharmacyOrders builds projections for a standalone subgraph read.
func AssemblePharmacyOrders(pharmacyOrders []*order.PharmacyOrder) []PharmacyOrderProjection {
	return assemblePharmacyOrders(pharmacyOrders)
}

func assembleLedger(ledger *order.Ledger) *LedgerProjection {
	projection := &LedgerProjection{
		ID:      ledger.ID.String(),
		OrderID: ledger.OrderID.String(),

		State:     ledger.State.String(),
		PastState: ledger.PastState.String(),

		WasRejection: ledger.WasRejection,
		IsReturned:   ledger.IsReturned,

		CreatedAt:              ledger.CreatedAt,
		ConsultedAt:            ledger.ConsultedAt,
		SearchingAt:            ledger.SearchingAt,
		PlacementAt:            ledger.PlacementAt,
		PlacedAt:               ledger.PlacedAt,
		ReadyForShipmentAt:     ledger.ReadyForShipmentAt,
		CourierAcceptedAt:      ledger.CourierAcceptedAt,
		CourierReceivedAt:      ledger.CourierReceivedAt,
		NotifiedAt:             ledger.NotifiedAt,
		DeliveredAt:            ledger.DeliveredAt,
		DeliveredTime:          ledger.DeliveredTime,
		CanceledAt:             ledger.CanceledAt,
		ConfirmedAt:            ledger.ConfirmedAt,
		LeadCreatedAt:          ledger.LeadCreatedAt,
		IndividualDeliveryTime: ledger.IndividualDeliveryTime,

		Message:            ledger.Message,
		CommentForCourier:  ledger.CommentForCourier,
		DelayReason:        ledger.DelayReason,
		CancellationReason: ledger.CancellationReason,
		RejectionReason:    ledger.RejectionReason,
		ReturnReason:       ledger.ReturnReason,
		LongSearchReason:   ledger.LongSearchReason,
		CallingAt:          ledger.CallingAt,

		PaymentMethod: ledger.PaymentMethod,
	}

	if ledger.PreviousStateBeforeRejection != nil {
		previous := ledger.PreviousStateBeforeRejection.String()
		projection.PreviousStateBeforeRejection = &previous
	}

	if ledger.PaymentStatus != nil {
		status := ledger.PaymentStatus.String()
		projection.PaymentStatus = &status
	}

	return projection
}

func assemblePharmacyOrders(pharmacyOrders []*order.PharmacyOrder) []PharmacyOrderProjection {
	projections := make([]PharmacyOrderProjection, 0, len(pharmacyOrders))
	for _, po := range pharmacyOrders {
		if po == nil {
			continue
		}

		projection := PharmacyOrderProjection{
			ID:               po.ID.String(),
			OrderID:          po.OrderID.String(),
			ProductHistories: assembleProductHistories(po.ProductHistories),
		}

		if po.PharmacyID != nil {
			pharmacyID := po.PharmacyID.String()
			projection.PharmacyID = &pharmacyID
		}

		if po.Pharmacy != nil {
			projection.Pharmacy = &PharmacyProjection{
				ID:      po.Pharmacy.ID.String(),
				Name:    po.Pharmacy.Name,
				Address: po.Pharmacy.Address,
			}
		}

		projections = append(projections, projection)
	}

	return projections
}

func assembleProductHistories(histories []*order.ProductHistory) []ProductHistoryProjection {
	projections := make([]ProductHistoryProjection, 0, len(histories))
	for _, history := range histories {
		if history == nil {
			continue
		}

		projection := ProductHistoryProjection{
			ID:              history.ID.String(),
			PharmacyOrderID: history.PharmacyOrderID.String(),

			Message:          history.Message,
			LongSearchReason: history.LongSearchReason,
			Comment:          history.Comment,

			Count:               history.Count,
			AmountWithMarkup:    history.AmountWithMarkup,
			AmountWithoutMarkup: history.AmountWithoutMarkup,

			IsReturned:    history.IsReturned,
			ReturnedCount: history.ReturnedCount,
			ReturnReason:  history.ReturnReason,

			CreatedAt:   history.CreatedAt,
			ArrivalDate: history.ArrivalDate,
		}

		if history.ProductID != nil {
			productID := history.ProductID.String()
			projection.ProductID = &productID
		}

		if history.ReturnTo != nil {
			returnTo := int(*history.ReturnTo)
			projection.ReturnTo = &returnTo
		}

		if history.Product != nil {
			projection.Product = &ProductProjection{
				ID:                 history.Product.ID.String(),
				Name:               history.Product.Name,
				PriceWithMarkup:    history.Product.PriceWithMarkup,
				PriceWithoutMarkup: history.Product.PriceWithoutMarkup,
				PathImage:          history.Product.PathImage,
			}
		}

		projections = append(projections, projection)
	}

	return projections
}
