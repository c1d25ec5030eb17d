// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between the domain model and the relational layout:
// one orders row, one order_ledgers row (unique per order), N pharmacy_orders
// rows, M product_histories rows, plus read-only reference tables for
// clients, pharmacies, and products.
package orderrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// Models lists every DTO in dependency order for schema migration.
func Models() []any {
	return []any{
		&ClientDTO{},
		&PharmacyDTO{},
		&ProductDTO{},
		&OrderDTO{},
		&LedgerDTO{},
		&PharmacyOrderDTO{},
		&ProductHistoryDTO{},
	}
}

// OrderDTO is the database row for the order aggregate root.
type OrderDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ClientID    uuid.UUID `gorm:"type:uuid;index"`
	OrderNumber string    `gorm:"size:32;uniqueIndex"`

	Comment           *string
	CountryToDelivery *string
	CityOrDistrict    string
	Courier           *string
	CommentForCourier *string
	Operator          string

	TotalCost             decimal.Decimal  `gorm:"type:numeric"`
	Prepayment            *decimal.Decimal `gorm:"type:numeric"`
	Discount              *decimal.Decimal `gorm:"type:numeric"`
	AmountWithMarkup      *decimal.Decimal `gorm:"type:numeric"`
	AmountWithoutMarkup   *decimal.Decimal `gorm:"type:numeric"`
	AmountWithDelivery    *decimal.Decimal `gorm:"type:numeric"`
	AmountWithoutDelivery *decimal.Decimal `gorm:"type:numeric"`

	OrderType    *string
	ComesFrom    *string
	DeliveryType *string

	Client         *ClientDTO         `gorm:"foreignKey:ClientID"`
	Ledger         *LedgerDTO         `gorm:"foreignKey:OrderID"`
	PharmacyOrders []PharmacyOrderDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// LedgerDTO is the database row for the per-order audit record.
// The order reference is unique: one ledger per order, enforced by schema.
type LedgerDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID uuid.UUID `gorm:"type:uuid;uniqueIndex"`

	State     int `gorm:"index"`
	PastState int

	WasRejection                 bool
	PreviousStateBeforeRejection *int
	IsReturned                   bool

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
	PaymentStatus *int
}

// TableName overrides GORM's default naming to use "order_ledgers".
func (LedgerDTO) TableName() string {
	return "order_ledgers"
}

// PharmacyOrderDTO is the database row grouping product rows per pharmacy.
type PharmacyOrderDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID  `gorm:"type:uuid;index"`
	PharmacyID *uuid.UUID `gorm:"type:uuid;index"`

	Pharmacy         *PharmacyDTO        `gorm:"foreignKey:PharmacyID"`
	ProductHistories []ProductHistoryDTO `gorm:"foreignKey:PharmacyOrderID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming to use "pharmacy_orders".
func (PharmacyOrderDTO) TableName() string {
	return "pharmacy_orders"
}

// ProductHistoryDTO is the database row for one product within a pharmacy order.
type ProductHistoryDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	PharmacyOrderID uuid.UUID  `gorm:"type:uuid;index"`
	ProductID       *uuid.UUID `gorm:"type:uuid;index"`

	Message          *string
	LongSearchReason *string
	Comment          *string

	Count               *int
	AmountWithMarkup    *decimal.Decimal `gorm:"type:numeric"`
	AmountWithoutMarkup *decimal.Decimal `gorm:"type:numeric"`

	IsReturned    bool
	ReturnedCount *int
	ReturnReason  *string
	ReturnTo      *int

	CreatedAt   *time.Time
	ArrivalDate *time.Time

	Product *ProductDTO `gorm:"foreignKey:ProductID"`
}

// TableName overrides GORM's default naming to use "product_histories".
func (ProductHistoryDTO) TableName() string {
	return "product_histories"
}

// ClientDTO is the read-only reference row for the order's client.
// Client records are maintained by an external collaborator; this repository
// only reads the columns needed for projections and search.
type ClientDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName    string
	PhoneNumber string
	Street      *string
	Landmark    *string
}

// TableName overrides GORM's default naming to use "clients".
func (ClientDTO) TableName() string {
	return "clients"
}

// PharmacyDTO is the read-only reference row for a fulfilling pharmacy.
type PharmacyDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name    *string
	Address *string
}

// TableName overrides GORM's default naming to use "pharmacies".
func (PharmacyDTO) TableName() string {
	return "pharmacies"
}

// ProductDTO is the read-only reference row for a product.
type ProductDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name               string
	PriceWithMarkup    decimal.Decimal  `gorm:"type:numeric"`
	PriceWithoutMarkup *decimal.Decimal `gorm:"type:numeric"`
	PathImage          string
}

// TableName overrides GORM's default naming to use "products".
func (ProductDTO) TableName() string {
	return "products"
}

// fromDomain converts an order aggregate to its database representation.
// The client/pharmacy/product reference snapshots are deliberately not
// mapped: this repository never writes reference tables.
func fromDomain(aggregate *order.Order) OrderDTO {
	details := aggregate.Details()

	dto := OrderDTO{
		ID:          aggregate.ID().Bytes(),
		ClientID:    aggregate.ClientID().Bytes(),
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
	}

	if ledger := aggregate.Ledger(); ledger != nil {
		ledgerDTO := ledgerFromDomain(ledger)
		dto.Ledger = &ledgerDTO
	}

	for _, po := range aggregate.PharmacyOrders() {
		dto.PharmacyOrders = append(dto.PharmacyOrders, pharmacyOrderFromDomain(po))
	}

	return dto
}

func ledgerFromDomain(ledger *order.Ledger) LedgerDTO {
	dto := LedgerDTO{
		ID:      ledger.ID.Bytes(),
		OrderID: ledger.OrderID.Bytes(),

		State:     int(ledger.State),
		PastState: int(ledger.PastState),

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
		previous := int(*ledger.PreviousStateBeforeRejection)
		dto.PreviousStateBeforeRejection = &previous
	}

	if ledger.PaymentStatus != nil {
		status := int(*ledger.PaymentStatus)
		dto.PaymentStatus = &status
	}

	return dto
}

func pharmacyOrderFromDomain(po *order.PharmacyOrder) PharmacyOrderDTO {
	dto := PharmacyOrderDTO{
		ID:      po.ID.Bytes(),
		OrderID: po.OrderID.Bytes(),
	}

	if po.PharmacyID != nil {
		raw := po.PharmacyID.Bytes()
		dto.PharmacyID = &raw
	}

	for _, history := range po.ProductHistories {
		dto.ProductHistories = append(dto.ProductHistories, productHistoryFromDomain(history))
	}

	return dto
}

func productHistoryFromDomain(history *order.ProductHistory) ProductHistoryDTO {
	dto := ProductHistoryDTO{
		ID:              history.ID.Bytes(),
		PharmacyOrderID: history.PharmacyOrderID.Bytes(),

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
		raw := history.ProductID.Bytes()
		dto.ProductID = &raw
	}

	if history.ReturnTo != nil {
		returnTo := int(*history.ReturnTo)
		dto.ReturnTo = &returnTo
	}

	return dto
}

// toDomain converts a database row back to the order aggregate,
// reattaching whatever relations were loaded.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}

	details := order.Details{
		Comment:           dto.Comment,
		CountryToDelivery: dto.CountryToDelivery,
		CityOrDistrict:    dto.CityOrDistrict,
		Courier:           dto.Courier,
		CommentForCourier: dto.CommentForCourier,
		Operator:          dto.Operator,

		TotalCost:             dto.TotalCost,
		Prepayment:            dto.Prepayment,
		Discount:              dto.Discount,
		AmountWithMarkup:      dto.AmountWithMarkup,
		AmountWithoutMarkup:   dto.AmountWithoutMarkup,
		AmountWithDelivery:    dto.AmountWithDelivery,
		AmountWithoutDelivery: dto.AmountWithoutDelivery,

		OrderType:    dto.OrderType,
		ComesFrom:    dto.ComesFrom,
		DeliveryType: dto.DeliveryType,
	}

	var ledger *order.Ledger
	if dto.Ledger != nil {
		ledger, err = ledgerToDomain(*dto.Ledger)
		if err != nil {
			return nil, err
		}
	}

	pharmacyOrders, err := pharmacyOrdersToDomain(dto.PharmacyOrders)
	if err != nil {
		return nil, err
	}

	var client *order.ClientInfo
	if dto.Client != nil {
		client, err = clientToDomain(*dto.Client)
		if err != nil {
			return nil, err
		}
	}

	return order.RestoreOrder(id, clientID, dto.OrderNumber, details, ledger, pharmacyOrders, client)
}

func ledgerToDomain(dto LedgerDTO) (*order.Ledger, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	ledger := &order.Ledger{
		ID:      id,
		OrderID: orderID,

		State:     order.Status(dto.State),
		PastState: order.Status(dto.PastState),

		WasRejection: dto.WasRejection,
		IsReturned:   dto.IsReturned,

		CreatedAt:              dto.CreatedAt,
		ConsultedAt:            dto.ConsultedAt,
		SearchingAt:            dto.SearchingAt,
		PlacementAt:            dto.PlacementAt,
		PlacedAt:               dto.PlacedAt,
		ReadyForShipmentAt:     dto.ReadyForShipmentAt,
		CourierAcceptedAt:      dto.CourierAcceptedAt,
		CourierReceivedAt:      dto.CourierReceivedAt,
		NotifiedAt:             dto.NotifiedAt,
		DeliveredAt:            dto.DeliveredAt,
		DeliveredTime:          dto.DeliveredTime,
		CanceledAt:             dto.CanceledAt,
		ConfirmedAt:            dto.ConfirmedAt,
		LeadCreatedAt:          dto.LeadCreatedAt,
		IndividualDeliveryTime: dto.IndividualDeliveryTime,

		Message:            dto.Message,
		CommentForCourier:  dto.CommentForCourier,
		DelayReason:        dto.DelayReason,
		CancellationReason: dto.CancellationReason,
		RejectionReason:    dto.RejectionReason,
		ReturnReason:       dto.ReturnReason,
		LongSearchReason:   dto.LongSearchReason,
		CallingAt:          dto.CallingAt,

		PaymentMethod: dto.PaymentMethod,
	}

	if dto.PreviousStateBeforeRejection != nil {
		previous := order.Status(*dto.PreviousStateBeforeRejection)
		ledger.PreviousStateBeforeRejection = &previous
	}

	if dto.PaymentStatus != nil {
		status := order.PaymentStatus(*dto.PaymentStatus)
		ledger.PaymentStatus = &status
	}

	return ledger, nil
}

func pharmacyOrdersToDomain(dtos []PharmacyOrderDTO) ([]*order.PharmacyOrder, error) {
	if len(dtos) == 0 {
		return nil, nil
	}

	pharmacyOrders := make([]*order.PharmacyOrder, 0, len(dtos))
	for _, dto := range dtos {
		po, err := pharmacyOrderToDomain(dto)
		if err != nil {
			return nil, err
		}
		pharmacyOrders = append(pharmacyOrders, po)
	}

	return pharmacyOrders, nil
}

func pharmacyOrderToDomain(dto PharmacyOrderDTO) (*order.PharmacyOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	po := &order.PharmacyOrder{
		ID:      id,
		OrderID: orderID,
	}

	if dto.PharmacyID != nil {
		pharmacyID, pharmacyErr := kernel.UUIDFromBytes((*dto.PharmacyID)[:])
		if pharmacyErr != nil {
			return nil, pharmacyErr
		}
		po.PharmacyID = &pharmacyID
	}

	if dto.Pharmacy != nil {
		pharmacyID, pharmacyErr := kernel.UUIDFromBytes(dto.Pharmacy.ID[:])
		if pharmacyErr != nil {
			return nil, pharmacyErr
		}
		po.Pharmacy = &order.PharmacyInfo{
			ID:      pharmacyID,
			Name:    dto.Pharmacy.Name,
			Address: dto.Pharmacy.Address,
		}
	}

	for _, historyDTO := range dto.ProductHistories {
		history, historyErr := productHistoryToDomain(historyDTO)
		if historyErr != nil {
			return nil, historyErr
		}
		po.ProductHistories = append(po.ProductHistories, history)
	}

	return po, nil
}

func productHistoryToDomain(dto ProductHistoryDTO) (*order.ProductHistory, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	pharmacyOrderID, err := kernel.UUIDFromBytes(dto.PharmacyOrderID[:])
	if err != nil {
		return nil, err
	}

	history := &order.ProductHistory{
		ID:              id,
		PharmacyOrderID: pharmacyOrderID,

		Message:          dto.Message,
		LongSearchReason: dto.LongSearchReason,
		Comment:          dto.Comment,

		Count:               dto.Count,
		AmountWithMarkup:    dto.AmountWithMarkup,
		AmountWithoutMarkup: dto.AmountWithoutMarkup,

		IsReturned:    dto.IsReturned,
		ReturnedCount: dto.ReturnedCount,
		ReturnReason:  dto.ReturnReason,

		CreatedAt:   dto.CreatedAt,
		ArrivalDate: dto.ArrivalDate,
	}

	if dto.ProductID != nil {
		productID, productErr := kernel.UUIDFromBytes((*dto.ProductID)[:])
		if productErr != nil {
			return nil, productErr
		}
		history.ProductID = &productID
	}

	if dto.ReturnTo != nil {
		returnTo := order.ReturnTarget(*dto.ReturnTo)
		history.ReturnTo = &returnTo
	}

	if dto.Product != nil {
		productID, productErr := kernel.UUIDFromBytes(dto.Product.ID[:])
		if productErr != nil {
			return nil, productErr
		}
		history.Product = &order.ProductInfo{
			ID:                 productID,
			Name:               dto.Product.Name,
			PriceWithMarkup:    dto.Product.PriceWithMarkup,
			PriceWithoutMarkup: dto.Product.PriceWithoutMarkup,
			PathImage:          dto.Product.PathImage,
		}
	}

	return history, nil
}

func clientToDomain(dto ClientDTO) (*order.ClientInfo, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return &order.ClientInfo{
		ID:          id,
		FullName:    dto.FullName,
		PhoneNumber: dto.PhoneNumber,
		Street:      dto.Street,
		Landmark:    dto.Landmark,
	}, nil
}
