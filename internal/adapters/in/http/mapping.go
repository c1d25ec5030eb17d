package http

import (
	"github.com/shopspring/decimal"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// payloadFromRequest converts the request payload to the domain payload,
// parsing the payment status name when present.
func payloadFromRequest(body TransitionRequest) (order.TransitionPayload, error) {
	payload := order.TransitionPayload{
		Comment:                body.Comment,
		Courier:                body.Courier,
		CourierComment:         body.CourierComment,
		DelayReason:            body.DelayReason,
		CancellationReason:     body.CancellationReason,
		RejectionReason:        body.RejectionReason,
		ReturnReason:           body.ReturnReason,
		LongSearchReason:       body.LongSearchReason,
		CallingAt:              body.CallingAt,
		IndividualDeliveryTime: body.IndividualDeliveryTime,
		PaymentMethod:          body.PaymentMethod,
	}

	if body.PaymentStatus != nil {
		status, err := order.ParsePaymentStatus(*body.PaymentStatus)
		if err != nil {
			return order.TransitionPayload{}, err
		}
		payload.PaymentStatus = &status
	}

	return payload, nil
}

// detailsFromRequest converts the intake body to order details, parsing
// every money field as a decimal string.
func detailsFromRequest(body NewOrder) (order.Details, error) {
	totalCost, err := decimal.NewFromString(body.TotalCost)
	if err != nil {
		return order.Details{}, err
	}

	details := order.Details{
		Comment:           body.Comment,
		CountryToDelivery: body.CountryToDelivery,
		CityOrDistrict:    body.CityOrDistrict,
		Operator:          body.Operator,

		TotalCost: totalCost,

		OrderType:    body.OrderType,
		ComesFrom:    body.ComesFrom,
		DeliveryType: body.DeliveryType,
	}

	if details.Prepayment, err = optionalDecimal(body.Prepayment); err != nil {
		return order.Details{}, err
	}
	if details.Discount, err = optionalDecimal(body.Discount); err != nil {
		return order.Details{}, err
	}
	if details.AmountWithMarkup, err = optionalDecimal(body.AmountWithMarkup); err != nil {
		return order.Details{}, err
	}
	if details.AmountWithoutMarkup, err = optionalDecimal(body.AmountWithoutMarkup); err != nil {
		return order.Details{}, err
	}
	if details.AmountWithDelivery, err = optionalDecimal(body.AmountWithDelivery); err != nil {
		return order.Details{}, err
	}
	if details.AmountWithoutDelivery, err = optionalDecimal(body.AmountWithoutDelivery); err != nil {
		return order.Details{}, err
	}

	return details, nil
}

// pharmacyDraftsFromRequest converts the intake subgraph to command drafts.
func pharmacyDraftsFromRequest(pharmacies []NewOrderPharmacy) ([]commands.PharmacyOrderDraft, error) {
	if len(pharmacies) == 0 {
		return nil, nil
	}

	drafts := make([]commands.PharmacyOrderDraft, 0, len(pharmacies))
	for _, pharmacy := range pharmacies {
		draft := commands.PharmacyOrderDraft{}

		pharmacyID, err := optionalUUID(pharmacy.PharmacyID)
		if err != nil {
			return nil, err
		}
		draft.PharmacyID = pharmacyID

		for _, product := range pharmacy.Products {
			productDraft := commands.ProductHistoryDraft{
				Message: product.Message,
				Comment: product.Comment,
				Count:   product.Count,
			}

			if productDraft.ProductID, err = optionalUUID(product.ProductID); err != nil {
				return nil, err
			}
			if productDraft.AmountWithMarkup, err = optionalDecimal(product.AmountWithMarkup); err != nil {
				return nil, err
			}
			if productDraft.AmountWithoutMarkup, err = optionalDecimal(product.AmountWithoutMarkup); err != nil {
				return nil, err
			}

			draft.Products = append(draft.Products, productDraft)
		}

		drafts = append(drafts, draft)
	}

	return drafts, nil
}

func optionalDecimal(raw *string) (*decimal.Decimal, error) {
	if raw == nil {
		return nil, nil
	}

	value, err := decimal.NewFromString(*raw)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func optionalUUID(raw *string) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}

	id, err := kernel.UUIDFromString(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
