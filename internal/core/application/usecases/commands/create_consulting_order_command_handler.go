package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// CreateConsultingOrderCommandHandler performs order intake.
// Generates the order number, builds the aggregate with its consulting
// ledger and any pharmacy subgraph, and persists everything in one
// transaction.
type CreateConsultingOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateConsultingOrderCommandHandler creates a handler for order intake.
func NewCreateConsultingOrderCommandHandler(uowFactory OrderUoWFactory) CreateConsultingOrderCommandHandler {
	return CreateConsultingOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle creates the order and returns the created aggregate.
func (h CreateConsultingOrderCommandHandler) Handle(
	ctx context.Context,
	cmd CreateConsultingOrderCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	subgraph := buildSubgraph(cmd.OrderID(), cmd.PharmacyOrders(), now)

	aggregate, err := order.NewOrder(
		cmd.OrderID(),
		cmd.ClientID(),
		kernel.GenerateOrderNumber(now),
		cmd.Details(),
		subgraph,
		now,
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}

// buildSubgraph materializes pharmacy-order drafts into owned domain rows,
// assigning identifiers and creation timestamps.
func buildSubgraph(orderID kernel.UUID, drafts []PharmacyOrderDraft, now time.Time) []*order.PharmacyOrder {
	if len(drafts) == 0 {
		return nil
	}

	pharmacyOrders := make([]*order.PharmacyOrder, 0, len(drafts))
	for _, draft := range drafts {
		po := &order.PharmacyOrder{
			ID:         kernel.NewUUID(),
			OrderID:    orderID,
			PharmacyID: draft.PharmacyID,
		}

		for _, product := range draft.Products {
			createdAt := now
			po.ProductHistories = append(po.ProductHistories, &order.ProductHistory{
				ID:                  kernel.NewUUID(),
				PharmacyOrderID:     po.ID,
				ProductID:           product.ProductID,
				Message:             product.Message,
				Comment:             product.Comment,
				Count:               product.Count,
				AmountWithMarkup:    product.AmountWithMarkup,
				AmountWithoutMarkup: product.AmountWithoutMarkup,
				CreatedAt:           &createdAt,
			})
		}

		pharmacyOrders = append(pharmacyOrders, po)
	}

	return pharmacyOrders
}
