package orderrepo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its ledger and pharmacy subgraph in one write.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	// fromDomain never maps the client/pharmacy/product snapshots, so a
	// full create writes only rows owned by the aggregate.
	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database. The ledger row is
// upserted because a repaired aggregate may carry a ledger that was
// never persisted. Pharmacy and product rows are not rewritten here;
// they change only through intake.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Omit(clause.Associations).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if dto.Ledger != nil {
		err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).
			Create(dto.Ledger).Error
		if err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID with its full relation set.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Ledger").
		Preload("PharmacyOrders.Pharmacy").
		Preload("PharmacyOrders.ProductHistories.Product").
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListByState retrieves up to limit orders whose ledger holds the given
// state, newest ledger first. A non-empty search narrows by order number
// or client name (case-insensitive) or by client phone number (literal).
func (r *GormOrderRepository) ListByState(ctx context.Context, state order.Status, limit int, search string) ([]*order.Order, error) {
	query := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Joins("LEFT JOIN order_ledgers ON order_ledgers.order_id = orders.id").
		Joins("LEFT JOIN clients ON clients.id = orders.client_id").
		Where("order_ledgers.state = ?", int(state))

	if trimmed := strings.TrimSpace(search); trimmed != "" {
		pattern := "%" + strings.ToLower(trimmed) + "%"
		query = query.Where(
			"LOWER(orders.order_number) LIKE ? OR LOWER(clients.full_name) LIKE ? OR clients.phone_number LIKE ?",
			pattern, pattern, "%"+trimmed+"%",
		)
	}

	var dtos []OrderDTO
	err := query.
		Order("order_ledgers.created_at DESC NULLS LAST").
		Limit(limit).
		Preload("Client").
		Preload("Ledger").
		Preload("PharmacyOrders.Pharmacy").
		Preload("PharmacyOrders.ProductHistories.Product").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, toDomainErr := toDomain(dto)
		if toDomainErr != nil {
			return nil, toDomainErr
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// GetPharmacyOrders retrieves the pharmacy-order subgraph of one order
// without restoring the whole aggregate.
func (r *GormOrderRepository) GetPharmacyOrders(ctx context.Context, orderID kernel.UUID) ([]*order.PharmacyOrder, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []PharmacyOrderDTO
	err := r.db.WithContext(ctx).
		Preload("Pharmacy").
		Preload("ProductHistories.Product").
		Find(&dtos, "order_id = ?", orderID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	pharmacyOrders, err := pharmacyOrdersToDomain(dtos)
	if err != nil {
		return nil, err
	}

	if pharmacyOrders == nil {
		pharmacyOrders = []*order.PharmacyOrder{}
	}

	return pharmacyOrders, nil
}
