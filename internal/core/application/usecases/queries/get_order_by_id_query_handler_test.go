package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(_ context.Context, _ *order.Order) error {
	return errors.New("not implemented in mock")
}

func (m *MockOrderRepository) Update(_ context.Context, _ *order.Order) error {
	return errors.New("not implemented in mock")
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByState(ctx context.Context, state order.Status, limit int, search string) ([]*order.Order, error) {
	args := m.Called(ctx, state, limit, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetPharmacyOrders(ctx context.Context, orderID kernel.UUID) ([]*order.PharmacyOrder, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.PharmacyOrder), args.Error(1)
}

func restoredOrder(t *testing.T, id kernel.UUID, ledger *order.Ledger) *order.Order {
	t.Helper()
	details := order.Details{
		CityOrDistrict: "Hillside",
		Operator:       "operator-9",
		TotalCost:      decimal.NewFromInt(640),
	}
	o, err := order.RestoreOrder(id, kernel.NewUUID(), "ORD-20250314-11223344", details, ledger, nil, nil)
	require.NoError(t, err)
	return o
}

func TestGetOrderByIDQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()

	t.Run("should return assembled projection", func(t *testing.T) {
		id := kernel.NewUUID()
		ledger := order.NewConsultingLedger(kernel.NewUUID(), id, time.Now().UTC())
		stored := restoredOrder(t, id, ledger)

		repo := new(MockOrderRepository)
		repo.On("Get", ctx, id).Return(stored, nil).Once()

		query, err := queries.NewGetOrderByIDQuery(id, nil)
		require.NoError(t, err)

		h := queries.NewGetOrderByIDQueryHandler(repo)
		projection, err := h.Handle(ctx, query)

		require.NoError(t, err)
		assert.Equal(t, id.String(), projection.ID)
		assert.Equal(t, "ORD-20250314-11223344", projection.OrderNumber)
		require.NotNil(t, projection.Ledger)
		assert.Equal(t, "Application", projection.Ledger.State)
		repo.AssertExpectations(t)
	})

	t.Run("should pass when state filter matches", func(t *testing.T) {
		id := kernel.NewUUID()
		ledger := order.NewConsultingLedger(kernel.NewUUID(), id, time.Now().UTC())
		stored := restoredOrder(t, id, ledger)

		repo := new(MockOrderRepository)
		repo.On("Get", ctx, id).Return(stored, nil).Once()

		filter := order.Application
		query, err := queries.NewGetOrderByIDQuery(id, &filter)
		require.NoError(t, err)

		h := queries.NewGetOrderByIDQueryHandler(repo)
		projection, err := h.Handle(ctx, query)

		require.NoError(t, err)
		assert.Equal(t, id.String(), projection.ID)
	})

	t.Run("should report not found when state filter mismatches", func(t *testing.T) {
		id := kernel.NewUUID()
		ledger := order.NewConsultingLedger(kernel.NewUUID(), id, time.Now().UTC())
		stored := restoredOrder(t, id, ledger)

		repo := new(MockOrderRepository)
		repo.On("Get", ctx, id).Return(stored, nil).Once()

		filter := order.Delivered
		query, err := queries.NewGetOrderByIDQuery(id, &filter)
		require.NoError(t, err)

		h := queries.NewGetOrderByIDQueryHandler(repo)
		_, err = h.Handle(ctx, query)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should report not found for ledger-less order under a filter", func(t *testing.T) {
		id := kernel.NewUUID()
		stored := restoredOrder(t, id, nil)

		repo := new(MockOrderRepository)
		repo.On("Get", ctx, id).Return(stored, nil).Once()

		filter := order.Application
		query, err := queries.NewGetOrderByIDQuery(id, &filter)
		require.NoError(t, err)

		h := queries.NewGetOrderByIDQueryHandler(repo)
		_, err = h.Handle(ctx, query)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should propagate repository not found", func(t *testing.T) {
		id := kernel.NewUUID()

		repo := new(MockOrderRepository)
		repo.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("order", id.String())).Once()

		query, err := queries.NewGetOrderByIDQuery(id, nil)
		require.NoError(t, err)

		h := queries.NewGetOrderByIDQueryHandler(repo)
		_, err = h.Handle(ctx, query)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestNewGetOrderByIDQuery_Invalid(t *testing.T) {
	t.Run("should fail with invalid order ID", func(t *testing.T) {
		var invalidID kernel.UUID

		_, err := queries.NewGetOrderByIDQuery(invalidID, nil)

		require.Error(t, err)
	})
}
