package orderrepo_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	// Get connection string and connect to database
	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Auto-migrate the schema
	suite.Require().NoError(db.AutoMigrate(orderrepo.Models()...))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	// Clean the database before each test
	err := suite.db.Exec(
		"TRUNCATE TABLE orders, order_ledgers, pharmacy_orders, product_histories, clients, pharmacies, products",
	).Error
	suite.Require().NoError(err)

	// Create fresh repository and tracker for each test
	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()

	testOrder := suite.createConsultingOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	// One orders row plus its consulting ledger
	suite.assertRowCount(&orderrepo.OrderDTO{}, 1)
	suite.assertRowCount(&orderrepo.LedgerDTO{}, 1)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_WithSubgraph_PersistsOwnedRows() {
	ctx := context.Background()

	orderID := kernel.NewUUID()
	pharmacyOrderID := kernel.NewUUID()
	count := 2
	amount := decimal.NewFromInt(1200)
	now := time.Now().UTC()

	subgraph := []*order.PharmacyOrder{
		{
			ID:      pharmacyOrderID,
			OrderID: orderID,
			ProductHistories: []*order.ProductHistory{
				{
					ID:               kernel.NewUUID(),
					PharmacyOrderID:  pharmacyOrderID,
					Count:            &count,
					AmountWithMarkup: &amount,
					CreatedAt:        &now,
				},
				{
					ID:              kernel.NewUUID(),
					PharmacyOrderID: pharmacyOrderID,
					CreatedAt:       &now,
				},
			},
		},
	}

	testOrder, err := order.NewOrder(
		orderID,
		kernel.NewUUID(),
		kernel.GenerateOrderNumber(now),
		suite.testDetails(),
		subgraph,
		now,
	)
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.assertRowCount(&orderrepo.PharmacyOrderDTO{}, 1)
	suite.assertRowCount(&orderrepo.ProductHistoryDTO{}, 2)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_ReturnsOrder() {
	ctx := context.Background()

	originalOrder := suite.createConsultingOrder()
	suite.tracker.On("TrackAggregate", originalOrder.ID(), originalOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, originalOrder))

	retrievedOrder, err := suite.repository.Get(ctx, originalOrder.ID())
	suite.Require().NoError(err)

	suite.Equal(originalOrder.ID(), retrievedOrder.ID())
	suite.Equal(originalOrder.ClientID(), retrievedOrder.ClientID())
	suite.Equal(originalOrder.OrderNumber(), retrievedOrder.OrderNumber())
	suite.Equal("Riverside", retrievedOrder.Details().CityOrDistrict)
	suite.True(originalOrder.Details().TotalCost.Equal(retrievedOrder.Details().TotalCost))

	suite.Require().NotNil(retrievedOrder.Ledger())
	suite.Equal(order.Application, retrievedOrder.Ledger().State)
	suite.NotNil(retrievedOrder.Ledger().ConsultedAt)
	suite.NotNil(retrievedOrder.Ledger().LeadCreatedAt)

	// No client row was seeded, so no snapshot is attached
	suite.Nil(retrievedOrder.Client())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_WithReferenceRows_AttachesSnapshots() {
	ctx := context.Background()

	client := suite.seedClient("Amina Yusupova", "+79991112233")
	pharmacyID := suite.seedPharmacy("Central Pharmacy")
	productID := suite.seedProduct("Paracetamol 500mg", decimal.NewFromInt(180))

	orderID := kernel.NewUUID()
	pharmacyOrderID := kernel.NewUUID()
	now := time.Now().UTC()

	subgraph := []*order.PharmacyOrder{
		{
			ID:         pharmacyOrderID,
			OrderID:    orderID,
			PharmacyID: &pharmacyID,
			ProductHistories: []*order.ProductHistory{
				{
					ID:              kernel.NewUUID(),
					PharmacyOrderID: pharmacyOrderID,
					ProductID:       &productID,
					CreatedAt:       &now,
				},
			},
		},
	}

	testOrder, err := order.NewOrder(
		orderID,
		client,
		kernel.GenerateOrderNumber(now),
		suite.testDetails(),
		subgraph,
		now,
	)
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	retrievedOrder, err := suite.repository.Get(ctx, orderID)
	suite.Require().NoError(err)

	suite.Require().NotNil(retrievedOrder.Client())
	suite.Equal("Amina Yusupova", retrievedOrder.Client().FullName)
	suite.Equal("+79991112233", retrievedOrder.Client().PhoneNumber)

	suite.Require().Len(retrievedOrder.PharmacyOrders(), 1)
	po := retrievedOrder.PharmacyOrders()[0]
	suite.Require().NotNil(po.Pharmacy)
	suite.Equal("Central Pharmacy", *po.Pharmacy.Name)

	suite.Require().Len(po.ProductHistories, 1)
	suite.Require().NotNil(po.ProductHistories[0].Product)
	suite.Equal("Paracetamol 500mg", po.ProductHistories[0].Product.Name)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	nonExistentID := kernel.NewUUID()
	retrievedOrder, err := suite.repository.Get(ctx, nonExistentID)

	suite.Nil(retrievedOrder)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_TransitionPersistsLedger() {
	ctx := context.Background()

	testOrder := suite.createConsultingOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	reason := "awaiting supplier confirmation"
	err := testOrder.ApplyTransition(order.InSearch, order.TransitionPayload{
		LongSearchReason: &reason,
	}, time.Now().UTC())
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	retrievedOrder, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Require().NotNil(retrievedOrder.Ledger())
	suite.Equal(order.InSearch, retrievedOrder.Ledger().State)
	suite.Equal(order.Application, retrievedOrder.Ledger().PastState)
	suite.NotNil(retrievedOrder.Ledger().SearchingAt)
	suite.Require().NotNil(retrievedOrder.Ledger().LongSearchReason)
	suite.Equal(reason, *retrievedOrder.Ledger().LongSearchReason)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_RepairedLedger_InsertsRow() {
	ctx := context.Background()

	// Order persisted without any ledger row
	testOrder, err := order.RestoreOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.GenerateOrderNumber(time.Now().UTC()),
		suite.testDetails(),
		nil,
		nil,
		nil,
	)
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))
	suite.assertRowCount(&orderrepo.LedgerDTO{}, 0)

	// Transition repairs the missing ledger, update has to insert it
	err = testOrder.ApplyTransition(order.Placement, order.TransitionPayload{}, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	suite.assertRowCount(&orderrepo.LedgerDTO{}, 1)

	retrievedOrder, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(retrievedOrder.Ledger())
	suite.Equal(order.Placement, retrievedOrder.Ledger().State)
	suite.Equal(order.Undefined, retrievedOrder.Ledger().PastState)
	suite.NotNil(retrievedOrder.Ledger().PlacementAt)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_RejectionRoundTrip() {
	ctx := context.Background()

	testOrder := suite.createConsultingOrder()
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(4)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(testOrder.ApplyTransition(order.Placed, order.TransitionPayload{}, time.Now().UTC()))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	reason := "client unreachable"
	suite.Require().NoError(testOrder.ApplyTransition(order.Rejection, order.TransitionPayload{
		RejectionReason: &reason,
	}, time.Now().UTC()))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	// Reload and release the hold against the persisted state
	heldOrder, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.True(heldOrder.Ledger().WasRejection)
	suite.Require().NotNil(heldOrder.Ledger().PreviousStateBeforeRejection)
	suite.Equal(order.Placed, *heldOrder.Ledger().PreviousStateBeforeRejection)

	suite.Require().NoError(heldOrder.ReturnFromRejection())
	suite.Require().NoError(suite.repository.Update(ctx, heldOrder))

	releasedOrder, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Placed, releasedOrder.Ledger().State)
	suite.False(releasedOrder.Ledger().WasRejection)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsError() {
	ctx := context.Background()

	nonExistentOrder := suite.createConsultingOrder()

	err := suite.repository.Update(ctx, nonExistentOrder)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, gorm.ErrRecordNotFound)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestListByState_FiltersAndOrders() {
	ctx := context.Background()

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(3)

	older := suite.addOrderInState(ctx, order.InSearch, time.Now().UTC().Add(-2*time.Hour))
	newer := suite.addOrderInState(ctx, order.InSearch, time.Now().UTC())
	suite.addOrderInState(ctx, order.Placed, time.Now().UTC())

	listed, err := suite.repository.ListByState(ctx, order.InSearch, 10, "")
	suite.Require().NoError(err)

	suite.Require().Len(listed, 2)
	suite.Equal(newer.ID(), listed[0].ID(), "Newest ledger should come first")
	suite.Equal(older.ID(), listed[1].ID())

	limited, err := suite.repository.ListByState(ctx, order.InSearch, 1, "")
	suite.Require().NoError(err)
	suite.Require().Len(limited, 1)
	suite.Equal(newer.ID(), limited[0].ID())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestListByState_Search() {
	ctx := context.Background()

	clientID := suite.seedClient("Amina Yusupova", "+79991112233")
	otherClientID := suite.seedClient("Boris Ivanov", "+70001234567")

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(2)

	matching := suite.addOrderInStateForClient(ctx, order.InSearch, time.Now().UTC(), clientID)
	suite.addOrderInStateForClient(ctx, order.InSearch, time.Now().UTC(), otherClientID)

	testCases := []struct {
		name   string
		search string
	}{
		{name: "by client name case-insensitive", search: "amina"},
		{name: "by phone fragment", search: "999111"},
		{name: "by order number suffix", search: strings.ToLower(matching.OrderNumber()[13:])},
		{name: "with surrounding whitespace", search: "  amina  "},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			listed, err := suite.repository.ListByState(ctx, order.InSearch, 10, tc.search)
			suite.Require().NoError(err)
			suite.Require().Len(listed, 1)
			suite.Equal(matching.ID(), listed[0].ID())
		})
	}

	// Blank search keeps every order of the state
	listed, err := suite.repository.ListByState(ctx, order.InSearch, 10, "   ")
	suite.Require().NoError(err)
	suite.Len(listed, 2)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestListByState_NoMatches_ReturnsEmptySlice() {
	ctx := context.Background()

	listed, err := suite.repository.ListByState(ctx, order.Delivered, 10, "")
	suite.Require().NoError(err)

	suite.NotNil(listed)
	suite.Empty(listed)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetPharmacyOrders_ReturnsSubgraph() {
	ctx := context.Background()

	pharmacyID := suite.seedPharmacy("Central Pharmacy")
	productID := suite.seedProduct("Ibuprofen 200mg", decimal.NewFromInt(240))

	orderID := kernel.NewUUID()
	pharmacyOrderID := kernel.NewUUID()
	now := time.Now().UTC()

	subgraph := []*order.PharmacyOrder{
		{
			ID:         pharmacyOrderID,
			OrderID:    orderID,
			PharmacyID: &pharmacyID,
			ProductHistories: []*order.ProductHistory{
				{
					ID:              kernel.NewUUID(),
					PharmacyOrderID: pharmacyOrderID,
					ProductID:       &productID,
					CreatedAt:       &now,
				},
			},
		},
	}

	testOrder, err := order.NewOrder(
		orderID,
		kernel.NewUUID(),
		kernel.GenerateOrderNumber(now),
		suite.testDetails(),
		subgraph,
		now,
	)
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	pharmacyOrders, err := suite.repository.GetPharmacyOrders(ctx, orderID)
	suite.Require().NoError(err)

	suite.Require().Len(pharmacyOrders, 1)
	suite.Equal(pharmacyOrderID, pharmacyOrders[0].ID)
	suite.Require().NotNil(pharmacyOrders[0].Pharmacy)
	suite.Equal("Central Pharmacy", *pharmacyOrders[0].Pharmacy.Name)
	suite.Require().Len(pharmacyOrders[0].ProductHistories, 1)
	suite.Require().NotNil(pharmacyOrders[0].ProductHistories[0].Product)
	suite.Equal("Ibuprofen 200mg", pharmacyOrders[0].ProductHistories[0].Product.Name)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetPharmacyOrders_NoSubgraph_ReturnsEmptySlice() {
	ctx := context.Background()

	testOrder := suite.createConsultingOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	pharmacyOrders, err := suite.repository.GetPharmacyOrders(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.NotNil(pharmacyOrders)
	suite.Empty(pharmacyOrders)

	suite.tracker.AssertExpectations(suite.T())
}

// TestOrderRepository_ErrorScenarios verifies error handling for various failure cases.
func (suite *OrderRepositoryIntegrationTestSuite) TestOrderRepository_ErrorScenarios() {
	testCases := []struct {
		name      string
		operation func() error
		expected  string
	}{
		{
			name: "get with invalid UUID",
			operation: func() error {
				invalidID := kernel.UUID{}
				_, err := suite.repository.Get(context.Background(), invalidID)
				return err
			},
			expected: "required",
		},
		{
			name: "get non-existent order",
			operation: func() error {
				nonExistentID := kernel.NewUUID()
				_, err := suite.repository.Get(context.Background(), nonExistentID)
				return err
			},
			expected: "not found",
		},
		{
			name: "pharmacy orders with invalid UUID",
			operation: func() error {
				invalidID := kernel.UUID{}
				_, err := suite.repository.GetPharmacyOrders(context.Background(), invalidID)
				return err
			},
			expected: "required",
		},
		{
			name: "update non-existent order",
			operation: func() error {
				nonExistentOrder := suite.createConsultingOrder()
				return suite.repository.Update(context.Background(), nonExistentOrder)
			},
			expected: "record not found",
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			err := tc.operation()
			suite.Require().Error(err)
			suite.Contains(strings.ToLower(err.Error()), strings.ToLower(tc.expected))
			suite.tracker.AssertExpectations(suite.T())
		})
	}
}

// testDetails returns scalar order fields reused by the test orders.
func (suite *OrderRepositoryIntegrationTestSuite) testDetails() order.Details {
	return order.Details{
		CityOrDistrict: "Riverside",
		Operator:       "operator-1",
		TotalCost:      decimal.NewFromInt(2500),
	}
}

// createConsultingOrder creates a fresh order with its consulting ledger.
func (suite *OrderRepositoryIntegrationTestSuite) createConsultingOrder() *order.Order {
	now := time.Now().UTC()
	testOrder, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.GenerateOrderNumber(now),
		suite.testDetails(),
		nil,
		now,
	)
	suite.Require().NoError(err)
	return testOrder
}

// addOrderInState persists an order whose ledger holds the given state with
// the given creation timestamp.
func (suite *OrderRepositoryIntegrationTestSuite) addOrderInState(
	ctx context.Context, state order.Status, ledgerCreatedAt time.Time,
) *order.Order {
	return suite.addOrderInStateForClient(ctx, state, ledgerCreatedAt, kernel.NewUUID())
}

// addOrderInStateForClient persists an order bound to an existing client row.
func (suite *OrderRepositoryIntegrationTestSuite) addOrderInStateForClient(
	ctx context.Context, state order.Status, ledgerCreatedAt time.Time, clientID kernel.UUID,
) *order.Order {
	orderID := kernel.NewUUID()
	orderNumber := kernel.GenerateOrderNumber(ledgerCreatedAt)

	ledger := &order.Ledger{
		ID:        kernel.NewUUID(),
		OrderID:   orderID,
		State:     state,
		PastState: order.Undefined,
		CreatedAt: &ledgerCreatedAt,
	}

	testOrder, err := order.RestoreOrder(
		orderID,
		clientID,
		orderNumber,
		suite.testDetails(),
		ledger,
		nil,
		nil,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))
	return testOrder
}

// seedClient inserts a client reference row and returns its identifier.
func (suite *OrderRepositoryIntegrationTestSuite) seedClient(fullName, phoneNumber string) kernel.UUID {
	id := kernel.NewUUID()
	err := suite.db.Create(&orderrepo.ClientDTO{
		ID:          id.Bytes(),
		FullName:    fullName,
		PhoneNumber: phoneNumber,
	}).Error
	suite.Require().NoError(err)
	return id
}

// seedPharmacy inserts a pharmacy reference row and returns its identifier.
func (suite *OrderRepositoryIntegrationTestSuite) seedPharmacy(name string) kernel.UUID {
	id := kernel.NewUUID()
	err := suite.db.Create(&orderrepo.PharmacyDTO{
		ID:   id.Bytes(),
		Name: &name,
	}).Error
	suite.Require().NoError(err)
	return id
}

// seedProduct inserts a product reference row and returns its identifier.
func (suite *OrderRepositoryIntegrationTestSuite) seedProduct(name string, price decimal.Decimal) kernel.UUID {
	id := kernel.NewUUID()
	err := suite.db.Create(&orderrepo.ProductDTO{
		ID:              id.Bytes(),
		Name:            name,
		PriceWithMarkup: price,
	}).Error
	suite.Require().NoError(err)
	return id
}

// assertRowCount verifies the number of rows for the given model.
func (suite *OrderRepositoryIntegrationTestSuite) assertRowCount(model any, expected int64) {
	var count int64
	err := suite.db.Model(model).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(expected, count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
