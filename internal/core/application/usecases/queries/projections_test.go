package queries_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

func TestAssembleOrder(t *testing.T) {
	t.Run("should tolerate absent relations", func(t *testing.T) {
		id := kernel.NewUUID()
		stored := restoredOrder(t, id, nil)

		projection := queries.AssembleOrder(stored)

		assert.Equal(t, id.String(), projection.ID)
		assert.Nil(t, projection.Ledger)
		assert.Nil(t, projection.Client)
		assert.NotNil(t, projection.PharmacyOrders)
		assert.Empty(t, projection.PharmacyOrders)
	})

	t.Run("should render statuses by name", func(t *testing.T) {
		id := kernel.NewUUID()
		now := time.Now().UTC()
		ledger := order.NewConsultingLedger(kernel.NewUUID(), id, now)
		ledger.State = order.Rejection
		ledger.PastState = order.Placed
		ledger.WasRejection = true
		previous := order.Placed
		ledger.PreviousStateBeforeRejection = &previous
		paid := order.PaymentPaid
		ledger.PaymentStatus = &paid

		stored := restoredOrder(t, id, ledger)

		projection := queries.AssembleOrder(stored)

		require.NotNil(t, projection.Ledger)
		assert.Equal(t, "Rejection", projection.Ledger.State)
		assert.Equal(t, "Placed", projection.Ledger.PastState)
		require.NotNil(t, projection.Ledger.PreviousStateBeforeRejection)
		assert.Equal(t, "Placed", *projection.Ledger.PreviousStateBeforeRejection)
		require.NotNil(t, projection.Ledger.PaymentStatus)
		assert.Equal(t, "Paid", *projection.Ledger.PaymentStatus)
		assert.True(t, projection.Ledger.WasRejection)
	})

	t.Run("should skip nil subgraph entries", func(t *testing.T) {
		id := kernel.NewUUID()
		subgraph := []*order.PharmacyOrder{
			nil,
			{ID: kernel.NewUUID(), OrderID: id},
		}
		stored, err := order.RestoreOrder(
			id, kernel.NewUUID(), "ORD-20250314-55667788",
			restoredOrder(t, id, nil).Details(), nil, subgraph, nil,
		)
		require.NoError(t, err)

		projection := queries.AssembleOrder(stored)

		assert.Len(t, projection.PharmacyOrders, 1)
	})

	t.Run("should include the client snapshot when attached", func(t *testing.T) {
		id := kernel.NewUUID()
		clientID := kernel.NewUUID()
		street := "12 Garden Street"
		client := &order.ClientInfo{
			ID:          clientID,
			FullName:    "Amina Karimova",
			PhoneNumber: "+998901234567",
			Street:      &street,
		}
		stored, err := order.RestoreOrder(
			id, clientID, "ORD-20250314-99887766",
			restoredOrder(t, id, nil).Details(), nil, nil, client,
		)
		require.NoError(t, err)

		projection := queries.AssembleOrder(stored)

		require.NotNil(t, projection.Client)
		assert.Equal(t, clientID.String(), projection.Client.ID)
		assert.Equal(t, "Amina Karimova", projection.Client.FullName)
		assert.Equal(t, &street, projection.Client.Street)
	})
}

func TestAssemblePharmacyOrders(t *testing.T) {
	t.Run("should return empty slice for nil input", func(t *testing.T) {
		projections := queries.AssemblePharmacyOrders(nil)

		assert.NotNil(t, projections)
		assert.Empty(t, projections)
	})

	t.Run("should tolerate rows without snapshots", func(t *testing.T) {
		subgraph := []*order.PharmacyOrder{
			{
				ID:      kernel.NewUUID(),
				OrderID: kernel.NewUUID(),
				ProductHistories: []*order.ProductHistory{
					{ID: kernel.NewUUID(), PharmacyOrderID: kernel.NewUUID()},
				},
			},
		}

		projections := queries.AssemblePharmacyOrders(subgraph)

		require.Len(t, projections, 1)
		assert.Nil(t, projections[0].Pharmacy)
		assert.Nil(t, projections[0].PharmacyID)
		require.Len(t, projections[0].ProductHistories, 1)
		assert.Nil(t, projections[0].ProductHistories[0].Product)
	})
}
