package store

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/grocery/internal/models"
)

func seedOrder(t *testing.T, st *Store, userID *uuid.UUID) *models.Order {
	t.Helper()

	order := &models.Order{
		UserID:          userID,
		TotalAmount:     24.50,
		OriginalAmount:  30.00,
		Savings:         5.50,
		PaymentMethod:   "card",
		DeliveryAddress: "42 Main St",
		Items: []models.OrderItem{
			{Name: "Organic Bananas", Quantity: 2, UnitPrice: 3.25, LineTotal: 6.50},
			{Name: "Almond Milk", Quantity: 3, UnitPrice: 6.00, LineTotal: 18.00},
		},
	}
	require.NoError(t, st.CreateOrder(order))
	return order
}

func TestCreateOrder_AssignsNumberAndAutoConfirms(t *testing.T) {
	st := newTestStore(t)
	order := seedOrder(t, st, nil)

	require.Len(t, order.OrderNumber, 9)
	for _, r := range order.OrderNumber {
		assert.True(t, r >= '0' && r <= '9')
	}
	assert.NotEqual(t, byte('0'), order.OrderNumber[0])

	assert.Equal(t, models.StatusConfirmed, order.Status)
	require.NotNil(t, order.ConfirmedAt)
	assert.Nil(t, order.ProcessingAt)
	assert.Nil(t, order.DeliveredAt)
}

func TestCreateOrder_KeepsProvidedNumber(t *testing.T) {
	st := newTestStore(t)

	order := &models.Order{OrderNumber: "123456789", TotalAmount: 1}
	require.NoError(t, st.CreateOrder(order))
	assert.Equal(t, "123456789", order.OrderNumber)
}

func TestGetOrderByNumber_LoadsItems(t *testing.T) {
	st := newTestStore(t)
	order := seedOrder(t, st, nil)

	got, err := st.GetOrderByNumber(order.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
	assert.Len(t, got.Items, 2)
}

func TestUpdateOrderStatus_StampsStateTimestamp(t *testing.T) {
	st := newTestStore(t)
	order := seedOrder(t, st, nil)

	found, err := st.UpdateOrderStatus(order.ID, models.StatusProcessing)
	require.NoError(t, err)
	require.True(t, found)

	got, err := st.GetOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusProcessing, got.Status)
	assert.NotNil(t, got.ProcessingAt)
	assert.Nil(t, got.ShippedAt)

	found, err = st.UpdateOrderStatus(order.ID, models.StatusShipped)
	require.NoError(t, err)
	require.True(t, found)

	got, err = st.GetOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusShipped, got.Status)
	assert.NotNil(t, got.ShippedAt)
	// Earlier stamps survive later transitions.
	assert.NotNil(t, got.ProcessingAt)
}

func TestUpdateOrderStatus_DeliveredIsTerminal(t *testing.T) {
	st := newTestStore(t)
	order := seedOrder(t, st, nil)

	found, err := st.UpdateOrderStatus(order.ID, models.StatusDelivered)
	require.NoError(t, err)
	require.True(t, found)

	found, err = st.UpdateOrderStatus(order.ID, models.StatusProcessing)
	assert.True(t, found)
	assert.ErrorIs(t, err, ErrTerminalStatus)

	got, err := st.GetOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, got.Status)
}

func TestUpdateOrderStatus_CancelledIsTerminal(t *testing.T) {
	st := newTestStore(t)
	order := seedOrder(t, st, nil)

	found, err := st.UpdateOrderStatus(order.ID, models.StatusCancelled)
	require.NoError(t, err)
	require.True(t, found)

	got, err := st.GetOrder(order.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.CancelledAt)

	_, err = st.UpdateOrderStatus(order.ID, models.StatusDelivered)
	assert.ErrorIs(t, err, ErrTerminalStatus)
}

func TestUpdateOrderStatus_MissingOrder(t *testing.T) {
	st := newTestStore(t)

	found, err := st.UpdateOrderStatus(uuid.New(), models.StatusShipped)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestListOrders_FilterByStatus(t *testing.T) {
	st := newTestStore(t)
	a := seedOrder(t, st, nil)
	b := seedOrder(t, st, nil)

	_, err := st.UpdateOrderStatus(b.ID, models.StatusShipped)
	require.NoError(t, err)

	shipped := models.StatusShipped
	orders, err := st.ListOrders(&shipped, 0, 0)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, b.ID, orders[0].ID)

	orders, err = st.ListOrders(nil, 0, 0)
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	confirmed := models.StatusConfirmed
	orders, err = st.ListOrders(&confirmed, 0, 0)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, a.ID, orders[0].ID)
}

func TestListOrdersByUser_ScopedToUser(t *testing.T) {
	st := newTestStore(t)
	alice := uuid.New()
	bob := uuid.New()

	seedOrder(t, st, &alice)
	seedOrder(t, st, &alice)
	seedOrder(t, st, &bob)

	orders, err := st.ListOrdersByUser(alice)
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}
