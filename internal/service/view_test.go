package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tableside/api/internal/database"
)

type fakeViewStore struct {
	items     []database.OrderItem
	options   []database.OrderItemOption
	itemsErr  error
	itemCalls int
	optCalls  int
}

func (f *fakeViewStore) ListOrderItemsByOrderIDs(_ context.Context, ids []uuid.UUID) ([]database.OrderItem, error) {
	f.itemCalls++
	return f.items, f.itemsErr
}

func (f *fakeViewStore) ListOrderItemOptionsByOrderItemIDs(_ context.Context, ids []uuid.UUID) ([]database.OrderItemOption, error) {
	f.optCalls++
	return f.options, nil
}

func TestAttachItems(t *testing.T) {
	o1 := ViewFromOrder(orderAt(database.OrderStatusPending))
	o2 := ViewFromOrder(orderAt(database.OrderStatusReady))
	item1 := database.OrderItem{ID: uuid.New(), OrderID: o1.ID, MenuID: uuid.New(), MenuName: "Latte", Quantity: 2, Price: makeNumeric("1000")}
	item2 := database.OrderItem{ID: uuid.New(), OrderID: o1.ID, MenuID: uuid.New(), MenuName: "Tea", Quantity: 1, Price: makeNumeric("800")}
	opt := database.OrderItemOption{ID: uuid.New(), OrderItemID: item1.ID, OptionID: uuid.New(), OptionName: "Oat milk", OptionPrice: makeNumeric("500")}

	store := &fakeViewStore{items: []database.OrderItem{item1, item2}, options: []database.OrderItemOption{opt}}
	views := []OrderView{o1, o2}

	require.NoError(t, AttachItems(context.Background(), store, views))

	assert.Equal(t, 1, store.itemCalls)
	assert.Equal(t, 1, store.optCalls)
	require.Len(t, views[0].Items, 2)
	assert.Equal(t, "Latte", views[0].Items[0].MenuName)
	assert.Equal(t, "1000.00", views[0].Items[0].Price)
	require.Len(t, views[0].Items[0].Options, 1)
	assert.Equal(t, "500.00", views[0].Items[0].Options[0].OptionPrice)
	assert.NotNil(t, views[0].Items[1].Options)
	assert.Empty(t, views[0].Items[1].Options)
	assert.NotNil(t, views[1].Items)
	assert.Empty(t, views[1].Items)
}

func TestAttachItems_NoOrdersSkipsQueries(t *testing.T) {
	store := &fakeViewStore{}
	require.NoError(t, AttachItems(context.Background(), store, nil))
	assert.Zero(t, store.itemCalls)
}

func TestAttachItems_Error(t *testing.T) {
	store := &fakeViewStore{itemsErr: errors.New("boom")}
	err := AttachItems(context.Background(), store, []OrderView{ViewFromOrder(orderAt(database.OrderStatusPending))})
	assert.Error(t, err)
}

func TestViewFromOrder_MoneyFormatting(t *testing.T) {
	v := ViewFromOrder(orderAt(database.OrderStatusPending))
	assert.Equal(t, "5000.00", v.TotalPrice)
	assert.Equal(t, "pending", v.Status)
	assert.Equal(t, "pending", v.PaymentStatus)
}
