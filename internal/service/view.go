package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tableside/api/internal/database"
)

// OrderView is the read shape of an order shared by the order endpoints
// and the live feed. Totals always come from the stored snapshot.
type OrderView struct {
	ID            uuid.UUID       `json:"id"`
	OrderGroupID  uuid.UUID       `json:"orderGroupId"`
	TableID       uuid.UUID       `json:"tableId"`
	TableName     string          `json:"tableName,omitempty"`
	TotalPrice    string          `json:"totalPrice"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"paymentStatus"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	Items         []OrderItemView `json:"items"`
}

type OrderItemView struct {
	ID       uuid.UUID             `json:"id"`
	MenuID   uuid.UUID             `json:"menuId"`
	MenuName string                `json:"menuName"`
	Quantity int32                 `json:"quantity"`
	Price    string                `json:"price"`
	Options  []OrderItemOptionView `json:"options"`
}

type OrderItemOptionView struct {
	ID          uuid.UUID `json:"id"`
	OptionID    uuid.UUID `json:"optionId"`
	OptionName  string    `json:"optionName"`
	OptionPrice string    `json:"optionPrice"`
}

// OrderViewStore loads the children of a batch of orders in two queries.
// Satisfied by *database.Queries; narrow interface for testability.
type OrderViewStore interface {
	ListOrderItemsByOrderIDs(ctx context.Context, dollar_1 []uuid.UUID) ([]database.OrderItem, error)
	ListOrderItemOptionsByOrderItemIDs(ctx context.Context, dollar_1 []uuid.UUID) ([]database.OrderItemOption, error)
}

func ViewFromOrder(o database.Order) OrderView {
	return OrderView{
		ID:            o.ID,
		OrderGroupID:  o.OrderGroupID,
		TableID:       o.TableID,
		TotalPrice:    Money(o.TotalPrice),
		Status:        string(o.Status),
		PaymentStatus: string(o.PaymentStatus),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
		Items:         []OrderItemView{},
	}
}

func ViewFromRecentOrder(r database.ListRecentOrdersRow) OrderView {
	return OrderView{
		ID:            r.ID,
		OrderGroupID:  r.OrderGroupID,
		TableID:       r.TableID,
		TableName:     r.TableName,
		TotalPrice:    Money(r.TotalPrice),
		Status:        string(r.Status),
		PaymentStatus: string(r.PaymentStatus),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
		Items:         []OrderItemView{},
	}
}

// AttachItems fills Items (and their options) for every view in place.
// Item and option order follows the store's ORDER BY.
func AttachItems(ctx context.Context, store OrderViewStore, views []OrderView) error {
	if len(views) == 0 {
		return nil
	}

	orderIDs := make([]uuid.UUID, len(views))
	byOrder := make(map[uuid.UUID]int, len(views))
	for i, v := range views {
		orderIDs[i] = v.ID
		byOrder[v.ID] = i
	}

	items, err := store.ListOrderItemsByOrderIDs(ctx, orderIDs)
	if err != nil {
		return fmt.Errorf("list order items: %w", err)
	}
	if len(items) == 0 {
		return nil
	}

	itemIDs := make([]uuid.UUID, len(items))
	for i, it := range items {
		itemIDs[i] = it.ID
	}
	opts, err := store.ListOrderItemOptionsByOrderItemIDs(ctx, itemIDs)
	if err != nil {
		return fmt.Errorf("list order item options: %w", err)
	}
	optsByItem := make(map[uuid.UUID][]OrderItemOptionView, len(items))
	for _, o := range opts {
		optsByItem[o.OrderItemID] = append(optsByItem[o.OrderItemID], OrderItemOptionView{
			ID:          o.ID,
			OptionID:    o.OptionID,
			OptionName:  o.OptionName,
			OptionPrice: Money(o.OptionPrice),
		})
	}

	for _, it := range items {
		idx, ok := byOrder[it.OrderID]
		if !ok {
			continue
		}
		options := optsByItem[it.ID]
		if options == nil {
			options = []OrderItemOptionView{}
		}
		views[idx].Items = append(views[idx].Items, OrderItemView{
			ID:       it.ID,
			MenuID:   it.MenuID,
			MenuName: it.MenuName,
			Quantity: it.Quantity,
			Price:    Money(it.Price),
			Options:  options,
		})
	}
	return nil
}
