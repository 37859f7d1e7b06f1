package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/tableside/api/internal/database"
	"github.com/tableside/api/internal/enum"
	"github.com/tableside/api/internal/events"
)

// TxBeginner starts a new database transaction.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// OrderStore defines the DB methods used by the order lifecycle.
// Satisfied by *database.Queries (and its WithTx variant).
type OrderStore interface {
	GetTable(ctx context.Context, id uuid.UUID) (database.Table, error)
	EnsureOpenOrderGroup(ctx context.Context, tableID uuid.UUID) (database.OrderGroup, error)
	GetOpenOrderGroupByTableForShare(ctx context.Context, tableID uuid.UUID) (database.OrderGroup, error)
	GetOpenOrderGroupByTableForUpdate(ctx context.Context, tableID uuid.UUID) (database.OrderGroup, error)
	CloseOrderGroup(ctx context.Context, id uuid.UUID) (database.OrderGroup, error)

	GetMenuForOrder(ctx context.Context, id uuid.UUID) (database.GetMenuForOrderRow, error)
	GetOptionForOrder(ctx context.Context, id uuid.UUID) (database.GetOptionForOrderRow, error)
	ListOptionGroupsByMenu(ctx context.Context, menuID uuid.UUID) ([]database.OptionGroup, error)

	CreateOrder(ctx context.Context, arg database.CreateOrderParams) (database.Order, error)
	CreateOrderItem(ctx context.Context, arg database.CreateOrderItemParams) (database.OrderItem, error)
	CreateOrderItemOption(ctx context.Context, arg database.CreateOrderItemOptionParams) (database.OrderItemOption, error)
	GetOrder(ctx context.Context, id uuid.UUID) (database.Order, error)
	GetOrderForUpdate(ctx context.Context, id uuid.UUID) (database.Order, error)
	UpdateOrderStatus(ctx context.Context, arg database.UpdateOrderStatusParams) (database.Order, error)
	CompleteOrderPayment(ctx context.Context, id uuid.UUID) (database.Order, error)
	CompleteOrderPaymentsByGroup(ctx context.Context, orderGroupID uuid.UUID) ([]database.Order, error)

	CreatePayment(ctx context.Context, arg database.CreatePaymentParams) (database.Payment, error)
	GetPendingPaymentByOrder(ctx context.Context, orderID pgtype.UUID) (database.Payment, error)
	MarkPaymentSuccess(ctx context.Context, arg database.MarkPaymentSuccessParams) (database.Payment, error)
	FinalizePendingPaymentsByGroup(ctx context.Context, arg database.FinalizePendingPaymentsByGroupParams) ([]database.Payment, error)
}

// NewOrderStore creates an OrderStore from a DBTX (pool or tx).
// This allows the service to create store instances from transactions.
type NewOrderStore func(db database.DBTX) OrderStore

// CreateOrderRequest is the input for placing an order from a table.
type CreateOrderRequest struct {
	TableID string
	Items   []CreateOrderItemRequest
	// TotalPrice is the client's computed total. Optional; when present it
	// must equal the server total.
	TotalPrice string
}

// CreateOrderItemRequest is a single cart line.
type CreateOrderItemRequest struct {
	MenuID   string
	Quantity int32
	Options  []string
}

// CreateOrderResult is the full created order with items.
type CreateOrderResult struct {
	Group   database.OrderGroup
	Order   database.Order
	Items   []OrderItemResult
	Payment database.Payment
}

// OrderItemResult is an item with its options.
type OrderItemResult struct {
	Item    database.OrderItem
	Options []database.OrderItemOption
}

// OrderService handles the order lifecycle: placing orders, moving their
// status, finalizing payments and closing tables.
type OrderService struct {
	pool      TxBeginner
	store     OrderStore
	newStore  NewOrderStore
	publisher events.Publisher
	now       func() time.Time
}

// NewOrderService creates a new OrderService. store serves single-statement
// writes outside a transaction; newStore wraps transactions. Events are
// published after each successful commit.
func NewOrderService(pool TxBeginner, store OrderStore, newStore NewOrderStore, publisher events.Publisher) *OrderService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &OrderService{
		pool:      pool,
		store:     store,
		newStore:  newStore,
		publisher: publisher,
		now:       time.Now,
	}
}

// optionLine is a validated option to snapshot.
type optionLine struct {
	optionID uuid.UUID
	name     string
	price    decimal.Decimal
}

// itemLine is a validated cart line with its snapshot prices.
type itemLine struct {
	menuID   uuid.UUID
	menuName string
	quantity int32
	price    decimal.Decimal
	options  []optionLine
}

// CreateOrder resolves the table's open group and writes the order, its
// items, their options and a pending payment in one transaction.
func (s *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResult, error) {
	// --- Validate shape before touching the database ---
	tableID, err := uuid.Parse(req.TableID)
	if err != nil {
		return nil, ErrInvalidTableID
	}
	if len(req.Items) == 0 {
		return nil, ErrEmptyItems
	}
	var clientTotal *decimal.Decimal
	if req.TotalPrice != "" {
		d, err := decimal.NewFromString(req.TotalPrice)
		if err != nil || d.IsNegative() {
			return nil, ErrInvalidTotal
		}
		clientTotal = &d
	}

	// --- Begin transaction ---
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	group, err := ResolveOpenGroup(ctx, store, tableID)
	if err != nil {
		return nil, err
	}

	// --- Price every line from the catalog ---
	total := decimal.Zero
	lines := make([]itemLine, 0, len(req.Items))
	for i, item := range req.Items {
		line, err := priceLine(ctx, store, item)
		if err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, err)
		}
		total = total.Add(line.subtotal())
		lines = append(lines, line)
	}

	if clientTotal != nil && !clientTotal.Round(2).Equal(total.Round(2)) {
		return nil, fmt.Errorf("%w: expected %s", ErrTotalMismatch, total.StringFixed(2))
	}

	// --- Insert order ---
	order, err := store.CreateOrder(ctx, database.CreateOrderParams{
		OrderGroupID: group.ID,
		TableID:      tableID,
		TotalPrice:   decimalToNumeric(total),
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	// --- Insert items and options ---
	itemResults := make([]OrderItemResult, 0, len(lines))
	for _, line := range lines {
		item, err := store.CreateOrderItem(ctx, database.CreateOrderItemParams{
			OrderID:  order.ID,
			MenuID:   line.menuID,
			MenuName: line.menuName,
			Quantity: line.quantity,
			Price:    decimalToNumeric(line.price),
		})
		if err != nil {
			return nil, fmt.Errorf("create order item: %w", err)
		}

		opts := make([]database.OrderItemOption, 0, len(line.options))
		for _, opt := range line.options {
			oio, err := store.CreateOrderItemOption(ctx, database.CreateOrderItemOptionParams{
				OrderItemID: item.ID,
				OptionID:    opt.optionID,
				OptionName:  opt.name,
				OptionPrice: decimalToNumeric(opt.price),
			})
			if err != nil {
				return nil, fmt.Errorf("create order item option: %w", err)
			}
			opts = append(opts, oio)
		}

		itemResults = append(itemResults, OrderItemResult{Item: item, Options: opts})
	}

	// --- Pending payment for the full snapshot total ---
	payment, err := store.CreatePayment(ctx, database.CreatePaymentParams{
		OrderID: pgtype.UUID{Bytes: order.ID, Valid: true},
		Amount:  order.TotalPrice,
		Status:  database.PaymentStatusPending,
	})
	if err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	// --- Commit ---
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	s.emit(ctx, enum.EventOrderCreated, order)

	return &CreateOrderResult{
		Group:   group,
		Order:   order,
		Items:   itemResults,
		Payment: payment,
	}, nil
}

func (l itemLine) subtotal() decimal.Decimal {
	unit := l.price
	for _, o := range l.options {
		unit = unit.Add(o.price)
	}
	return unit.Mul(decimal.NewFromInt32(l.quantity))
}

// priceLine validates a cart line against the catalog and snapshots names and prices.
// Option selections must respect each group's is_required and max_select.
func priceLine(ctx context.Context, store OrderStore, item CreateOrderItemRequest) (itemLine, error) {
	if item.Quantity <= 0 {
		return itemLine{}, ErrInvalidQuantity
	}
	menuID, err := uuid.Parse(item.MenuID)
	if err != nil {
		return itemLine{}, ErrInvalidMenuID
	}

	menu, err := store.GetMenuForOrder(ctx, menuID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return itemLine{}, ErrMenuNotFound
		}
		return itemLine{}, fmt.Errorf("get menu: %w", err)
	}
	if !menu.IsAvailable {
		return itemLine{}, ErrMenuUnavailable
	}

	line := itemLine{
		menuID:   menuID,
		menuName: menu.Name,
		quantity: item.Quantity,
		price:    numericToDecimal(menu.Price),
	}

	groups, err := store.ListOptionGroupsByMenu(ctx, menuID)
	if err != nil {
		return itemLine{}, fmt.Errorf("list option groups: %w", err)
	}
	maxSelect := make(map[uuid.UUID]int32, len(groups))
	for _, g := range groups {
		maxSelect[g.ID] = g.MaxSelect
	}

	seen := make(map[uuid.UUID]bool, len(item.Options))
	selected := make(map[uuid.UUID]int32, len(groups))
	for j, raw := range item.Options {
		optID, err := uuid.Parse(raw)
		if err != nil {
			return itemLine{}, fmt.Errorf("options[%d]: %w", j, ErrInvalidOptionID)
		}
		if seen[optID] {
			return itemLine{}, fmt.Errorf("options[%d]: %w", j, ErrDuplicateOption)
		}
		seen[optID] = true

		opt, err := store.GetOptionForOrder(ctx, optID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return itemLine{}, fmt.Errorf("options[%d]: %w", j, ErrOptionNotFound)
			}
			return itemLine{}, fmt.Errorf("options[%d]: get option: %w", j, err)
		}
		if opt.MenuID != menuID {
			return itemLine{}, fmt.Errorf("options[%d]: %w", j, ErrOptionMismatch)
		}
		selected[opt.OptionGroupID]++
		if selected[opt.OptionGroupID] > maxSelect[opt.OptionGroupID] {
			return itemLine{}, fmt.Errorf("options[%d]: %w", j, ErrTooManyOptions)
		}
		line.options = append(line.options, optionLine{
			optionID: optID,
			name:     opt.Name,
			price:    numericToDecimal(opt.Price),
		})
	}

	for _, g := range groups {
		if g.IsRequired && selected[g.ID] == 0 {
			return itemLine{}, fmt.Errorf("%w: %s", ErrRequiredOption, g.Name)
		}
	}
	return line, nil
}

func (s *OrderService) emit(ctx context.Context, eventType string, o database.Order) {
	orderID := o.ID
	groupID := o.OrderGroupID
	s.publisher.Publish(ctx, events.Event{
		Type:          eventType,
		TableID:       o.TableID,
		OrderID:       &orderID,
		OrderGroupID:  &groupID,
		Status:        string(o.Status),
		PaymentStatus: string(o.PaymentStatus),
		At:            s.now().UTC(),
	})
}
