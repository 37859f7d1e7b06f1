package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/tableside/api/internal/database"
	"github.com/tableside/api/internal/events"
)

// --- Mock implementations ---

// mockTx implements pgx.Tx with only the methods we need.
// The unused methods panic so we catch accidental calls.
type mockTx struct {
	commitErr  error
	committed  bool
	rolledBack bool
}

func (m *mockTx) Begin(ctx context.Context) (pgx.Tx, error) { panic("not implemented") }
func (m *mockTx) Commit(ctx context.Context) error {
	if m.commitErr == nil {
		m.committed = true
	}
	return m.commitErr
}
func (m *mockTx) Rollback(ctx context.Context) error {
	if !m.committed {
		m.rolledBack = true
	}
	return nil
}
func (m *mockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	panic("not implemented")
}
func (m *mockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	panic("not implemented")
}
func (m *mockTx) LargeObjects() pgx.LargeObjects { panic("not implemented") }
func (m *mockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	panic("not implemented")
}
func (m *mockTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	panic("not implemented")
}
func (m *mockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	panic("not implemented")
}
func (m *mockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	panic("not implemented")
}
func (m *mockTx) Conn() *pgx.Conn { panic("not implemented") }

// mockTxBeginner implements TxBeginner.
type mockTxBeginner struct {
	tx  pgx.Tx
	err error
}

func (m *mockTxBeginner) Begin(ctx context.Context) (pgx.Tx, error) {
	return m.tx, m.err
}

// mockOrderStore implements OrderStore with configurable behavior.
// A nil function field panics, which flags unexpected calls.
type mockOrderStore struct {
	getTableFn                  func(ctx context.Context, id uuid.UUID) (database.Table, error)
	ensureOpenOrderGroupFn      func(ctx context.Context, tableID uuid.UUID) (database.OrderGroup, error)
	getOpenOrderGroupFn         func(ctx context.Context, tableID uuid.UUID) (database.OrderGroup, error)
	listOptionGroupsByMenuFn    func(ctx context.Context, menuID uuid.UUID) ([]database.OptionGroup, error)
	getOpenOrderGroupForUpdFn   func(ctx context.Context, tableID uuid.UUID) (database.OrderGroup, error)
	closeOrderGroupFn           func(ctx context.Context, id uuid.UUID) (database.OrderGroup, error)
	getMenuForOrderFn           func(ctx context.Context, id uuid.UUID) (database.GetMenuForOrderRow, error)
	getOptionForOrderFn         func(ctx context.Context, id uuid.UUID) (database.GetOptionForOrderRow, error)
	createOrderFn               func(ctx context.Context, arg database.CreateOrderParams) (database.Order, error)
	createOrderItemFn           func(ctx context.Context, arg database.CreateOrderItemParams) (database.OrderItem, error)
	createOrderItemOptionFn     func(ctx context.Context, arg database.CreateOrderItemOptionParams) (database.OrderItemOption, error)
	getOrderFn                  func(ctx context.Context, id uuid.UUID) (database.Order, error)
	getOrderForUpdateFn         func(ctx context.Context, id uuid.UUID) (database.Order, error)
	updateOrderStatusFn         func(ctx context.Context, arg database.UpdateOrderStatusParams) (database.Order, error)
	completeOrderPaymentFn      func(ctx context.Context, id uuid.UUID) (database.Order, error)
	completeOrderPaymentsByGrp  func(ctx context.Context, orderGroupID uuid.UUID) ([]database.Order, error)
	createPaymentFn             func(ctx context.Context, arg database.CreatePaymentParams) (database.Payment, error)
	getPendingPaymentByOrderFn  func(ctx context.Context, orderID pgtype.UUID) (database.Payment, error)
	markPaymentSuccessFn        func(ctx context.Context, arg database.MarkPaymentSuccessParams) (database.Payment, error)
	finalizePendingPaymentsByFn func(ctx context.Context, arg database.FinalizePendingPaymentsByGroupParams) ([]database.Payment, error)
}

func (m *mockOrderStore) GetTable(ctx context.Context, id uuid.UUID) (database.Table, error) {
	return m.getTableFn(ctx, id)
}
func (m *mockOrderStore) EnsureOpenOrderGroup(ctx context.Context, tableID uuid.UUID) (database.OrderGroup, error) {
	return m.ensureOpenOrderGroupFn(ctx, tableID)
}
func (m *mockOrderStore) GetOpenOrderGroupByTableForShare(ctx context.Context, tableID uuid.UUID) (database.OrderGroup, error) {
	return m.getOpenOrderGroupFn(ctx, tableID)
}
func (m *mockOrderStore) GetOpenOrderGroupByTableForUpdate(ctx context.Context, tableID uuid.UUID) (database.OrderGroup, error) {
	return m.getOpenOrderGroupForUpdFn(ctx, tableID)
}
func (m *mockOrderStore) CloseOrderGroup(ctx context.Context, id uuid.UUID) (database.OrderGroup, error) {
	return m.closeOrderGroupFn(ctx, id)
}
func (m *mockOrderStore) ListOptionGroupsByMenu(ctx context.Context, menuID uuid.UUID) ([]database.OptionGroup, error) {
	return m.listOptionGroupsByMenuFn(ctx, menuID)
}
func (m *mockOrderStore) GetMenuForOrder(ctx context.Context, id uuid.UUID) (database.GetMenuForOrderRow, error) {
	return m.getMenuForOrderFn(ctx, id)
}
func (m *mockOrderStore) GetOptionForOrder(ctx context.Context, id uuid.UUID) (database.GetOptionForOrderRow, error) {
	return m.getOptionForOrderFn(ctx, id)
}
func (m *mockOrderStore) CreateOrder(ctx context.Context, arg database.CreateOrderParams) (database.Order, error) {
	return m.createOrderFn(ctx, arg)
}
func (m *mockOrderStore) CreateOrderItem(ctx context.Context, arg database.CreateOrderItemParams) (database.OrderItem, error) {
	return m.createOrderItemFn(ctx, arg)
}
func (m *mockOrderStore) CreateOrderItemOption(ctx context.Context, arg database.CreateOrderItemOptionParams) (database.OrderItemOption, error) {
	return m.createOrderItemOptionFn(ctx, arg)
}
func (m *mockOrderStore) GetOrder(ctx context.Context, id uuid.UUID) (database.Order, error) {
	return m.getOrderFn(ctx, id)
}
func (m *mockOrderStore) GetOrderForUpdate(ctx context.Context, id uuid.UUID) (database.Order, error) {
	return m.getOrderForUpdateFn(ctx, id)
}
func (m *mockOrderStore) UpdateOrderStatus(ctx context.Context, arg database.UpdateOrderStatusParams) (database.Order, error) {
	return m.updateOrderStatusFn(ctx, arg)
}
func (m *mockOrderStore) CompleteOrderPayment(ctx context.Context, id uuid.UUID) (database.Order, error) {
	return m.completeOrderPaymentFn(ctx, id)
}
func (m *mockOrderStore) CompleteOrderPaymentsByGroup(ctx context.Context, orderGroupID uuid.UUID) ([]database.Order, error) {
	return m.completeOrderPaymentsByGrp(ctx, orderGroupID)
}
func (m *mockOrderStore) CreatePayment(ctx context.Context, arg database.CreatePaymentParams) (database.Payment, error) {
	return m.createPaymentFn(ctx, arg)
}
func (m *mockOrderStore) GetPendingPaymentByOrder(ctx context.Context, orderID pgtype.UUID) (database.Payment, error) {
	return m.getPendingPaymentByOrderFn(ctx, orderID)
}
func (m *mockOrderStore) MarkPaymentSuccess(ctx context.Context, arg database.MarkPaymentSuccessParams) (database.Payment, error) {
	return m.markPaymentSuccessFn(ctx, arg)
}
func (m *mockOrderStore) FinalizePendingPaymentsByGroup(ctx context.Context, arg database.FinalizePendingPaymentsByGroupParams) ([]database.Payment, error) {
	return m.finalizePendingPaymentsByFn(ctx, arg)
}

// recordingPublisher captures published events.
type recordingPublisher struct {
	events []events.Event
}

func (r *recordingPublisher) Publish(_ context.Context, ev events.Event) error {
	r.events = append(r.events, ev)
	return nil
}

// --- Test helpers ---

func makeNumeric(val string) pgtype.Numeric {
	var n pgtype.Numeric
	_ = n.Scan(val)
	return n
}

func numericEquals(n pgtype.Numeric, expected string) bool {
	d := numericToDecimal(n)
	exp, _ := decimal.NewFromString(expected)
	return d.Equal(exp)
}

// newTestService creates an OrderService with mocked dependencies.
// store is returned both as the pool-backed store and by the NewOrderStore factory.
func newTestService(store *mockOrderStore) (*OrderService, *mockTx, *recordingPublisher) {
	tx := &mockTx{}
	pool := &mockTxBeginner{tx: tx}
	pub := &recordingPublisher{}
	newStore := func(db database.DBTX) OrderStore { return store }
	svc := NewOrderService(pool, store, newStore, pub)
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return svc, tx, pub
}

// catalog is the fixture menu used by defaultStore.
type catalog struct {
	tableID   uuid.UUID
	groupID   uuid.UUID
	latteID   uuid.UUID // 1000.00, available
	soldOutID uuid.UUID // unavailable
	oatID     uuid.UUID // option of latte, 500.00
	syrupID   uuid.UUID // option of latte, 250.50
	foreignID uuid.UUID // option of a different menu

	milkGroupID   uuid.UUID // latte, max_select 1, holds oat
	extrasGroupID uuid.UUID // latte, max_select 2, holds syrup
}

func newCatalog() catalog {
	return catalog{
		tableID:   uuid.New(),
		groupID:   uuid.New(),
		latteID:   uuid.New(),
		soldOutID: uuid.New(),
		oatID:     uuid.New(),
		syrupID:   uuid.New(),
		foreignID: uuid.New(),

		milkGroupID:   uuid.New(),
		extrasGroupID: uuid.New(),
	}
}

// defaultStore returns a mockOrderStore with sensible defaults for a basic order.
// Individual tests override the functions they care about.
func defaultStore(c catalog) *mockOrderStore {
	return &mockOrderStore{
		getTableFn: func(ctx context.Context, id uuid.UUID) (database.Table, error) {
			if id == c.tableID {
				return database.Table{ID: id, Name: "5"}, nil
			}
			return database.Table{}, pgx.ErrNoRows
		},
		ensureOpenOrderGroupFn: func(ctx context.Context, tableID uuid.UUID) (database.OrderGroup, error) {
			return database.OrderGroup{ID: c.groupID, TableID: tableID}, nil
		},
		getMenuForOrderFn: func(ctx context.Context, id uuid.UUID) (database.GetMenuForOrderRow, error) {
			switch id {
			case c.latteID:
				return database.GetMenuForOrderRow{ID: id, Name: "Latte", Price: makeNumeric("1000.00"), IsAvailable: true}, nil
			case c.soldOutID:
				return database.GetMenuForOrderRow{ID: id, Name: "Sold out", Price: makeNumeric("10.00"), IsAvailable: false}, nil
			}
			return database.GetMenuForOrderRow{}, pgx.ErrNoRows
		},
		getOptionForOrderFn: func(ctx context.Context, id uuid.UUID) (database.GetOptionForOrderRow, error) {
			switch id {
			case c.oatID:
				return database.GetOptionForOrderRow{ID: id, OptionGroupID: c.milkGroupID, Name: "Oat milk", Price: makeNumeric("500.00"), MenuID: c.latteID}, nil
			case c.syrupID:
				return database.GetOptionForOrderRow{ID: id, OptionGroupID: c.extrasGroupID, Name: "Syrup", Price: makeNumeric("250.50"), MenuID: c.latteID}, nil
			case c.foreignID:
				return database.GetOptionForOrderRow{ID: id, OptionGroupID: uuid.New(), Name: "Ice", Price: makeNumeric("0"), MenuID: uuid.New()}, nil
			}
			return database.GetOptionForOrderRow{}, pgx.ErrNoRows
		},
		listOptionGroupsByMenuFn: func(ctx context.Context, menuID uuid.UUID) ([]database.OptionGroup, error) {
			if menuID != c.latteID {
				return nil, nil
			}
			return []database.OptionGroup{
				{ID: c.milkGroupID, MenuID: menuID, Name: "Milk", MaxSelect: 1},
				{ID: c.extrasGroupID, MenuID: menuID, Name: "Extras", MaxSelect: 2},
			}, nil
		},
		createOrderFn: func(ctx context.Context, arg database.CreateOrderParams) (database.Order, error) {
			return database.Order{
				ID:            uuid.New(),
				OrderGroupID:  arg.OrderGroupID,
				TableID:       arg.TableID,
				TotalPrice:    arg.TotalPrice,
				Status:        database.OrderStatusPending,
				PaymentStatus: database.OrderPaymentStatusPending,
			}, nil
		},
		createOrderItemFn: func(ctx context.Context, arg database.CreateOrderItemParams) (database.OrderItem, error) {
			return database.OrderItem{
				ID:       uuid.New(),
				OrderID:  arg.OrderID,
				MenuID:   arg.MenuID,
				MenuName: arg.MenuName,
				Quantity: arg.Quantity,
				Price:    arg.Price,
			}, nil
		},
		createOrderItemOptionFn: func(ctx context.Context, arg database.CreateOrderItemOptionParams) (database.OrderItemOption, error) {
			return database.OrderItemOption{
				ID:          uuid.New(),
				OrderItemID: arg.OrderItemID,
				OptionID:    arg.OptionID,
				OptionName:  arg.OptionName,
				OptionPrice: arg.OptionPrice,
			}, nil
		},
		createPaymentFn: func(ctx context.Context, arg database.CreatePaymentParams) (database.Payment, error) {
			return database.Payment{
				ID:            uuid.New(),
				OrderID:       arg.OrderID,
				Amount:        arg.Amount,
				PaymentMethod: arg.PaymentMethod,
				Status:        arg.Status,
			}, nil
		},
	}
}

func basicReq(c catalog) CreateOrderRequest {
	return CreateOrderRequest{
		TableID: c.tableID.String(),
		Items: []CreateOrderItemRequest{
			{MenuID: c.latteID.String(), Quantity: 2},
		},
	}
}

// =====================
// Validation tests
// =====================

func TestCreateOrder_EmptyItems(t *testing.T) {
	c := newCatalog()
	svc, _, _ := newTestService(defaultStore(c))

	_, err := svc.CreateOrder(context.Background(), CreateOrderRequest{TableID: c.tableID.String()})
	if !errors.Is(err, ErrEmptyItems) {
		t.Fatalf("expected ErrEmptyItems, got: %v", err)
	}
}

func TestCreateOrder_InvalidTableID(t *testing.T) {
	c := newCatalog()
	svc, _, _ := newTestService(defaultStore(c))

	req := basicReq(c)
	req.TableID = "five"
	_, err := svc.CreateOrder(context.Background(), req)
	if !errors.Is(err, ErrInvalidTableID) {
		t.Fatalf("expected ErrInvalidTableID, got: %v", err)
	}
}

func TestCreateOrder_TableNotFound(t *testing.T) {
	c := newCatalog()
	svc, tx, _ := newTestService(defaultStore(c))

	req := basicReq(c)
	req.TableID = uuid.New().String()
	_, err := svc.CreateOrder(context.Background(), req)
	if !errors.Is(err, ErrTableNotFound) {
		t.Fatalf("expected ErrTableNotFound, got: %v", err)
	}
	if !tx.rolledBack {
		t.Error("expected transaction to be rolled back")
	}
}

func TestCreateOrder_ZeroQuantity(t *testing.T) {
	c := newCatalog()
	svc, _, _ := newTestService(defaultStore(c))

	req := basicReq(c)
	req.Items[0].Quantity = 0
	_, err := svc.CreateOrder(context.Background(), req)
	if !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got: %v", err)
	}
}

func TestCreateOrder_InvalidMenuID(t *testing.T) {
	c := newCatalog()
	svc, _, _ := newTestService(defaultStore(c))

	req := basicReq(c)
	req.Items[0].MenuID = "m1"
	_, err := svc.CreateOrder(context.Background(), req)
	if !errors.Is(err, ErrInvalidMenuID) {
		t.Fatalf("expected ErrInvalidMenuID, got: %v", err)
	}
}

func TestCreateOrder_MenuNotFound(t *testing.T) {
	c := newCatalog()
	svc, _, _ := newTestService(defaultStore(c))

	req := basicReq(c)
	req.Items[0].MenuID = uuid.New().String()
	_, err := svc.CreateOrder(context.Background(), req)
	if !errors.Is(err, ErrMenuNotFound) {
		t.Fatalf("expected ErrMenuNotFound, got: %v", err)
	}
	if err.Error() != "items[0]: menu not found" {
		t.Errorf("error message: got %q", err.Error())
	}
}

func TestCreateOrder_MenuUnavailable(t *testing.T) {
	c := newCatalog()
	svc, _, _ := newTestService(defaultStore(c))

	req := basicReq(c)
	req.Items[0].MenuID = c.soldOutID.String()
	_, err := svc.CreateOrder(context.Background(), req)
	if !errors.Is(err, ErrMenuUnavailable) {
		t.Fatalf("expected ErrMenuUnavailable, got: %v", err)
	}
}

func TestCreateOrder_OptionNotFound(t *testing.T) {
	c := newCatalog()
	svc, _, _ := newTestService(defaultStore(c))

	req := basicReq(c)
	req.Items[0].Options = []string{uuid.New().String()}
	_, err := svc.CreateOrder(context.Background(), req)
	if !errors.Is(err, ErrOptionNotFound) {
		t.Fatalf("expected ErrOptionNotFound, got: %v", err)
	}
}

func TestCreateOrder_OptionMismatch(t *testing.T) {
	c := newCatalog()
	svc, _, _ := newTestService(defaultStore(c))

	req := basicReq(c)
	req.Items[0].Options = []string{c.foreignID.String()}
	_, err := svc.CreateOrder(context.Background(), req)
	if !errors.Is(err, ErrOptionMismatch) {
		t.Fatalf("expected ErrOptionMismatch, got: %v", err)
	}
}

func TestCreateOrder_DuplicateOption(t *testing.T) {
	c := newCatalog()
	svc, _, _ := newTestService(defaultStore(c))

	req := basicReq(c)
	req.Items[0].Options = []string{c.syrupID.String(), c.syrupID.String()}
	_, err := svc.CreateOrder(context.Background(), req)
	if !errors.Is(err, ErrDuplicateOption) {
		t.Fatalf("expected ErrDuplicateOption, got: %v", err)
	}
}

func TestCreateOrder_TooManyOptionsInGroup(t *testing.T) {
	c := newCatalog()
	store := defaultStore(c)
	lookup := store.getOptionForOrderFn
	// Move syrup into the single-choice milk group alongside oat.
	store.getOptionForOrderFn = func(ctx context.Context, id uuid.UUID) (database.GetOptionForOrderRow, error) {
		row, err := lookup(ctx, id)
		if id == c.syrupID {
			row.OptionGroupID = c.milkGroupID
		}
		return row, err
	}
	svc, _, _ := newTestService(store)

	req := basicReq(c)
	req.Items[0].Options = []string{c.oatID.String(), c.syrupID.String()}
	_, err := svc.CreateOrder(context.Background(), req)
	if !errors.Is(err, ErrTooManyOptions) {
		t.Fatalf("expected ErrTooManyOptions, got: %v", err)
	}
}

func TestCreateOrder_RequiredGroupMissing(t *testing.T) {
	c := newCatalog()
	store := defaultStore(c)
	store.listOptionGroupsByMenuFn = func(ctx context.Context, menuID uuid.UUID) ([]database.OptionGroup, error) {
		return []database.OptionGroup{
			{ID: c.milkGroupID, MenuID: menuID, Name: "Milk", IsRequired: true, MaxSelect: 1},
			{ID: c.extrasGroupID, MenuID: menuID, Name: "Extras", MaxSelect: 2},
		}, nil
	}
	svc, _, _ := newTestService(store)

	req := basicReq(c)
	req.Items[0].Options = []string{c.syrupID.String()}
	_, err := svc.CreateOrder(context.Background(), req)
	if !errors.Is(err, ErrRequiredOption) {
		t.Fatalf("expected ErrRequiredOption, got: %v", err)
	}

	req.Items[0].Options = []string{c.oatID.String(), c.syrupID.String()}
	if _, err := svc.CreateOrder(context.Background(), req); err != nil {
		t.Fatalf("selection covering the required group: unexpected error: %v", err)
	}
}

func TestCreateOrder_InvalidOptionID(t *testing.T) {
	c := newCatalog()
	svc, _, _ := newTestService(defaultStore(c))

	req := basicReq(c)
	req.Items[0].Options = []string{"oat"}
	_, err := svc.CreateOrder(context.Background(), req)
	if !errors.Is(err, ErrInvalidOptionID) {
		t.Fatalf("expected ErrInvalidOptionID, got: %v", err)
	}
}

func TestCreateOrder_InvalidTotalPrice(t *testing.T) {
	c := newCatalog()
	svc, _, _ := newTestService(defaultStore(c))

	req := basicReq(c)
	req.TotalPrice = "lots"
	_, err := svc.CreateOrder(context.Background(), req)
	if !errors.Is(err, ErrInvalidTotal) {
		t.Fatalf("expected ErrInvalidTotal, got: %v", err)
	}
}

func TestCreateOrder_TotalMismatch(t *testing.T) {
	c := newCatalog()
	store := defaultStore(c)
	store.createOrderFn = func(ctx context.Context, arg database.CreateOrderParams) (database.Order, error) {
		t.Fatal("order must not be written when totals disagree")
		return database.Order{}, nil
	}
	svc, tx, pub := newTestService(store)

	req := basicReq(c)
	req.TotalPrice = "1500"
	_, err := svc.CreateOrder(context.Background(), req)
	if !errors.Is(err, ErrTotalMismatch) {
		t.Fatalf("expected ErrTotalMismatch, got: %v", err)
	}
	if !tx.rolledBack {
		t.Error("expected rollback")
	}
	if len(pub.events) != 0 {
		t.Errorf("expected no events, got %d", len(pub.events))
	}
}

// =====================
// Pricing and writes
// =====================

func TestCreateOrder_SingleItem(t *testing.T) {
	c := newCatalog()
	svc, tx, pub := newTestService(defaultStore(c))

	req := basicReq(c)
	req.TotalPrice = "2000"
	result, err := svc.CreateOrder(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !numericEquals(result.Order.TotalPrice, "2000") {
		t.Errorf("total: got %s, want 2000.00", Money(result.Order.TotalPrice))
	}
	if result.Order.Status != database.OrderStatusPending || result.Order.PaymentStatus != database.OrderPaymentStatusPending {
		t.Errorf("order should start pending/pending, got %s/%s", result.Order.Status, result.Order.PaymentStatus)
	}
	if result.Group.ID != c.groupID {
		t.Errorf("group: got %v, want %v", result.Group.ID, c.groupID)
	}
	if len(result.Items) != 1 {
		t.Fatalf("items: got %d, want 1", len(result.Items))
	}
	item := result.Items[0].Item
	if item.MenuName != "Latte" || item.Quantity != 2 || !numericEquals(item.Price, "1000") {
		t.Errorf("item snapshot wrong: %+v", item)
	}
	if result.Payment.Status != database.PaymentStatusPending || !numericEquals(result.Payment.Amount, "2000") {
		t.Errorf("payment: got %s %s", result.Payment.Status, Money(result.Payment.Amount))
	}
	if result.Payment.PaymentMethod.Valid {
		t.Error("pending payment should not carry a method")
	}
	if !tx.committed {
		t.Error("expected commit")
	}
	if len(pub.events) != 1 || pub.events[0].Type != "order.created" {
		t.Fatalf("expected one order.created event, got %+v", pub.events)
	}
	if *pub.events[0].OrderID != result.Order.ID || pub.events[0].TableID != c.tableID {
		t.Errorf("event ids wrong: %+v", pub.events[0])
	}
}

func TestCreateOrder_TotalIncludesOptionsTimesQuantity(t *testing.T) {
	c := newCatalog()
	svc, _, _ := newTestService(defaultStore(c))

	result, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		TableID: c.tableID.String(),
		Items: []CreateOrderItemRequest{
			// (1000 + 500 + 250.50) * 3 = 5251.50
			{MenuID: c.latteID.String(), Quantity: 3, Options: []string{c.oatID.String(), c.syrupID.String()}},
			// 1000 * 1
			{MenuID: c.latteID.String(), Quantity: 1},
		},
		TotalPrice: "6251.50",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !numericEquals(result.Order.TotalPrice, "6251.50") {
		t.Errorf("total: got %s, want 6251.50", Money(result.Order.TotalPrice))
	}

	// Stored total equals the sum over stored children.
	sum := decimal.Zero
	for _, ir := range result.Items {
		unit := numericToDecimal(ir.Item.Price)
		for _, o := range ir.Options {
			unit = unit.Add(numericToDecimal(o.OptionPrice))
		}
		sum = sum.Add(unit.Mul(decimal.NewFromInt32(ir.Item.Quantity)))
	}
	if !sum.Equal(numericToDecimal(result.Order.TotalPrice)) {
		t.Errorf("children sum %s != stored total %s", sum, Money(result.Order.TotalPrice))
	}

	opts := result.Items[0].Options
	if len(opts) != 2 || opts[0].OptionName != "Oat milk" || !numericEquals(opts[1].OptionPrice, "250.50") {
		t.Errorf("option snapshots wrong: %+v", opts)
	}
}

func TestCreateOrder_TotalPriceOptional(t *testing.T) {
	c := newCatalog()
	svc, _, _ := newTestService(defaultStore(c))

	result, err := svc.CreateOrder(context.Background(), basicReq(c))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !numericEquals(result.Order.TotalPrice, "2000") {
		t.Errorf("total: got %s", Money(result.Order.TotalPrice))
	}
}

func TestCreateOrder_ItemInsertFailureRollsBack(t *testing.T) {
	c := newCatalog()
	store := defaultStore(c)
	store.createOrderItemFn = func(ctx context.Context, arg database.CreateOrderItemParams) (database.OrderItem, error) {
		return database.OrderItem{}, errors.New("connection reset")
	}
	svc, tx, pub := newTestService(store)

	_, err := svc.CreateOrder(context.Background(), basicReq(c))
	if err == nil {
		t.Fatal("expected error")
	}
	if IsValidationError(err) {
		t.Errorf("store failure must not be a validation error: %v", err)
	}
	if tx.committed || !tx.rolledBack {
		t.Errorf("expected rollback without commit (committed=%v rolledBack=%v)", tx.committed, tx.rolledBack)
	}
	if len(pub.events) != 0 {
		t.Error("no event should be published on failure")
	}
}

func TestCreateOrder_PaymentInsertFailureRollsBack(t *testing.T) {
	c := newCatalog()
	store := defaultStore(c)
	store.createPaymentFn = func(ctx context.Context, arg database.CreatePaymentParams) (database.Payment, error) {
		return database.Payment{}, errors.New("disk full")
	}
	svc, tx, _ := newTestService(store)

	_, err := svc.CreateOrder(context.Background(), basicReq(c))
	if err == nil {
		t.Fatal("expected error")
	}
	if tx.committed {
		t.Error("must not commit")
	}
}

func TestCreateOrder_BeginFailure(t *testing.T) {
	c := newCatalog()
	svc := NewOrderService(&mockTxBeginner{err: errors.New("pool closed")}, defaultStore(c), nil, nil)

	_, err := svc.CreateOrder(context.Background(), basicReq(c))
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestCreateOrder_CommitFailure(t *testing.T) {
	c := newCatalog()
	svc, tx, pub := newTestService(defaultStore(c))
	tx.commitErr = errors.New("serialization failure")

	_, err := svc.CreateOrder(context.Background(), basicReq(c))
	if err == nil {
		t.Fatal("expected error")
	}
	if len(pub.events) != 0 {
		t.Error("no event should be published when commit fails")
	}
}

// =====================
// Table session resolver
// =====================

func TestResolveOpenGroup_CreatesWhenNoneOpen(t *testing.T) {
	c := newCatalog()
	store := defaultStore(c)
	store.getOpenOrderGroupFn = func(ctx context.Context, tableID uuid.UUID) (database.OrderGroup, error) {
		t.Fatal("should not read back when insert returned a row")
		return database.OrderGroup{}, nil
	}

	group, err := ResolveOpenGroup(context.Background(), store, c.tableID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if group.ID != c.groupID {
		t.Errorf("group: got %v, want %v", group.ID, c.groupID)
	}
}

func TestResolveOpenGroup_ReusesExistingOpenGroup(t *testing.T) {
	c := newCatalog()
	existing := uuid.New()
	store := defaultStore(c)
	// ON CONFLICT DO NOTHING returns no row.
	store.ensureOpenOrderGroupFn = func(ctx context.Context, tableID uuid.UUID) (database.OrderGroup, error) {
		return database.OrderGroup{}, pgx.ErrNoRows
	}
	store.getOpenOrderGroupFn = func(ctx context.Context, tableID uuid.UUID) (database.OrderGroup, error) {
		return database.OrderGroup{ID: existing, TableID: tableID}, nil
	}

	group, err := ResolveOpenGroup(context.Background(), store, c.tableID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if group.ID != existing {
		t.Errorf("group: got %v, want existing %v", group.ID, existing)
	}
}

func TestResolveOpenGroup_RetriesWhenGroupClosedConcurrently(t *testing.T) {
	c := newCatalog()
	fresh := uuid.New()
	store := defaultStore(c)
	inserts := 0
	store.ensureOpenOrderGroupFn = func(ctx context.Context, tableID uuid.UUID) (database.OrderGroup, error) {
		inserts++
		if inserts == 1 {
			return database.OrderGroup{}, pgx.ErrNoRows
		}
		return database.OrderGroup{ID: fresh, TableID: tableID}, nil
	}
	// The conflicting group was closed before the share lock was granted.
	store.getOpenOrderGroupFn = func(ctx context.Context, tableID uuid.UUID) (database.OrderGroup, error) {
		return database.OrderGroup{}, pgx.ErrNoRows
	}

	group, err := ResolveOpenGroup(context.Background(), store, c.tableID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if group.ID != fresh {
		t.Errorf("group: got %v, want new group %v", group.ID, fresh)
	}
	if inserts != 2 {
		t.Errorf("inserts: got %d, want 2", inserts)
	}
}

func TestResolveOpenGroup_GivesUpAfterRepeatedCloses(t *testing.T) {
	c := newCatalog()
	store := defaultStore(c)
	store.ensureOpenOrderGroupFn = func(ctx context.Context, tableID uuid.UUID) (database.OrderGroup, error) {
		return database.OrderGroup{}, pgx.ErrNoRows
	}
	store.getOpenOrderGroupFn = func(ctx context.Context, tableID uuid.UUID) (database.OrderGroup, error) {
		return database.OrderGroup{}, pgx.ErrNoRows
	}

	_, err := ResolveOpenGroup(context.Background(), store, c.tableID)
	if !errors.Is(err, ErrGroupContention) {
		t.Fatalf("expected ErrGroupContention, got %v", err)
	}
}

func TestResolveOpenGroup_UnknownTable(t *testing.T) {
	c := newCatalog()
	_, err := ResolveOpenGroup(context.Background(), defaultStore(c), uuid.New())
	if !errors.Is(err, ErrTableNotFound) {
		t.Fatalf("expected ErrTableNotFound, got %v", err)
	}
}

func TestResolveOpenGroup_InsertFailure(t *testing.T) {
	c := newCatalog()
	store := defaultStore(c)
	store.ensureOpenOrderGroupFn = func(ctx context.Context, tableID uuid.UUID) (database.OrderGroup, error) {
		return database.OrderGroup{}, errors.New("timeout")
	}

	_, err := ResolveOpenGroup(context.Background(), store, c.tableID)
	if err == nil || errors.Is(err, ErrTableNotFound) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}
