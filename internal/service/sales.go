package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tableside/api/internal/database"
	"github.com/tableside/api/internal/enum"
)

const (
	DefaultTopMenus = 5
	MaxTopMenus     = 20
)

// SalesStore defines the DB reads behind the sales endpoints.
// Satisfied by *database.Queries; narrow interface for testability.
type SalesStore interface {
	ListCompletedOrdersBetween(ctx context.Context, arg database.ListCompletedOrdersBetweenParams) ([]database.ListCompletedOrdersBetweenRow, error)
	ListMenuSalesBetween(ctx context.Context, arg database.ListMenuSalesBetweenParams) ([]database.MenuSale, error)
}

// SnapshotBeginner opens a transaction with explicit options.
// Satisfied by *pgxpool.Pool.
type SnapshotBeginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// NewSalesStore creates a SalesStore bound to a transaction.
type NewSalesStore func(db database.DBTX) SalesStore

// Every report reads inside one read-only snapshot so its queries agree
// with each other even while payments are being finalized.
var salesSnapshot = pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}

// SalesWindow is a rolling reporting window ending now.
type SalesWindow struct {
	Range string
	Start time.Time
	End   time.Time
}

type SalesSummary struct {
	TotalRevenue        string    `json:"totalRevenue"`
	AverageDailyRevenue string    `json:"averageDailyRevenue"`
	TotalItemsSold      int64     `json:"totalItemsSold"`
	TotalOrders         int       `json:"totalOrders"`
	Range               string    `json:"range"`
	Start               time.Time `json:"start"`
	End                 time.Time `json:"end"`
}

type DailySales struct {
	Date      string `json:"date"`
	Revenue   string `json:"revenue"`
	Orders    int    `json:"orders"`
	ItemsSold int64  `json:"itemsSold"`
}

type MenuSales struct {
	MenuID       uuid.UUID `json:"menuId"`
	MenuName     string    `json:"menuName"`
	QuantitySold int64     `json:"quantitySold"`
	Revenue      string    `json:"revenue"`
}

// SalesService aggregates completed orders into reports. Dates are
// bucketed in loc.
type SalesService struct {
	db       SnapshotBeginner
	newStore NewSalesStore
	loc      *time.Location
	now      func() time.Time
}

func NewSalesService(db SnapshotBeginner, newStore NewSalesStore, loc *time.Location) *SalesService {
	if loc == nil {
		loc = time.UTC
	}
	return &SalesService{db: db, newStore: newStore, loc: loc, now: time.Now}
}

// inSnapshot runs fn against a store bound to a read-only repeatable-read
// transaction.
func (s *SalesService) inSnapshot(ctx context.Context, fn func(store SalesStore) error) error {
	tx, err := s.db.BeginTx(ctx, salesSnapshot)
	if err != nil {
		return fmt.Errorf("begin snapshot: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := fn(s.newStore(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

// readWindow loads completed orders and their item lines for win from one
// snapshot.
func (s *SalesService) readWindow(ctx context.Context, win SalesWindow) ([]database.ListCompletedOrdersBetweenRow, []database.MenuSale, error) {
	var orders []database.ListCompletedOrdersBetweenRow
	var sales []database.MenuSale
	err := s.inSnapshot(ctx, func(store SalesStore) error {
		var err error
		orders, err = store.ListCompletedOrdersBetween(ctx, database.ListCompletedOrdersBetweenParams{
			CreatedAt:   win.Start,
			CreatedAt_2: win.End,
		})
		if err != nil {
			return fmt.Errorf("list completed orders: %w", err)
		}
		sales, err = store.ListMenuSalesBetween(ctx, database.ListMenuSalesBetweenParams{
			CreatedAt:   win.Start,
			CreatedAt_2: win.End,
		})
		if err != nil {
			return fmt.Errorf("list menu sales: %w", err)
		}
		return nil
	})
	return orders, sales, err
}

// Window resolves a named range. An empty name means today.
func (s *SalesService) Window(name string) (SalesWindow, error) {
	now := s.now().In(s.loc)
	if name == "" {
		name = enum.SalesRangeToday
	}

	var start time.Time
	switch name {
	case enum.SalesRangeToday:
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	case enum.SalesRangeWeek:
		start = now.Add(-7 * 24 * time.Hour)
	case enum.SalesRangeMonth:
		start = now.AddDate(0, -1, 0)
	case enum.SalesRangeYear:
		start = now.AddDate(-1, 0, 0)
	default:
		return SalesWindow{}, ErrInvalidRange
	}
	return SalesWindow{Range: name, Start: start, End: now}, nil
}

// Summary totals revenue, orders and items in the window. The daily average
// divides by the number of distinct dates that had sales, never by zero.
func (s *SalesService) Summary(ctx context.Context, rangeName string) (SalesSummary, error) {
	win, err := s.Window(rangeName)
	if err != nil {
		return SalesSummary{}, err
	}

	orders, sales, err := s.readWindow(ctx, win)
	if err != nil {
		return SalesSummary{}, err
	}

	revenue := decimal.Zero
	dates := make(map[string]struct{})
	for _, o := range orders {
		revenue = revenue.Add(numericToDecimal(o.TotalPrice))
		dates[s.dateKey(o.CreatedAt)] = struct{}{}
	}
	var items int64
	for _, m := range sales {
		items += int64(m.Quantity)
	}

	days := int64(len(dates))
	if days == 0 {
		days = 1
	}

	return SalesSummary{
		TotalRevenue:        revenue.StringFixed(2),
		AverageDailyRevenue: revenue.Div(decimal.NewFromInt(days)).StringFixed(2),
		TotalItemsSold:      items,
		TotalOrders:         len(orders),
		Range:               win.Range,
		Start:               win.Start,
		End:                 win.End,
	}, nil
}

// Daily buckets the window by local calendar date, ascending. Dates with
// no sales are omitted.
func (s *SalesService) Daily(ctx context.Context, rangeName string) ([]DailySales, error) {
	win, err := s.Window(rangeName)
	if err != nil {
		return nil, err
	}

	orders, sales, err := s.readWindow(ctx, win)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		revenue decimal.Decimal
		orders  int
		items   int64
	}
	buckets := make(map[string]*bucket)
	get := func(key string) *bucket {
		b, ok := buckets[key]
		if !ok {
			b = &bucket{revenue: decimal.Zero}
			buckets[key] = b
		}
		return b
	}
	for _, o := range orders {
		b := get(s.dateKey(o.CreatedAt))
		b.revenue = b.revenue.Add(numericToDecimal(o.TotalPrice))
		b.orders++
	}
	for _, m := range sales {
		get(s.dateKey(m.CreatedAt)).items += int64(m.Quantity)
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]DailySales, 0, len(keys))
	for _, k := range keys {
		b := buckets[k]
		out = append(out, DailySales{
			Date:      k,
			Revenue:   b.revenue.StringFixed(2),
			Orders:    b.orders,
			ItemsSold: b.items,
		})
	}
	return out, nil
}

// TopMenus groups sales by menu and returns the best sellers by quantity.
// limit <= 0 means DefaultTopMenus; it is capped at MaxTopMenus.
func (s *SalesService) TopMenus(ctx context.Context, rangeName string, limit int) ([]MenuSales, error) {
	win, err := s.Window(rangeName)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultTopMenus
	}
	if limit > MaxTopMenus {
		limit = MaxTopMenus
	}

	var sales []database.MenuSale
	err = s.inSnapshot(ctx, func(store SalesStore) error {
		var err error
		sales, err = store.ListMenuSalesBetween(ctx, database.ListMenuSalesBetweenParams{
			CreatedAt:   win.Start,
			CreatedAt_2: win.End,
		})
		if err != nil {
			return fmt.Errorf("list menu sales: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	type agg struct {
		name     string
		quantity int64
		revenue  decimal.Decimal
	}
	byMenu := make(map[uuid.UUID]*agg)
	for _, m := range sales {
		a, ok := byMenu[m.MenuID]
		if !ok {
			a = &agg{name: m.MenuName, revenue: decimal.Zero}
			byMenu[m.MenuID] = a
		}
		a.quantity += int64(m.Quantity)
		a.revenue = a.revenue.Add(numericToDecimal(m.Revenue))
	}

	ids := make([]uuid.UUID, 0, len(byMenu))
	for id := range byMenu {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := byMenu[ids[i]], byMenu[ids[j]]
		if a.quantity != b.quantity {
			return a.quantity > b.quantity
		}
		if c := a.revenue.Cmp(b.revenue); c != 0 {
			return c > 0
		}
		return a.name < b.name
	})
	if len(ids) > limit {
		ids = ids[:limit]
	}

	out := make([]MenuSales, 0, len(ids))
	for _, id := range ids {
		a := byMenu[id]
		out = append(out, MenuSales{
			MenuID:       id,
			MenuName:     a.name,
			QuantitySold: a.quantity,
			Revenue:      a.revenue.StringFixed(2),
		})
	}
	return out, nil
}

func (s *SalesService) dateKey(t time.Time) string {
	return t.In(s.loc).Format("2006-01-02")
}
