// Package feed streams snapshots of recent orders to staff clients over
// Server-Sent Events.
package feed

import (
	"context"
	"fmt"

	"github.com/tableside/api/internal/database"
	"github.com/tableside/api/internal/service"
)

// Store defines the DB reads behind a snapshot.
// Satisfied by *database.Queries; narrow interface for testability.
type Store interface {
	service.OrderViewStore
	ListRecentOrders(ctx context.Context, arg database.ListRecentOrdersParams) ([]database.ListRecentOrdersRow, error)
}

// Snapshot returns the newest limit orders, newest first, each with its
// table name and items. activeOnly leaves out served orders.
func Snapshot(ctx context.Context, store Store, limit int32, activeOnly bool) ([]service.OrderView, error) {
	rows, err := store.ListRecentOrders(ctx, database.ListRecentOrdersParams{
		ActiveOnly: activeOnly,
		Limit:      limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list recent orders: %w", err)
	}

	views := make([]service.OrderView, len(rows))
	for i, row := range rows {
		views[i] = service.ViewFromRecentOrder(row)
	}
	if err := service.AttachItems(ctx, store, views); err != nil {
		return nil, err
	}
	return views, nil
}
