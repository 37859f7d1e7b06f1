package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tableside/api/internal/database"
)

// resolveAttempts bounds how often the resolver retries when the group it
// found was closed before it could be locked.
const resolveAttempts = 3

// SessionStore is the subset of OrderStore the resolver needs.
type SessionStore interface {
	GetTable(ctx context.Context, id uuid.UUID) (database.Table, error)
	EnsureOpenOrderGroup(ctx context.Context, tableID uuid.UUID) (database.OrderGroup, error)
	GetOpenOrderGroupByTableForShare(ctx context.Context, tableID uuid.UUID) (database.OrderGroup, error)
}

// ResolveOpenGroup returns the table's open order group, creating it when
// none is open. It runs in the caller's transaction. The insert is a no-op
// when another transaction already holds an open group (partial unique
// index), in which case the existing group is read back under FOR SHARE so
// a concurrent table close cannot commit until the caller's order does.
// A group that was closed while waiting for the lock no longer matches and
// the insert is tried again.
func ResolveOpenGroup(ctx context.Context, store SessionStore, tableID uuid.UUID) (database.OrderGroup, error) {
	if _, err := store.GetTable(ctx, tableID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.OrderGroup{}, ErrTableNotFound
		}
		return database.OrderGroup{}, fmt.Errorf("get table: %w", err)
	}

	for attempt := 0; attempt < resolveAttempts; attempt++ {
		group, err := store.EnsureOpenOrderGroup(ctx, tableID)
		if err == nil {
			return group, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return database.OrderGroup{}, fmt.Errorf("ensure order group: %w", err)
		}

		group, err = store.GetOpenOrderGroupByTableForShare(ctx, tableID)
		if err == nil {
			return group, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return database.OrderGroup{}, fmt.Errorf("get open order group: %w", err)
		}
	}
	return database.OrderGroup{}, fmt.Errorf("resolve order group for table %s: %w", tableID, ErrGroupContention)
}
