package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/tableside/api/internal/database"
	"github.com/tableside/api/internal/enum"
	"github.com/tableside/api/internal/events"
)

// allowedTransitions defines valid status transitions.
// Key is current status, value is the status it can move to.
var allowedTransitions = map[database.OrderStatus]database.OrderStatus{
	database.OrderStatusPending:   database.OrderStatusPreparing,
	database.OrderStatusPreparing: database.OrderStatusReady,
	database.OrderStatusReady:     database.OrderStatusServed,
}

// ParseOrderStatus validates a client-supplied status.
func ParseOrderStatus(s string) (database.OrderStatus, error) {
	switch st := database.OrderStatus(s); st {
	case database.OrderStatusPending, database.OrderStatusPreparing,
		database.OrderStatusReady, database.OrderStatusServed:
		return st, nil
	}
	return "", ErrInvalidStatus
}

// ParsePaymentMethod validates a client-supplied payment method.
func ParsePaymentMethod(s string) (database.PaymentMethod, error) {
	switch m := database.PaymentMethod(s); m {
	case database.PaymentMethodCash, database.PaymentMethodCard, database.PaymentMethodMobile:
		return m, nil
	}
	return "", ErrInvalidPayMethod
}

// ValidateStatusTransition checks if the transition from current to next is allowed.
// A same-state request is allowed and treated as a no-op by UpdateStatus.
func ValidateStatusTransition(current, next database.OrderStatus) error {
	if current == next {
		return nil
	}
	if allowedTransitions[current] != next {
		return &TransitionError{From: current, To: next}
	}
	return nil
}

// UpdateStatus moves an order one step forward. The write only succeeds
// if the status is still the one that was read.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, next database.OrderStatus) (database.Order, error) {
	current, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.Order{}, ErrOrderNotFound
		}
		return database.Order{}, fmt.Errorf("get order: %w", err)
	}

	if err := ValidateStatusTransition(current.Status, next); err != nil {
		return database.Order{}, err
	}
	if current.Status == next {
		return current, nil
	}

	updated, err := s.store.UpdateOrderStatus(ctx, database.UpdateOrderStatusParams{
		ID:       orderID,
		Status:   next,
		Status_2: current.Status,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.Order{}, ErrStatusChanged
		}
		return database.Order{}, fmt.Errorf("update order status: %w", err)
	}

	s.emit(ctx, enum.EventOrderStatusChanged, updated)
	return updated, nil
}

// FinalizePaymentResult is the outcome of a single-order finalize.
type FinalizePaymentResult struct {
	Order   database.Order
	Payment database.Payment
}

// FinalizePayment marks the order's pending payment successful and the
// order's payment status completed, in one transaction. An order with no
// payment row gets a successful payment for its stored total.
func (s *OrderService) FinalizePayment(ctx context.Context, orderID uuid.UUID, method database.PaymentMethod) (*FinalizePaymentResult, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	order, err := store.GetOrderForUpdate(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("lock order: %w", err)
	}
	if order.PaymentStatus == database.OrderPaymentStatusCompleted {
		return nil, ErrAlreadyPaid
	}

	nullMethod := database.NullPaymentMethod{PaymentMethod: method, Valid: true}
	pgOrderID := pgtype.UUID{Bytes: orderID, Valid: true}

	var payment database.Payment
	pending, err := store.GetPendingPaymentByOrder(ctx, pgOrderID)
	switch {
	case err == nil:
		payment, err = store.MarkPaymentSuccess(ctx, database.MarkPaymentSuccessParams{
			ID:            pending.ID,
			PaymentMethod: nullMethod,
		})
		if err != nil {
			return nil, fmt.Errorf("mark payment success: %w", err)
		}
	case errors.Is(err, pgx.ErrNoRows):
		payment, err = store.CreatePayment(ctx, database.CreatePaymentParams{
			OrderID:       pgOrderID,
			Amount:        order.TotalPrice,
			PaymentMethod: nullMethod,
			Status:        database.PaymentStatusSuccess,
		})
		if err != nil {
			return nil, fmt.Errorf("create payment: %w", err)
		}
	default:
		return nil, fmt.Errorf("get pending payment: %w", err)
	}

	completed, err := store.CompleteOrderPayment(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("complete order payment: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	s.emit(ctx, enum.EventOrderPaid, completed)

	return &FinalizePaymentResult{Order: completed, Payment: payment}, nil
}

// CloseTableResult is the outcome of closing a table's tab.
type CloseTableResult struct {
	Group             database.OrderGroup
	FinalizedPayments []database.Payment
	CompletedOrders   []database.Order
}

// CloseTable closes the table's open order group. When method is non-nil,
// every pending payment of the group is finalized with it first and the
// affected orders are marked completed.
func (s *OrderService) CloseTable(ctx context.Context, tableID uuid.UUID, method *database.PaymentMethod) (*CloseTableResult, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	group, err := store.GetOpenOrderGroupByTableForUpdate(ctx, tableID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoOpenGroup
		}
		return nil, fmt.Errorf("lock order group: %w", err)
	}

	result := &CloseTableResult{
		FinalizedPayments: []database.Payment{},
		CompletedOrders:   []database.Order{},
	}

	if method != nil {
		nullMethod := database.NullPaymentMethod{PaymentMethod: *method, Valid: true}
		payments, err := store.FinalizePendingPaymentsByGroup(ctx, database.FinalizePendingPaymentsByGroupParams{
			OrderGroupID:  group.ID,
			PaymentMethod: nullMethod,
		})
		if err != nil {
			return nil, fmt.Errorf("finalize group payments: %w", err)
		}

		orders, err := store.CompleteOrderPaymentsByGroup(ctx, group.ID)
		if err != nil {
			return nil, fmt.Errorf("complete group orders: %w", err)
		}

		paid := make(map[uuid.UUID]bool, len(payments))
		for _, p := range payments {
			if p.OrderID.Valid {
				paid[uuid.UUID(p.OrderID.Bytes)] = true
			}
		}
		// Orders that never had a payment row still need one.
		for _, o := range orders {
			if paid[o.ID] {
				continue
			}
			p, err := store.CreatePayment(ctx, database.CreatePaymentParams{
				OrderID:       pgtype.UUID{Bytes: o.ID, Valid: true},
				Amount:        o.TotalPrice,
				PaymentMethod: nullMethod,
				Status:        database.PaymentStatusSuccess,
			})
			if err != nil {
				return nil, fmt.Errorf("create payment: %w", err)
			}
			payments = append(payments, p)
		}

		result.FinalizedPayments = payments
		result.CompletedOrders = orders
	}

	closed, err := store.CloseOrderGroup(ctx, group.ID)
	if err != nil {
		return nil, fmt.Errorf("close order group: %w", err)
	}
	result.Group = closed

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	for _, o := range result.CompletedOrders {
		s.emit(ctx, enum.EventOrderPaid, o)
	}
	groupID := closed.ID
	s.publisher.Publish(ctx, events.Event{
		Type:         enum.EventTableClosed,
		TableID:      closed.TableID,
		OrderGroupID: &groupID,
		At:           s.now().UTC(),
	})

	return result, nil
}
