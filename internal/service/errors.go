package service

import (
	"errors"
	"fmt"

	"github.com/tableside/api/internal/database"
)

// Validation errors returned when creating an order.
var (
	ErrInvalidTableID   = errors.New("invalid tableId")
	ErrTableNotFound    = errors.New("table not found")
	ErrEmptyItems       = errors.New("items are required")
	ErrInvalidQuantity  = errors.New("quantity must be > 0")
	ErrInvalidMenuID    = errors.New("invalid menuId")
	ErrMenuNotFound     = errors.New("menu not found")
	ErrMenuUnavailable  = errors.New("menu is not available")
	ErrInvalidOptionID  = errors.New("invalid optionId")
	ErrOptionNotFound   = errors.New("option not found")
	ErrOptionMismatch   = errors.New("option does not belong to menu")
	ErrDuplicateOption  = errors.New("option selected more than once")
	ErrTooManyOptions   = errors.New("too many options selected for group")
	ErrRequiredOption   = errors.New("required option group has no selection")
	ErrInvalidTotal     = errors.New("invalid totalPrice")
	ErrTotalMismatch    = errors.New("totalPrice does not match order items")
	ErrInvalidStatus    = errors.New("invalid status")
	ErrInvalidPayMethod = errors.New("invalid paymentMethod")
)

// Lookup and state errors.
var (
	ErrOrderNotFound     = errors.New("Order not found") //nolint:staticcheck
	ErrNoOpenGroup       = errors.New("no open order group for table")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrStatusChanged     = errors.New("order status changed, please retry")
	ErrAlreadyPaid       = errors.New("order is already paid")
	ErrGroupContention   = errors.New("table is being closed, please retry")
	ErrInvalidRange      = errors.New("invalid range, use today|week|month|year")
)

// TransitionError reports a status change the state machine does not allow.
// It matches ErrInvalidTransition with errors.Is.
type TransitionError struct {
	From database.OrderStatus
	To   database.OrderStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot transition from %s to %s", e.From, e.To)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// IsValidationError reports whether err should be answered with 400.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidTableID) ||
		errors.Is(err, ErrTableNotFound) ||
		errors.Is(err, ErrEmptyItems) ||
		errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrInvalidMenuID) ||
		errors.Is(err, ErrMenuNotFound) ||
		errors.Is(err, ErrMenuUnavailable) ||
		errors.Is(err, ErrInvalidOptionID) ||
		errors.Is(err, ErrOptionNotFound) ||
		errors.Is(err, ErrOptionMismatch) ||
		errors.Is(err, ErrDuplicateOption) ||
		errors.Is(err, ErrTooManyOptions) ||
		errors.Is(err, ErrRequiredOption) ||
		errors.Is(err, ErrInvalidTotal) ||
		errors.Is(err, ErrTotalMismatch) ||
		errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrInvalidPayMethod) ||
		errors.Is(err, ErrInvalidRange)
}
