package enum

// ── Group A: State machines (Postgres enum types) ──

const (
	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusServed    = "served"
)

const (
	OrderPaymentStatusPending   = "pending"
	OrderPaymentStatusCompleted = "completed"
)

const (
	PaymentStatusPending = "pending"
	PaymentStatusSuccess = "success"
	PaymentStatusFailed  = "failed"
)

const (
	PaymentMethodCash   = "cash"
	PaymentMethodCard   = "card"
	PaymentMethodMobile = "mobile"
)

// ── Group B: Staff roles (user_role enum) ──

const (
	UserRoleAdmin   = "ADMIN"
	UserRoleKitchen = "KITCHEN"
)

// ── Group C: Labels with no DB constraint ──

const (
	SalesRangeToday = "today"
	SalesRangeWeek  = "week"
	SalesRangeMonth = "month"
	SalesRangeYear  = "year"
)

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderPaid          = "order.paid"
	EventTableClosed        = "table.closed"
)
