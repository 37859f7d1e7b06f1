package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/tableside/api/internal/database"
	"github.com/tableside/api/internal/service"
	"go.uber.org/zap"
)

// OrderServicer defines the service methods needed by order handlers.
// Satisfied by *service.OrderService; narrow interface for testability.
type OrderServicer interface {
	CreateOrder(ctx context.Context, req service.CreateOrderRequest) (*service.CreateOrderResult, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, next database.OrderStatus) (database.Order, error)
	CloseTable(ctx context.Context, tableID uuid.UUID, method *database.PaymentMethod) (*service.CloseTableResult, error)
}

// OrderStore defines the database methods needed by order read handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type OrderStore interface {
	service.OrderViewStore
	GetOpenOrderGroupByTable(ctx context.Context, tableID uuid.UUID) (database.OrderGroup, error)
	ListOrdersByGroup(ctx context.Context, orderGroupID uuid.UUID) ([]database.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (database.Order, error)
	ListPaymentsByOrder(ctx context.Context, orderID pgtype.UUID) ([]database.Payment, error)
}

// OrderHandler handles order endpoints.
type OrderHandler struct {
	svc    OrderServicer
	store  OrderStore
	logger *zap.Logger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(svc OrderServicer, store OrderStore, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{svc: svc, store: store, logger: logger}
}

// RegisterRoutes registers the customer-facing order endpoints.
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Post("/orders", h.Create)
	r.Get("/orders", h.ListByTable)
}

// RegisterStaffRoutes registers endpoints for ADMIN and KITCHEN.
func (h *OrderHandler) RegisterStaffRoutes(r chi.Router) {
	r.Get("/orders/{id}", h.Get)
	r.Patch("/orders/status", h.UpdateStatus)
}

// RegisterAdminRoutes registers the table-level settle endpoint.
func (h *OrderHandler) RegisterAdminRoutes(r chi.Router) {
	r.Patch("/orders/close", h.CloseTable)
}

// --- Request / Response types ---

type createOrderRequest struct {
	TableID    string                   `json:"tableId"`
	Items      []createOrderItemRequest `json:"items"`
	TotalPrice json.Number              `json:"totalPrice"`
}

// Item and option prices sent by the client are not read; the catalog
// is the price source.
type createOrderItemRequest struct {
	MenuID   string                     `json:"menuId"`
	Quantity int32                      `json:"quantity"`
	Options  []createOrderOptionRequest `json:"options"`
}

type createOrderOptionRequest struct {
	OptionID string `json:"optionId"`
}

type createOrderResponse struct {
	OrderID      uuid.UUID         `json:"orderId"`
	OrderGroupID uuid.UUID         `json:"orderGroupId"`
	TotalPrice   string            `json:"totalPrice"`
	Order        service.OrderView `json:"order"`
}

type orderListResponse struct {
	Orders []service.OrderView `json:"orders"`
}

type orderDetailResponse struct {
	service.OrderView
	Payments []paymentResponse `json:"payments"`
}

type updateStatusRequest struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

type closeTableRequest struct {
	TableID       string `json:"tableId"`
	PaymentMethod string `json:"paymentMethod"`
}

type closeTableResponse struct {
	Success           bool              `json:"success"`
	OrderGroupID      uuid.UUID         `json:"orderGroupId"`
	FinalizedPayments []paymentResponse `json:"finalizedPayments"`
}

// --- Handlers ---

// Create handles POST /orders.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.TableID == "" {
		writeError(w, http.StatusBadRequest, "tableId is required")
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, service.ErrEmptyItems.Error())
		return
	}

	svcItems := make([]service.CreateOrderItemRequest, len(req.Items))
	for i, item := range req.Items {
		opts := make([]string, len(item.Options))
		for j, o := range item.Options {
			opts[j] = o.OptionID
		}
		svcItems[i] = service.CreateOrderItemRequest{
			MenuID:   item.MenuID,
			Quantity: item.Quantity,
			Options:  opts,
		}
	}

	result, err := h.svc.CreateOrder(r.Context(), service.CreateOrderRequest{
		TableID:    req.TableID,
		Items:      svcItems,
		TotalPrice: req.TotalPrice.String(),
	})
	if err != nil {
		writeServiceError(w, h.logger, "create order", err)
		return
	}

	view := service.ViewFromOrder(result.Order)
	for _, ir := range result.Items {
		view.Items = append(view.Items, itemView(ir))
	}

	writeJSON(w, http.StatusCreated, createOrderResponse{
		OrderID:      result.Order.ID,
		OrderGroupID: result.Group.ID,
		TotalPrice:   view.TotalPrice,
		Order:        view,
	})
}

// ListByTable handles GET /orders?tableId=. It returns the orders of the
// table's open group, oldest first.
func (h *OrderHandler) ListByTable(w http.ResponseWriter, r *http.Request) {
	tableID, err := uuid.Parse(r.URL.Query().Get("tableId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid tableId")
		return
	}

	group, err := h.store.GetOpenOrderGroupByTable(r.Context(), tableID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusOK, orderListResponse{Orders: []service.OrderView{}})
			return
		}
		internalError(w, h.logger, "get open order group", err)
		return
	}

	orders, err := h.store.ListOrdersByGroup(r.Context(), group.ID)
	if err != nil {
		internalError(w, h.logger, "list orders by group", err)
		return
	}

	views := make([]service.OrderView, len(orders))
	for i, o := range orders {
		views[i] = service.ViewFromOrder(o)
	}
	if err := service.AttachItems(r.Context(), h.store, views); err != nil {
		internalError(w, h.logger, "attach order items", err)
		return
	}

	writeJSON(w, http.StatusOK, orderListResponse{Orders: views})
}

// Get handles GET /orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	order, err := h.store.GetOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, service.ErrOrderNotFound.Error())
			return
		}
		internalError(w, h.logger, "get order", err)
		return
	}

	views := []service.OrderView{service.ViewFromOrder(order)}
	if err := service.AttachItems(r.Context(), h.store, views); err != nil {
		internalError(w, h.logger, "attach order items", err)
		return
	}

	payments, err := h.store.ListPaymentsByOrder(r.Context(), pgtype.UUID{Bytes: orderID, Valid: true})
	if err != nil {
		internalError(w, h.logger, "list payments", err)
		return
	}

	writeJSON(w, http.StatusOK, orderDetailResponse{
		OrderView: views[0],
		Payments:  toPaymentResponses(payments),
	})
}

// UpdateStatus handles PATCH /orders/status.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid orderId")
		return
	}
	if req.Status == "" {
		writeError(w, http.StatusBadRequest, "status is required")
		return
	}
	next, err := service.ParseOrderStatus(req.Status)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.svc.UpdateStatus(r.Context(), orderID, next)
	if err != nil {
		writeServiceError(w, h.logger, "update order status", err)
		return
	}

	writeJSON(w, http.StatusOK, service.ViewFromOrder(updated))
}

// CloseTable handles PATCH /orders/close.
func (h *OrderHandler) CloseTable(w http.ResponseWriter, r *http.Request) {
	var req closeTableRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tableID, err := uuid.Parse(req.TableID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid tableId")
		return
	}

	var method *database.PaymentMethod
	if req.PaymentMethod != "" {
		m, err := service.ParsePaymentMethod(req.PaymentMethod)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		method = &m
	}

	result, err := h.svc.CloseTable(r.Context(), tableID, method)
	if err != nil {
		writeServiceError(w, h.logger, "close table", err)
		return
	}

	writeJSON(w, http.StatusOK, closeTableResponse{
		Success:           true,
		OrderGroupID:      result.Group.ID,
		FinalizedPayments: toPaymentResponses(result.FinalizedPayments),
	})
}

// --- Helpers ---

func itemView(ir service.OrderItemResult) service.OrderItemView {
	opts := make([]service.OrderItemOptionView, len(ir.Options))
	for i, o := range ir.Options {
		opts[i] = service.OrderItemOptionView{
			ID:          o.ID,
			OptionID:    o.OptionID,
			OptionName:  o.OptionName,
			OptionPrice: service.Money(o.OptionPrice),
		}
	}
	return service.OrderItemView{
		ID:       ir.Item.ID,
		MenuID:   ir.Item.MenuID,
		MenuName: ir.Item.MenuName,
		Quantity: ir.Item.Quantity,
		Price:    service.Money(ir.Item.Price),
		Options:  opts,
	}
}
