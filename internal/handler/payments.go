package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/tableside/api/internal/database"
	"github.com/tableside/api/internal/service"
	"go.uber.org/zap"
)

// PaymentServicer defines the service methods needed by payment handlers.
// Satisfied by *service.OrderService.
type PaymentServicer interface {
	FinalizePayment(ctx context.Context, orderID uuid.UUID, method database.PaymentMethod) (*service.FinalizePaymentResult, error)
}

// PaymentStore defines the database methods needed by payment handlers.
type PaymentStore interface {
	GetOrder(ctx context.Context, id uuid.UUID) (database.Order, error)
	ListPaymentsByOrder(ctx context.Context, orderID pgtype.UUID) ([]database.Payment, error)
}

// PaymentHandler handles payment endpoints.
type PaymentHandler struct {
	svc    PaymentServicer
	store  PaymentStore
	logger *zap.Logger
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(svc PaymentServicer, store PaymentStore, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{svc: svc, store: store, logger: logger}
}

// RegisterRoutes registers the finalize endpoint (ADMIN).
func (h *PaymentHandler) RegisterRoutes(r chi.Router) {
	r.Patch("/payments", h.Finalize)
}

// RegisterStaffRoutes registers read endpoints for ADMIN and KITCHEN.
func (h *PaymentHandler) RegisterStaffRoutes(r chi.Router) {
	r.Get("/orders/{id}/payments", h.List)
}

// --- Request / Response types ---

type finalizePaymentRequest struct {
	OrderID       string `json:"orderId"`
	PaymentMethod string `json:"paymentMethod"`
}

type finalizePaymentResponse struct {
	Message   string    `json:"message"`
	PaymentID uuid.UUID `json:"paymentId"`
}

type paymentResponse struct {
	ID            uuid.UUID  `json:"id"`
	OrderID       *uuid.UUID `json:"orderId"`
	Amount        string     `json:"amount"`
	PaymentMethod *string    `json:"paymentMethod"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// --- Handlers ---

// Finalize handles PATCH /payments.
func (h *PaymentHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	var req finalizePaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid orderId")
		return
	}
	method, err := service.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.svc.FinalizePayment(r.Context(), orderID, method)
	if err != nil {
		writeServiceError(w, h.logger, "finalize payment", err)
		return
	}

	writeJSON(w, http.StatusOK, finalizePaymentResponse{
		Message:   "Payment completed",
		PaymentID: result.Payment.ID,
	})
}

// List handles GET /orders/{id}/payments.
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	// Verify order exists
	if _, err := h.store.GetOrder(r.Context(), orderID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, service.ErrOrderNotFound.Error())
			return
		}
		internalError(w, h.logger, "get order for payments", err)
		return
	}

	payments, err := h.store.ListPaymentsByOrder(r.Context(), pgtype.UUID{Bytes: orderID, Valid: true})
	if err != nil {
		internalError(w, h.logger, "list payments", err)
		return
	}

	writeJSON(w, http.StatusOK, toPaymentResponses(payments))
}

// --- Helpers ---

func toPaymentResponses(payments []database.Payment) []paymentResponse {
	out := make([]paymentResponse, len(payments))
	for i, p := range payments {
		resp := paymentResponse{
			ID:        p.ID,
			Amount:    service.Money(p.Amount),
			Status:    string(p.Status),
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		}
		if p.OrderID.Valid {
			id := uuid.UUID(p.OrderID.Bytes)
			resp.OrderID = &id
		}
		if p.PaymentMethod.Valid {
			m := string(p.PaymentMethod.PaymentMethod)
			resp.PaymentMethod = &m
		}
		out[i] = resp
	}
	return out
}
