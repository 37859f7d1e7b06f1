package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/tableside/api/internal/service"
	"go.uber.org/zap"
)

// SalesServicer is satisfied by *service.SalesService.
type SalesServicer interface {
	Summary(ctx context.Context, rangeName string) (service.SalesSummary, error)
	Daily(ctx context.Context, rangeName string) ([]service.DailySales, error)
	TopMenus(ctx context.Context, rangeName string, limit int) ([]service.MenuSales, error)
}

// SalesHandler serves the sales analytics endpoints.
type SalesHandler struct {
	svc    SalesServicer
	logger *zap.Logger
}

// NewSalesHandler creates a new SalesHandler.
func NewSalesHandler(svc SalesServicer, logger *zap.Logger) *SalesHandler {
	return &SalesHandler{svc: svc, logger: logger}
}

// RegisterRoutes registers sales endpoints, mounted at /sales.
func (h *SalesHandler) RegisterRoutes(r chi.Router) {
	r.Get("/summary", h.Summary)
	r.Get("/daily", h.Daily)
	r.Get("/top-menus", h.TopMenus)
}

// Summary returns revenue totals for ?range= (today by default).
func (h *SalesHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Summary(r.Context(), r.URL.Query().Get("range"))
	if err != nil {
		h.writeSalesError(w, "sales summary", err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// Daily returns per-day buckets in ascending date order.
func (h *SalesHandler) Daily(w http.ResponseWriter, r *http.Request) {
	days, err := h.svc.Daily(r.Context(), r.URL.Query().Get("range"))
	if err != nil {
		h.writeSalesError(w, "daily sales", err)
		return
	}
	writeJSON(w, http.StatusOK, days)
}

// TopMenus returns best sellers. ?limit= defaults to 5.
func (h *SalesHandler) TopMenus(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	menus, err := h.svc.TopMenus(r.Context(), r.URL.Query().Get("range"), limit)
	if err != nil {
		h.writeSalesError(w, "top menus", err)
		return
	}
	writeJSON(w, http.StatusOK, menus)
}

func (h *SalesHandler) writeSalesError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, service.ErrInvalidRange) {
		writeError(w, http.StatusBadRequest, "range must be one of today, week, month, year")
		return
	}
	internalError(w, h.logger, op, err)
}
