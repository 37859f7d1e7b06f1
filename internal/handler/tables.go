package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tableside/api/internal/database"
	"go.uber.org/zap"
)

// TableStore defines the database methods needed by table handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type TableStore interface {
	ListTables(ctx context.Context) ([]database.Table, error)
	GetTable(ctx context.Context, id uuid.UUID) (database.Table, error)
	CreateTable(ctx context.Context, name string) (database.Table, error)
	UpdateTable(ctx context.Context, arg database.UpdateTableParams) (database.Table, error)
	DeleteTable(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
}

// TableHandler handles dining table CRUD endpoints.
type TableHandler struct {
	store  TableStore
	logger *zap.Logger
}

// NewTableHandler creates a new TableHandler.
func NewTableHandler(store TableStore, logger *zap.Logger) *TableHandler {
	return &TableHandler{store: store, logger: logger}
}

// RegisterRoutes registers the public read endpoints under /tables.
func (h *TableHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
}

// RegisterAdminRoutes registers the write endpoints under /tables.
func (h *TableHandler) RegisterAdminRoutes(r chi.Router) {
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

// --- Request / Response types ---

type tableRequest struct {
	Name string `json:"name"`
}

type tableResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func toTableResponse(t database.Table) tableResponse {
	return tableResponse{ID: t.ID, Name: t.Name, CreatedAt: t.CreatedAt}
}

// --- Handlers ---

// List returns every table ordered by name.
func (h *TableHandler) List(w http.ResponseWriter, r *http.Request) {
	tables, err := h.store.ListTables(r.Context())
	if err != nil {
		internalError(w, h.logger, "list tables", err)
		return
	}

	resp := make([]tableResponse, len(tables))
	for i, t := range tables {
		resp[i] = toTableResponse(t)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get returns a single table. The customer UI uses it to validate its table link.
func (h *TableHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid table ID")
		return
	}

	table, err := h.store.GetTable(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "table not found")
			return
		}
		internalError(w, h.logger, "get table", err)
		return
	}

	writeJSON(w, http.StatusOK, toTableResponse(table))
}

// Create adds a table.
func (h *TableHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req tableRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	table, err := h.store.CreateTable(r.Context(), name)
	if err != nil {
		if isPgError(err, pgUniqueViolation) {
			writeError(w, http.StatusConflict, "table name already exists")
			return
		}
		internalError(w, h.logger, "create table", err)
		return
	}

	writeJSON(w, http.StatusCreated, toTableResponse(table))
}

// Update renames a table.
func (h *TableHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid table ID")
		return
	}

	var req tableRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	table, err := h.store.UpdateTable(r.Context(), database.UpdateTableParams{ID: id, Name: name})
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			writeError(w, http.StatusNotFound, "table not found")
		case isPgError(err, pgUniqueViolation):
			writeError(w, http.StatusConflict, "table name already exists")
		default:
			internalError(w, h.logger, "update table", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, toTableResponse(table))
}

// Delete removes a table. Tables with order history cannot be removed.
func (h *TableHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid table ID")
		return
	}

	if _, err := h.store.DeleteTable(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			writeError(w, http.StatusNotFound, "table not found")
		case isPgError(err, pgForeignKeyViolation):
			writeError(w, http.StatusConflict, "table has order history")
		default:
			internalError(w, h.logger, "delete table", err)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
