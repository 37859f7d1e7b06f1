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
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/tableside/api/internal/database"
	"github.com/tableside/api/internal/service"
	"go.uber.org/zap"
)

// MenuStore defines the database methods needed by menu handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type MenuStore interface {
	ListAvailableMenus(ctx context.Context, categoryID pgtype.UUID) ([]database.Menu, error)
	GetMenu(ctx context.Context, id uuid.UUID) (database.Menu, error)
	CreateMenu(ctx context.Context, arg database.CreateMenuParams) (database.Menu, error)
	UpdateMenu(ctx context.Context, arg database.UpdateMenuParams) (database.Menu, error)
	SetMenuUnavailable(ctx context.Context, id uuid.UUID) (uuid.UUID, error)

	ListOptionGroupsByMenu(ctx context.Context, menuID uuid.UUID) ([]database.OptionGroup, error)
	GetOptionGroup(ctx context.Context, arg database.GetOptionGroupParams) (database.OptionGroup, error)
	CreateOptionGroup(ctx context.Context, arg database.CreateOptionGroupParams) (database.OptionGroup, error)
	DeleteOptionGroup(ctx context.Context, arg database.DeleteOptionGroupParams) (uuid.UUID, error)
	ListOptionsByGroup(ctx context.Context, optionGroupID uuid.UUID) ([]database.Option, error)
	CreateOption(ctx context.Context, arg database.CreateOptionParams) (database.Option, error)
	DeleteOption(ctx context.Context, arg database.DeleteOptionParams) (uuid.UUID, error)
}

// MenuHandler handles menu, option group and option endpoints.
type MenuHandler struct {
	store  MenuStore
	logger *zap.Logger
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(store MenuStore, logger *zap.Logger) *MenuHandler {
	return &MenuHandler{store: store, logger: logger}
}

// RegisterRoutes registers the public read endpoints under /menus.
func (h *MenuHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
}

// RegisterAdminRoutes registers the write endpoints under /menus.
func (h *MenuHandler) RegisterAdminRoutes(r chi.Router) {
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	r.Post("/{id}/option-groups", h.CreateOptionGroup)
	r.Delete("/{id}/option-groups/{gid}", h.DeleteOptionGroup)
	r.Post("/{id}/option-groups/{gid}/options", h.CreateOption)
	r.Delete("/{id}/option-groups/{gid}/options/{optid}", h.DeleteOption)
}

// --- Request / Response types ---

type menuRequest struct {
	CategoryID  string `json:"categoryId"`
	Name        string `json:"name"`
	NameEn      string `json:"nameEn"`
	Description string `json:"description"`
	Price       string `json:"price"`
	ImageURL    string `json:"imageUrl"`
	IsAvailable *bool  `json:"isAvailable"`
}

type optionGroupRequest struct {
	Name       string `json:"name"`
	IsRequired bool   `json:"isRequired"`
	MaxSelect  int32  `json:"maxSelect"`
	SortOrder  int32  `json:"sortOrder"`
}

type optionRequest struct {
	Name      string `json:"name"`
	Price     string `json:"price"`
	SortOrder int32  `json:"sortOrder"`
}

type optionResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Price     string    `json:"price"`
	SortOrder int32     `json:"sortOrder"`
}

type optionGroupResponse struct {
	ID         uuid.UUID        `json:"id"`
	MenuID     uuid.UUID        `json:"menuId"`
	Name       string           `json:"name"`
	IsRequired bool             `json:"isRequired"`
	MaxSelect  int32            `json:"maxSelect"`
	SortOrder  int32            `json:"sortOrder"`
	Options    []optionResponse `json:"options"`
}

type menuResponse struct {
	ID           uuid.UUID             `json:"id"`
	CategoryID   uuid.UUID             `json:"categoryId"`
	Name         string                `json:"name"`
	NameEn       *string               `json:"nameEn"`
	Description  *string               `json:"description"`
	Price        string                `json:"price"`
	ImageURL     *string               `json:"imageUrl"`
	IsAvailable  bool                  `json:"isAvailable"`
	OptionGroups []optionGroupResponse `json:"optionGroups"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
}

func toMenuResponse(m database.Menu, groups []optionGroupResponse) menuResponse {
	if groups == nil {
		groups = []optionGroupResponse{}
	}
	return menuResponse{
		ID:           m.ID,
		CategoryID:   m.CategoryID,
		Name:         m.Name,
		NameEn:       textPtr(m.NameEn),
		Description:  textPtr(m.Description),
		Price:        service.Money(m.Price),
		ImageURL:     textPtr(m.ImageUrl),
		IsAvailable:  m.IsAvailable,
		OptionGroups: groups,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toOptionGroupResponse(g database.OptionGroup, options []database.Option) optionGroupResponse {
	resp := optionGroupResponse{
		ID:         g.ID,
		MenuID:     g.MenuID,
		Name:       g.Name,
		IsRequired: g.IsRequired,
		MaxSelect:  g.MaxSelect,
		SortOrder:  g.SortOrder,
		Options:    make([]optionResponse, len(options)),
	}
	for i, o := range options {
		resp.Options[i] = toOptionResponse(o)
	}
	return resp
}

func toOptionResponse(o database.Option) optionResponse {
	return optionResponse{ID: o.ID, Name: o.Name, Price: service.Money(o.Price), SortOrder: o.SortOrder}
}

var errNegativePrice = errors.New("negative price")

func parsePrice(s string) (pgtype.Numeric, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return pgtype.Numeric{}, err
	}
	if d.IsNegative() {
		return pgtype.Numeric{}, errNegativePrice
	}
	var n pgtype.Numeric
	if err := n.Scan(d.StringFixed(2)); err != nil {
		return pgtype.Numeric{}, err
	}
	return n, nil
}

// loadOptionGroups reads the option tree of one menu.
func (h *MenuHandler) loadOptionGroups(ctx context.Context, menuID uuid.UUID) ([]optionGroupResponse, error) {
	groups, err := h.store.ListOptionGroupsByMenu(ctx, menuID)
	if err != nil {
		return nil, err
	}
	resp := make([]optionGroupResponse, len(groups))
	for i, g := range groups {
		options, err := h.store.ListOptionsByGroup(ctx, g.ID)
		if err != nil {
			return nil, err
		}
		resp[i] = toOptionGroupResponse(g, options)
	}
	return resp, nil
}

// decodeMenuRequest validates the body shared by Create and Update.
func decodeMenuRequest(w http.ResponseWriter, r *http.Request) (menuRequest, uuid.UUID, pgtype.Numeric, bool) {
	var req menuRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return req, uuid.Nil, pgtype.Numeric{}, false
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return req, uuid.Nil, pgtype.Numeric{}, false
	}
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid categoryId")
		return req, uuid.Nil, pgtype.Numeric{}, false
	}
	if req.Price == "" {
		writeError(w, http.StatusBadRequest, "price is required")
		return req, uuid.Nil, pgtype.Numeric{}, false
	}
	price, err := parsePrice(req.Price)
	if err != nil {
		if errors.Is(err, errNegativePrice) {
			writeError(w, http.StatusBadRequest, "price must be >= 0")
		} else {
			writeError(w, http.StatusBadRequest, "invalid price")
		}
		return req, uuid.Nil, pgtype.Numeric{}, false
	}
	return req, categoryID, price, true
}

// --- Menu handlers ---

// List returns available menus with their option groups, optionally
// narrowed to one category with ?categoryId=.
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	var categoryID pgtype.UUID
	if raw := r.URL.Query().Get("categoryId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid categoryId")
			return
		}
		categoryID = pgtype.UUID{Bytes: id, Valid: true}
	}

	menus, err := h.store.ListAvailableMenus(r.Context(), categoryID)
	if err != nil {
		internalError(w, h.logger, "list menus", err)
		return
	}

	resp := make([]menuResponse, len(menus))
	for i, m := range menus {
		groups, err := h.loadOptionGroups(r.Context(), m.ID)
		if err != nil {
			internalError(w, h.logger, "list option groups", err)
			return
		}
		resp[i] = toMenuResponse(m, groups)
	}

	writeJSON(w, http.StatusOK, resp)
}

// Get returns one menu with its option tree, available or not.
func (h *MenuHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid menu ID")
		return
	}

	menu, err := h.store.GetMenu(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "menu not found")
			return
		}
		internalError(w, h.logger, "get menu", err)
		return
	}

	groups, err := h.loadOptionGroups(r.Context(), menu.ID)
	if err != nil {
		internalError(w, h.logger, "list option groups", err)
		return
	}

	writeJSON(w, http.StatusOK, toMenuResponse(menu, groups))
}

// Create adds a menu to a category.
func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, categoryID, price, ok := decodeMenuRequest(w, r)
	if !ok {
		return
	}

	menu, err := h.store.CreateMenu(r.Context(), database.CreateMenuParams{
		CategoryID:  categoryID,
		Name:        req.Name,
		NameEn:      optionalText(req.NameEn),
		Description: optionalText(req.Description),
		Price:       price,
		ImageUrl:    optionalText(req.ImageURL),
	})
	if err != nil {
		if isPgError(err, pgForeignKeyViolation) {
			writeError(w, http.StatusBadRequest, "invalid categoryId")
			return
		}
		internalError(w, h.logger, "create menu", err)
		return
	}

	writeJSON(w, http.StatusCreated, toMenuResponse(menu, nil))
}

// Update replaces a menu's fields. isAvailable defaults to true when omitted.
func (h *MenuHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid menu ID")
		return
	}

	req, categoryID, price, ok := decodeMenuRequest(w, r)
	if !ok {
		return
	}
	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	menu, err := h.store.UpdateMenu(r.Context(), database.UpdateMenuParams{
		ID:          id,
		CategoryID:  categoryID,
		Name:        req.Name,
		NameEn:      optionalText(req.NameEn),
		Description: optionalText(req.Description),
		Price:       price,
		ImageUrl:    optionalText(req.ImageURL),
		IsAvailable: available,
	})
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			writeError(w, http.StatusNotFound, "menu not found")
		case isPgError(err, pgForeignKeyViolation):
			writeError(w, http.StatusBadRequest, "invalid categoryId")
		default:
			internalError(w, h.logger, "update menu", err)
		}
		return
	}

	groups, err := h.loadOptionGroups(r.Context(), menu.ID)
	if err != nil {
		internalError(w, h.logger, "list option groups", err)
		return
	}

	writeJSON(w, http.StatusOK, toMenuResponse(menu, groups))
}

// Delete hides a menu from ordering. Rows stay so order history keeps its references.
func (h *MenuHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid menu ID")
		return
	}

	if _, err := h.store.SetMenuUnavailable(r.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "menu not found")
			return
		}
		internalError(w, h.logger, "delete menu", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- Option group handlers ---

// CreateOptionGroup adds an option group to a menu.
func (h *MenuHandler) CreateOptionGroup(w http.ResponseWriter, r *http.Request) {
	menuID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid menu ID")
		return
	}

	var req optionGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.MaxSelect < 0 {
		writeError(w, http.StatusBadRequest, "maxSelect must be >= 0")
		return
	}
	if req.MaxSelect == 0 {
		req.MaxSelect = 1
	}

	group, err := h.store.CreateOptionGroup(r.Context(), database.CreateOptionGroupParams{
		MenuID:     menuID,
		Name:       name,
		IsRequired: req.IsRequired,
		MaxSelect:  req.MaxSelect,
		SortOrder:  req.SortOrder,
	})
	if err != nil {
		if isPgError(err, pgForeignKeyViolation) {
			writeError(w, http.StatusNotFound, "menu not found")
			return
		}
		internalError(w, h.logger, "create option group", err)
		return
	}

	writeJSON(w, http.StatusCreated, toOptionGroupResponse(group, nil))
}

// DeleteOptionGroup removes a group and its options.
func (h *MenuHandler) DeleteOptionGroup(w http.ResponseWriter, r *http.Request) {
	menuID, groupID, ok := parseMenuGroupIDs(w, r)
	if !ok {
		return
	}

	_, err := h.store.DeleteOptionGroup(r.Context(), database.DeleteOptionGroupParams{ID: groupID, MenuID: menuID})
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			writeError(w, http.StatusNotFound, "option group not found")
		case isPgError(err, pgForeignKeyViolation):
			writeError(w, http.StatusConflict, "option group has options in order history")
		default:
			internalError(w, h.logger, "delete option group", err)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- Option handlers ---

// CreateOption adds an option to a group of the given menu.
func (h *MenuHandler) CreateOption(w http.ResponseWriter, r *http.Request) {
	menuID, groupID, ok := parseMenuGroupIDs(w, r)
	if !ok {
		return
	}

	var req optionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Price == "" {
		req.Price = "0"
	}
	price, err := parsePrice(req.Price)
	if err != nil {
		if errors.Is(err, errNegativePrice) {
			writeError(w, http.StatusBadRequest, "price must be >= 0")
		} else {
			writeError(w, http.StatusBadRequest, "invalid price")
		}
		return
	}

	if !h.requireOptionGroup(w, r, menuID, groupID) {
		return
	}

	option, err := h.store.CreateOption(r.Context(), database.CreateOptionParams{
		OptionGroupID: groupID,
		Name:          name,
		Price:         price,
		SortOrder:     req.SortOrder,
	})
	if err != nil {
		internalError(w, h.logger, "create option", err)
		return
	}

	writeJSON(w, http.StatusCreated, toOptionResponse(option))
}

// DeleteOption removes an option that no order references.
func (h *MenuHandler) DeleteOption(w http.ResponseWriter, r *http.Request) {
	menuID, groupID, ok := parseMenuGroupIDs(w, r)
	if !ok {
		return
	}
	optionID, err := uuid.Parse(chi.URLParam(r, "optid"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid option ID")
		return
	}

	if !h.requireOptionGroup(w, r, menuID, groupID) {
		return
	}

	_, err = h.store.DeleteOption(r.Context(), database.DeleteOptionParams{ID: optionID, OptionGroupID: groupID})
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			writeError(w, http.StatusNotFound, "option not found")
		case isPgError(err, pgForeignKeyViolation):
			writeError(w, http.StatusConflict, "option is referenced by order history")
		default:
			internalError(w, h.logger, "delete option", err)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseMenuGroupIDs(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	menuID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid menu ID")
		return uuid.Nil, uuid.Nil, false
	}
	groupID, err := uuid.Parse(chi.URLParam(r, "gid"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid option group ID")
		return uuid.Nil, uuid.Nil, false
	}
	return menuID, groupID, true
}

// requireOptionGroup writes 404 unless the group belongs to the menu.
func (h *MenuHandler) requireOptionGroup(w http.ResponseWriter, r *http.Request, menuID, groupID uuid.UUID) bool {
	_, err := h.store.GetOptionGroup(r.Context(), database.GetOptionGroupParams{ID: groupID, MenuID: menuID})
	if err == nil {
		return true
	}
	if errors.Is(err, pgx.ErrNoRows) {
		writeError(w, http.StatusNotFound, "option group not found")
		return false
	}
	internalError(w, h.logger, "get option group", err)
	return false
}
