package handler_test

import (
	"context"
	"net/http"
	"sort"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tableside/api/internal/database"
	"github.com/tableside/api/internal/handler"
	"go.uber.org/zap"
)

// --- Mock store ---

type mockCategoryStore struct {
	categories map[uuid.UUID]database.Category // keyed by category ID
}

func newMockCategoryStore() *mockCategoryStore {
	return &mockCategoryStore{categories: make(map[uuid.UUID]database.Category)}
}

func (m *mockCategoryStore) ListActiveCategories(_ context.Context) ([]database.Category, error) {
	result := []database.Category{}
	for _, c := range m.categories {
		if c.IsActive {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SortOrder < result[j].SortOrder })
	return result, nil
}

func (m *mockCategoryStore) CreateCategory(_ context.Context, arg database.CreateCategoryParams) (database.Category, error) {
	c := database.Category{
		ID:        uuid.New(),
		Name:      arg.Name,
		NameEn:    arg.NameEn,
		SortOrder: arg.SortOrder,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	m.categories[c.ID] = c
	return c, nil
}

func (m *mockCategoryStore) UpdateCategory(_ context.Context, arg database.UpdateCategoryParams) (database.Category, error) {
	c, ok := m.categories[arg.ID]
	if !ok || !c.IsActive {
		return database.Category{}, pgx.ErrNoRows
	}
	c.Name = arg.Name
	c.NameEn = arg.NameEn
	c.SortOrder = arg.SortOrder
	m.categories[c.ID] = c
	return c, nil
}

func (m *mockCategoryStore) SoftDeleteCategory(_ context.Context, id uuid.UUID) (uuid.UUID, error) {
	c, ok := m.categories[id]
	if !ok || !c.IsActive {
		return uuid.Nil, pgx.ErrNoRows
	}
	c.IsActive = false
	m.categories[c.ID] = c
	return c.ID, nil
}

func (m *mockCategoryStore) add(name string, sortOrder int32, active bool) uuid.UUID {
	id := uuid.New()
	m.categories[id] = database.Category{
		ID: id, Name: name, SortOrder: sortOrder, IsActive: active, CreatedAt: time.Now(),
	}
	return id
}

// --- Helpers ---

func setupCategoryRouter(store *mockCategoryStore) *chi.Mux {
	h := handler.NewCategoryHandler(store, zap.NewNop())
	r := chi.NewRouter()
	r.Route("/categories", func(r chi.Router) {
		h.RegisterRoutes(r)
		h.RegisterAdminRoutes(r)
	})
	return r
}

// --- List tests ---

func TestCategoryList_Empty(t *testing.T) {
	router := setupCategoryRouter(newMockCategoryStore())

	rr := doJSON(t, router, http.MethodGet, "/categories", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}
	if resp := decodeList(t, rr); len(resp) != 0 {
		t.Errorf("expected empty list, got %d items", len(resp))
	}
}

func TestCategoryList_ExcludesInactiveAndSorts(t *testing.T) {
	store := newMockCategoryStore()
	store.add("Desserts", 2, true)
	store.add("Coffee", 1, true)
	store.add("Deleted", 0, false)
	router := setupCategoryRouter(store)

	rr := doJSON(t, router, http.MethodGet, "/categories", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusOK)
	}
	resp := decodeList(t, rr)
	if len(resp) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(resp))
	}
	if resp[0]["name"] != "Coffee" || resp[1]["name"] != "Desserts" {
		t.Errorf("order: got %v, %v", resp[0]["name"], resp[1]["name"])
	}
	if resp[0]["nameEn"] != nil {
		t.Errorf("nameEn: expected null, got %v", resp[0]["nameEn"])
	}
}

// --- Create tests ---

func TestCategoryCreate_Valid(t *testing.T) {
	store := newMockCategoryStore()
	router := setupCategoryRouter(store)

	rr := doJSON(t, router, http.MethodPost, "/categories", map[string]interface{}{
		"name":      "커피",
		"nameEn":    "Coffee",
		"sortOrder": 2,
	})

	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusCreated, rr.Body.String())
	}
	resp := decodeResponse(t, rr)
	if resp["name"] != "커피" {
		t.Errorf("name: got %v", resp["name"])
	}
	if resp["nameEn"] != "Coffee" {
		t.Errorf("nameEn: got %v", resp["nameEn"])
	}
	if resp["sortOrder"] != float64(2) {
		t.Errorf("sortOrder: got %v", resp["sortOrder"])
	}
	if resp["isActive"] != true {
		t.Errorf("isActive: got %v", resp["isActive"])
	}
	if len(store.categories) != 1 {
		t.Errorf("expected 1 stored category, got %d", len(store.categories))
	}
}

func TestCategoryCreate_MissingName(t *testing.T) {
	router := setupCategoryRouter(newMockCategoryStore())

	rr := doJSON(t, router, http.MethodPost, "/categories", map[string]interface{}{"name": "  "})

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

// --- Update tests ---

func TestCategoryUpdate_Valid(t *testing.T) {
	store := newMockCategoryStore()
	id := store.add("Tea", 1, true)
	router := setupCategoryRouter(store)

	rr := doJSON(t, router, http.MethodPut, "/categories/"+id.String(), map[string]interface{}{
		"name":      "Teas",
		"sortOrder": 5,
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}
	if store.categories[id].Name != "Teas" || store.categories[id].SortOrder != 5 {
		t.Errorf("stored: %+v", store.categories[id])
	}
}

func TestCategoryUpdate_NotFound(t *testing.T) {
	router := setupCategoryRouter(newMockCategoryStore())

	rr := doJSON(t, router, http.MethodPut, "/categories/"+uuid.New().String(), map[string]interface{}{"name": "X"})

	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestCategoryUpdate_InvalidID(t *testing.T) {
	router := setupCategoryRouter(newMockCategoryStore())

	rr := doJSON(t, router, http.MethodPut, "/categories/not-a-uuid", map[string]interface{}{"name": "X"})

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

// --- Delete tests ---

func TestCategoryDelete_SoftDeletes(t *testing.T) {
	store := newMockCategoryStore()
	id := store.add("Seasonal", 1, true)
	router := setupCategoryRouter(store)

	rr := doJSON(t, router, http.MethodDelete, "/categories/"+id.String(), nil)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusNoContent)
	}
	if store.categories[id].IsActive {
		t.Error("expected category to be inactive")
	}

	rr = doJSON(t, router, http.MethodDelete, "/categories/"+id.String(), nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("second delete: got %d, want %d", rr.Code, http.StatusNotFound)
	}
}
