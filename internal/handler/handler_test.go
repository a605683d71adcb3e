package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"sort"
	"testing"
	"time"

	"rewear-service/internal/apperr"
	"rewear-service/internal/handler"
	mid "rewear-service/internal/middleware"
	"rewear-service/internal/model"
	"rewear-service/internal/repository"
	"rewear-service/internal/service"
	"rewear-service/pkg/config"
	"rewear-service/pkg/jwtutil"
	"rewear-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	cfg, _ := config.Load()
	prometheus.InitMetrics(cfg)
	jwtutil.Initialize(&cfg.JWT)
	os.Exit(m.Run())
}

// fakeItemRepo is a map-backed ItemRepository for boundary tests
type fakeItemRepo struct {
	nextID uint
	base   time.Time
	items  map[uint]model.Item
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{base: time.Now(), items: make(map[uint]model.Item)}
}

func (r *fakeItemRepo) Create(item *model.Item) error {
	r.nextID++
	item.ID = r.nextID
	item.CreatedAt = r.base.Add(time.Duration(r.nextID) * time.Millisecond)
	item.UpdatedAt = item.CreatedAt
	r.items[item.ID] = *item
	return nil
}

func (r *fakeItemRepo) GetByID(id uint, includeInactive bool) (*model.Item, error) {
	item, ok := r.items[id]
	if !ok || (!includeInactive && !item.IsActive) {
		return nil, apperr.ErrNotFound
	}
	copied := item
	return &copied, nil
}

func (r *fakeItemRepo) GetWithOwner(id uint) (*model.ItemWithOwner, error) {
	item, err := r.GetByID(id, false)
	if err != nil {
		return nil, err
	}
	return &model.ItemWithOwner{Item: *item, Owner: model.PublicUser{ID: item.UserID}}, nil
}

func (r *fakeItemRepo) List(filter repository.ItemFilter, page repository.Pagination) ([]model.Item, int64, error) {
	page = page.Normalize()
	var matched []model.Item
	for _, item := range r.items {
		if !item.IsActive {
			continue
		}
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		if filter.Category != "" && item.Category != filter.Category {
			continue
		}
		if filter.UserID != 0 && item.UserID != filter.UserID {
			continue
		}
		matched = append(matched, item)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	total := int64(len(matched))
	start := page.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + page.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *fakeItemRepo) ListWithOwners(filter repository.ItemFilter, page repository.Pagination) ([]model.ItemWithOwner, int64, error) {
	items, total, err := r.List(filter, page)
	if err != nil {
		return nil, 0, err
	}
	joined := make([]model.ItemWithOwner, 0, len(items))
	for _, item := range items {
		joined = append(joined, model.ItemWithOwner{Item: item, Owner: model.PublicUser{ID: item.UserID}})
	}
	return joined, total, nil
}

func (r *fakeItemRepo) Update(item *model.Item) error {
	if _, ok := r.items[item.ID]; !ok {
		return apperr.ErrNotFound
	}
	r.items[item.ID] = *item
	return nil
}

func (r *fakeItemRepo) UpdateStatus(id uint, status, rejectionReason string) error {
	item, ok := r.items[id]
	if !ok || !item.IsActive {
		return apperr.ErrNotFound
	}
	item.Status = status
	item.RejectionReason = rejectionReason
	r.items[id] = item
	return nil
}

func (r *fakeItemRepo) SoftDelete(id uint) error {
	item, ok := r.items[id]
	if !ok || !item.IsActive {
		return apperr.ErrNotFound
	}
	item.IsActive = false
	r.items[id] = item
	return nil
}

func (r *fakeItemRepo) CountByStatus() (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, item := range r.items {
		if item.IsActive {
			counts[item.Status]++
		}
	}
	return counts, nil
}

func newTestServer(items repository.ItemRepository) *echo.Echo {
	repo := &repository.Repository{Item: items}
	cfg := &config.Config{Auth: config.AuthConfig{BcryptCost: 4}}
	h := handler.NewHandler(service.NewService(repo, cfg))

	e := echo.New()
	e.Validator = handler.NewRequestValidator()

	e.GET("/api/items", h.ListItems, mid.OptionalAuthMiddleware)
	e.GET("/api/items/:id", h.GetItem)
	e.POST("/api/items", h.CreateItem, mid.AuthMiddleware)
	e.PUT("/api/items/:id", h.UpdateItem, mid.AuthMiddleware)
	e.DELETE("/api/items/:id", h.DeleteItem, mid.AuthMiddleware)

	adminAPI := e.Group("/api/admin", mid.AuthMiddleware)
	adminAPI.GET("/items", h.ModerationQueue)
	adminAPI.POST("/items/:id/approve", h.ApproveItem)
	adminAPI.POST("/items/:id/reject", h.RejectItem)

	return e
}

func bearerFor(t *testing.T, userID uint, role string) string {
	t.Helper()
	token, err := jwtutil.GenerateToken(userID, "someone@example.com", "Someone", role)
	require.NoError(t, err)
	return "Bearer " + token
}

func jsonRequest(method, target string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func createPayload() map[string]interface{} {
	return map[string]interface{}{
		"title":         "Wool winter coat",
		"description":   "Warm coat, barely worn last season",
		"category":      "outerwear",
		"condition":     "like-new",
		"size":          "L",
		"selling_price": 80.0,
		"images":        []string{"coat-front.jpg"},
	}
}

func TestCreateItemRequiresToken(t *testing.T) {
	e := newTestServer(newFakeItemRepo())

	req := jsonRequest(http.MethodPost, "/api/items", createPayload())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateItemForcesPendingStatus(t *testing.T) {
	repo := newFakeItemRepo()
	e := newTestServer(repo)

	// A status in the payload must be ignored
	payload := createPayload()
	payload["status"] = "approved"
	payload["is_active"] = false

	req := jsonRequest(http.MethodPost, "/api/items", payload)
	req.Header.Set(echo.HeaderAuthorization, bearerFor(t, 7, model.RoleUser))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	stored, err := repo.GetByID(1, false)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, stored.Status)
	assert.True(t, stored.IsActive)
	assert.Equal(t, uint(7), stored.UserID)
}

func TestCreateItemValidationError(t *testing.T) {
	e := newTestServer(newFakeItemRepo())

	payload := createPayload()
	payload["images"] = []string{}

	req := jsonRequest(http.MethodPost, "/api/items", payload)
	req.Header.Set(echo.HeaderAuthorization, bearerFor(t, 7, model.RoleUser))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApproveRequiresAdminRole(t *testing.T) {
	repo := newFakeItemRepo()
	require.NoError(t, repo.Create(&model.Item{
		Title: "Silk scarf", UserID: 2, Status: model.StatusPending, IsActive: true,
	}))
	e := newTestServer(repo)

	req := jsonRequest(http.MethodPost, "/api/admin/items/1/approve", nil)
	req.Header.Set(echo.HeaderAuthorization, bearerFor(t, 2, model.RoleUser))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = jsonRequest(http.MethodPost, "/api/admin/items/1/approve", nil)
	req.Header.Set(echo.HeaderAuthorization, bearerFor(t, 99, model.RoleAdmin))
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	stored, err := repo.GetByID(1, false)
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, stored.Status)
}

func TestRejectWithoutReasonUsesDefault(t *testing.T) {
	repo := newFakeItemRepo()
	require.NoError(t, repo.Create(&model.Item{
		Title: "Leather boots", UserID: 2, Status: model.StatusPending, IsActive: true,
	}))
	e := newTestServer(repo)

	req := jsonRequest(http.MethodPost, "/api/admin/items/1/reject", nil)
	req.Header.Set(echo.HeaderAuthorization, bearerFor(t, 99, model.RoleAdmin))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	stored, err := repo.GetByID(1, false)
	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, stored.Status)
	assert.Equal(t, "No reason provided", stored.RejectionReason)
}

func TestModerationQueueForbiddenForUsers(t *testing.T) {
	e := newTestServer(newFakeItemRepo())

	req := jsonRequest(http.MethodGet, "/api/admin/items", nil)
	req.Header.Set(echo.HeaderAuthorization, bearerFor(t, 2, model.RoleUser))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPublicCatalogShowsOnlyApproved(t *testing.T) {
	repo := newFakeItemRepo()
	require.NoError(t, repo.Create(&model.Item{
		Title: "Approved dress", UserID: 2, Status: model.StatusApproved, IsActive: true,
	}))
	require.NoError(t, repo.Create(&model.Item{
		Title: "Pending dress", UserID: 2, Status: model.StatusPending, IsActive: true,
	}))
	e := newTestServer(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/items", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Items      []model.ItemWithOwner `json:"items"`
		Pagination struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, int64(1), response.Pagination.Total)
	require.Len(t, response.Items, 1)
	assert.Equal(t, "Approved dress", response.Items[0].Title)
}

func TestUpdateByStrangerIsForbidden(t *testing.T) {
	repo := newFakeItemRepo()
	require.NoError(t, repo.Create(&model.Item{
		Title: "Linen shirt", Description: "Soft linen summer shirt", UserID: 2,
		Category: model.CategoryTops, Condition: model.ConditionGood, Size: "S",
		SellingPrice: 15, Images: []string{"shirt.jpg"},
		Status: model.StatusApproved, IsActive: true,
	}))
	e := newTestServer(repo)

	req := jsonRequest(http.MethodPut, "/api/items/1", map[string]interface{}{"title": "Stolen shirt"})
	req.Header.Set(echo.HeaderAuthorization, bearerFor(t, 3, model.RoleUser))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	stored, err := repo.GetByID(1, false)
	require.NoError(t, err)
	assert.Equal(t, "Linen shirt", stored.Title)
}

func TestDeleteTwiceReportsNotFound(t *testing.T) {
	repo := newFakeItemRepo()
	require.NoError(t, repo.Create(&model.Item{
		Title: "Old jeans", UserID: 4, Status: model.StatusApproved, IsActive: true,
	}))
	e := newTestServer(repo)

	owner := bearerFor(t, 4, model.RoleUser)

	req := jsonRequest(http.MethodDelete, "/api/items/1", nil)
	req.Header.Set(echo.HeaderAuthorization, owner)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = jsonRequest(http.MethodDelete, "/api/items/1", nil)
	req.Header.Set(echo.HeaderAuthorization, owner)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
