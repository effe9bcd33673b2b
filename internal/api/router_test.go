package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koncoweb/petnexus-sub000/internal/domain"
	"github.com/koncoweb/petnexus-sub000/internal/engine"
	"github.com/koncoweb/petnexus-sub000/internal/repository"
	"github.com/koncoweb/petnexus-sub000/internal/service"
)

type stubInventory struct {
	lines []domain.InventoryLine
}

func (s *stubInventory) StoreSnapshot(ctx context.Context, storeID, supplierID string) ([]domain.InventoryLine, error) {
	return s.lines, nil
}

func (s *stubInventory) ReplaceSnapshot(ctx context.Context, storeID string, lines []domain.InventoryLine) error {
	s.lines = lines
	return nil
}

type stubPromotions struct{}

func (s *stubPromotions) ActivePromotions(ctx context.Context, at time.Time) ([]domain.Promotion, error) {
	return nil, nil
}

type stubCosts struct{}

func (s *stubCosts) UnitCosts(ctx context.Context, storeID string) (engine.CostTable, error) {
	return nil, nil
}

type stubOrders struct {
	order *domain.RestockOrder
}

func (s *stubOrders) SaveDraft(ctx context.Context, draft *domain.RestockOrderDraft) (*domain.RestockOrder, error) {
	return &domain.RestockOrder{
		ID:         "order-1",
		SupplierID: draft.SupplierID,
		StoreID:    draft.StoreID,
		Items:      draft.Items,
		TotalItems: draft.TotalItems,
		TotalCost:  draft.TotalCost,
		Status:     domain.OrderStatusPending,
		CreatedAt:  draft.CreatedAt,
	}, nil
}

func (s *stubOrders) GetOrder(ctx context.Context, id string) (*domain.RestockOrder, error) {
	if s.order == nil || s.order.ID != id {
		return nil, repository.ErrOrderNotFound
	}
	return s.order, nil
}

func (s *stubOrders) ListOrders(ctx context.Context, storeID string, limit, offset int) ([]*domain.RestockOrder, error) {
	if s.order == nil {
		return nil, nil
	}
	return []*domain.RestockOrder{s.order}, nil
}

func (s *stubOrders) UpdateStatus(ctx context.Context, id string, status int) error {
	if s.order == nil || s.order.ID != id {
		return repository.ErrOrderNotFound
	}
	if !domain.CanTransitionOrderStatus(s.order.Status, status) {
		return fmt.Errorf("%w: %s -> %s", repository.ErrInvalidTransition,
			domain.OrderStatusLabel(s.order.Status), domain.OrderStatusLabel(status))
	}
	s.order.Status = status
	return nil
}

type stubSuppliers struct{}

func (s *stubSuppliers) GetSuppliers(ctx context.Context, search string, limit, offset int) ([]*domain.Supplier, error) {
	return []*domain.Supplier{{ID: "sup-1", Name: "Happy Paws Distribution"}}, nil
}

func (s *stubSuppliers) GetSupplier(ctx context.Context, id string) (*domain.Supplier, error) {
	return &domain.Supplier{ID: id}, nil
}

func newTestRouter(inv *stubInventory, orders *stubOrders) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewRestockService(
		inv,
		&stubPromotions{},
		&stubCosts{},
		orders,
		&stubSuppliers{},
		nil,
		nil,
		engine.New(engine.Config{}),
	)
	return NewRouter(svc, nil)
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestGetAnalysisReturnsResult(t *testing.T) {
	inv := &stubInventory{lines: []domain.InventoryLine{
		{StoreID: "store-1", ProductID: "p1", CurrentStock: 0, MinimumStock: 10},
	}}
	router := newTestRouter(inv, &stubOrders{})

	w := doRequest(router, http.MethodGet, "/api/v1/restock/analysis?store_id=store-1", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"urgent"`)
	assert.Contains(t, w.Body.String(), `"p1"`)
}

func TestGetAnalysisRequiresStore(t *testing.T) {
	router := newTestRouter(&stubInventory{}, &stubOrders{})

	w := doRequest(router, http.MethodGet, "/api/v1/restock/analysis", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAnalysisInvalidInventoryIsUnprocessable(t *testing.T) {
	inv := &stubInventory{lines: []domain.InventoryLine{
		{StoreID: "store-1", ProductID: "p1", CurrentStock: -1, MinimumStock: 10},
	}}
	router := newTestRouter(inv, &stubOrders{})

	w := doRequest(router, http.MethodGet, "/api/v1/restock/analysis?store_id=store-1", "")

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "current_stock")
}

func TestCreateOrderReturnsCreated(t *testing.T) {
	router := newTestRouter(&stubInventory{}, &stubOrders{})

	body := `{
		"store_id": "store-1",
		"supplier_id": "sup-1",
		"items": [{"product_id": "p1", "recommended_quantity": 5, "unit_cost": 100, "estimated_cost": 450}]
	}`
	w := doRequest(router, http.MethodPost, "/api/v1/restock/orders", body)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"order-1"`)
	assert.Contains(t, w.Body.String(), `"total_items":5`)
}

func TestCreateOrderEmptySelectionIsBadRequest(t *testing.T) {
	router := newTestRouter(&stubInventory{}, &stubOrders{})

	body := `{"store_id": "store-1", "supplier_id": "sup-1", "items": []}`
	w := doRequest(router, http.MethodPost, "/api/v1/restock/orders", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "no items require restocking")
}

func TestGetOrderUnknownIsNotFound(t *testing.T) {
	router := newTestRouter(&stubInventory{}, &stubOrders{})

	w := doRequest(router, http.MethodGet, "/api/v1/restock/orders/missing", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateStatusIllegalTransitionIsConflict(t *testing.T) {
	orders := &stubOrders{order: &domain.RestockOrder{ID: "order-1", Status: domain.OrderStatusPending}}
	router := newTestRouter(&stubInventory{}, orders)

	w := doRequest(router, http.MethodPatch, "/api/v1/restock/orders/order-1/status", `{"status": "received"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateStatusUnknownLabelIsUnprocessable(t *testing.T) {
	orders := &stubOrders{order: &domain.RestockOrder{ID: "order-1", Status: domain.OrderStatusPending}}
	router := newTestRouter(&stubInventory{}, orders)

	w := doRequest(router, http.MethodPatch, "/api/v1/restock/orders/order-1/status", `{"status": "abandoned"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestUpdateStatusAllowedTransition(t *testing.T) {
	orders := &stubOrders{order: &domain.RestockOrder{ID: "order-1", Status: domain.OrderStatusPending}}
	router := newTestRouter(&stubInventory{}, orders)

	w := doRequest(router, http.MethodPatch, "/api/v1/restock/orders/order-1/status", `{"status": "approved"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.OrderStatusApproved, orders.order.Status)
}
