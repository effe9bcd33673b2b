// internal/service/restock_service.go
package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/koncoweb/petnexus-sub000/internal/cache"
	"github.com/koncoweb/petnexus-sub000/internal/domain"
	"github.com/koncoweb/petnexus-sub000/internal/engine"
	"github.com/koncoweb/petnexus-sub000/internal/repository"
	"github.com/koncoweb/petnexus-sub000/internal/storage"
)

// RestockService wires the engine to its collaborators: inventory and
// promotion providers, the cost source, order persistence, the analysis
// cache, and optional order exports to object storage.
type RestockService struct {
	inventory  repository.InventoryProvider
	promotions repository.PromotionProvider
	costs      repository.CostProvider
	orders     repository.OrderRepository
	suppliers  repository.SupplierRepository
	cache      cache.AnalysisCache
	exports    storage.ObjectStorage
	engine     *engine.Engine
}

func NewRestockService(
	inventory repository.InventoryProvider,
	promotions repository.PromotionProvider,
	costs repository.CostProvider,
	orders repository.OrderRepository,
	suppliers repository.SupplierRepository,
	analysisCache cache.AnalysisCache,
	exports storage.ObjectStorage,
	eng *engine.Engine,
) *RestockService {
	if analysisCache == nil {
		analysisCache = cache.NewNoopAnalysisCache()
	}
	return &RestockService{
		inventory:  inventory,
		promotions: promotions,
		costs:      costs,
		orders:     orders,
		suppliers:  suppliers,
		cache:      analysisCache,
		exports:    exports,
		engine:     eng,
	}
}

// Analyze runs a restock analysis for one scope, serving from cache when a
// fresh result exists.
func (s *RestockService) Analyze(ctx context.Context, scope domain.AnalysisScope) (*domain.AnalysisResult, error) {
	if cached, ok, err := s.cache.Get(ctx, scope); err != nil {
		log.Warn().Err(err).Str("store_id", scope.StoreID).Msg("analysis cache read failed")
	} else if ok {
		return cached, nil
	}

	inventory, err := s.inventory.StoreSnapshot(ctx, scope.StoreID, scope.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch inventory snapshot: %w", err)
	}

	promotions, err := s.promotions.ActivePromotions(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch promotions: %w", err)
	}

	costs, err := s.costs.UnitCosts(ctx, scope.StoreID)
	if err != nil {
		// missing pricing is a data-absence condition; the engine falls
		// back to its default unit cost
		log.Warn().Err(err).Str("store_id", scope.StoreID).Msg("cost lookup unavailable, using engine defaults")
		costs = nil
	}

	result, err := s.engine.Analyze(ctx, scope, inventory, promotions, costs)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, scope, result); err != nil {
		log.Warn().Err(err).Str("store_id", scope.StoreID).Msg("analysis cache write failed")
	}

	return result, nil
}

// AnalyzeStores runs one analysis per store concurrently. Each invocation
// touches only its own inputs, so no locking is needed between them.
func (s *RestockService) AnalyzeStores(ctx context.Context, storeIDs []string, supplierID string) ([]*domain.AnalysisResult, error) {
	var (
		wg       sync.WaitGroup
		results  = make([]*domain.AnalysisResult, 0, len(storeIDs))
		resultCh = make(chan *domain.AnalysisResult, len(storeIDs))
		errCh    = make(chan error, len(storeIDs))
	)

	for _, storeID := range storeIDs {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()

			result, err := s.Analyze(ctx, domain.AnalysisScope{StoreID: id, SupplierID: supplierID})
			if err != nil {
				errCh <- fmt.Errorf("error analyzing store %s: %w", id, err)
				return
			}

			resultCh <- result
		}(storeID)
	}

	go func() {
		wg.Wait()
		close(resultCh)
		close(errCh)
	}()

	for result := range resultCh {
		results = append(results, result)
	}

	if len(errCh) > 0 {
		var errs []error
		for err := range errCh {
			errs = append(errs, err)
		}
		return nil, fmt.Errorf("errors analyzing stores: %v", errs)
	}

	return results, nil
}

// CreateOrder materializes a recommendation subset into a pending order,
// persists it, and uploads a CSV export when storage is configured. Export
// failures are logged, not fatal; the persisted order is the record of
// truth.
func (s *RestockService) CreateOrder(ctx context.Context, storeID, supplierID string, recs []domain.RestockRecommendation) (*domain.RestockOrder, error) {
	draft, err := s.engine.MaterializeOrder(supplierID, storeID, recs)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.SaveDraft(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("failed to persist restock order: %w", err)
	}

	if s.exports != nil {
		key := fmt.Sprintf("orders/%s/%s.csv", order.StoreID, order.ID)
		if err := s.exports.UploadObject(ctx, key, orderCSV(order)); err != nil {
			log.Warn().Err(err).Str("order_id", order.ID).Msg("order export upload failed")
		}
	}

	if err := s.cache.Invalidate(ctx, domain.AnalysisScope{StoreID: storeID, SupplierID: supplierID}); err != nil {
		log.Warn().Err(err).Str("store_id", storeID).Msg("analysis cache invalidation failed")
	}

	return order, nil
}

// GetOrder returns one persisted order with items.
func (s *RestockService) GetOrder(ctx context.Context, id string) (*domain.RestockOrder, error) {
	return s.orders.GetOrder(ctx, id)
}

// ListOrders returns a store's orders, newest first.
func (s *RestockService) ListOrders(ctx context.Context, storeID string, limit, offset int) ([]*domain.RestockOrder, error) {
	return s.orders.ListOrders(ctx, storeID, limit, offset)
}

// UpdateOrderStatus transitions an order to the status named by label.
func (s *RestockService) UpdateOrderStatus(ctx context.Context, id, label string) error {
	status, ok := domain.ParseOrderStatus(label)
	if !ok {
		return &domain.InvalidInputError{Field: "status", Reason: fmt.Sprintf("unknown order status %q", label)}
	}
	return s.orders.UpdateStatus(ctx, id, status)
}

// GetSuppliers returns suppliers matching the optional search term.
func (s *RestockService) GetSuppliers(ctx context.Context, search string, limit, offset int) ([]*domain.Supplier, error) {
	return s.suppliers.GetSuppliers(ctx, search, limit, offset)
}

func orderCSV(order *domain.RestockOrder) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"Product", "Variant", "Quantity", "Unit Cost", "Line Cost"})
	for _, item := range order.Items {
		w.Write([]string{
			item.ProductID,
			item.VariantID,
			strconv.Itoa(item.Quantity),
			fmt.Sprintf("%.2f", item.UnitCost),
			fmt.Sprintf("%.2f", item.LineCost),
		})
	}
	w.Flush()

	return buf.Bytes()
}
