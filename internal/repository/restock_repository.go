// internal/repository/restock_repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/koncoweb/petnexus-sub000/internal/domain"
	"github.com/koncoweb/petnexus-sub000/internal/engine"
)

var (
	// ErrOrderNotFound is returned when an order id does not exist.
	ErrOrderNotFound = errors.New("restock order not found")
	// ErrInvalidTransition is returned when a status change is not allowed
	// from the order's current status.
	ErrInvalidTransition = errors.New("invalid order status transition")
	// ErrSupplierNotFound is returned when a supplier id does not exist.
	ErrSupplierNotFound = errors.New("supplier not found")
)

// InventoryProvider supplies the current stock snapshot for a store,
// optionally filtered to products carried by one supplier. Implementations
// must never return negative stock values; the engine rejects them.
type InventoryProvider interface {
	StoreSnapshot(ctx context.Context, storeID, supplierID string) ([]domain.InventoryLine, error)
	ReplaceSnapshot(ctx context.Context, storeID string, lines []domain.InventoryLine) error
}

// PromotionProvider supplies structurally well-formed promotions whose window
// overlaps the given time. Time-validity is re-checked by the engine.
type PromotionProvider interface {
	ActivePromotions(ctx context.Context, at time.Time) ([]domain.Promotion, error)
}

// CostProvider preloads the unit-cost table for a store's assortment.
type CostProvider interface {
	UnitCosts(ctx context.Context, storeID string) (engine.CostTable, error)
}

// OrderRepository persists materialized restock orders.
type OrderRepository interface {
	SaveDraft(ctx context.Context, draft *domain.RestockOrderDraft) (*domain.RestockOrder, error)
	GetOrder(ctx context.Context, id string) (*domain.RestockOrder, error)
	ListOrders(ctx context.Context, storeID string, limit, offset int) ([]*domain.RestockOrder, error)
	UpdateStatus(ctx context.Context, id string, status int) error
}

// SupplierRepository exposes supplier lookups for the CRUD surface.
type SupplierRepository interface {
	GetSuppliers(ctx context.Context, search string, limit, offset int) ([]*domain.Supplier, error)
	GetSupplier(ctx context.Context, id string) (*domain.Supplier, error)
}
