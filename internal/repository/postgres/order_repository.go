package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/koncoweb/petnexus-sub000/internal/domain"
	"github.com/koncoweb/petnexus-sub000/internal/repository"
)

// OrderRepository persists restock orders and their line items.
type OrderRepository struct {
	db *DB
}

func NewOrderRepository(db *DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// SaveDraft persists a materialized draft as a pending order and returns the
// stored record. The draft itself is never mutated.
func (r *OrderRepository) SaveDraft(ctx context.Context, draft *domain.RestockOrderDraft) (*domain.RestockOrder, error) {
	order := &domain.RestockOrder{
		ID:         uuid.NewString(),
		SupplierID: draft.SupplierID,
		StoreID:    draft.StoreID,
		Items:      draft.Items,
		TotalItems: draft.TotalItems,
		TotalCost:  draft.TotalCost,
		Status:     domain.OrderStatusPending,
		CreatedAt:  draft.CreatedAt,
		UpdatedAt:  draft.CreatedAt,
	}

	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO restock_orders
				(id, supplier_id, store_id, total_items, total_cost, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`,
			order.ID, order.SupplierID, order.StoreID, order.TotalItems, order.TotalCost, order.Status, order.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert restock order: %w", err)
		}

		for _, item := range order.Items {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO restock_order_items
					(order_id, product_id, variant_id, quantity, unit_cost, line_cost)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				order.ID, item.ProductID, item.VariantID, item.Quantity, item.UnitCost, item.LineCost,
			); err != nil {
				return fmt.Errorf("failed to insert order item %s: %w", item.ProductID, err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// GetOrder loads one order with its items.
func (r *OrderRepository) GetOrder(ctx context.Context, id string) (*domain.RestockOrder, error) {
	order := &domain.RestockOrder{}
	err := r.db.GetContext(ctx, order, `
		SELECT id, supplier_id, store_id, total_items, total_cost, status, created_at, updated_at
		FROM restock_orders
		WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order %s: %w", id, err)
	}

	items := []domain.RestockOrderItem{}
	if err := r.db.SelectContext(ctx, &items, `
		SELECT product_id, COALESCE(variant_id, '') AS variant_id, quantity, unit_cost, line_cost
		FROM restock_order_items
		WHERE order_id = $1
		ORDER BY product_id, variant_id`, id); err != nil {
		return nil, fmt.Errorf("failed to fetch items for order %s: %w", id, err)
	}
	order.Items = items

	return order, nil
}

// ListOrders returns orders for a store, newest first.
func (r *OrderRepository) ListOrders(ctx context.Context, storeID string, limit, offset int) ([]*domain.RestockOrder, error) {
	if limit <= 0 {
		limit = 50
	}

	orders := []*domain.RestockOrder{}
	if err := r.db.SelectContext(ctx, &orders, `
		SELECT id, supplier_id, store_id, total_items, total_cost, status, created_at, updated_at
		FROM restock_orders
		WHERE store_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, storeID, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list orders for store %s: %w", storeID, err)
	}

	return orders, nil
}

// UpdateStatus moves an order to a new status, enforcing the transition
// rules from the domain package.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status int) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		var current int
		err := tx.GetContext(ctx, &current, `SELECT status FROM restock_orders WHERE id = $1 FOR UPDATE`, id)
		if errors.Is(err, sql.ErrNoRows) {
			return repository.ErrOrderNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to lock order %s: %w", id, err)
		}

		if !domain.CanTransitionOrderStatus(current, status) {
			return fmt.Errorf("%w: %s -> %s", repository.ErrInvalidTransition,
				domain.OrderStatusLabel(current), domain.OrderStatusLabel(status))
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE restock_orders SET status = $1, updated_at = NOW() WHERE id = $2`, status, id); err != nil {
			return fmt.Errorf("failed to update order %s status: %w", id, err)
		}

		return nil
	})
}
