package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/koncoweb/petnexus-sub000/internal/domain"
)

// InventoryRepository reads and replaces per-store stock snapshots.
type InventoryRepository struct {
	db *DB
}

func NewInventoryRepository(db *DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// StoreSnapshot returns the current inventory lines for a store. When
// supplierID is set, the snapshot is restricted to products the supplier
// carries.
func (r *InventoryRepository) StoreSnapshot(ctx context.Context, storeID, supplierID string) ([]domain.InventoryLine, error) {
	query := `
		SELECT
			si.store_id,
			si.product_id,
			COALESCE(si.variant_id, '') AS variant_id,
			COALESCE(p.brand_id, '') AS brand_id,
			si.current_stock,
			si.minimum_stock,
			si.maximum_stock,
			si.reserved_stock
		FROM store_inventory si
		JOIN products p ON p.id = si.product_id
		WHERE si.store_id = $1`

	args := []interface{}{storeID}
	if supplierID != "" {
		query += `
		  AND EXISTS (
			SELECT 1 FROM supplier_products sp
			WHERE sp.product_id = si.product_id AND sp.supplier_id = $2
		  )`
		args = append(args, supplierID)
	}
	query += `
		ORDER BY si.product_id, si.variant_id`

	lines := []domain.InventoryLine{}
	if err := r.db.SelectContext(ctx, &lines, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch inventory snapshot for store %s: %w", storeID, err)
	}

	return lines, nil
}

// ReplaceSnapshot swaps the stored snapshot for a store with the given
// lines. Used by the ingestion path; runs in one transaction so readers
// never observe a half-loaded snapshot.
func (r *InventoryRepository) ReplaceSnapshot(ctx context.Context, storeID string, lines []domain.InventoryLine) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM store_inventory WHERE store_id = $1`, storeID); err != nil {
			return fmt.Errorf("failed to clear snapshot for store %s: %w", storeID, err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO store_inventory
				(store_id, product_id, variant_id, current_stock, minimum_stock, maximum_stock, reserved_stock, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())`)
		if err != nil {
			return fmt.Errorf("failed to prepare snapshot insert: %w", err)
		}
		defer stmt.Close()

		for _, line := range lines {
			if _, err := stmt.ExecContext(ctx,
				storeID,
				line.ProductID,
				line.VariantID,
				line.CurrentStock,
				line.MinimumStock,
				line.MaximumStock,
				line.ReservedStock,
			); err != nil {
				return fmt.Errorf("failed to insert snapshot line %s/%s: %w", line.ProductID, line.VariantID, err)
			}
		}

		return nil
	})
}
