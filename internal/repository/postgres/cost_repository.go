package postgres

import (
	"context"
	"fmt"

	"github.com/koncoweb/petnexus-sub000/internal/engine"
)

// CostRepository resolves supplier unit costs for a store's assortment.
type CostRepository struct {
	db *DB
}

func NewCostRepository(db *DB) *CostRepository {
	return &CostRepository{db: db}
}

type costRow struct {
	ProductID string  `db:"product_id"`
	VariantID string  `db:"variant_id"`
	UnitCost  float64 `db:"unit_cost"`
}

// UnitCosts preloads the cost table for every product stocked by a store.
// One query per analysis keeps the engine free of I/O.
func (r *CostRepository) UnitCosts(ctx context.Context, storeID string) (engine.CostTable, error) {
	query := `
		SELECT
			sp.product_id,
			COALESCE(sp.variant_id, '') AS variant_id,
			sp.unit_cost
		FROM supplier_products sp
		WHERE EXISTS (
			SELECT 1 FROM store_inventory si
			WHERE si.store_id = $1 AND si.product_id = sp.product_id
		)`

	rows := []costRow{}
	if err := r.db.SelectContext(ctx, &rows, query, storeID); err != nil {
		return nil, fmt.Errorf("failed to fetch unit costs for store %s: %w", storeID, err)
	}

	table := make(engine.CostTable, len(rows))
	for _, row := range rows {
		key := engine.CostKey{ProductID: row.ProductID, VariantID: row.VariantID}
		// first supplier entry wins; duplicates keep the earlier cost
		if _, ok := table[key]; !ok {
			table[key] = row.UnitCost
		}
	}

	return table, nil
}
