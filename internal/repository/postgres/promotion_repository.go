package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/koncoweb/petnexus-sub000/internal/domain"
)

// PromotionRepository reads supplier promotions.
type PromotionRepository struct {
	db *DB
}

func NewPromotionRepository(db *DB) *PromotionRepository {
	return &PromotionRepository{db: db}
}

// ActivePromotions returns promotions whose window contains the given time
// and whose usage cap is not exhausted. The engine re-checks validity; this
// query just keeps the working set small.
func (r *PromotionRepository) ActivePromotions(ctx context.Context, at time.Time) ([]domain.Promotion, error) {
	query := `
		SELECT
			id,
			supplier_id,
			scope,
			target_id,
			discount_type,
			discount_value,
			minimum_quantity,
			start_date,
			end_date,
			COALESCE(max_usage, 0) AS max_usage,
			current_usage
		FROM promotions
		WHERE start_date <= $1
		  AND end_date >= $1
		  AND (max_usage IS NULL OR current_usage < max_usage)
		ORDER BY created_at`

	promotions := []domain.Promotion{}
	if err := r.db.SelectContext(ctx, &promotions, query, at); err != nil {
		return nil, fmt.Errorf("failed to fetch active promotions: %w", err)
	}

	return promotions, nil
}
