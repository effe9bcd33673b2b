package engine

import "github.com/koncoweb/petnexus-sub000/internal/domain"

// MaterializeOrder converts a caller-chosen recommendation subset into a
// pending draft order for one supplier. Lines without a positive recommended
// quantity are skipped; if nothing survives the filter an
// EmptySelectionError is returned rather than a zero-line draft. The draft
// is a value only; persisting it is the caller's responsibility.
func (e *Engine) MaterializeOrder(supplierID, storeID string, recs []domain.RestockRecommendation) (*domain.RestockOrderDraft, error) {
	items := make([]domain.RestockOrderItem, 0, len(recs))
	totalItems := 0
	totalCost := 0.0

	for _, rec := range recs {
		if rec.RecommendedQuantity <= 0 {
			continue
		}
		items = append(items, domain.RestockOrderItem{
			ProductID: rec.ProductID,
			VariantID: rec.VariantID,
			Quantity:  rec.RecommendedQuantity,
			UnitCost:  rec.UnitCost,
			LineCost:  rec.EstimatedCost,
		})
		totalItems += rec.RecommendedQuantity
		totalCost += rec.EstimatedCost
	}

	if len(items) == 0 {
		return nil, &domain.EmptySelectionError{SupplierID: supplierID}
	}

	return &domain.RestockOrderDraft{
		SupplierID: supplierID,
		StoreID:    storeID,
		Items:      items,
		TotalItems: totalItems,
		TotalCost:  totalCost,
		Status:     domain.OrderStatusLabel(domain.OrderStatusPending),
		CreatedAt:  e.now(),
	}, nil
}
