package engine

import (
	"time"

	"github.com/koncoweb/petnexus-sub000/internal/domain"
)

// buildRecommendation turns one low-stock inventory line into a restock
// recommendation. Missing cost or promotion data never aborts the build;
// documented fallbacks apply and the computation continues.
func (e *Engine) buildRecommendation(
	line domain.InventoryLine,
	supplierID string,
	promotions []domain.Promotion,
	costs CostLookup,
	now time.Time,
) domain.RestockRecommendation {
	quantity := line.MinimumStock - line.CurrentStock
	if quantity < e.cfg.MinRestockQuantity {
		quantity = e.cfg.MinRestockQuantity
	}

	unitCost := e.cfg.DefaultUnitCost
	if costs != nil {
		if c, ok := costs.UnitCost(line.ProductID, line.VariantID); ok && c > 0 {
			unitCost = c
		}
	}
	baseCost := float64(quantity) * unitCost

	promo := MatchPromotion(MatchTarget{
		ProductID: line.ProductID,
		VariantID: line.VariantID,
		BrandID:   line.BrandID,
	}, supplierID, promotions, now)

	estimated := applyDiscount(baseCost, promo)

	urgency, _ := ScoreUrgency(line.CurrentStock, line.MinimumStock)

	rec := domain.RestockRecommendation{
		ProductID:           line.ProductID,
		VariantID:           line.VariantID,
		SupplierID:          supplierID,
		CurrentStock:        line.CurrentStock,
		MinimumStock:        line.MinimumStock,
		RecommendedQuantity: quantity,
		UnitCost:            unitCost,
		EstimatedCost:       estimated,
		RiskLevel:           RiskForStock(line.CurrentStock),
		UrgencyScore:        urgency,
		AppliedPromotion:    promo,
	}
	if rec.SupplierID == "" && promo != nil {
		rec.SupplierID = promo.SupplierID
	}

	return rec
}

// applyDiscount adjusts a base cost for the matched promotion. Percentage
// promotions scale, fixed amounts subtract floored at zero. Buy-x-get-y and
// free shipping are fulfillment concerns: the match is recorded but the
// estimate is left unchanged. The result never exceeds the base cost;
// negative values are refused upstream by validation and leave the estimate
// unchanged here.
func applyDiscount(baseCost float64, promo *domain.Promotion) float64 {
	if promo == nil || promo.DiscountValue < 0 {
		return baseCost
	}

	switch promo.DiscountType {
	case domain.DiscountPercentage:
		discounted := baseCost * (1 - promo.DiscountValue/100)
		if discounted < 0 {
			return 0
		}
		return discounted
	case domain.DiscountFixedAmount:
		discounted := baseCost - promo.DiscountValue
		if discounted < 0 {
			return 0
		}
		return discounted
	default:
		return baseCost
	}
}
