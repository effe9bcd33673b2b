// internal/domain/models.go
package domain

import "time"

// Store represents a store location
type Store struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Supplier represents a product supplier
type Supplier struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	ContactName string    `json:"contact_name" db:"contact_name"`
	Phone       string    `json:"phone" db:"phone"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// InventoryLine is one (store, product, variant) stock fact. Lines are
// produced fresh per analysis from the inventory provider and never mutated
// by the engine.
type InventoryLine struct {
	StoreID       string `json:"store_id" db:"store_id"`
	ProductID     string `json:"product_id" db:"product_id"`
	VariantID     string `json:"variant_id" db:"variant_id"`
	BrandID       string `json:"brand_id" db:"brand_id"`
	CurrentStock  int    `json:"current_stock" db:"current_stock"`
	MinimumStock  int    `json:"minimum_stock" db:"minimum_stock"`
	MaximumStock  int    `json:"maximum_stock" db:"maximum_stock"`
	ReservedStock int    `json:"reserved_stock" db:"reserved_stock"`
}

// AvailableStock is current stock minus reservations.
func (l InventoryLine) AvailableStock() int {
	return l.CurrentStock - l.ReservedStock
}

// LowStock reports whether the line is at or below its minimum.
func (l InventoryLine) LowStock() bool {
	return l.CurrentStock <= l.MinimumStock
}

// Overstock reports whether the line is at or above its maximum.
func (l InventoryLine) Overstock() bool {
	return l.CurrentStock >= l.MaximumStock
}

// PromotionScope identifies what a promotion targets.
type PromotionScope string

const (
	PromotionScopeBrand    PromotionScope = "brand"
	PromotionScopeProduct  PromotionScope = "product"
	PromotionScopeCategory PromotionScope = "category"
)

// DiscountType identifies how a promotion discounts cost.
type DiscountType string

const (
	DiscountPercentage   DiscountType = "percentage"
	DiscountFixedAmount  DiscountType = "fixed_amount"
	DiscountBuyXGetY     DiscountType = "buy_x_get_y"
	DiscountFreeShipping DiscountType = "free_shipping"
)

// Promotion is a time-bounded discount offer from a supplier. The engine only
// reads validity and discount terms; usage counters are advanced by the
// fulfillment path, not here.
type Promotion struct {
	ID              string         `json:"id" db:"id"`
	SupplierID      string         `json:"supplier_id" db:"supplier_id"`
	Scope           PromotionScope `json:"scope" db:"scope"`
	TargetID        string         `json:"target_id" db:"target_id"`
	DiscountType    DiscountType   `json:"discount_type" db:"discount_type"`
	DiscountValue   float64        `json:"discount_value" db:"discount_value"`
	MinimumQuantity int            `json:"minimum_quantity" db:"minimum_quantity"`
	StartDate       time.Time      `json:"start_date" db:"start_date"`
	EndDate         time.Time      `json:"end_date" db:"end_date"`
	MaxUsage        int            `json:"max_usage" db:"max_usage"`
	CurrentUsage    int            `json:"current_usage" db:"current_usage"`
}

// ValidAt reports whether the promotion can be applied at t. MaxUsage of zero
// means unlimited.
func (p Promotion) ValidAt(t time.Time) bool {
	if t.Before(p.StartDate) || t.After(p.EndDate) {
		return false
	}
	if p.MaxUsage > 0 && p.CurrentUsage >= p.MaxUsage {
		return false
	}
	return true
}

// RiskLevel is the coarse absolute-stock classification used for bucketing.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// RestockRecommendation is one proposed restock line, immutable once built.
type RestockRecommendation struct {
	ProductID           string     `json:"product_id"`
	VariantID           string     `json:"variant_id"`
	SupplierID          string     `json:"supplier_id"`
	CurrentStock        int        `json:"current_stock"`
	MinimumStock        int        `json:"minimum_stock"`
	RecommendedQuantity int        `json:"recommended_quantity"`
	UnitCost            float64    `json:"unit_cost"`
	EstimatedCost       float64    `json:"estimated_cost"`
	RiskLevel           RiskLevel  `json:"risk_level"`
	UrgencyScore        int        `json:"urgency_score"`
	AppliedPromotion    *Promotion `json:"applied_promotion,omitempty"`
}

// StockSummary holds the aggregate counters for one inventory snapshot.
type StockSummary struct {
	TotalItems     int     `json:"total_items"`
	LowStockItems  int     `json:"low_stock_items"`
	OverstockItems int     `json:"overstock_items"`
	TotalStock     int     `json:"total_stock"`
	AverageStock   float64 `json:"average_stock"`
}

// CategorizedRecommendations partitions recommendations into priority
// buckets. LowPriority is retained for forward compatibility; the current
// risk rule never routes into it.
type CategorizedRecommendations struct {
	Urgent         []RestockRecommendation `json:"urgent"`
	HighPriority   []RestockRecommendation `json:"high_priority"`
	MediumPriority []RestockRecommendation `json:"medium_priority"`
	LowPriority    []RestockRecommendation `json:"low_priority"`
}

// RecommendationTotals rolls up quantity and promotion-adjusted cost.
type RecommendationTotals struct {
	TotalRecommendedItems int     `json:"total_recommended_items"`
	EstimatedCost         float64 `json:"estimated_cost"`
}

// AnalysisNarrative is the deterministic summary of an analysis run.
type AnalysisNarrative struct {
	SummaryText     string  `json:"summary_text"`
	ConfidenceScore float64 `json:"confidence_score"`
}

// AnalysisScope identifies what an analysis covers. SupplierID is optional
// and restricts promotion matching and recommendation attribution.
type AnalysisScope struct {
	StoreID    string `json:"store_id"`
	SupplierID string `json:"supplier_id,omitempty"`
}

// AnalysisResult is the aggregate engine output for one scope. It is
// computed per request and not persisted by the engine.
type AnalysisResult struct {
	Scope       AnalysisScope              `json:"scope"`
	Summary     StockSummary               `json:"summary"`
	Categorized CategorizedRecommendations `json:"categorized"`
	Totals      RecommendationTotals       `json:"totals"`
	Narrative   AnalysisNarrative          `json:"narrative"`
	GeneratedAt time.Time                  `json:"generated_at"`
}

// RestockOrderItem is one line of a draft or persisted restock order.
type RestockOrderItem struct {
	ProductID string  `json:"product_id" db:"product_id"`
	VariantID string  `json:"variant_id" db:"variant_id"`
	Quantity  int     `json:"quantity" db:"quantity"`
	UnitCost  float64 `json:"unit_cost" db:"unit_cost"`
	LineCost  float64 `json:"line_cost" db:"line_cost"`
}

// RestockOrderDraft is an unpersisted purchase-order shape built from a
// chosen recommendation subset.
type RestockOrderDraft struct {
	SupplierID string             `json:"supplier_id"`
	StoreID    string             `json:"store_id"`
	Items      []RestockOrderItem `json:"items"`
	TotalItems int                `json:"total_items"`
	TotalCost  float64            `json:"total_cost"`
	Status     string             `json:"status"`
	CreatedAt  time.Time          `json:"created_at"`
}

// RestockOrder is a persisted restock order with a status code from status.go.
type RestockOrder struct {
	ID         string             `json:"id" db:"id"`
	SupplierID string             `json:"supplier_id" db:"supplier_id"`
	StoreID    string             `json:"store_id" db:"store_id"`
	Items      []RestockOrderItem `json:"items" db:"-"`
	TotalItems int                `json:"total_items" db:"total_items"`
	TotalCost  float64            `json:"total_cost" db:"total_cost"`
	Status     int                `json:"status" db:"status"`
	CreatedAt  time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" db:"updated_at"`
}
