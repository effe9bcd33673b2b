// Package engine turns raw inventory, promotion, and cost facts into
// prioritized restock recommendations and draft purchase orders. Everything
// in this package is a pure computation over caller-supplied data: no I/O,
// no logging, no shared mutable state. Callers may run one Analyze per
// (store, supplier) scope concurrently without locking.
package engine

import (
	"context"
	"time"

	"github.com/koncoweb/petnexus-sub000/internal/domain"
)

const (
	defaultUnitCost   = 25000
	defaultMinRestock = 5
	defaultConfidence = 0.85
)

// CostLookup resolves the per-unit purchase cost for a product variant.
// A missing entry is a data-absence condition, not an error; the builder
// substitutes the configured default.
type CostLookup interface {
	UnitCost(productID, variantID string) (float64, bool)
}

// CostKey indexes a CostTable.
type CostKey struct {
	ProductID string
	VariantID string
}

// CostTable is an in-memory CostLookup. A variant without its own entry
// falls back to the product-level entry (empty VariantID).
type CostTable map[CostKey]float64

func (t CostTable) UnitCost(productID, variantID string) (float64, bool) {
	if c, ok := t[CostKey{ProductID: productID, VariantID: variantID}]; ok {
		return c, true
	}
	c, ok := t[CostKey{ProductID: productID}]
	return c, ok
}

// ConfidenceSource supplies the narrative confidence for an analysis run.
type ConfidenceSource func(summary domain.StockSummary, totals domain.RecommendationTotals) float64

// Config carries the engine defaults. Zero values fall back to the package
// defaults in New.
type Config struct {
	// DefaultUnitCost is substituted when the cost source has no entry.
	DefaultUnitCost float64
	// MinRestockQuantity floors every recommended quantity.
	MinRestockQuantity int
	// DefaultConfidence is reported by the narrative unless Confidence is set.
	DefaultConfidence float64
	// Confidence overrides the fixed confidence value when non-nil.
	Confidence ConfidenceSource
}

// Engine computes restock analyses. Construct with New; the zero value is
// not usable.
type Engine struct {
	cfg Config
	now func() time.Time
}

// New builds an Engine, filling unset config fields with package defaults.
func New(cfg Config) *Engine {
	if cfg.DefaultUnitCost <= 0 {
		cfg.DefaultUnitCost = defaultUnitCost
	}
	if cfg.MinRestockQuantity <= 0 {
		cfg.MinRestockQuantity = defaultMinRestock
	}
	if cfg.DefaultConfidence <= 0 {
		cfg.DefaultConfidence = defaultConfidence
	}
	return &Engine{cfg: cfg, now: time.Now}
}

// Analyze runs the full pipeline for one scope: validate, summarize, build
// recommendations for low-stock lines, categorize, and narrate. Inputs are
// read-only; the result is independent of any other invocation.
func (e *Engine) Analyze(
	ctx context.Context,
	scope domain.AnalysisScope,
	inventory []domain.InventoryLine,
	promotions []domain.Promotion,
	costs CostLookup,
) (*domain.AnalysisResult, error) {
	if err := validateInventory(inventory); err != nil {
		return nil, err
	}
	if err := validatePromotions(promotions); err != nil {
		return nil, err
	}

	now := e.now()
	summary := Summarize(inventory)

	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}

	recs := make([]domain.RestockRecommendation, 0, summary.LowStockItems)
	for _, line := range inventory {
		if !line.LowStock() {
			continue
		}
		recs = append(recs, e.buildRecommendation(line, scope.SupplierID, promotions, costs, now))
	}

	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}

	categorized := Categorize(recs)
	totals := Aggregate(recs)
	narrative := e.narrate(summary, totals)

	return &domain.AnalysisResult{
		Scope:       scope,
		Summary:     summary,
		Categorized: categorized,
		Totals:      totals,
		Narrative:   narrative,
		GeneratedAt: now,
	}, nil
}

func checkCancelled(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

func validateInventory(lines []domain.InventoryLine) error {
	for _, l := range lines {
		switch {
		case l.CurrentStock < 0:
			return &domain.InvalidInputError{Field: "current_stock", Reason: "negative stock for product " + l.ProductID}
		case l.MinimumStock < 0:
			return &domain.InvalidInputError{Field: "minimum_stock", Reason: "negative minimum for product " + l.ProductID}
		case l.MaximumStock < 0:
			return &domain.InvalidInputError{Field: "maximum_stock", Reason: "negative maximum for product " + l.ProductID}
		case l.ReservedStock < 0:
			return &domain.InvalidInputError{Field: "reserved_stock", Reason: "negative reservation for product " + l.ProductID}
		case l.AvailableStock() < 0:
			return &domain.InvalidInputError{Field: "reserved_stock", Reason: "reserved exceeds current stock for product " + l.ProductID}
		}
	}
	return nil
}

func validatePromotions(promos []domain.Promotion) error {
	for _, p := range promos {
		if p.StartDate.IsZero() || p.EndDate.IsZero() {
			return &domain.InvalidInputError{Field: "promotion", Reason: "promotion " + p.ID + " has an unset date bound"}
		}
		if p.EndDate.Before(p.StartDate) {
			return &domain.InvalidInputError{Field: "promotion", Reason: "promotion " + p.ID + " ends before it starts"}
		}
		if p.DiscountValue < 0 {
			return &domain.InvalidInputError{Field: "promotion", Reason: "promotion " + p.ID + " has a negative discount value"}
		}
	}
	return nil
}
