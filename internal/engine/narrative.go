package engine

import (
	"fmt"

	"github.com/koncoweb/petnexus-sub000/internal/domain"
)

// narrate composes the deterministic analysis summary. This is a template
// stand-in for a model-generated narrative: it always succeeds, makes no
// network calls, and reports the configured confidence unless a custom
// ConfidenceSource is set. A real scoring model can replace it as a drop-in
// as long as that contract holds.
func (e *Engine) narrate(summary domain.StockSummary, totals domain.RecommendationTotals) domain.AnalysisNarrative {
	confidence := e.cfg.DefaultConfidence
	if e.cfg.Confidence != nil {
		confidence = e.cfg.Confidence(summary, totals)
	}

	var text string
	switch {
	case summary.TotalItems == 0:
		text = "No inventory lines were available for this scope."
	case summary.LowStockItems == 0:
		text = fmt.Sprintf(
			"Analyzed %d inventory lines: all items are at or above minimum stock (%d overstocked). No restocking is required.",
			summary.TotalItems, summary.OverstockItems,
		)
	default:
		text = fmt.Sprintf(
			"Analyzed %d inventory lines: %d below minimum stock and %d overstocked. Restocking %d units across %d items at an estimated cost of %.2f.",
			summary.TotalItems, summary.LowStockItems, summary.OverstockItems,
			totals.TotalRecommendedItems, summary.LowStockItems, totals.EstimatedCost,
		)
	}

	return domain.AnalysisNarrative{
		SummaryText:     text,
		ConfidenceScore: confidence,
	}
}
