package engine

import "github.com/koncoweb/petnexus-sub000/internal/domain"

// Summarize aggregates an inventory snapshot into summary counters. Empty
// input yields zeroed metrics; there are no error conditions.
func Summarize(lines []domain.InventoryLine) domain.StockSummary {
	summary := domain.StockSummary{TotalItems: len(lines)}

	for _, line := range lines {
		summary.TotalStock += line.CurrentStock
		if line.LowStock() {
			summary.LowStockItems++
		}
		if line.Overstock() {
			summary.OverstockItems++
		}
	}

	if summary.TotalItems > 0 {
		summary.AverageStock = float64(summary.TotalStock) / float64(summary.TotalItems)
	}

	return summary
}
