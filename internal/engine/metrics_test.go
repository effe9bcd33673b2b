package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/koncoweb/petnexus-sub000/internal/domain"
)

func TestSummarizeEmptySnapshot(t *testing.T) {
	summary := Summarize(nil)

	assert.Equal(t, domain.StockSummary{}, summary)
}

func TestSummarizeCounts(t *testing.T) {
	lines := []domain.InventoryLine{
		{ProductID: "p1", CurrentStock: 0, MinimumStock: 10, MaximumStock: 100},
		{ProductID: "p2", CurrentStock: 15, MinimumStock: 10, MaximumStock: 50},
		{ProductID: "p3", CurrentStock: 60, MinimumStock: 10, MaximumStock: 50},
		{ProductID: "p4", CurrentStock: 5, MinimumStock: 5, MaximumStock: 40},
	}

	summary := Summarize(lines)

	assert.Equal(t, 4, summary.TotalItems)
	assert.Equal(t, 2, summary.LowStockItems)
	assert.Equal(t, 1, summary.OverstockItems)
	assert.Equal(t, 80, summary.TotalStock)
	assert.InDelta(t, 20.0, summary.AverageStock, 1e-9)
}

func TestSummarizeBoundaryIsBothLowAndOver(t *testing.T) {
	// current == minimum counts as low stock, current == maximum as overstock
	lines := []domain.InventoryLine{
		{ProductID: "p1", CurrentStock: 10, MinimumStock: 10, MaximumStock: 10},
	}

	summary := Summarize(lines)

	assert.Equal(t, 1, summary.LowStockItems)
	assert.Equal(t, 1, summary.OverstockItems)
}
