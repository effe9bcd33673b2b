package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koncoweb/petnexus-sub000/internal/domain"
)

func TestAnalyzeEmptySnapshot(t *testing.T) {
	e := testEngine()

	result, err := e.Analyze(context.Background(), domain.AnalysisScope{StoreID: "store-1"}, nil, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, domain.StockSummary{}, result.Summary)
	assert.Empty(t, result.Categorized.Urgent)
	assert.Empty(t, result.Categorized.HighPriority)
	assert.Empty(t, result.Categorized.MediumPriority)
	assert.Empty(t, result.Categorized.LowPriority)
	assert.Zero(t, result.Totals.EstimatedCost)
	assert.Equal(t, "store-1", result.Scope.StoreID)
}

func TestAnalyzeFullPipeline(t *testing.T) {
	e := testEngine()
	inventory := []domain.InventoryLine{
		{StoreID: "store-1", ProductID: "p1", VariantID: "v1", CurrentStock: 0, MinimumStock: 10, MaximumStock: 100},
		{StoreID: "store-1", ProductID: "p2", VariantID: "v1", CurrentStock: 15, MinimumStock: 10, MaximumStock: 50},
		{StoreID: "store-1", ProductID: "p3", VariantID: "v1", CurrentStock: 5, MinimumStock: 10, MaximumStock: 60},
	}
	costs := CostTable{
		{ProductID: "p1", VariantID: "v1"}: 5000,
		{ProductID: "p3", VariantID: "v1"}: 10000,
	}
	catalog := []domain.Promotion{promo("deal", domain.PromotionScopeProduct, "p3")}

	result, err := e.Analyze(context.Background(), domain.AnalysisScope{StoreID: "store-1"}, inventory, catalog, costs)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Summary.TotalItems)
	assert.Equal(t, 2, result.Summary.LowStockItems)

	// p2 is above minimum and produces no recommendation
	total := len(result.Categorized.Urgent) + len(result.Categorized.HighPriority) +
		len(result.Categorized.MediumPriority) + len(result.Categorized.LowPriority)
	assert.Equal(t, 2, total)

	// p1 is out of stock -> urgent; p3 at half minimum -> high priority
	require.Len(t, result.Categorized.Urgent, 1)
	assert.Equal(t, "p1", result.Categorized.Urgent[0].ProductID)
	require.Len(t, result.Categorized.HighPriority, 1)
	assert.Equal(t, "p3", result.Categorized.HighPriority[0].ProductID)

	// totals are exact sums over the built recommendations
	assert.Equal(t, 15, result.Totals.TotalRecommendedItems)
	assert.InDelta(t, 10*5000+45000, result.Totals.EstimatedCost, 1e-9)

	assert.Contains(t, result.Narrative.SummaryText, "2 below minimum stock")
	assert.Equal(t, matchTime, result.GeneratedAt)
}

func TestAnalyzeRejectsNegativeStock(t *testing.T) {
	e := testEngine()
	inventory := []domain.InventoryLine{
		{ProductID: "p1", CurrentStock: -1, MinimumStock: 10},
	}

	_, err := e.Analyze(context.Background(), domain.AnalysisScope{StoreID: "s"}, inventory, nil, nil)

	var inputErr *domain.InvalidInputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "current_stock", inputErr.Field)
}

func TestAnalyzeRejectsOverReservation(t *testing.T) {
	e := testEngine()
	inventory := []domain.InventoryLine{
		{ProductID: "p1", CurrentStock: 3, MinimumStock: 10, ReservedStock: 4},
	}

	_, err := e.Analyze(context.Background(), domain.AnalysisScope{StoreID: "s"}, inventory, nil, nil)

	var inputErr *domain.InvalidInputError
	assert.ErrorAs(t, err, &inputErr)
}

func TestAnalyzeRejectsMalformedPromotionWindow(t *testing.T) {
	e := testEngine()
	bad := promo("bad", domain.PromotionScopeProduct, "p1")
	bad.StartDate, bad.EndDate = bad.EndDate, bad.StartDate

	_, err := e.Analyze(context.Background(), domain.AnalysisScope{StoreID: "s"}, nil, []domain.Promotion{bad}, nil)

	var inputErr *domain.InvalidInputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "promotion", inputErr.Field)
}

func TestAnalyzeRejectsNegativeDiscountValue(t *testing.T) {
	e := testEngine()
	bad := promo("bad", domain.PromotionScopeProduct, "p1")
	bad.DiscountType = domain.DiscountPercentage
	bad.DiscountValue = -10

	inventory := []domain.InventoryLine{
		{ProductID: "p1", CurrentStock: 5, MinimumStock: 10},
	}

	_, err := e.Analyze(context.Background(), domain.AnalysisScope{StoreID: "s"}, inventory, []domain.Promotion{bad}, nil)

	var inputErr *domain.InvalidInputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "promotion", inputErr.Field)
}

func TestAnalyzeCancelled(t *testing.T) {
	e := testEngine()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	inventory := []domain.InventoryLine{
		{ProductID: "p1", CurrentStock: 1, MinimumStock: 10},
	}

	_, err := e.Analyze(ctx, domain.AnalysisScope{StoreID: "s"}, inventory, nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzeIndependentInvocations(t *testing.T) {
	// two concurrent invocations over separate inputs do not interfere
	e := testEngine()
	done := make(chan *domain.AnalysisResult, 2)

	for _, store := range []string{"store-1", "store-2"} {
		go func(storeID string) {
			inventory := []domain.InventoryLine{
				{StoreID: storeID, ProductID: "p1", CurrentStock: 0, MinimumStock: 10},
			}
			result, err := e.Analyze(context.Background(), domain.AnalysisScope{StoreID: storeID}, inventory, nil, nil)
			assert.NoError(t, err)
			done <- result
		}(store)
	}

	first := <-done
	second := <-done
	assert.NotEqual(t, first.Scope.StoreID, second.Scope.StoreID)
	assert.Equal(t, first.Totals, second.Totals)
}
