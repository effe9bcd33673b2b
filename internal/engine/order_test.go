package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koncoweb/petnexus-sub000/internal/domain"
)

func TestMaterializeOrder(t *testing.T) {
	e := testEngine()
	recC := domain.RestockRecommendation{
		ProductID:           "p1",
		VariantID:           "v1",
		CurrentStock:        5,
		MinimumStock:        10,
		RecommendedQuantity: 5,
		UnitCost:            10000,
		EstimatedCost:       45000,
	}

	draft, err := e.MaterializeOrder("supplier-1", "store-1", []domain.RestockRecommendation{recC})
	require.NoError(t, err)

	assert.Equal(t, "supplier-1", draft.SupplierID)
	assert.Equal(t, "store-1", draft.StoreID)
	assert.Equal(t, 5, draft.TotalItems)
	assert.InDelta(t, 45000, draft.TotalCost, 1e-9)
	assert.Equal(t, "pending", draft.Status)
	assert.Equal(t, matchTime, draft.CreatedAt)

	require.Len(t, draft.Items, 1)
	assert.Equal(t, 5, draft.Items[0].Quantity)
	assert.InDelta(t, 10000, draft.Items[0].UnitCost, 1e-9)
	assert.InDelta(t, 45000, draft.Items[0].LineCost, 1e-9)
}

func TestMaterializeOrderEmptySelection(t *testing.T) {
	e := testEngine()

	draft, err := e.MaterializeOrder("supplier-1", "store-1", nil)
	assert.Nil(t, draft)

	var emptyErr *domain.EmptySelectionError
	require.ErrorAs(t, err, &emptyErr)
	assert.Equal(t, "supplier-1", emptyErr.SupplierID)
}

func TestMaterializeOrderSkipsZeroQuantityLines(t *testing.T) {
	e := testEngine()
	recs := []domain.RestockRecommendation{
		{ProductID: "p1", RecommendedQuantity: 0, EstimatedCost: 100},
		{ProductID: "p2", RecommendedQuantity: 3, UnitCost: 10, EstimatedCost: 30},
	}

	draft, err := e.MaterializeOrder("supplier-1", "store-1", recs)
	require.NoError(t, err)

	require.Len(t, draft.Items, 1)
	assert.Equal(t, "p2", draft.Items[0].ProductID)
	assert.Equal(t, 3, draft.TotalItems)
	assert.InDelta(t, 30, draft.TotalCost, 1e-9)
}

func TestMaterializeOrderAllZeroQuantities(t *testing.T) {
	e := testEngine()
	recs := []domain.RestockRecommendation{
		{ProductID: "p1", RecommendedQuantity: 0},
	}

	_, err := e.MaterializeOrder("supplier-1", "store-1", recs)

	var emptyErr *domain.EmptySelectionError
	assert.ErrorAs(t, err, &emptyErr)
}
