package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koncoweb/petnexus-sub000/internal/domain"
)

var matchTime = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func promo(id string, scope domain.PromotionScope, targetID string) domain.Promotion {
	return domain.Promotion{
		ID:            id,
		SupplierID:    "sup-1",
		Scope:         scope,
		TargetID:      targetID,
		DiscountType:  domain.DiscountPercentage,
		DiscountValue: 10,
		StartDate:     matchTime.AddDate(0, 0, -7),
		EndDate:       matchTime.AddDate(0, 0, 7),
	}
}

func TestMatchPromotionNoCatalog(t *testing.T) {
	got := MatchPromotion(MatchTarget{ProductID: "p1"}, "", nil, matchTime)
	assert.Nil(t, got)
}

func TestMatchPromotionScopePrecedence(t *testing.T) {
	catalog := []domain.Promotion{
		promo("cat", domain.PromotionScopeCategory, "food"),
		promo("brand", domain.PromotionScopeBrand, "b1"),
		promo("product", domain.PromotionScopeProduct, "p1"),
	}

	target := MatchTarget{ProductID: "p1", BrandID: "b1", CategoryID: "food"}

	got := MatchPromotion(target, "", catalog, matchTime)
	require.NotNil(t, got)
	assert.Equal(t, "product", got.ID)

	// Without a product match the brand promotion wins over category.
	got = MatchPromotion(MatchTarget{ProductID: "other", BrandID: "b1", CategoryID: "food"}, "", catalog, matchTime)
	require.NotNil(t, got)
	assert.Equal(t, "brand", got.ID)
}

func TestMatchPromotionFirstMatchByInsertionOrder(t *testing.T) {
	first := promo("first", domain.PromotionScopeProduct, "p1")
	second := promo("second", domain.PromotionScopeProduct, "p1")
	second.DiscountValue = 50 // larger discount must not win over insertion order

	got := MatchPromotion(MatchTarget{ProductID: "p1"}, "", []domain.Promotion{first, second}, matchTime)
	require.NotNil(t, got)
	assert.Equal(t, "first", got.ID)
}

func TestMatchPromotionSupplierRestriction(t *testing.T) {
	p := promo("p", domain.PromotionScopeProduct, "p1")

	got := MatchPromotion(MatchTarget{ProductID: "p1"}, "sup-2", []domain.Promotion{p}, matchTime)
	assert.Nil(t, got)

	got = MatchPromotion(MatchTarget{ProductID: "p1"}, "sup-1", []domain.Promotion{p}, matchTime)
	assert.NotNil(t, got)
}

func TestMatchPromotionTimeWindow(t *testing.T) {
	expired := promo("expired", domain.PromotionScopeProduct, "p1")
	expired.EndDate = matchTime.AddDate(0, 0, -1)

	upcoming := promo("upcoming", domain.PromotionScopeProduct, "p1")
	upcoming.StartDate = matchTime.AddDate(0, 0, 1)
	upcoming.EndDate = matchTime.AddDate(0, 0, 14)

	got := MatchPromotion(MatchTarget{ProductID: "p1"}, "", []domain.Promotion{expired, upcoming}, matchTime)
	assert.Nil(t, got)
}

func TestMatchPromotionUsageCap(t *testing.T) {
	exhausted := promo("exhausted", domain.PromotionScopeProduct, "p1")
	exhausted.MaxUsage = 5
	exhausted.CurrentUsage = 5

	unlimited := promo("unlimited", domain.PromotionScopeProduct, "p1")
	unlimited.MaxUsage = 0
	unlimited.CurrentUsage = 9999

	got := MatchPromotion(MatchTarget{ProductID: "p1"}, "", []domain.Promotion{exhausted, unlimited}, matchTime)
	require.NotNil(t, got)
	assert.Equal(t, "unlimited", got.ID)
}
