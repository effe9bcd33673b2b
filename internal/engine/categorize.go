package engine

import (
	"sort"

	"github.com/koncoweb/petnexus-sub000/internal/domain"
)

// Categorize partitions recommendations into priority buckets by risk level
// (high -> urgent, medium -> high_priority, low -> medium_priority) and
// sorts each bucket by descending urgency score, stable on ties so output is
// reproducible for identical input. The low_priority bucket is kept in the
// result shape but is unreachable under this rule.
func Categorize(recs []domain.RestockRecommendation) domain.CategorizedRecommendations {
	categorized := domain.CategorizedRecommendations{
		Urgent:         []domain.RestockRecommendation{},
		HighPriority:   []domain.RestockRecommendation{},
		MediumPriority: []domain.RestockRecommendation{},
		LowPriority:    []domain.RestockRecommendation{},
	}

	for _, rec := range recs {
		switch rec.RiskLevel {
		case domain.RiskHigh:
			categorized.Urgent = append(categorized.Urgent, rec)
		case domain.RiskMedium:
			categorized.HighPriority = append(categorized.HighPriority, rec)
		default:
			categorized.MediumPriority = append(categorized.MediumPriority, rec)
		}
	}

	sortByUrgency(categorized.Urgent)
	sortByUrgency(categorized.HighPriority)
	sortByUrgency(categorized.MediumPriority)
	sortByUrgency(categorized.LowPriority)

	return categorized
}

func sortByUrgency(bucket []domain.RestockRecommendation) {
	sort.SliceStable(bucket, func(i, j int) bool {
		return bucket[i].UrgencyScore > bucket[j].UrgencyScore
	})
}

// Aggregate sums recommended quantity and promotion-adjusted cost over a
// recommendation set.
func Aggregate(recs []domain.RestockRecommendation) domain.RecommendationTotals {
	var totals domain.RecommendationTotals
	for _, rec := range recs {
		totals.TotalRecommendedItems += rec.RecommendedQuantity
		totals.EstimatedCost += rec.EstimatedCost
	}

	return totals
}
