package engine

import "github.com/koncoweb/petnexus-sub000/internal/domain"

// ScoreUrgency maps (current, minimum) stock to an urgency score and risk
// tier relative to the minimum. The step function is monotonic in current
// stock; ties resolve toward higher urgency.
func ScoreUrgency(currentStock, minimumStock int) (int, domain.RiskLevel) {
	current := float64(currentStock)
	minimum := float64(minimumStock)

	switch {
	case currentStock == 0:
		return 100, domain.RiskHigh
	case current <= minimum*0.2:
		return 90, domain.RiskHigh
	case current <= minimum*0.5:
		return 70, domain.RiskMedium
	case current <= minimum:
		return 50, domain.RiskMedium
	default:
		return 30, domain.RiskLow
	}
}

// RiskForStock classifies absolute stock count for the recommendation
// record. This scale is deliberately distinct from the minimum-relative
// urgency score: urgency drives ordering, absolute risk drives bucketing.
func RiskForStock(currentStock int) domain.RiskLevel {
	switch {
	case currentStock <= 2:
		return domain.RiskHigh
	case currentStock <= 5:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}
