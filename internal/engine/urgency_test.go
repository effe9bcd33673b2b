package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/koncoweb/petnexus-sub000/internal/domain"
)

func TestScoreUrgencySteps(t *testing.T) {
	tests := []struct {
		name    string
		current int
		minimum int
		score   int
		risk    domain.RiskLevel
	}{
		{"out of stock", 0, 10, 100, domain.RiskHigh},
		{"at twenty percent", 2, 10, 90, domain.RiskHigh},
		{"at half", 5, 10, 70, domain.RiskMedium},
		{"at minimum", 10, 10, 50, domain.RiskMedium},
		{"above minimum", 11, 10, 30, domain.RiskLow},
		{"zero stock zero minimum", 0, 0, 100, domain.RiskHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, risk := ScoreUrgency(tt.current, tt.minimum)
			assert.Equal(t, tt.score, score)
			assert.Equal(t, tt.risk, risk)
		})
	}
}

func TestScoreUrgencyMonotonic(t *testing.T) {
	// For a fixed minimum, the score must never increase as stock grows.
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		minimum := rng.Intn(500)
		prev := 101
		for current := 0; current <= minimum*2+5; current++ {
			score, _ := ScoreUrgency(current, minimum)
			assert.LessOrEqual(t, score, prev,
				"score increased at current=%d minimum=%d", current, minimum)
			prev = score
		}
	}
}

func TestRiskForStock(t *testing.T) {
	assert.Equal(t, domain.RiskHigh, RiskForStock(0))
	assert.Equal(t, domain.RiskHigh, RiskForStock(2))
	assert.Equal(t, domain.RiskMedium, RiskForStock(3))
	assert.Equal(t, domain.RiskMedium, RiskForStock(5))
	assert.Equal(t, domain.RiskLow, RiskForStock(6))
}
