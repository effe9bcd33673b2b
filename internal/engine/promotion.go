package engine

import (
	"time"

	"github.com/koncoweb/petnexus-sub000/internal/domain"
)

// MatchTarget identifies the product a promotion is matched against.
type MatchTarget struct {
	ProductID  string
	VariantID  string
	BrandID    string
	CategoryID string
}

// MatchPromotion returns the applicable promotion for the target at the
// given time, or nil when nothing matches. Absence of a match is a valid
// outcome, never an error.
//
// Selection is first-match by catalog insertion order within a scope
// precedence of product > brand > category. This keeps the observed
// first-match behavior of the legacy analyzer while making scope precedence
// deterministic; no best-discount comparison is performed.
func MatchPromotion(target MatchTarget, supplierID string, promotions []domain.Promotion, now time.Time) *domain.Promotion {
	for _, scope := range []domain.PromotionScope{
		domain.PromotionScopeProduct,
		domain.PromotionScopeBrand,
		domain.PromotionScopeCategory,
	} {
		for i := range promotions {
			p := &promotions[i]
			if p.Scope != scope {
				continue
			}
			if supplierID != "" && p.SupplierID != supplierID {
				continue
			}
			if !p.ValidAt(now) {
				continue
			}
			if promotionTargets(p, target) {
				return p
			}
		}
	}

	return nil
}

func promotionTargets(p *domain.Promotion, target MatchTarget) bool {
	switch p.Scope {
	case domain.PromotionScopeProduct:
		return p.TargetID == target.ProductID
	case domain.PromotionScopeBrand:
		return p.TargetID == target.BrandID
	case domain.PromotionScopeCategory:
		return p.TargetID == target.CategoryID
	default:
		return false
	}
}
