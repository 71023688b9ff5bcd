package plans

import "strings"

// Tier constants (single source of truth)
const (
	TierNone      = "none"
	TierBasico    = "basico"
	TierIntensivo = "intensivo"
	TierCompleto  = "completo"
)

// PlanTier returns the effective tier for a plan, falling back to price
// inference for legacy rows created before the tier column existed.
func PlanTier(p *Plan) string {
	if p == nil {
		return TierNone
	}

	tier := strings.ToLower(strings.TrimSpace(p.Tier))
	switch tier {
	case TierBasico, TierIntensivo, TierCompleto:
		return tier
	}

	return inferTierFromPrice(p.PriceBRL)
}

func inferTierFromPrice(priceBRL float64) string {
	switch {
	case priceBRL >= 150:
		return TierCompleto
	case priceBRL >= 80:
		return TierIntensivo
	default:
		return TierBasico
	}
}
