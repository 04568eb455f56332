package risk

import "riskwatch/internal/model"

// Tier boundaries, closed on the lower side
const (
	mediumFloor   = 0.3
	highFloor     = 0.6
	criticalFloor = 0.8
)

// TierFor maps a probability to its risk tier
func TierFor(p float64) model.RiskTier {
	switch {
	case p >= criticalFloor:
		return model.TierCritical
	case p >= highFloor:
		return model.TierHigh
	case p >= mediumFloor:
		return model.TierMedium
	default:
		return model.TierLow
	}
}
