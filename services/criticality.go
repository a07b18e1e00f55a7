package services

// Default dimension weights for the criticality questionnaire.
const (
	DefaultWeightOperational  = 40
	DefaultWeightFinancial    = 30
	DefaultWeightReputational = 20
	DefaultWeightContinuity   = 10
)

// Criticality tier thresholds on the weighted score.
const (
	criticalThreshold  = 250
	importantThreshold = 150
)

// Criticality tiers, shown to the user in Spanish.
const (
	TierCritical    = "Crítico"
	TierImportant   = "Importante"
	TierNonCritical = "No crítico"
)

// CriticalityWeights holds the per-dimension weights used to score a system.
type CriticalityWeights struct {
	Operational  float64 `json:"operational"`
	Financial    float64 `json:"financial"`
	Reputational float64 `json:"reputational"`
	Continuity   float64 `json:"continuity"`
}

// DefaultCriticalityWeights returns the stock weight set.
func DefaultCriticalityWeights() CriticalityWeights {
	return CriticalityWeights{
		Operational:  DefaultWeightOperational,
		Financial:    DefaultWeightFinancial,
		Reputational: DefaultWeightReputational,
		Continuity:   DefaultWeightContinuity,
	}
}

// ImpactLevels holds the 1-3 severity answers for one system.
type ImpactLevels struct {
	Operational  int `json:"operational"`
	Financial    int `json:"financial"`
	Reputational int `json:"reputational"`
	Continuity   int `json:"continuity"`
}

// clampImpact keeps an answer inside the 1-3 scale.
func clampImpact(v int) int {
	if v < 1 {
		return 1
	}
	if v > 3 {
		return 3
	}
	return v
}

// CriticalityScore computes the weighted sum of the impact answers. Weights
// are applied as given, without normalization, so custom weight sets shift
// the tier cutoffs deliberately.
func CriticalityScore(impacts ImpactLevels, weights CriticalityWeights) float64 {
	return float64(clampImpact(impacts.Operational))*weights.Operational +
		float64(clampImpact(impacts.Financial))*weights.Financial +
		float64(clampImpact(impacts.Reputational))*weights.Reputational +
		float64(clampImpact(impacts.Continuity))*weights.Continuity
}

// CriticalityTier maps a score to its tier label.
func CriticalityTier(score float64) string {
	switch {
	case score >= criticalThreshold:
		return TierCritical
	case score >= importantThreshold:
		return TierImportant
	default:
		return TierNonCritical
	}
}
