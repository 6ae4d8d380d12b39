package ranking

// Likelihood labels
const (
	LikelihoodVeryHigh = "Sehr hoch"
	LikelihoodHigh     = "Hoch"
	LikelihoodMedium   = "Mittel"
	LikelihoodPossible = "Möglich"
)

// Likelihood maps a relevance score to its qualitative label
func Likelihood(score float64) string {
	switch {
	case score > 0.8:
		return LikelihoodVeryHigh
	case score > 0.6:
		return LikelihoodHigh
	case score > 0.4:
		return LikelihoodMedium
	default:
		return LikelihoodPossible
	}
}
