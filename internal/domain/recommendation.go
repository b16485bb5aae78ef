package domain

// Recommendation is the overall verdict for one query.
type Recommendation string

const (
	RecommendationBuy     Recommendation = "buy"
	RecommendationAvoid   Recommendation = "avoid"
	RecommendationNeutral Recommendation = "neutral"
)

// Recommend derives the verdict from the positive and negative counts only.
// Ties, including zero headlines, are neutral.
func Recommend(positive, negative int) Recommendation {
	switch {
	case positive > negative:
		return RecommendationBuy
	case positive < negative:
		return RecommendationAvoid
	default:
		return RecommendationNeutral
	}
}
