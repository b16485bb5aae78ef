package domain

import "strings"

// Sentiment is the closed set of per-headline classifications.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Labels emitted by binary sentiment models.
const (
	LabelPositive = "POSITIVE"
	LabelNegative = "NEGATIVE"
)

var glyphs = map[Sentiment]string{
	SentimentPositive: "😊",
	SentimentNegative: "😰",
	SentimentNeutral:  "😐",
}

// Glyph returns the display marker of the sentiment.
func (s Sentiment) Glyph() string {
	if g, ok := glyphs[s]; ok {
		return g
	}
	return glyphs[SentimentNeutral]
}

// Prediction is the raw output of a sentiment model for one text.
type Prediction struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// SentimentFromPrediction maps a model prediction to a Sentiment.
//
// POSITIVE and NEGATIVE labels map to their poles; every other label is
// neutral. When neutralThreshold is positive, a polar prediction with a lower
// confidence is demoted to neutral. With a zero threshold a binary model never
// produces neutral.
func SentimentFromPrediction(p Prediction, neutralThreshold float64) Sentiment {
	var s Sentiment
	switch strings.ToUpper(strings.TrimSpace(p.Label)) {
	case LabelPositive:
		s = SentimentPositive
	case LabelNegative:
		s = SentimentNegative
	default:
		return SentimentNeutral
	}

	if neutralThreshold > 0 && p.Confidence < neutralThreshold {
		return SentimentNeutral
	}
	return s
}
