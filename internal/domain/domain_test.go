package domain

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommend(t *testing.T) {
	t.Parallel()

	cases := []struct {
		pos, neg int
		want     Recommendation
	}{
		{0, 0, RecommendationNeutral},
		{1, 0, RecommendationBuy},
		{0, 1, RecommendationAvoid},
		{3, 3, RecommendationNeutral},
		{6, 4, RecommendationBuy},
		{2, 7, RecommendationAvoid},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Recommend(tc.pos, tc.neg), "pos=%d neg=%d", tc.pos, tc.neg)
	}
}

func TestSentimentFromPrediction(t *testing.T) {
	t.Parallel()

	assert.Equal(t, SentimentPositive, SentimentFromPrediction(Prediction{Label: "POSITIVE", Confidence: 0.51}, 0))
	assert.Equal(t, SentimentNegative, SentimentFromPrediction(Prediction{Label: "negative", Confidence: 0.1}, 0))
	assert.Equal(t, SentimentNeutral, SentimentFromPrediction(Prediction{Label: "LABEL_2", Confidence: 0.99}, 0))

	// Below the threshold polar labels are demoted.
	assert.Equal(t, SentimentNeutral, SentimentFromPrediction(Prediction{Label: "POSITIVE", Confidence: 0.6}, 0.7))
	assert.Equal(t, SentimentNegative, SentimentFromPrediction(Prediction{Label: "NEGATIVE", Confidence: 0.7}, 0.7))
}

func TestGlyphsAreDistinct(t *testing.T) {
	t.Parallel()

	seen := map[string]Sentiment{}
	for _, s := range []Sentiment{SentimentPositive, SentimentNegative, SentimentNeutral} {
		g := s.Glyph()
		require.NotEmpty(t, g)
		_, dup := seen[g]
		require.False(t, dup, "glyph %s reused", g)
		seen[g] = s
	}

	a := Annotate("A Corp profits surge", SentimentPositive)
	assert.Equal(t, "😊", a.Glyph)
}

func TestErrorsUnwrap(t *testing.T) {
	t.Parallel()

	fetchErr := error(&FetchError{URL: "http://x", Err: io.ErrUnexpectedEOF})
	assert.ErrorIs(t, fetchErr, io.ErrUnexpectedEOF)

	var fe *FetchError
	require.True(t, errors.As(fetchErr, &fe))
	assert.Contains(t, (&FetchError{URL: "http://x", Status: 503}).Error(), "503")

	classErr := error(&ClassificationError{Headline: "h", Err: io.EOF})
	assert.ErrorIs(t, classErr, io.EOF)
	assert.Contains(t, classErr.Error(), `"h"`)
}
