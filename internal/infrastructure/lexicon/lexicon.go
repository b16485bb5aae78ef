package lexicon

import (
	"context"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"StockSentiment/internal/domain"
	"StockSentiment/internal/ports"
)

type term struct {
	word   string
	weight float64
}

// bullish / bearish keyword dictionaries (lowercase). Latin-script terms match
// whole words only, so inflections are listed explicitly.
var bullishTerms = []term{
	{"surge", 0.7}, {"surges", 0.7}, {"soar", 0.7}, {"soars", 0.7},
	{"rally", 0.6}, {"rallies", 0.6}, {"jump", 0.5}, {"jumps", 0.5},
	{"gain", 0.4}, {"gains", 0.4}, {"record high", 0.7}, {"beat", 0.5}, {"beats", 0.5},
	{"upgrade", 0.6}, {"upgraded", 0.6}, {"outperform", 0.6}, {"outperforms", 0.6},
	{"profit", 0.3}, {"profits", 0.3}, {"growth", 0.4}, {"strong", 0.4}, {"buy", 0.5},
	{"dividend", 0.4},
	{"급등", 0.7}, {"상승", 0.5}, {"강세", 0.5}, {"호재", 0.6}, {"신고가", 0.7},
	{"흑자", 0.5}, {"최대 실적", 0.6}, {"수주", 0.4}, {"상향", 0.5}, {"매수", 0.4},
}

var bearishTerms = []term{
	{"plunge", 0.7}, {"plunges", 0.7}, {"crash", 0.8}, {"crashes", 0.8},
	{"slump", 0.6}, {"slumps", 0.6}, {"fall", 0.4}, {"falls", 0.4}, {"drop", 0.4}, {"drops", 0.4},
	{"loss", 0.4}, {"losses", 0.4}, {"miss", 0.5}, {"misses", 0.5},
	{"downgrade", 0.6}, {"downgraded", 0.6}, {"underperform", 0.6},
	{"weak", 0.4}, {"sell", 0.5}, {"fraud", 0.8}, {"lawsuit", 0.5}, {"warning", 0.5},
	{"급락", 0.7}, {"하락", 0.5}, {"약세", 0.5}, {"악재", 0.6}, {"신저가", 0.7},
	{"적자", 0.5}, {"손실", 0.4}, {"우려", 0.3}, {"하향", 0.5}, {"매도", 0.4},
}

// Classifier scores headlines against fixed keyword lists. It needs no network
// access and is fully deterministic.
type Classifier struct{}

var _ ports.SentimentClassifier = (*Classifier)(nil)

// New returns a lexicon classifier.
func New() *Classifier {
	return &Classifier{}
}

// Classify returns POSITIVE or NEGATIVE for the dominant keyword weight and
// NEUTRAL when no keyword matches or both sides balance out.
func (c *Classifier) Classify(_ context.Context, text string) (domain.Prediction, error) {
	score, confidence := Score(text)
	switch {
	case score > 0:
		return domain.Prediction{Label: domain.LabelPositive, Confidence: confidence}, nil
	case score < 0:
		return domain.Prediction{Label: domain.LabelNegative, Confidence: confidence}, nil
	default:
		return domain.Prediction{Label: "NEUTRAL", Confidence: confidence}, nil
	}
}

// Score returns a value in [-1, 1] (bearish to bullish) and a confidence
// that grows with the number of matched keywords.
func Score(text string) (score float64, confidence float64) {
	lower := strings.ToLower(text)
	words := " " + strings.Join(strings.FieldsFunc(lower, isSeparator), " ") + " "

	bull, bullHits := sum(lower, words, bullishTerms)
	bear, bearHits := sum(lower, words, bearishTerms)

	matches := bullHits + bearHits
	if matches == 0 || bull+bear == 0 {
		return 0, 0.1 // no signal
	}

	score = (bull - bear) / (bull + bear)
	confidence = math.Min(float64(matches)*0.15+0.2, 0.85)
	return score, confidence
}

// sum adds the weights of matched terms. ASCII terms are looked up as whole
// words in words (space-joined tokens with a leading and trailing space);
// Hangul terms match as substrings of text.
func sum(text, words string, terms []term) (float64, int) {
	total := 0.0
	hits := 0
	for _, t := range terms {
		var matched bool
		if isASCII(t.word) {
			matched = strings.Contains(words, " "+t.word+" ")
		} else {
			matched = strings.Contains(text, t.word)
		}
		if matched {
			total += t.weight
			hits++
		}
	}
	return total, hits
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
