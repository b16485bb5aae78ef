package domain

// Document is the raw markup returned by the search endpoint. It is consumed
// once by the extractor and then discarded.
type Document []byte

// Headline is a single news title in source display order.
type Headline string

// AnnotatedHeadline pairs a headline with its classification and display glyph.
type AnnotatedHeadline struct {
	Headline  Headline
	Sentiment Sentiment
	Glyph     string
}

// Annotate builds an AnnotatedHeadline using the glyph of the sentiment.
func Annotate(h Headline, s Sentiment) AnnotatedHeadline {
	return AnnotatedHeadline{Headline: h, Sentiment: s, Glyph: s.Glyph()}
}

// Report is the outcome of analyzing one stock name.
type Report struct {
	Stock          string
	Headlines      []AnnotatedHeadline
	Recommendation Recommendation
	Positive       int
	Negative       int
	Neutral        int
}
