package ports

import (
	"context"

	"StockSentiment/internal/domain"
)

// HeadlineFetcher downloads the search results page for a stock name.
type HeadlineFetcher interface {
	Fetch(ctx context.Context, query string) (domain.Document, error)
}

// HeadlineExtractor pulls ordered headlines out of a search results page.
type HeadlineExtractor interface {
	Extract(doc domain.Document) ([]domain.Headline, error)
}

// SentimentClassifier maps free text to a label with a confidence score.
type SentimentClassifier interface {
	Classify(ctx context.Context, text string) (domain.Prediction, error)
}

// Closer releases resources held by long-lived adapters such as models.
type Closer interface {
	Close() error
}
