package parser

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/PuerkitoBio/goquery"

	"StockSentiment/internal/config"
	"StockSentiment/internal/domain"
	"StockSentiment/internal/ports"
)

// DefaultSelector matches headline links on Naver news search results.
const DefaultSelector = "a.news_tit"

// HeadlineExtractor selects headline links from a search results page.
//
// The selector is the only coupling to the upstream markup. When the site
// changes its layout extraction silently yields zero headlines.
type HeadlineExtractor struct {
	selector string
	limit    int
	logger   *slog.Logger
}

var _ ports.HeadlineExtractor = (*HeadlineExtractor)(nil)

// NewHeadlineExtractor builds an extractor; limit is capped at config.MaxHeadlines.
func NewHeadlineExtractor(selector string, limit int, logger *slog.Logger) *HeadlineExtractor {
	if selector == "" {
		selector = DefaultSelector
	}
	if limit <= 0 || limit > config.MaxHeadlines {
		limit = config.MaxHeadlines
	}
	return &HeadlineExtractor{selector: selector, limit: limit, logger: logger}
}

// Extract returns the text of the first matches in document order.
// No matches is a valid, empty result.
func (e *HeadlineExtractor) Extract(doc domain.Document) ([]domain.Headline, error) {
	parsed, err := goquery.NewDocumentFromReader(bytes.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	headlines := make([]domain.Headline, 0, e.limit)
	parsed.Find(e.selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		headlines = append(headlines, domain.Headline(s.Text()))
		return len(headlines) < e.limit
	})

	if e.logger != nil {
		e.logger.Debug("headlines extracted", "selector", e.selector, "count", len(headlines))
	}
	return headlines, nil
}
