package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"StockSentiment/internal/domain"
	"StockSentiment/internal/metrics"
	"StockSentiment/internal/ports"
)

// PipelineDeps wires all driven adapters into the analysis pipeline.
type PipelineDeps struct {
	Fetcher    ports.HeadlineFetcher
	Extractor  ports.HeadlineExtractor
	Classifier ports.SentimentClassifier

	// Backend labels classifier metrics.
	Backend string
	// NeutralThreshold demotes polar predictions below this confidence to neutral.
	NeutralThreshold float64
	// Concurrency bounds parallel classification; values below 1 mean sequential.
	Concurrency     int
	FetchTimeout    time.Duration
	ClassifyTimeout time.Duration

	Logger *slog.Logger
}

// Pipeline turns a stock name into annotated headlines and a recommendation.
// It holds no per-query state and is safe for concurrent use.
type Pipeline struct {
	fetcher          ports.HeadlineFetcher
	extractor        ports.HeadlineExtractor
	classifier       ports.SentimentClassifier
	backend          string
	neutralThreshold float64
	concurrency      int
	fetchTimeout     time.Duration
	classifyTimeout  time.Duration
	logger           *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	concurrency := deps.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Pipeline{
		fetcher:          deps.Fetcher,
		extractor:        deps.Extractor,
		classifier:       deps.Classifier,
		backend:          deps.Backend,
		neutralThreshold: deps.NeutralThreshold,
		concurrency:      concurrency,
		fetchTimeout:     deps.FetchTimeout,
		classifyTimeout:  deps.ClassifyTimeout,
		logger:           logger,
	}
}

// Analyze fetches headlines for the stock, classifies them and derives a
// recommendation. Errors are returned as domain.ErrInvalidInput,
// *domain.FetchError or *domain.ClassificationError; nothing partial is
// returned alongside an error.
func (p *Pipeline) Analyze(ctx context.Context, stock string) (report domain.Report, err error) {
	start := time.Now()
	log := p.logger.With("run_id", uuid.NewString(), "stock", stock)

	defer func() {
		metrics.RecordAnalyze(statusOf(err), time.Since(start), len(report.Headlines), string(report.Recommendation))
		if err != nil {
			log.Warn("analyze failed", "error", err, "took", time.Since(start))
		}
	}()

	query := strings.TrimSpace(stock)
	if query == "" {
		return domain.Report{}, domain.ErrInvalidInput
	}
	if p.fetcher == nil || p.extractor == nil || p.classifier == nil {
		return domain.Report{}, errors.New("pipeline is not fully configured")
	}

	doc, err := p.fetch(ctx, query)
	if err != nil {
		return domain.Report{}, err
	}

	headlines, err := p.extractor.Extract(doc)
	if err != nil {
		return domain.Report{}, fmt.Errorf("extract headlines: %w", err)
	}
	log.Debug("headlines extracted", "count", len(headlines))

	annotated, rec, err := p.ClassifyAndRecommend(ctx, headlines)
	if err != nil {
		return domain.Report{}, err
	}

	report = domain.Report{
		Stock:          query,
		Headlines:      annotated,
		Recommendation: rec,
	}
	for _, a := range annotated {
		switch a.Sentiment {
		case domain.SentimentPositive:
			report.Positive++
		case domain.SentimentNegative:
			report.Negative++
		default:
			report.Neutral++
		}
	}

	log.Info("analyze done",
		"headlines", len(annotated),
		"positive", report.Positive,
		"negative", report.Negative,
		"neutral", report.Neutral,
		"recommendation", rec,
		"took", time.Since(start),
	)
	return report, nil
}

func (p *Pipeline) fetch(ctx context.Context, query string) (domain.Document, error) {
	if p.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.fetchTimeout)
		defer cancel()
	}

	doc, err := p.fetcher.Fetch(ctx, query)
	if err == nil {
		return doc, nil
	}

	var fetchErr *domain.FetchError
	if errors.As(err, &fetchErr) || errors.Is(err, domain.ErrInvalidInput) {
		return nil, err
	}
	return nil, &domain.FetchError{Err: err}
}

// ClassifyAndRecommend classifies every headline independently and derives
// the recommendation from the positive and negative counts. The output keeps
// the input order. Any classifier failure fails the whole call.
func (p *Pipeline) ClassifyAndRecommend(ctx context.Context, headlines []domain.Headline) ([]domain.AnnotatedHeadline, domain.Recommendation, error) {
	if len(headlines) > 0 && p.classifier == nil {
		return nil, "", &domain.ClassificationError{Err: errors.New("classifier is not configured")}
	}

	if p.classifyTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.classifyTimeout)
		defer cancel()
	}

	sentiments := make([]domain.Sentiment, len(headlines))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i, h := range headlines {
		g.Go(func() error {
			pred, err := p.classifier.Classify(gctx, string(h))
			if err != nil {
				metrics.RecordClassification(p.backend, "error")
				return &domain.ClassificationError{Headline: h, Err: err}
			}
			s := domain.SentimentFromPrediction(pred, p.neutralThreshold)
			metrics.RecordClassification(p.backend, string(s))
			sentiments[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, "", err
	}

	annotated := make([]domain.AnnotatedHeadline, len(headlines))
	positive, negative := 0, 0
	for i, h := range headlines {
		switch sentiments[i] {
		case domain.SentimentPositive:
			positive++
		case domain.SentimentNegative:
			negative++
		}
		annotated[i] = domain.Annotate(h, sentiments[i])
	}

	return annotated, domain.Recommend(positive, negative), nil
}

func statusOf(err error) string {
	var (
		fetchErr *domain.FetchError
		classErr *domain.ClassificationError
	)
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.As(err, &fetchErr):
		return "fetch_error"
	case errors.As(err, &classErr):
		return "classification_error"
	default:
		return "error"
	}
}
