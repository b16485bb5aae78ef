package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"StockSentiment/internal/api"
	"StockSentiment/internal/classifier"
	"StockSentiment/internal/config"
	"StockSentiment/internal/domain"
	"StockSentiment/internal/infrastructure/lexicon"
	"StockSentiment/internal/infrastructure/llm"
	"StockSentiment/internal/infrastructure/ml"
	"StockSentiment/internal/infrastructure/parser"
	"StockSentiment/internal/infrastructure/search"
	"StockSentiment/internal/logging"
	"StockSentiment/internal/metrics"
	"StockSentiment/internal/ports"
	"StockSentiment/internal/usecase"
)

// Application wires configs to use cases and owns the classifier lifecycle.
type Application struct {
	cfg        config.Config
	logger     *slog.Logger
	classifier *classifier.Lazy
	pipeline   *usecase.Pipeline
}

// DefaultRegistry registers every built-in classifier backend.
func DefaultRegistry() *classifier.Registry {
	reg := classifier.NewRegistry()
	reg.Register("lexicon", func(config.Config) (ports.SentimentClassifier, error) {
		return lexicon.New(), nil
	})
	reg.Register("inference", func(cfg config.Config) (ports.SentimentClassifier, error) {
		if cfg.ML.InferenceURL == "" {
			return nil, fmt.Errorf("ml.inferenceUrl is empty")
		}
		return ml.NewClient(cfg.ML, nil), nil
	})
	reg.Register("chatgpt", func(cfg config.Config) (ports.SentimentClassifier, error) {
		if cfg.ChatGPT.APIKey == "" {
			return nil, fmt.Errorf("chatgpt.apiKey is empty")
		}
		return llm.NewChatGPTClient(cfg.ChatGPT, nil), nil
	})
	return reg
}

// New builds the application. The classifier backend is resolved now but
// loaded on first use.
func New(cfg config.Config, baseLogger *slog.Logger, reg *classifier.Registry) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging)
	}
	if reg == nil {
		reg = DefaultRegistry()
	}

	factory, err := reg.Resolve(cfg.Classifier.Backend)
	if err != nil {
		return nil, err
	}
	lazy := classifier.NewLazy(cfg.Classifier.Backend, factory, cfg, baseLogger.With("component", "classifier"))

	fetcher := search.NewFetcher(cfg.Search, nil, baseLogger.With("component", "fetcher"))
	extractor := parser.NewHeadlineExtractor(cfg.Search.Selector, cfg.Search.Limit, baseLogger.With("component", "extractor"))

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Fetcher:          fetcher,
		Extractor:        extractor,
		Classifier:       lazy,
		Backend:          cfg.Classifier.Backend,
		NeutralThreshold: cfg.Classifier.NeutralThreshold,
		Concurrency:      cfg.Classifier.Concurrency,
		FetchTimeout:     cfg.Search.Timeout,
		ClassifyTimeout:  cfg.Classifier.Timeout,
		Logger:           baseLogger.With("component", "pipeline"),
	})

	return &Application{
		cfg:        cfg,
		logger:     baseLogger,
		classifier: lazy,
		pipeline:   pipeline,
	}, nil
}

// Analyze runs the pipeline for one stock name.
func (a *Application) Analyze(ctx context.Context, stock string) (domain.Report, error) {
	return a.pipeline.Analyze(ctx, stock)
}

// Serve runs the HTTP shell until ctx is cancelled.
func (a *Application) Serve(ctx context.Context) error {
	metrics.Init()

	srv := &http.Server{
		Addr:              a.cfg.Server.Addr,
		Handler:           api.NewServer(a, a.logger.With("component", "api")).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// Close releases the classifier backend.
func (a *Application) Close() error {
	if a.classifier == nil {
		return nil
	}
	return a.classifier.Close()
}
