package classifier

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"StockSentiment/internal/config"
	"StockSentiment/internal/domain"
	"StockSentiment/internal/ports"
)

// Lazy defers construction of a classifier backend until the first Classify
// call and then reuses it for the life of the process. A failed load is
// remembered and returned to every later caller.
type Lazy struct {
	name    string
	factory Factory
	cfg     config.Config
	logger  *slog.Logger

	once  sync.Once
	inner ports.SentimentClassifier
	err   error
}

var _ ports.SentimentClassifier = (*Lazy)(nil)

// NewLazy wraps factory; nothing is loaded until Classify.
func NewLazy(name string, factory Factory, cfg config.Config, logger *slog.Logger) *Lazy {
	return &Lazy{name: name, factory: factory, cfg: cfg, logger: logger}
}

// Name returns the backend name.
func (l *Lazy) Name() string {
	return l.name
}

// Classify loads the backend on first use and delegates to it.
func (l *Lazy) Classify(ctx context.Context, text string) (domain.Prediction, error) {
	inner, err := l.load()
	if err != nil {
		return domain.Prediction{}, err
	}
	return inner.Classify(ctx, text)
}

func (l *Lazy) load() (ports.SentimentClassifier, error) {
	l.once.Do(func() {
		if l.factory == nil {
			l.err = fmt.Errorf("load classifier %s: no factory", l.name)
			return
		}
		inner, err := l.factory(l.cfg)
		if err != nil {
			l.err = fmt.Errorf("load classifier %s: %w", l.name, err)
			return
		}
		if inner == nil {
			l.err = fmt.Errorf("load classifier %s: factory returned no classifier", l.name)
			return
		}
		l.inner = inner
		if l.logger != nil {
			l.logger.Info("classifier loaded", "backend", l.name)
		}
	})
	return l.inner, l.err
}

// Close releases the backend if it was loaded and holds resources. It waits
// for an in-flight load to finish; a Lazy closed before first use never loads.
func (l *Lazy) Close() error {
	l.once.Do(func() {
		l.err = fmt.Errorf("classifier %s is closed", l.name)
	})
	if closer, ok := l.inner.(ports.Closer); ok {
		return closer.Close()
	}
	return nil
}
