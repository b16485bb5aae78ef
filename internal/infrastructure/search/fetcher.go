package search

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"StockSentiment/internal/config"
	"StockSentiment/internal/domain"
	"StockSentiment/internal/metrics"
	"StockSentiment/internal/ports"
)

const maxBodyBytes = 8 << 20

// Fetcher downloads news search result pages for a stock name.
type Fetcher struct {
	client    *http.Client
	endpoint  string
	params    map[string]string
	userAgent string
	logger    *slog.Logger
}

var _ ports.HeadlineFetcher = (*Fetcher)(nil)

// NewFetcher wires an HTTP client; a nil client gets one bound to cfg.Timeout.
func NewFetcher(cfg config.SearchConfig, client *http.Client, logger *slog.Logger) *Fetcher {
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &Fetcher{
		client:    client,
		endpoint:  cfg.Endpoint,
		params:    cfg.Params,
		userAgent: cfg.UserAgent,
		logger:    logger,
	}
}

// Fetch issues one GET for the query and returns the raw body.
// Transport failures and non-2xx responses are reported as *domain.FetchError.
func (f *Fetcher) Fetch(ctx context.Context, query string) (domain.Document, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrInvalidInput
	}

	target, err := BuildSearchURL(f.endpoint, f.params, query)
	if err != nil {
		return nil, &domain.FetchError{URL: f.endpoint, Err: err}
	}

	start := time.Now()
	body, err := f.get(ctx, target)
	metrics.RecordFetch(time.Since(start), err)
	if err != nil {
		return nil, err
	}

	f.debug("search page fetched", "url", target, "bytes", len(body), "took", time.Since(start))
	return body, nil
}

func (f *Fetcher) get(ctx context.Context, target string) (domain.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &domain.FetchError{URL: target, Err: fmt.Errorf("build request: %w", err)}
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &domain.FetchError{URL: target, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &domain.FetchError{URL: target, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &domain.FetchError{URL: target, Err: fmt.Errorf("read body: %w", err)}
	}
	return body, nil
}

// BuildSearchURL embeds the URL-encoded query and the fixed params into endpoint.
func BuildSearchURL(endpoint string, params map[string]string, query string) (string, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid search endpoint %s: %w", endpoint, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("invalid search endpoint %s: missing scheme or host", endpoint)
	}

	q := parsed.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	q.Set("query", query)
	parsed.RawQuery = q.Encode()
	return parsed.String(), nil
}

func (f *Fetcher) debug(msg string, args ...any) {
	if f.logger != nil {
		f.logger.Debug(msg, args...)
	}
}
