package ml

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"StockSentiment/internal/config"
	"StockSentiment/internal/domain"
	"StockSentiment/internal/ports"
)

// Client talks to a hosted text-classification model
// (Hugging Face inference API or a compatible server).
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

var _ ports.SentimentClassifier = (*Client)(nil)

type score struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// NewClient creates a reusable HTTP client.
func NewClient(cfg config.MLConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		endpoint: cfg.InferenceURL,
		apiKey:   cfg.APIKey,
		http:     httpClient,
	}
}

// Classify sends one headline and returns the highest scoring label.
func (c *Client) Classify(ctx context.Context, text string) (domain.Prediction, error) {
	if c.endpoint == "" {
		return domain.Prediction{}, errors.New("inference endpoint is not configured")
	}

	var raw json.RawMessage
	if err := c.post(ctx, map[string]any{"inputs": text}, &raw); err != nil {
		return domain.Prediction{}, err
	}

	scores, err := decodeScores(raw)
	if err != nil {
		return domain.Prediction{}, err
	}

	best := scores[0]
	for _, s := range scores[1:] {
		if s.Score > best.Score {
			best = s
		}
	}

	return domain.Prediction{Label: strings.ToUpper(best.Label), Confidence: best.Score}, nil
}

// decodeScores accepts both [{label,score}] and [[{label,score}]] bodies.
func decodeScores(raw json.RawMessage) ([]score, error) {
	var nested [][]score
	if err := json.Unmarshal(raw, &nested); err == nil && len(nested) > 0 && len(nested[0]) > 0 {
		return nested[0], nil
	}

	var flat []score
	if err := json.Unmarshal(raw, &flat); err == nil && len(flat) > 0 {
		return flat, nil
	}

	return nil, fmt.Errorf("decode response: unexpected payload %s", truncate(string(raw), 200))
}

func (c *Client) post(ctx context.Context, payload any, v any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("unexpected status %s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// truncate keeps at most n runes of s.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
