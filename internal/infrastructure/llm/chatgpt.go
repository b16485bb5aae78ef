package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"StockSentiment/internal/config"
	"StockSentiment/internal/domain"
	"StockSentiment/internal/ports"
)

const answerFormat = `Answer with JSON only: {"label": "POSITIVE" | "NEGATIVE" | "NEUTRAL", "confidence": <number between 0 and 1>}.`

// ChatGPTClient implements ports.SentimentClassifier backed by OpenAI-compatible APIs.
type ChatGPTClient struct {
	endpoint     string
	model        string
	apiKey       string
	systemPrompt string
	httpClient   *http.Client
}

var _ ports.SentimentClassifier = (*ChatGPTClient)(nil)

// NewChatGPTClient builds a client from configuration.
func NewChatGPTClient(cfg config.ChatGPTConfig, httpClient *http.Client) *ChatGPTClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 20 * time.Second}
	}
	return &ChatGPTClient{
		endpoint:     cfg.Endpoint,
		model:        cfg.Model,
		apiKey:       cfg.APIKey,
		systemPrompt: cfg.SystemPrompt,
		httpClient:   httpClient,
	}
}

// Classify asks the model for the sentiment of one headline.
func (c *ChatGPTClient) Classify(ctx context.Context, text string) (domain.Prediction, error) {
	if c == nil {
		return domain.Prediction{}, fmt.Errorf("chatgpt client is nil")
	}
	if c.apiKey == "" || c.endpoint == "" || c.model == "" {
		return domain.Prediction{}, fmt.Errorf("chatgpt client misconfigured")
	}

	body, err := json.Marshal(map[string]any{
		"model":           c.model,
		"temperature":     0,
		"response_format": map[string]string{"type": "json_object"},
		"messages": []map[string]string{
			{"role": "system", "content": safePrompt(c.systemPrompt) + " " + answerFormat},
			{"role": "user", "content": text},
		},
	})
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("marshal chatgpt payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("send completion: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return domain.Prediction{}, fmt.Errorf("chatgpt error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var completion struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return domain.Prediction{}, fmt.Errorf("decode completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return domain.Prediction{}, fmt.Errorf("chatgpt returned no choices")
	}

	return parseAnswer(completion.Choices[0].Message.Content)
}

func parseAnswer(content string) (domain.Prediction, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var pred domain.Prediction
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &pred); err != nil {
		return domain.Prediction{}, fmt.Errorf("parse answer %q: %w", content, err)
	}
	if pred.Label == "" {
		return domain.Prediction{}, fmt.Errorf("answer has no label: %q", content)
	}
	pred.Label = strings.ToUpper(strings.TrimSpace(pred.Label))
	return pred, nil
}

func safePrompt(prompt string) string {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "You classify the sentiment of stock news headlines."
	}
	return prompt
}
