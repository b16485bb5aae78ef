package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockSentiment/internal/config"
)

func completionHandler(t *testing.T, content string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model    string              `json:"model"`
			Messages []map[string]string `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Messages) != 2 || req.Messages[1]["content"] == "" {
			t.Errorf("unexpected messages: %#v", req.Messages)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		})
	}
}

func TestChatGPTClassify(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(completionHandler(t, "```json\n{\"label\": \"positive\", \"confidence\": 0.9}\n```"))
	defer server.Close()

	c := NewChatGPTClient(config.ChatGPTConfig{Endpoint: server.URL, Model: "gpt-test", APIKey: "k"}, server.Client())

	pred, err := c.Classify(context.Background(), "A Corp profits surge")
	require.NoError(t, err)
	assert.Equal(t, "POSITIVE", pred.Label)
	assert.InDelta(t, 0.9, pred.Confidence, 1e-9)
}

func TestChatGPTClassifyMisconfigured(t *testing.T) {
	t.Parallel()

	_, err := NewChatGPTClient(config.ChatGPTConfig{Endpoint: "http://x", Model: "m"}, nil).Classify(context.Background(), "x")
	require.Error(t, err)
}

func TestChatGPTClassifyHTTPError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota", http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := NewChatGPTClient(config.ChatGPTConfig{Endpoint: server.URL, Model: "m", APIKey: "k"}, server.Client())
	_, err := c.Classify(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestParseAnswer(t *testing.T) {
	t.Parallel()

	_, err := parseAnswer("I think it is positive")
	require.Error(t, err)

	_, err = parseAnswer(`{"confidence": 0.4}`)
	require.Error(t, err)

	pred, err := parseAnswer(`{"label":"NEUTRAL","confidence":0.5}`)
	require.NoError(t, err)
	assert.Equal(t, "NEUTRAL", pred.Label)
}
