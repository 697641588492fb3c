package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// DefaultChatCompletionsURL is the OpenAI chat completions endpoint.
const DefaultChatCompletionsURL = "https://api.openai.com/v1/chat/completions"

const (
	defaultModel     = "gpt-4o-mini"
	defaultMaxTokens = 200
)

// OpenAIClient implements the Completer interface against an
// OpenAI-compatible chat completions endpoint.
type OpenAIClient struct {
	apiKey     string
	model      string
	maxTokens  int
	baseURL    string
	httpClient *http.Client
}

// OpenAIConfig holds configuration for the OpenAI client.
type OpenAIConfig struct {
	// APIKey is the bearer credential. Falls back to OPENAI_API_KEY.
	APIKey string

	// Model is the completion model. Default: gpt-4o-mini
	Model string

	// MaxTokens caps the output token budget. Default: 200
	MaxTokens int

	// BaseURL overrides the completions endpoint (used in tests).
	BaseURL string

	// Timeout is the per-request timeout. Default: DefaultTimeout
	Timeout time.Duration
}

// NewOpenAIClient creates an OpenAI completion client.
func NewOpenAIClient(cfg OpenAIConfig) *OpenAIClient {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultChatCompletionsURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &OpenAIClient{
		apiKey:     apiKey,
		model:      model,
		maxTokens:  maxTokens,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Name returns the backend name.
func (c *OpenAIClient) Name() string {
	return "openai"
}

// Available checks if an API key is set.
func (c *OpenAIClient) Available() bool {
	return c.apiKey != ""
}

// chatRequest is the chat completions request body.
type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the chat completions response body.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends a single user-role prompt and returns the message
// content of the first choice. Transport failures, non-2xx statuses
// and undecodable bodies are all returned as errors.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("openai backend not available: set OPENAI_API_KEY")
	}

	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		MaxTokens: c.maxTokens,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call completion endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("completion endpoint error: %s - %s",
			resp.Status, strings.TrimSpace(string(body)))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("completion response contained no choices")
	}

	return chatResp.Choices[0].Message.Content, nil
}
