package classify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jacobcrotty/bankcat/internal/model"
)

const anthropicMessagesURL = "https://api.anthropic.com/v1/messages"

// Config holds the settings for the Anthropic-backed classifier.
type Config struct {
	APIKey    string
	Model     string
	BaseURL   string
	MaxTokens int
}

// AnthropicClient implements Client against the Anthropic Messages API,
// sending the statement as a base64 document content block.
type AnthropicClient struct {
	httpClient *http.Client
	apiKey     string
	model      string
	baseURL    string
	maxTokens  int
}

// NewAnthropicClient creates a classification client. The API key is the
// caller's opaque credential and must be non-empty.
func NewAnthropicClient(cfg Config) (*AnthropicClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4000
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = anthropicMessagesURL
	}

	return &AnthropicClient{
		apiKey:    cfg.APIKey,
		model:     model,
		maxTokens: maxTokens,
		baseURL:   baseURL,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}

// Classify sends one statement document for categorization. Exactly one
// request is made; any failure surfaces immediately as an *Error.
func (c *AnthropicClient) Classify(ctx context.Context, req Request) ([]model.TransactionRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid classification request: %w", err)
	}

	requestBody := map[string]any{
		"model":      c.model,
		"max_tokens": c.maxTokens,
		"messages": []map[string]any{
			{
				"role": "user",
				"content": []map[string]any{
					{
						"type": "document",
						"source": map[string]any{
							"type":       "base64",
							"media_type": req.MediaType,
							"data":       base64.StdEncoding.EncodeToString(req.Document),
						},
					},
					{
						"type": "text",
						"text": buildPrompt(req.ChartOfAccounts),
					},
				},
			},
		},
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(string(jsonBody)))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &Error{Kind: KindUnreachable, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindUnreachable, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Kind: KindServiceError, Message: serviceErrorMessage(resp.StatusCode, body)}
	}

	var response anthropicResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, &Error{Kind: KindMalformedResponse, Err: fmt.Errorf("failed to parse response envelope: %w", err)}
	}

	text := response.text()
	if text == "" {
		return nil, &Error{Kind: KindMalformedResponse, Message: "no text content in response"}
	}

	return ParseResult(text)
}

// serviceErrorMessage extracts a human-readable message from an error
// payload, falling back to the raw body.
func serviceErrorMessage(status int, body []byte) string {
	var errPayload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &errPayload); err == nil && errPayload.Error.Message != "" {
		return errPayload.Error.Message
	}
	return fmt.Sprintf("API error (status %d): %s", status, string(body))
}

// anthropicResponse represents the Anthropic API response structure.
type anthropicResponse struct {
	ID         string `json:"id"`
	Model      string `json:"model"`
	StopReason string `json:"stop_reason"`
	Content    []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// text concatenates all text content blocks.
func (r anthropicResponse) text() string {
	var b strings.Builder
	for _, block := range r.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	return b.String()
}
