package classify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAnthropicClient(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:   "valid config",
			config: Config{APIKey: "test-key"},
		},
		{
			name:    "missing API key",
			config:  Config{},
			wantErr: true,
		},
		{
			name:   "custom model and token limit",
			config: Config{APIKey: "test-key", Model: "claude-opus-4-20250514", MaxTokens: 8000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewAnthropicClient(tt.config)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, client)
			}
		})
	}
}

func testRequest() Request {
	return Request{
		Document:        []byte("%PDF-1.4 fake statement"),
		MediaType:       "application/pdf",
		ChartOfAccounts: "Meals: Expenses, Entertainment Meals",
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *AnthropicClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewAnthropicClient(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)
	return client
}

func anthropicEnvelope(text string) map[string]any {
	return map[string]any{
		"id":    "msg_test",
		"model": "claude-sonnet-4-20250514",
		"content": []map[string]any{
			{"type": "text", "text": text},
		},
	}
}

func TestAnthropicClient_Classify(t *testing.T) {
	result := `[{"date":"2024-01-02","description":"Office Depot","amount":-45.99,"suggestedCategory":"Supplies","confidence":"high","reasoning":"Office supplies purchase"}]`

	var gotRequest map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))
		require.NoError(t, json.NewEncoder(w).Encode(anthropicEnvelope(result)))
	})

	records, err := client.Classify(context.Background(), testRequest())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Office Depot", records[0].Description)
	assert.Equal(t, "-45.99", records[0].Amount.String())

	// The statement must travel as a base64 document content block.
	messages := gotRequest["messages"].([]any)
	content := messages[0].(map[string]any)["content"].([]any)
	document := content[0].(map[string]any)
	assert.Equal(t, "document", document["type"])
	source := document["source"].(map[string]any)
	assert.Equal(t, "base64", source["type"])
	assert.Equal(t, "application/pdf", source["media_type"])
}

func TestAnthropicClient_Classify_ServiceError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"type":"rate_limit_error","message":"rate limited"}}`))
	})

	_, err := client.Classify(context.Background(), testRequest())
	require.Error(t, err)

	var cerr *Error
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, KindServiceError, cerr.Kind)
	assert.Equal(t, "rate limited", cerr.Message)
}

func TestAnthropicClient_Classify_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // connection refused from here on

	client, err := NewAnthropicClient(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.Classify(context.Background(), testRequest())
	require.Error(t, err)
	assert.Equal(t, KindUnreachable, KindOf(err))
}

func TestAnthropicClient_Classify_MalformedPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(anthropicEnvelope("sorry, I could not read the statement")))
	})

	_, err := client.Classify(context.Background(), testRequest())
	require.Error(t, err)
	assert.Equal(t, KindMalformedResponse, KindOf(err))
}

func TestAnthropicClient_Classify_EmptyContent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{"id": "msg_test", "content": []any{}}))
	})

	_, err := client.Classify(context.Background(), testRequest())
	require.Error(t, err)
	assert.Equal(t, KindMalformedResponse, KindOf(err))
}

func TestAnthropicClient_Classify_InvalidRequest(t *testing.T) {
	client, err := NewAnthropicClient(Config{APIKey: "test-key"})
	require.NoError(t, err)

	_, err = client.Classify(context.Background(), Request{})
	require.Error(t, err)
	assert.Equal(t, ErrorKind(""), KindOf(err), "precondition failures are not classification errors")
}
