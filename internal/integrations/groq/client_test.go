package groq

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"honeypot-agent/internal/domain"
)

func chatCompletion(content string) string {
	return `{"id":"cmpl-1","object":"chat.completion","created":1770005528,` +
		`"choices":[{"index":0,"message":{"role":"assistant","content":` + mustJSON(content) + `}}]}`
}

func mustJSON(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func testMessages() []domain.ChatMessage {
	return []domain.ChatMessage{
		{Role: domain.RoleSystem, Content: "persona"},
		{Role: domain.RoleUser, Content: "Verify your account now!"},
	}
}

func TestChat_HappyPath(t *testing.T) {
	var gotPath, gotAuth string
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_, _ = w.Write([]byte(chatCompletion("Who is this really?")))
	}))
	defer srv.Close()

	c := NewClient("key-1", WithBaseURL(srv.URL+"/openai/v1"))
	out, err := c.Chat(context.Background(), testMessages())
	require.NoError(t, err)
	require.Equal(t, "Who is this really?", out)
	require.Equal(t, "/openai/v1/chat/completions", gotPath)
	require.Equal(t, "Bearer key-1", gotAuth)
	require.Equal(t, DefaultModel, gotReq.Model)
	require.Equal(t, testMessages(), gotReq.Messages)
	require.Equal(t, replyTemperature, gotReq.Temperature)
	require.Equal(t, replyMaxTokens, gotReq.MaxTokens)
}

func TestChat_CustomModel(t *testing.T) {
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_, _ = w.Write([]byte(chatCompletion("ok")))
	}))
	defer srv.Close()

	c := NewClient("key-1", WithBaseURL(srv.URL+"/v1"), WithModel("llama-3.3-70b-versatile"))
	_, err := c.Chat(context.Background(), testMessages())
	require.NoError(t, err)
	require.Equal(t, "llama-3.3-70b-versatile", gotReq.Model)
}

func TestChat_UpstreamStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limit reached"}}`))
	}))
	defer srv.Close()

	c := NewClient("key-1", WithBaseURL(srv.URL+"/v1"))
	_, err := c.Chat(context.Background(), testMessages())
	require.Error(t, err)

	var statusErr *HTTPStatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusTooManyRequests, statusErr.HTTPStatusCode())
}

func TestChat_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"cmpl-1","choices":[]}`))
	}))
	defer srv.Close()

	c := NewClient("key-1", WithBaseURL(srv.URL+"/v1"))
	_, err := c.Chat(context.Background(), testMessages())
	require.Error(t, err)
}

func TestChat_NoAPIKey(t *testing.T) {
	c := NewClient("")
	require.False(t, c.KeyConfigured())

	_, err := c.Chat(context.Background(), testMessages())
	require.ErrorIs(t, err, ErrNoAPIKey)

	var cfg interface{ Misconfigured() bool }
	require.ErrorAs(t, err, &cfg)
	require.True(t, cfg.Misconfigured())
}

func TestChat_EmptyMessages(t *testing.T) {
	c := NewClient("key-1")
	_, err := c.Chat(context.Background(), nil)
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrNoAPIKey))
}

func TestChatURL(t *testing.T) {
	cases := []struct {
		base string
		want string
	}{
		{"", DefaultBaseURL + "/chat/completions"},
		{DefaultBaseURL, DefaultBaseURL + "/chat/completions"},
		{"https://api.groq.com/openai/v1/", DefaultBaseURL + "/chat/completions"},
		{"https://proxy.internal", "https://proxy.internal/v1/chat/completions"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, chatURL(tc.base))
	}
}
