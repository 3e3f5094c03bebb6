package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testPrompt = PromptDefinition{
	Name:         "test prompt",
	Template:     "Suggest {{.Count}} exercises for {{.Focus}}.",
	OutputSchema: json.RawMessage(`{"type":"object"}`),
}

type testInput struct {
	Focus string
	Count int
}

func newTestServer(t *testing.T, status int, body string, check func(r *http.Request, req chatRequest)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if check != nil {
			check(r, req)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func chatBody(content string) string {
	b, _ := json.Marshal(map[string]any{
		"id": "cmpl-1",
		"choices": []map[string]any{{
			"message":       map[string]string{"role": "assistant", "content": content},
			"finish_reason": "stop",
		}},
	})
	return string(b)
}

func TestClient_RunPrompt(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, chatBody(`{"suggestedExercises":[]}`), func(r *http.Request, req chatRequest) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "test-model", req.Model)
		if assert.Len(t, req.Messages, 2) {
			assert.Equal(t, "Suggest 3 exercises for legs.", req.Messages[1].Content)
		}
		if !assert.NotNil(t, req.ResponseFormat) {
			return
		}
		assert.Equal(t, "json_schema", req.ResponseFormat.Type)
		assert.Equal(t, "test_prompt", req.ResponseFormat.JSONSchema.Name)
		assert.JSONEq(t, `{"type":"object"}`, string(req.ResponseFormat.JSONSchema.Schema))
	})

	c := NewClient(Config{BaseURL: srv.URL + "/v1/", APIKey: "secret", Model: "test-model"}, srv.Client())
	out, err := c.RunPrompt(context.Background(), testPrompt, testInput{Focus: "legs", Count: 3})
	require.NoError(t, err)
	assert.JSONEq(t, `{"suggestedExercises":[]}`, string(out))
}

func TestClient_RunPrompt_FencedAnswer(t *testing.T) {
	content := "Here you go:\n```json\n{\"a\": 1}\n```"
	srv := newTestServer(t, http.StatusOK, chatBody(content), nil)

	c := NewClient(Config{BaseURL: srv.URL}, srv.Client())
	out, err := c.RunPrompt(context.Background(), testPrompt, testInput{Focus: "chest", Count: 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": 1}`, string(out))
}

func TestClient_RunPrompt_NoJSON(t *testing.T) {
	for name, content := range map[string]string{
		"empty":  "",
		"null":   "null",
		"prose":  "I cannot help with that.",
		"broken": "{not json}",
	} {
		t.Run(name, func(t *testing.T) {
			srv := newTestServer(t, http.StatusOK, chatBody(content), nil)
			c := NewClient(Config{BaseURL: srv.URL}, srv.Client())
			out, err := c.RunPrompt(context.Background(), testPrompt, testInput{Focus: "back", Count: 2})
			require.NoError(t, err)
			assert.Nil(t, out)
		})
	}
}

func TestClient_RunPrompt_ProviderError(t *testing.T) {
	srv := newTestServer(t, http.StatusTooManyRequests, `{"error":{"message":"rate limited","type":"requests"}}`, nil)

	c := NewClient(Config{BaseURL: srv.URL}, srv.Client())
	out, err := c.RunPrompt(context.Background(), testPrompt, testInput{Focus: "legs", Count: 3})
	require.Error(t, err)
	assert.Nil(t, out)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, "rate limited", apiErr.Message)
}

func TestClient_RunPrompt_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond}, nil)
	_, err := c.RunPrompt(context.Background(), testPrompt, testInput{Focus: "legs", Count: 3})
	require.Error(t, err)
	c.httpClient.CloseIdleConnections()
}

func TestClient_RunPrompt_BadTemplate(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://127.0.0.1:0"}, nil)
	_, err := c.RunPrompt(context.Background(), PromptDefinition{Name: "bad", Template: "{{.Missing"}, nil)
	require.Error(t, err)

	_, err = c.RunPrompt(context.Background(), PromptDefinition{Name: "blank", Template: "   "}, nil)
	assert.ErrorIs(t, err, ErrEmptyPrompt)
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"fenced json", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"prose around", `Sure! {"a":{"b":2}} Enjoy.`, `{"a":{"b":2}}`},
		{"no object", "nothing here", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractJSON(tt.in))
		})
	}
}
