package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"text/template"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"

	chatCompletionsPath = "/chat/completions"
	maxResponseBytes    = 1 << 20
)

// ErrEmptyPrompt is returned when the rendered template is blank.
var ErrEmptyPrompt = errors.New("ai: rendered prompt is empty")

// APIError is a non-2xx answer or an error object returned by the provider.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ai provider error (status %d): %s", e.StatusCode, e.Message)
}

// Config of the chat completions client.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration // zero means no client side timeout
}

// Client is a PromptRunner backed by the chat completions endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

var _ PromptRunner = (*Client)(nil)

// NewClient creates a new chat completions client. httpClient may be nil.
func NewClient(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		model:      model,
		httpClient: httpClient,
	}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type jsonSchemaFormat struct {
	Name   string          `json:"name"`
	Schema json.RawMessage `json:"schema"`
	Strict bool            `json:"strict"`
}

type responseFormat struct {
	Type       string            `json:"type"`
	JSONSchema *jsonSchemaFormat `json:"json_schema,omitempty"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []message       `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Message      message `json:"message"`
		FinishReason string  `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// RunPrompt renders def.Template with input, asks the model for output that
// follows def.OutputSchema and returns the JSON found in the answer.
func (c *Client) RunPrompt(ctx context.Context, def PromptDefinition, input any) (json.RawMessage, error) {
	prompt, err := renderPrompt(def, input)
	if err != nil {
		return nil, err
	}

	req := chatRequest{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: "You are an assistant that answers only with JSON matching the provided schema."},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
	}
	if len(def.OutputSchema) > 0 {
		req.ResponseFormat = &responseFormat{
			Type: "json_schema",
			JSONSchema: &jsonSchemaFormat{
				Name:   schemaName(def.Name),
				Schema: def.OutputSchema,
				Strict: true,
			},
		}
	}

	content, err := c.chat(ctx, req)
	if err != nil {
		return nil, err
	}

	extracted := extractJSON(content)
	if extracted == "" || !json.Valid([]byte(extracted)) {
		log.Debugf("prompt %s: model answer contains no JSON", def.Name)
		return nil, nil
	}
	return json.RawMessage(extracted), nil
}

func (c *Client) chat(ctx context.Context, req chatRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+chatCompletionsPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read chat response: %w", err)
	}
	log.Debugf("chat completion %s: status %d in %s", c.model, resp.StatusCode, time.Since(start))

	var chatResp chatResponse
	decodeErr := json.Unmarshal(respBody, &chatResp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(respBody))
		if decodeErr == nil && chatResp.Error != nil {
			msg = chatResp.Error.Message
		}
		return "", &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return "", fmt.Errorf("decode chat response: %w", decodeErr)
	}
	if chatResp.Error != nil {
		return "", &APIError{StatusCode: resp.StatusCode, Message: chatResp.Error.Message}
	}
	if len(chatResp.Choices) == 0 {
		return "", nil
	}
	return chatResp.Choices[0].Message.Content, nil
}

func renderPrompt(def PromptDefinition, input any) (string, error) {
	tmpl, err := template.New(def.Name).Option("missingkey=error").Parse(def.Template)
	if err != nil {
		return "", fmt.Errorf("parse prompt template %s: %w", def.Name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, input); err != nil {
		return "", fmt.Errorf("render prompt template %s: %w", def.Name, err)
	}
	prompt := strings.TrimSpace(buf.String())
	if prompt == "" {
		return "", ErrEmptyPrompt
	}
	return prompt, nil
}

// schemaName returns a provider safe schema name: letters, digits, '_' and '-'.
func schemaName(name string) string {
	b := strings.Builder{}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "output"
	}
	return b.String()
}

// extractJSON strips markdown code fences and surrounding prose and returns
// the outermost JSON object, or "" when there is none.
func extractJSON(s string) string {
	if idx := strings.Index(s, "```json"); idx != -1 {
		s = s[idx+7:]
	} else if idx := strings.Index(s, "```"); idx != -1 {
		s = s[idx+3:]
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	start := strings.Index(s, "{")
	if start == -1 {
		return ""
	}
	end := strings.LastIndex(s, "}")
	if end == -1 || end <= start {
		return ""
	}
	return s[start : end+1]
}
