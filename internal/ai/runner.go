// Package ai runs structured prompts against an OpenAI-compatible chat completions API.
package ai

import (
	"context"
	"encoding/json"
)

// PromptDefinition is a fixed instruction template plus the JSON schema the
// model output has to follow.
type PromptDefinition struct {
	Name         string
	Template     string          // text/template rendered with the prompt input
	OutputSchema json.RawMessage // JSON schema object
}

//go:generate mockgen -source=$GOFILE -destination=mocks/mock_runner.go -package=mocks

// PromptRunner executes a prompt and returns the raw JSON the model produced.
// An empty or non-JSON model answer is returned as a nil message and a nil error.
type PromptRunner interface {
	RunPrompt(ctx context.Context, def PromptDefinition, input any) (json.RawMessage, error)
}
