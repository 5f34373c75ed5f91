// Package adapter provides a uniform interface over LLM providers. Each
// adapter sends a prompt on behalf of a routed agent and returns the response
// as an immutable artifact.
package adapter

import (
	"context"

	"github.com/railwise/switchyard/pkg/artifact"
)

// Adapter defines the interface for LLM provider adapters.
type Adapter interface {
	// Generate sends a prompt to the model on behalf of the named agent.
	Generate(ctx context.Context, agent, model, prompt string) (*Response, error)

	// Name returns the adapter's identifier.
	Name() string

	// Models returns the list of supported models.
	Models() []string
}

// Usage captures normalized token usage.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response wraps an adapter output and optional usage data.
type Response struct {
	Artifact *artifact.Artifact
	Usage    *Usage
}
