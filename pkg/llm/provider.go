// Package llm abstracts the language-model providers the execution
// dispatcher can call.
package llm

import (
	"context"
	"errors"
	"fmt"
)

var ErrEmptyResponse = errors.New("provider returned an empty response")

// Request is one completion request: a system instruction plus the user
// prompt.
type Request struct {
	System string
	Prompt string
}

// Response carries the generated completion.
type Response struct {
	Content string
	Model   string
}

// Provider generates completions. Implementations wrap one vendor SDK.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)
}

// New builds a provider by name. Supported: "openai", "anthropic". An empty
// model selects the provider's default.
func New(provider, apiKey, model string) (Provider, error) {
	switch provider {
	case "openai":
		return NewOpenAI(apiKey, model), nil
	case "anthropic":
		return NewAnthropic(apiKey, model), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", provider)
	}
}
