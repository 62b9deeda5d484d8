package ai

import "context"

// LLM produces a completion for a prompt.
type LLM interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// PlaceholderSuggestion is what PlaceholderLLM answers with.
const PlaceholderSuggestion = "Here's a placeholder suggestion from the AI."

// PlaceholderLLM answers every prompt with PlaceholderSuggestion. It stands
// in for the local model runtime.
type PlaceholderLLM struct{}

func (PlaceholderLLM) Generate(ctx context.Context, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return PlaceholderSuggestion, nil
}
