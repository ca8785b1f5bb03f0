package story

import (
	"context"
	"fmt"

	"github.com/go-fable/fable"
)

// Storyteller produces the first Markdown draft for a request, primed
// with the classified category.
type Storyteller struct {
	agent *fable.Agent
}

// NewStoryteller builds the storyteller agent on the given provider.
func NewStoryteller(provider fable.ModelProvider, model string) *Storyteller {
	return &Storyteller{
		agent: fable.NewAgent(
			"storyteller",
			fable.WithModel(model),
			fable.WithProvider(provider),
			fable.WithInstructions(storytellerPersona),
			fable.WithModelOptions(
				fable.Temperature(0.7),
				fable.MaxOutputTokens(1000),
			),
		),
	}
}

// Tell generates a draft for the request in the given category.
func (s *Storyteller) Tell(ctx context.Context, request string, category Category) (*Draft, error) {
	out, err := s.agent.Run(ctx, &fable.Prompt{
		Input: fable.UserMessage(request),
		Vars:  map[string]any{"category": category.String()},
	})
	if err != nil {
		return nil, fmt.Errorf("generate draft: %w", err)
	}
	draft, err := ParseDraft(out.Text)
	if err != nil {
		return nil, fmt.Errorf("generate draft: %w", err)
	}
	return draft, nil
}
