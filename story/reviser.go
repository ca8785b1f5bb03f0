package story

import (
	"context"
	"fmt"

	"github.com/go-fable/fable"
)

// Reviser rewrites a draft according to feedback while preserving the
// Markdown structure.
type Reviser struct {
	agent *fable.Agent
}

// NewReviser builds the reviser agent on the given provider. The
// default temperature suits judge-driven revisions; user-driven ones
// pass a slightly higher value per call.
func NewReviser(provider fable.ModelProvider, model string) *Reviser {
	return &Reviser{
		agent: fable.NewAgent(
			"reviser",
			fable.WithModel(model),
			fable.WithProvider(provider),
			fable.WithInstructions(reviserPersona),
			fable.WithModelOptions(
				fable.Temperature(0.5),
				fable.MaxOutputTokens(1000),
			),
		),
	}
}

// Revise applies feedback to the current draft and returns the new one.
func (r *Reviser) Revise(ctx context.Context, request string, draft *Draft, feedback string, opts ...fable.ModelOption) (*Draft, error) {
	input := fmt.Sprintf(reviserInputFormat, request, draft.Raw, feedback)
	out, err := r.agent.Run(ctx, fable.NewPrompt(input), opts...)
	if err != nil {
		return nil, fmt.Errorf("revise draft: %w", err)
	}
	revised, err := ParseDraft(out.Text)
	if err != nil {
		return nil, fmt.Errorf("revise draft: %w", err)
	}
	return revised, nil
}
