package story

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-fable/fable"
)

// Classifier assigns a Category to a raw story request using a short,
// deterministic model call.
type Classifier struct {
	agent *fable.Agent
}

// NewClassifier builds the classifier agent on the given provider.
func NewClassifier(provider fable.ModelProvider, model string) *Classifier {
	return &Classifier{
		agent: fable.NewAgent(
			"classifier",
			fable.WithModel(model),
			fable.WithProvider(provider),
			fable.WithInstructions(classifierPersona),
			fable.WithModelOptions(
				fable.Temperature(0),
				fable.MaxOutputTokens(10),
			),
		),
	}
}

// Classify returns the category for the request. Labels outside the
// known set are passed through unchanged; known reports membership so
// the caller can log the anomaly.
func (c *Classifier) Classify(ctx context.Context, request string) (category Category, known bool, err error) {
	labels := make([]string, 0, len(Categories()))
	for _, label := range Categories() {
		labels = append(labels, fmt.Sprintf("'%s'", label))
	}
	out, err := c.agent.Run(ctx, &fable.Prompt{
		Input: fable.UserMessage(request),
		Vars: map[string]any{
			"categories": "[" + strings.Join(labels, ", ") + "]",
		},
	})
	if err != nil {
		return "", false, fmt.Errorf("classify request: %w", err)
	}
	category, known = ParseCategory(out.Text)
	return category, known, nil
}
