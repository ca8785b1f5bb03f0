package story

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/go-fable/fable"
)

// Verdict is the judge's structured review of a draft. All fields are
// optional on the wire; a missing require_revision means the draft is
// accepted.
type Verdict struct {
	AgeAppropriateness   string   `json:"age_appropriateness,omitempty"`
	ClaritySimpleWording string   `json:"clarity_simple_language,omitempty"`
	CoherenceStoryArc    string   `json:"coherence_story_arc,omitempty"`
	WarmthAndKindness    string   `json:"warmth_and_kindness,omitempty"`
	EngagementImagined   string   `json:"engagement_imagination,omitempty"`
	SafetyFlags          []string `json:"safety_flags,omitempty"`
	RequiredChanges      []string `json:"required_changes,omitempty"`
	Recommendations      []string `json:"recommendations,omitempty"`
	RequireRevision      bool     `json:"require_revision,omitempty"`
	Summary              string   `json:"summary,omitempty"`
}

// Judge reviews drafts against the rubric and returns a Verdict. The
// model call is deterministic and schema-constrained where the provider
// supports it.
type Judge struct {
	agent    *fable.Agent
	resolved *jsonschema.Resolved
}

// NewJudge builds the judge agent on the given provider.
func NewJudge(provider fable.ModelProvider, model string) (*Judge, error) {
	schema, err := jsonschema.For[Verdict](nil)
	if err != nil {
		return nil, fmt.Errorf("build verdict schema: %w", err)
	}
	resolved, err := schema.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("resolve verdict schema: %w", err)
	}
	return &Judge{
		agent: fable.NewAgent(
			"judge",
			fable.WithModel(model),
			fable.WithProvider(provider),
			fable.WithInstructions(judgePersona),
			fable.WithOutputSchema(schema),
			fable.WithModelOptions(
				fable.Temperature(0),
				fable.MaxOutputTokens(500),
			),
		),
		resolved: resolved,
	}, nil
}

// Review judges the draft against the original request. Model transport
// errors are returned; malformed verdicts are not, they degrade to a
// fallback that demands a revision.
func (j *Judge) Review(ctx context.Context, request string, draft *Draft) (*Verdict, error) {
	input := fmt.Sprintf(judgeInputFormat, request, draft.Raw)
	out, err := j.agent.Run(ctx, fable.NewPrompt(input))
	if err != nil {
		return nil, fmt.Errorf("judge draft: %w", err)
	}
	return j.parseVerdict(out.Text), nil
}

// parseVerdict decodes the judge reply. Any parse or schema failure
// yields a fallback verdict requiring a revision, so a malformed review
// never ends the loop early or crashes it.
func (j *Judge) parseVerdict(raw string) *Verdict {
	raw = stripCodeFence(raw)

	var loose any
	if err := json.Unmarshal([]byte(raw), &loose); err != nil {
		return fallbackVerdict("Fix JSON parsing")
	}
	if err := j.resolved.Validate(loose); err != nil {
		return fallbackVerdict("Fix verdict schema")
	}
	var verdict Verdict
	if err := json.Unmarshal([]byte(raw), &verdict); err != nil {
		return fallbackVerdict("Fix JSON parsing")
	}
	return &verdict
}

func fallbackVerdict(reason string) *Verdict {
	return &Verdict{
		RequireRevision: true,
		RequiredChanges: []string{reason},
		SafetyFlags:     []string{},
	}
}

// stripCodeFence unwraps a reply enclosed in a Markdown code fence,
// with or without a language tag.
func stripCodeFence(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	raw = strings.TrimPrefix(raw, "```")
	if idx := strings.Index(raw, "\n"); idx >= 0 {
		raw = raw[idx+1:]
	}
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")
	return strings.TrimSpace(raw)
}
