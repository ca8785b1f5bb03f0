package story

import (
	"context"
	"testing"

	"github.com/go-fable/fable"
)

// stubProvider returns a fixed reply and records the last request.
type stubProvider struct {
	reply       string
	lastRequest *fable.ModelRequest
}

func (s *stubProvider) Generate(ctx context.Context, req *fable.ModelRequest, opts ...fable.ModelOption) (*fable.ModelResponse, error) {
	s.lastRequest = req
	return &fable.ModelResponse{Message: fable.AssistantMessage(s.reply)}, nil
}

func TestJudgeReview(t *testing.T) {
	draft := &Draft{Raw: "# T\n\n## Story\n\ns\n\n## Moral\n\nm"}

	tests := []struct {
		name            string
		reply           string
		requireRevision bool
		fallback        bool
	}{
		{
			"full verdict requiring revision",
			`{"age_appropriateness": "good", "safety_flags": ["mild peril"],
			  "required_changes": ["soften the storm scene"],
			  "require_revision": true, "summary": "needs one pass"}`,
			true, false,
		},
		{
			"partial verdict accepting",
			`{"require_revision": false, "summary": "lovely"}`,
			false, false,
		},
		{
			"empty object accepts",
			`{}`,
			false, false,
		},
		{
			"fenced json",
			"```json\n{\"require_revision\": false}\n```",
			false, false,
		},
		{
			"prose instead of json",
			"Looks good to me!",
			true, true,
		},
		{
			"type mismatch",
			`{"require_revision": "yes"}`,
			true, true,
		},
		{
			"array instead of object",
			`["require_revision"]`,
			true, true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			judge, err := NewJudge(&stubProvider{reply: tt.reply}, "test-model")
			if err != nil {
				t.Fatalf("NewJudge() error = %v", err)
			}
			verdict, err := judge.Review(context.Background(), "a dragon story", draft)
			if err != nil {
				t.Fatalf("Review() error = %v", err)
			}
			if verdict.RequireRevision != tt.requireRevision {
				t.Errorf("RequireRevision = %v, want %v", verdict.RequireRevision, tt.requireRevision)
			}
			if tt.fallback && len(verdict.RequiredChanges) == 0 {
				t.Errorf("fallback verdict has no required changes: %+v", verdict)
			}
		})
	}
}

func TestJudgeRequestShape(t *testing.T) {
	provider := &stubProvider{reply: `{}`}
	judge, err := NewJudge(provider, "test-model")
	if err != nil {
		t.Fatalf("NewJudge() error = %v", err)
	}
	draft := &Draft{Raw: "# T"}
	if _, err := judge.Review(context.Background(), "a fox story", draft); err != nil {
		t.Fatalf("Review() error = %v", err)
	}

	req := provider.lastRequest
	if req.OutputSchema == nil {
		t.Error("request has no output schema")
	}
	if len(req.Messages) != 2 {
		t.Fatalf("request messages = %d, want 2", len(req.Messages))
	}
	want := "USER REQUEST:\na fox story\n\nSTORY:\n# T"
	if req.Messages[1].Text != want {
		t.Errorf("judge input = %q, want %q", req.Messages[1].Text, want)
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fence", `{"a": 1}`, `{"a": 1}`},
		{"plain fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"language tag", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  ```json\n{\"a\": 1}\n```  ", `{"a": 1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripCodeFence(tt.in); got != tt.want {
				t.Errorf("stripCodeFence(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
