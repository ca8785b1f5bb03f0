package fable

import (
	"context"
	"errors"
	"testing"
)

// mockProvider is a mock implementation of ModelProvider for testing.
type mockProvider struct {
	lastRequest *ModelRequest
	lastOptions ModelOptions
	reply       string
	err         error
}

func (m *mockProvider) Generate(ctx context.Context, req *ModelRequest, opts ...ModelOption) (*ModelResponse, error) {
	m.lastRequest = req
	m.lastOptions = ModelOptions{}
	for _, apply := range opts {
		apply(&m.lastOptions)
	}
	if m.err != nil {
		return nil, m.err
	}
	return &ModelResponse{Message: AssistantMessage(m.reply)}, nil
}

func TestAgentRun(t *testing.T) {
	provider := &mockProvider{reply: "friendship"}
	agent := NewAgent(
		"classifier",
		WithModel("test-model"),
		WithProvider(provider),
		WithInstructions("Category: {{.category}}."),
		WithModelOptions(Temperature(0), MaxOutputTokens(10)),
	)

	out, err := agent.Run(context.Background(), &Prompt{
		Input: UserMessage("a story about a dragon"),
		Vars:  map[string]any{"category": "fantasy"},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out.Text != "friendship" {
		t.Errorf("Run() text = %q, want %q", out.Text, "friendship")
	}

	req := provider.lastRequest
	if req.Model != "test-model" {
		t.Errorf("request model = %q, want %q", req.Model, "test-model")
	}
	if len(req.Messages) != 2 {
		t.Fatalf("request messages = %d, want 2", len(req.Messages))
	}
	if req.Messages[0].Role != RoleSystem {
		t.Errorf("first message role = %v, want %v", req.Messages[0].Role, RoleSystem)
	}
	if req.Messages[0].Text != "Category: fantasy." {
		t.Errorf("system message = %q, want rendered template", req.Messages[0].Text)
	}
	if req.Messages[1].Role != RoleUser {
		t.Errorf("second message role = %v, want %v", req.Messages[1].Role, RoleUser)
	}

	if provider.lastOptions.Temperature == nil || *provider.lastOptions.Temperature != 0 {
		t.Errorf("temperature = %v, want explicit 0", provider.lastOptions.Temperature)
	}
	if provider.lastOptions.MaxOutputTokens != 10 {
		t.Errorf("max output tokens = %d, want 10", provider.lastOptions.MaxOutputTokens)
	}
}

func TestAgentRunOptionOverride(t *testing.T) {
	provider := &mockProvider{reply: "ok"}
	agent := NewAgent(
		"reviser",
		WithModel("test-model"),
		WithProvider(provider),
		WithModelOptions(Temperature(0.5)),
	)

	if _, err := agent.Run(context.Background(), NewPrompt("revise"), Temperature(0.6)); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if provider.lastOptions.Temperature == nil || *provider.lastOptions.Temperature != 0.6 {
		t.Errorf("temperature = %v, want per-run override 0.6", provider.lastOptions.Temperature)
	}
}

func TestAgentRunMisconfigured(t *testing.T) {
	tests := []struct {
		name  string
		agent *Agent
		want  error
	}{
		{"no provider", NewAgent("a", WithModel("m")), ErrNoProvider},
		{"no model", NewAgent("a", WithProvider(&mockProvider{})), ErrNoModel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.agent.Run(context.Background(), NewPrompt("x")); !errors.Is(err, tt.want) {
				t.Errorf("Run() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestAgentRunProviderError(t *testing.T) {
	wantErr := errors.New("transport failure")
	agent := NewAgent(
		"storyteller",
		WithModel("test-model"),
		WithProvider(&mockProvider{err: wantErr}),
	)

	if _, err := agent.Run(context.Background(), NewPrompt("x")); !errors.Is(err, wantErr) {
		t.Errorf("Run() error = %v, want provider error unmodified", err)
	}
}
