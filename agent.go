package fable

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"
)

// AgentOption is an option for configuring the Agent.
type AgentOption func(*Agent)

// WithModel sets the model for the Agent.
func WithModel(model string) AgentOption {
	return func(a *Agent) {
		a.model = model
	}
}

// WithProvider sets the model provider for the Agent.
func WithProvider(provider ModelProvider) AgentOption {
	return func(a *Agent) {
		a.provider = provider
	}
}

// WithInstructions sets the instruction template for the Agent. The
// template is rendered with the prompt variables on every run, so the
// persona wording stays configuration rather than code.
func WithInstructions(instructions string) AgentOption {
	return func(a *Agent) {
		a.instructions = instructions
	}
}

// WithOutputSchema sets the output schema for the Agent.
func WithOutputSchema(schema *jsonschema.Schema) AgentOption {
	return func(a *Agent) {
		a.outputSchema = schema
	}
}

// WithModelOptions sets default model options applied to every run.
// Per-run options are applied afterwards and take precedence.
func WithModelOptions(opts ...ModelOption) AgentOption {
	return func(a *Agent) {
		a.defaults = opts
	}
}

// Prompt carries the user-side input for one agent run together with
// the variables used to render the agent's instruction template.
type Prompt struct {
	Input *Message
	Vars  map[string]any
}

// NewPrompt creates a Prompt from plain user text.
func NewPrompt(text string) *Prompt {
	return &Prompt{Input: UserMessage(text)}
}

// Agent is a named pairing of a persona, a model, and a provider. It is
// stateless: each Run is one request built from scratch.
type Agent struct {
	name         string
	model        string
	instructions string
	outputSchema *jsonschema.Schema
	defaults     []ModelOption
	provider     ModelProvider
}

// NewAgent creates a new Agent with the given name and options.
func NewAgent(name string, opts ...AgentOption) *Agent {
	a := &Agent{name: name}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Name returns the name of the Agent.
func (a *Agent) Name() string {
	return a.name
}

// Model returns the model of the Agent.
func (a *Agent) Model() string {
	return a.model
}

// Instructions returns the instruction template of the Agent.
func (a *Agent) Instructions() string {
	return a.instructions
}

// buildRequest combines the rendered system instructions and the user
// message into a model request.
func (a *Agent) buildRequest(prompt *Prompt) (*ModelRequest, error) {
	req := &ModelRequest{
		Model:        a.model,
		OutputSchema: a.outputSchema,
	}
	if a.instructions != "" {
		systemMessage, err := NewTemplateMessage(RoleSystem, a.instructions, prompt.Vars)
		if err != nil {
			return nil, err
		}
		req.Messages = append(req.Messages, systemMessage)
	}
	if prompt.Input != nil {
		req.Messages = append(req.Messages, prompt.Input)
	}
	return req, nil
}

// Run executes one synchronous completion and returns the model's top
// message. Provider errors are returned unmodified.
func (a *Agent) Run(ctx context.Context, prompt *Prompt, opts ...ModelOption) (*Message, error) {
	if a.provider == nil {
		return nil, ErrNoProvider
	}
	if a.model == "" {
		return nil, ErrNoModel
	}
	req, err := a.buildRequest(prompt)
	if err != nil {
		return nil, err
	}
	res, err := a.provider.Generate(ctx, req, append(a.defaults, opts...)...)
	if err != nil {
		return nil, err
	}
	return res.Message, nil
}
