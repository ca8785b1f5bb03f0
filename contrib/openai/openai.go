// Package openai implements fable.ModelProvider for OpenAI-compatible
// chat-completion endpoints.
package openai

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/packages/param"
	"github.com/openai/openai-go/v2/shared"

	"github.com/go-fable/fable"
)

// ErrEmptyResponse indicates the provider returned no choices.
var ErrEmptyResponse = errors.New("empty completion response")

// Provider implements fable.ModelProvider for OpenAI-compatible chat models.
type Provider struct {
	client openai.Client
}

// NewProvider constructs an OpenAI provider. Without explicit options
// the API key is read from the OPENAI_API_KEY environment variable and
// OPENAI_BASE_URL overrides the API base URL.
func NewProvider(opts ...option.RequestOption) fable.ModelProvider {
	return &Provider{client: openai.NewClient(opts...)}
}

// Generate executes a non-streaming chat completion request and returns
// the text of the first choice.
func (p *Provider) Generate(ctx context.Context, req *fable.ModelRequest, opts ...fable.ModelOption) (*fable.ModelResponse, error) {
	opt := fable.ModelOptions{}
	for _, apply := range opts {
		apply(&opt)
	}
	params, err := toChatCompletionParams(req, opt)
	if err != nil {
		return nil, err
	}
	res, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, err
	}
	if len(res.Choices) == 0 {
		return nil, ErrEmptyResponse
	}
	return &fable.ModelResponse{
		Message: fable.AssistantMessage(res.Choices[0].Message.Content),
	}, nil
}

// toChatCompletionParams converts a generic model request into OpenAI params.
func toChatCompletionParams(req *fable.ModelRequest, opt fable.ModelOptions) (openai.ChatCompletionNewParams, error) {
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(req.Model),
		Messages: make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages)),
	}
	if opt.Temperature != nil {
		params.Temperature = param.NewOpt(*opt.Temperature)
	}
	if opt.TopP != nil {
		params.TopP = param.NewOpt(*opt.TopP)
	}
	if opt.MaxOutputTokens > 0 {
		params.MaxCompletionTokens = param.NewOpt(opt.MaxOutputTokens)
	}
	for _, msg := range req.Messages {
		switch msg.Role {
		case fable.RoleSystem:
			params.Messages = append(params.Messages, openai.SystemMessage(msg.Text))
		case fable.RoleAssistant:
			params.Messages = append(params.Messages, openai.AssistantMessage(msg.Text))
		default:
			params.Messages = append(params.Messages, openai.UserMessage(msg.Text))
		}
	}
	if req.OutputSchema != nil {
		schema, err := toSchemaMap(req.OutputSchema)
		if err != nil {
			return openai.ChatCompletionNewParams{}, err
		}
		name := req.OutputSchema.Title
		if name == "" {
			name = "output"
		}
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
				JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   name,
					Schema: schema,
				},
			},
		}
	}
	return params, nil
}

// toSchemaMap round-trips a JSON schema through encoding/json into the
// loose map form the OpenAI API expects.
func toSchemaMap(schema any) (map[string]any, error) {
	b, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}
