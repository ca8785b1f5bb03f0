// Package gemini implements fable.ModelProvider for the Gemini API.
package gemini

import (
	"context"
	"errors"

	"google.golang.org/genai"

	"github.com/go-fable/fable"
)

// ErrEmptyResponse indicates the provider returned no candidate text.
var ErrEmptyResponse = errors.New("empty completion response")

// Provider implements fable.ModelProvider backed by google.golang.org/genai.
type Provider struct {
	client *genai.Client
}

// NewProvider constructs a Gemini provider. With a nil config the client
// reads GEMINI_API_KEY (or GOOGLE_API_KEY) from the environment.
func NewProvider(ctx context.Context, config *genai.ClientConfig) (fable.ModelProvider, error) {
	client, err := genai.NewClient(ctx, config)
	if err != nil {
		return nil, err
	}
	return &Provider{client: client}, nil
}

// Generate executes a non-streaming content generation request.
func (p *Provider) Generate(ctx context.Context, req *fable.ModelRequest, opts ...fable.ModelOption) (*fable.ModelResponse, error) {
	opt := fable.ModelOptions{}
	for _, apply := range opts {
		apply(&opt)
	}
	config := toGenerateConfig(req, opt)
	var contents []*genai.Content
	for _, msg := range req.Messages {
		switch msg.Role {
		case fable.RoleSystem:
			config.SystemInstruction = genai.NewContentFromText(msg.Text, genai.RoleUser)
		case fable.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(msg.Text, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(msg.Text, genai.RoleUser))
		}
	}
	res, err := p.client.Models.GenerateContent(ctx, req.Model, contents, config)
	if err != nil {
		return nil, err
	}
	text := res.Text()
	if text == "" {
		return nil, ErrEmptyResponse
	}
	return &fable.ModelResponse{Message: fable.AssistantMessage(text)}, nil
}

func toGenerateConfig(req *fable.ModelRequest, opt fable.ModelOptions) *genai.GenerateContentConfig {
	var config genai.GenerateContentConfig
	if opt.Temperature != nil {
		temperature := float32(*opt.Temperature)
		config.Temperature = &temperature
	}
	if opt.TopP != nil {
		topP := float32(*opt.TopP)
		config.TopP = &topP
	}
	if opt.MaxOutputTokens > 0 {
		config.MaxOutputTokens = int32(opt.MaxOutputTokens)
	}
	if req.OutputSchema != nil {
		// The Gemini API takes its own schema type; requesting the JSON
		// MIME type is enough to keep replies machine-readable, and the
		// caller validates against the full schema anyway.
		config.ResponseMIMEType = "application/json"
	}
	return &config
}
