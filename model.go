package fable

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"
)

// ModelRequest is a single completion request against a backend model.
type ModelRequest struct {
	Model    string
	Messages []*Message
	// OutputSchema, when set, is passed to the backend as a
	// structured-output hint. Backends that do not support it ignore it;
	// callers still validate the reply themselves.
	OutputSchema *jsonschema.Schema
}

// ModelResponse holds the top completion returned by a backend.
type ModelResponse struct {
	Message *Message
}

// ModelOptions holds per-request sampling options. Temperature and TopP
// are pointers so a deliberate zero (deterministic sampling) can be told
// apart from "not set".
type ModelOptions struct {
	Temperature     *float64
	TopP            *float64
	MaxOutputTokens int64
}

// ModelOption is an option for configuring ModelOptions.
type ModelOption func(*ModelOptions)

// Temperature sets the sampling temperature in [0,1].
func Temperature(t float64) ModelOption {
	return func(o *ModelOptions) {
		o.Temperature = &t
	}
}

// TopP sets the nucleus-sampling probability mass.
func TopP(p float64) ModelOption {
	return func(o *ModelOptions) {
		o.TopP = &p
	}
}

// MaxOutputTokens bounds the size of the completion.
func MaxOutputTokens(n int64) ModelOption {
	return func(o *ModelOptions) {
		o.MaxOutputTokens = n
	}
}

// ModelProvider executes completion requests against a model backend.
// One call to Generate is one network round-trip; transport and
// authentication failures are returned unmodified.
type ModelProvider interface {
	Generate(ctx context.Context, req *ModelRequest, opts ...ModelOption) (*ModelResponse, error)
}
