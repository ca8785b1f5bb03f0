package fable

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Middleware represents a function that wraps a ModelProvider with
// additional behavior.
type Middleware func(next ModelProvider) ModelProvider

// ProviderFunc is a helper to create ModelProvider instances from functions.
type ProviderFunc func(context.Context, *ModelRequest, ...ModelOption) (*ModelResponse, error)

// Generate executes the ProviderFunc with the given request and options.
func (f ProviderFunc) Generate(ctx context.Context, req *ModelRequest, opts ...ModelOption) (*ModelResponse, error) {
	return f(ctx, req, opts...)
}

// ApplyMiddlewares applies a series of middlewares to a ModelProvider.
func ApplyMiddlewares(outer Middleware, others ...Middleware) Middleware {
	return func(next ModelProvider) ModelProvider {
		for i := len(others) - 1; i >= 0; i-- { // reverse
			next = others[i](next)
		}
		return outer(next)
	}
}

// LoggingMiddleware logs one event per model call: the model, the
// message count, the latency, and the error if any.
func LoggingMiddleware(logger zerolog.Logger) Middleware {
	return func(next ModelProvider) ModelProvider {
		return ProviderFunc(func(ctx context.Context, req *ModelRequest, opts ...ModelOption) (*ModelResponse, error) {
			start := time.Now()
			res, err := next.Generate(ctx, req, opts...)
			evt := logger.Info()
			if err != nil {
				evt = logger.Error().Err(err)
			}
			evt.Str("model", req.Model).
				Int("messages", len(req.Messages)).
				Dur("elapsed", time.Since(start)).
				Msg("model call")
			return res, err
		})
	}
}
