package fable

import "errors"

var (
	// ErrNoProvider is returned when an agent runs without a model provider.
	ErrNoProvider = errors.New("no model provider configured")
	// ErrNoModel is returned when an agent runs without a model name.
	ErrNoModel = errors.New("no model configured")
)
