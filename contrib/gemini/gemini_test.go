package gemini

import (
	"testing"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/go-fable/fable"
)

func TestToGenerateConfig(t *testing.T) {
	req := &fable.ModelRequest{Model: "gemini-2.0-flash"}
	opt := fable.ModelOptions{MaxOutputTokens: 500}
	temperature := 0.0
	opt.Temperature = &temperature

	config := toGenerateConfig(req, opt)
	// An explicit zero temperature must be sent, not omitted.
	if config.Temperature == nil || *config.Temperature != 0 {
		t.Errorf("Temperature = %v, want explicit 0", config.Temperature)
	}
	if config.TopP != nil {
		t.Errorf("TopP = %v, want unset", config.TopP)
	}
	if config.MaxOutputTokens != 500 {
		t.Errorf("MaxOutputTokens = %d, want 500", config.MaxOutputTokens)
	}
	if config.ResponseMIMEType != "" {
		t.Errorf("ResponseMIMEType = %q, want empty without schema", config.ResponseMIMEType)
	}
}

func TestToGenerateConfigOutputSchema(t *testing.T) {
	req := &fable.ModelRequest{
		Model:        "gemini-2.0-flash",
		OutputSchema: &jsonschema.Schema{Type: "object"},
	}

	config := toGenerateConfig(req, fable.ModelOptions{})
	if config.ResponseMIMEType != "application/json" {
		t.Errorf("ResponseMIMEType = %q, want application/json", config.ResponseMIMEType)
	}
	if config.Temperature != nil {
		t.Errorf("Temperature = %v, want unset", config.Temperature)
	}
}
