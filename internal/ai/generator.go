// Package ai generates listing copy and search suggestions with a hosted
// language model.
package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-1.5-flash"

const placeholderKey = "PLACEHOLDER_API_KEY"

// GenerateOptions tunes a single generation call.
type GenerateOptions struct {
	// StringList asks for a JSON array of strings instead of free text.
	StringList bool
}

// Generator sends one prompt to a model and returns the raw text answer.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}

// ResolveAPIKey picks the first non-empty key and reports whether it is usable.
func ResolveAPIKey(keys ...string) (string, bool) {
	for _, k := range keys {
		if k == "" {
			continue
		}
		return k, k != placeholderKey
	}
	return "", false
}

// GeminiGenerator calls the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator builds a generator for the Gemini developer API.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	var cfg *genai.GenerateContentConfig
	if opts.StringList {
		cfg = &genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema: &genai.Schema{
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
		}
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", err
	}
	return result.Text(), nil
}
