package chat

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// GeminiResponder answers through Google's Gemini API.
type GeminiResponder struct {
	client *genai.Client
	model  string
}

// NewGeminiResponder creates a responder for apiKey and model.
func NewGeminiResponder(ctx context.Context, apiKey, model string) (*GeminiResponder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiResponder{client: client, model: model}, nil
}

// Respond sends message as a single user turn and returns the text answer.
func (g *GeminiResponder) Respond(ctx context.Context, message string) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx,
		g.model,
		genai.Text(message),
		nil,
	)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}
	if len(result.Candidates) == 0 {
		return "", nil
	}
	return result.Text(), nil
}

// Name returns the responder name.
func (g *GeminiResponder) Name() string {
	return fmt.Sprintf("genai:%s", g.model)
}
