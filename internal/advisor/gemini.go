package advisor

import (
	"context"
	"encoding/json"

	genai "google.golang.org/genai"
)

// GeminiOracle is a thin wrapper around the official genai client. It only
// focuses on the API call itself; prompt construction and response
// validation live in the advisory client.
type GeminiOracle struct {
	cli   *genai.Client
	model string
}

func NewGeminiOracle(ctx context.Context, apiKey, model string) (*GeminiOracle, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiOracle{cli: cli, model: model}, nil
}

func (g *GeminiOracle) Name() string { return "Gemini:" + g.model }
func (g *GeminiOracle) Close() error { return nil }

// GenerateJSON sends the policy prompt plus the rendered entry listing and
// requests application/json. Single attempt: a failed call surfaces to the
// session loop instead of being retried here.
func (g *GeminiOracle) GenerateJSON(ctx context.Context, prompt, input string) (json.RawMessage, error) {
	full := prompt + "\n\n" + input
	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: full}}}},
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
	)
	if err != nil {
		return nil, err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, &MalformedResponseError{Reason: "empty completion"}
	}
	return json.RawMessage(resp.Candidates[0].Content.Parts[0].Text), nil
}
