package advisor

import (
	"context"
	"encoding/json"
)

// FakeOracle returns a canned payload (or error) for offline runs and
// tests. It records the last prompt/input pair it was asked to judge.
type FakeOracle struct {
	Payload json.RawMessage
	Err     error

	LastPrompt string
	LastInput  string
	Calls      int
}

func (f *FakeOracle) Name() string { return "FakeOracle" }
func (f *FakeOracle) Close() error { return nil }

func (f *FakeOracle) GenerateJSON(ctx context.Context, prompt, input string) (json.RawMessage, error) {
	f.Calls++
	f.LastPrompt = prompt
	f.LastInput = input
	if f.Err != nil {
		return nil, f.Err
	}
	if f.Payload != nil {
		return f.Payload, nil
	}
	return json.RawMessage(`{"suggestions": [], "summary": {}}`), nil
}
