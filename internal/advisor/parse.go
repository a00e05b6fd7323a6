package advisor

import (
	"encoding/json"

	"downsweep/internal/jsonutil"
	"downsweep/internal/types"
)

// Wire shapes for the oracle contract. Every field is decoded defensively:
// absent or oddly typed values get explicit defaults instead of crashing
// downstream.
type wireSuggestion struct {
	Filename   string  `json:"filename"`
	Reason     string  `json:"reason"`
	Confidence string  `json:"confidence"`
	SizeMB     float64 `json:"size_mb"`
	AgeDays    *int    `json:"age_days"`
}

type wireBatch struct {
	Suggestions []wireSuggestion `json:"suggestions"`
	Summary     types.Summary    `json:"summary"`
}

// ParseBatch validates a raw oracle payload against the documented shape.
// A payload that is not JSON, or that lacks the suggestions key, yields a
// MalformedResponseError carrying the raw bytes; the caller fails the
// session step loudly rather than guessing.
func ParseBatch(raw json.RawMessage) (*types.SuggestionBatch, error) {
	var probe map[string]json.RawMessage
	if err := jsonutil.UnmarshalFlex(raw, &probe); err != nil {
		return nil, &MalformedResponseError{Reason: "payload is not a JSON object", Raw: raw}
	}
	if _, ok := probe["suggestions"]; !ok {
		return nil, &MalformedResponseError{Reason: "missing suggestions key", Raw: raw}
	}

	var wire wireBatch
	if err := jsonutil.UnmarshalFlex(raw, &wire); err != nil {
		return nil, &MalformedResponseError{Reason: "suggestions do not match the documented shape", Raw: raw}
	}

	batch := &types.SuggestionBatch{
		Suggestions: make([]types.Suggestion, 0, len(wire.Suggestions)),
		Summary:     wire.Summary,
		Raw:         append([]byte(nil), raw...),
	}
	for _, w := range wire.Suggestions {
		if w.Filename == "" {
			// A suggestion that names nothing can never join back to an
			// entry; it is unusable rather than malformed.
			continue
		}
		batch.Suggestions = append(batch.Suggestions, types.Suggestion{
			Filename:   w.Filename,
			Reason:     w.Reason,
			Confidence: types.ParseConfidence(w.Confidence),
			SizeMB:     w.SizeMB,
			AgeDays:    w.AgeDays,
		})
	}
	return batch, nil
}
