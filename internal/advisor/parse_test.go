package advisor

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"downsweep/internal/types"
)

const validPayload = `{
  "suggestions": [
    {"filename": "old.dmg", "reason": "Old installer", "confidence": "HIGH", "size_mb": 150.5, "age_days": 180},
    {"filename": "notes (1).txt", "reason": "Numbered duplicate", "confidence": "medium", "size_mb": 0.1},
    {"filename": "mystery.bin", "reason": "Unclear", "confidence": "definitely-maybe", "size_mb": 12}
  ],
  "summary": {"total_files_scanned": 40, "files_suggested_for_deletion": 3, "total_space_to_free_mb": 162.6, "keep_recent_days": 30}
}`

func TestParseBatchValid(t *testing.T) {
	batch, err := ParseBatch(json.RawMessage(validPayload))
	require.NoError(t, err)
	require.Len(t, batch.Suggestions, 3)

	assert.Equal(t, types.ConfidenceHigh, batch.Suggestions[0].Confidence, "confidence is case-insensitive")
	assert.Equal(t, types.ConfidenceMedium, batch.Suggestions[1].Confidence)
	assert.Equal(t, types.ConfidenceUnknown, batch.Suggestions[2].Confidence, "unknown confidence lands in the default bucket, never dropped")

	require.NotNil(t, batch.Suggestions[0].AgeDays)
	assert.Equal(t, 180, *batch.Suggestions[0].AgeDays)
	assert.Nil(t, batch.Suggestions[1].AgeDays)

	assert.Equal(t, 40, batch.Summary.TotalFilesScanned)
	assert.InDelta(t, 162.6, batch.Summary.TotalSpaceToFreeMB, 0.001)
	assert.JSONEq(t, validPayload, string(batch.Raw), "raw payload is preserved unmodified")
}

func TestParseBatchMissingSuggestionsKey(t *testing.T) {
	raw := json.RawMessage(`{"summary": {"total_files_scanned": 5}}`)
	_, err := ParseBatch(raw)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedResponse))

	var malformed *MalformedResponseError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, string(raw), string(malformed.Raw), "diagnostic payload must be carried")
}

func TestParseBatchNonJSON(t *testing.T) {
	_, err := ParseBatch(json.RawMessage("Sorry, I can't help with that."))
	assert.True(t, errors.Is(err, ErrMalformedResponse))
}

func TestParseBatchEmptySuggestionsIsValid(t *testing.T) {
	batch, err := ParseBatch(json.RawMessage(`{"suggestions": [], "summary": {}}`))
	require.NoError(t, err)
	assert.Empty(t, batch.Suggestions)
}

func TestParseBatchSkipsNamelessSuggestions(t *testing.T) {
	batch, err := ParseBatch(json.RawMessage(`{"suggestions": [{"reason": "no name"}, {"filename": "a.tmp"}]}`))
	require.NoError(t, err)
	require.Len(t, batch.Suggestions, 1)
	assert.Equal(t, "a.tmp", batch.Suggestions[0].Filename)
}
