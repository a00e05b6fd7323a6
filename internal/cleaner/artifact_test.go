package cleaner

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"downsweep/internal/advisor"
	"downsweep/internal/types"
)

func TestArtifactRoundTrip(t *testing.T) {
	fs, dir := newFS(t)

	raw := json.RawMessage(`{
	  "suggestions": [
	    {"filename": "a.dmg", "reason": "old installer", "confidence": "high", "size_mb": 10},
	    {"filename": "b.tmp", "reason": "temp file", "confidence": "whatever", "size_mb": 1}
	  ],
	  "summary": {"total_files_scanned": 2}
	}`)
	batch, err := advisor.ParseBatch(raw)
	require.NoError(t, err)

	require.NoError(t, WriteArtifact(fs, DefaultArtifactName, batch))

	written, err := os.ReadFile(filepath.Join(dir, DefaultArtifactName))
	require.NoError(t, err)
	assert.Equal(t, []byte(raw), written, "the artifact is the oracle payload, unmodified")

	reparsed, err := advisor.ParseBatch(written)
	require.NoError(t, err)

	type triple struct {
		f string
		c types.Confidence
		r string
	}
	triples := func(b *types.SuggestionBatch) []triple {
		out := make([]triple, 0, len(b.Suggestions))
		for _, s := range b.Suggestions {
			out = append(out, triple{s.Filename, s.Confidence, s.Reason})
		}
		return out
	}
	assert.Equal(t, triples(batch), triples(reparsed))
}

func TestArtifactWithoutRawFallsBackToEncoding(t *testing.T) {
	fs, dir := newFS(t)
	batch := &types.SuggestionBatch{
		Suggestions: []types.Suggestion{{Filename: "x.log", Reason: "r", Confidence: types.ConfidenceLow}},
	}
	require.NoError(t, WriteArtifact(fs, "alt.json", batch))

	b, err := os.ReadFile(filepath.Join(dir, "alt.json"))
	require.NoError(t, err)
	reparsed, err := advisor.ParseBatch(b)
	require.NoError(t, err)
	require.Len(t, reparsed.Suggestions, 1)
	assert.Equal(t, "x.log", reparsed.Suggestions[0].Filename)
	assert.Equal(t, types.ConfidenceLow, reparsed.Suggestions[0].Confidence)
}
