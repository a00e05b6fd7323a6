package cleaner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"downsweep/internal/advisor"
	"downsweep/internal/safeio"
	"downsweep/internal/suppress"
	"downsweep/internal/ui"
)

func suggestionPayload(names ...string) json.RawMessage {
	type sg struct {
		Filename   string  `json:"filename"`
		Reason     string  `json:"reason"`
		Confidence string  `json:"confidence"`
		SizeMB     float64 `json:"size_mb"`
	}
	var list []sg
	for _, n := range names {
		list = append(list, sg{Filename: n, Reason: "looks stale", Confidence: "high", SizeMB: 1})
	}
	b, _ := json.Marshal(map[string]any{
		"suggestions": list,
		"summary": map[string]any{
			"total_files_scanned":          len(names),
			"files_suggested_for_deletion": len(names),
		},
	})
	return b
}

type sessionFixture struct {
	dir     string
	session *Session
	oracle  *advisor.FakeOracle
	store   *suppress.Store
	out     *bytes.Buffer
}

func newSession(t *testing.T, oracle *advisor.FakeOracle, prompt ui.Prompter) *sessionFixture {
	t.Helper()
	dir := t.TempDir()
	for i, name := range []string{"old.dmg", "dup (1).pdf", "keeper.docx"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), make([]byte, 100*(i+1)), 0o644))
	}
	fs, err := safeio.NewSafeFS(dir)
	require.NoError(t, err)

	store := suppress.NewStore(filepath.Join(t.TempDir(), "kept_files.json"), zerolog.Nop())
	out := &bytes.Buffer{}
	return &sessionFixture{
		dir:    dir,
		oracle: oracle,
		store:  store,
		out:    out,
		session: &Session{
			FS:      fs,
			Store:   store,
			Advisor: &advisor.Client{Oracle: oracle, KeepRecentDays: 30, Log: zerolog.Nop()},
			Prompt:  prompt,
			Log:     zerolog.Nop(),
			Out:     out,
		},
	}
}

func (f *sessionFixture) entries(t *testing.T) []string {
	t.Helper()
	dirents, err := os.ReadDir(f.dir)
	require.NoError(t, err)
	var names []string
	for _, de := range dirents {
		names = append(names, de.Name())
	}
	return names
}

func TestSessionDeclinedConfirmationDeletesNothing(t *testing.T) {
	oracle := &advisor.FakeOracle{Payload: suggestionPayload("old.dmg", "dup (1).pdf")}
	prompt := &ui.Scripted{
		Selections: [][]string{{"old.dmg", "dup (1).pdf"}, {}},
		Confirms:   []bool{false},
	}
	f := newSession(t, oracle, prompt)

	require.NoError(t, f.session.Run(context.Background()))

	names := f.entries(t)
	assert.Contains(t, names, "old.dmg")
	assert.Contains(t, names, "dup (1).pdf")
	assert.Contains(t, names, "keeper.docx")
	assert.Contains(t, f.out.String(), "Deletion cancelled.")
}

func TestSessionConfirmedDeletionRemovesSelection(t *testing.T) {
	oracle := &advisor.FakeOracle{Payload: suggestionPayload("old.dmg", "dup (1).pdf")}
	prompt := &ui.Scripted{
		Selections: [][]string{{"old.dmg"}, {}},
		Confirms:   []bool{true},
	}
	f := newSession(t, oracle, prompt)

	require.NoError(t, f.session.Run(context.Background()))

	names := f.entries(t)
	assert.NotContains(t, names, "old.dmg")
	assert.Contains(t, names, "dup (1).pdf", "unselected suggestions survive")
	assert.Contains(t, f.out.String(), "Successfully deleted: 1 file(s)")
}

func TestSessionKeepMarkingPersists(t *testing.T) {
	oracle := &advisor.FakeOracle{Payload: suggestionPayload("old.dmg", "dup (1).pdf")}
	prompt := &ui.Scripted{
		Selections: [][]string{{}, {"dup (1).pdf"}},
	}
	f := newSession(t, oracle, prompt)

	require.NoError(t, f.session.Run(context.Background()))

	kept := f.store.Load()
	assert.Contains(t, kept, "dup (1).pdf")
	assert.Len(t, kept, 1)
	assert.Contains(t, f.out.String(), "Marked 1 file(s) as keep")
}

func TestSessionDeleteAndKeepSameFileRecordsBoth(t *testing.T) {
	// Degenerate but tolerated: deletion wins this session, suppression
	// affects future ones.
	oracle := &advisor.FakeOracle{Payload: suggestionPayload("old.dmg")}
	prompt := &ui.Scripted{
		Selections: [][]string{{"old.dmg"}, {"old.dmg"}},
		Confirms:   []bool{true},
	}
	f := newSession(t, oracle, prompt)

	require.NoError(t, f.session.Run(context.Background()))

	assert.NotContains(t, f.entries(t), "old.dmg")
	assert.Contains(t, f.store.Load(), "old.dmg")
}

func TestSessionMalformedOracleLeavesEverythingUntouched(t *testing.T) {
	oracle := &advisor.FakeOracle{Payload: json.RawMessage(`{"no_suggestions_here": true}`)}
	f := newSession(t, oracle, &ui.Scripted{})

	err := f.session.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, advisor.ErrMalformedResponse))

	assert.Len(t, f.entries(t), 3, "filesystem unchanged")
	assert.Empty(t, f.store.Load(), "suppression store unchanged")
	_, statErr := os.Stat(f.store.Path())
	assert.True(t, os.IsNotExist(statErr), "no partial store writes before the advisory step")
}

func TestSessionAdvisoryUnavailable(t *testing.T) {
	oracle := &advisor.FakeOracle{Err: fmt.Errorf("503 overloaded")}
	f := newSession(t, oracle, &ui.Scripted{})

	err := f.session.Run(context.Background())
	assert.True(t, errors.Is(err, advisor.ErrAdvisoryUnavailable))
	assert.Len(t, f.entries(t), 3)
}

func TestSessionFiltersSuppressedBeforeAdvisory(t *testing.T) {
	oracle := &advisor.FakeOracle{Payload: suggestionPayload()}
	f := newSession(t, oracle, &ui.Scripted{})
	require.NoError(t, f.store.Add("keeper.docx", "user explicitly marked as keep"))

	require.NoError(t, f.session.Run(context.Background()))

	assert.NotContains(t, f.oracle.LastInput, "keeper.docx", "suppressed entries never reach the oracle")
	assert.Contains(t, f.oracle.LastInput, "old.dmg")
}

func TestSessionWritesArtifact(t *testing.T) {
	payload := suggestionPayload("old.dmg")
	oracle := &advisor.FakeOracle{Payload: payload}
	f := newSession(t, oracle, &ui.Scripted{})

	require.NoError(t, f.session.Run(context.Background()))

	b, err := os.ReadFile(filepath.Join(f.dir, DefaultArtifactName))
	require.NoError(t, err)
	assert.Equal(t, []byte(payload), b)
}

func TestSessionNoSuggestionsSkipsPrompts(t *testing.T) {
	oracle := &advisor.FakeOracle{Payload: suggestionPayload()}
	prompt := &ui.Scripted{Selections: [][]string{{"should-not-be-consumed"}}}
	f := newSession(t, oracle, prompt)

	require.NoError(t, f.session.Run(context.Background()))
	assert.Contains(t, f.out.String(), "looks clean")
	assert.Len(t, f.entries(t), 4, "three files plus the artifact")
}
